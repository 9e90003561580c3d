// Package prompt formats the instruction text sent to the model for each
// lesson section and for quiz evaluation.
package prompt

import (
	"fmt"
	"strings"
)

// Purpose identifies which lesson section a prompt produces. It doubles as
// the purpose label on recorded LLM events.
type Purpose string

const (
	Translation   Purpose = "translation"
	Vocabulary    Purpose = "vocabulary"
	Grammar       Purpose = "grammar"
	Pronunciation Purpose = "pronunciation"
	Culture       Purpose = "culture"
	Evaluation    Purpose = "quiz-evaluation"
)

// DisplayLanguage is the language every answer must be written in.
const DisplayLanguage = "한국어"

// Directive is appended to every prompt before it is sent.
const Directive = "모든 응답은 " + DisplayLanguage + "로 제공해 주세요."

// Sections lists the lesson section purposes in the order they are
// requested and rendered.
var Sections = []Purpose{Translation, Vocabulary, Grammar, Pronunciation, Culture}

// Input is what a section prompt is built from.
type Input struct {
	Language   string
	Difficulty string
	Sentence   string
}

// QA is one quiz question with the learner's answer.
type QA struct {
	Question string
	Answer   string
}

// Build formats the prompt for a lesson section. Unknown purposes, and
// Evaluation which needs answers, yield "".
func Build(p Purpose, in Input) string {
	switch p {
	case Translation:
		return fmt.Sprintf("다음 %s 텍스트를 %s로 번역해주세요: '%s'. 번역 결과만 제공해 주세요.",
			in.Language, DisplayLanguage, in.Sentence)
	case Vocabulary:
		return fmt.Sprintf("이 %s 문장에서 %s 수준의 학습자에게 적합한 5개의 주요 어휘를 선택하고 설명해주세요: '%s'",
			in.Language, in.Difficulty, in.Sentence)
	case Grammar:
		return fmt.Sprintf("이 %s 문장에서 %s 수준에 맞는 주요 문법 포인트를 설명해주세요: '%s'",
			in.Language, in.Difficulty, in.Sentence)
	case Pronunciation:
		return fmt.Sprintf("이 %s 문장의 발음 가이드를 제공해주세요: '%s'", in.Language, in.Sentence)
	case Culture:
		return fmt.Sprintf("이 %s 문장과 관련된 문화적 맥락이나 흥미로운 사실을 제공해주세요: '%s'", in.Language, in.Sentence)
	}
	return ""
}

// BuildEvaluation formats the quiz evaluation prompt. Pairs are numbered
// from 1 in the order given.
func BuildEvaluation(sentence string, pairs []QA) string {
	blocks := make([]string, len(pairs))
	for i, qa := range pairs {
		blocks[i] = fmt.Sprintf("질문 %d: %s\n답변: %s", i+1, qa.Question, qa.Answer)
	}
	return fmt.Sprintf("다음 문장에 대한 퀴즈 답변을 평가해주세요: '%s'\n\n", sentence) + strings.Join(blocks, "\n")
}

// WithDirective appends the display-language directive.
func WithDirective(p string) string {
	return p + "\n\n" + Directive
}

// Title returns the section heading shown above a purpose's output.
func Title(p Purpose) string {
	switch p {
	case Translation:
		return "번역"
	case Vocabulary:
		return "주요 어휘"
	case Grammar:
		return "문법 포인트"
	case Pronunciation:
		return "발음 가이드"
	case Culture:
		return "문화적 참고 사항"
	case Evaluation:
		return "평가 결과"
	}
	return string(p)
}

// ParsePurpose maps a purpose label back to a Purpose.
func ParsePurpose(s string) (Purpose, bool) {
	if s == string(Evaluation) {
		return Evaluation, true
	}
	for _, p := range Sections {
		if string(p) == s {
			return p, true
		}
	}
	return "", false
}
