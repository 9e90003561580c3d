package lesson

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/abhisek/lingua/internal/catalog"
	"github.com/abhisek/lingua/internal/prompt"
)

// Phase is where a session is in the lesson lifecycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLessonDisplayed
	PhaseAnswersCollected
	PhaseEvaluated
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLessonDisplayed:
		return "lesson_displayed"
	case PhaseAnswersCollected:
		return "answers_collected"
	case PhaseEvaluated:
		return "evaluated"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

var (
	// ErrNoLesson is returned for quiz actions before any lesson started.
	ErrNoLesson = errors.New("no lesson has been started")

	// ErrQuestionIndex is returned for an answer index outside the quiz.
	ErrQuestionIndex = errors.New("question index out of range")

	// ErrLessonPending is returned when answers are submitted while section
	// calls are still outstanding.
	ErrLessonPending = errors.New("lesson sections are still loading")
)

// Request is what the learner asked for on the form.
type Request struct {
	Language   catalog.Language
	Difficulty catalog.Difficulty
	CustomText string
}

// Custom reports whether the learner typed their own sentence.
func (r Request) Custom() bool {
	return strings.TrimSpace(r.CustomText) != ""
}

// QuestionCount is the fixed number of quiz questions.
const QuestionCount = 3

// Questions are asked for every sentence.
var Questions = [QuestionCount]string{
	"이 문장에 나오는 동물은 무엇인가요?",
	"문장에서 형용사를 찾아보세요.",
	"이 문장의 주요 주제는 무엇인가요?",
}

// QuizItem is one question and the learner's current answer.
type QuizItem struct {
	Question string
	Answer   string
}

// QuizState holds exactly QuestionCount items.
type QuizState struct {
	items [QuestionCount]QuizItem
}

func newQuizState() QuizState {
	var q QuizState
	for i, text := range Questions {
		q.items[i].Question = text
	}
	return q
}

// Len is always QuestionCount.
func (q QuizState) Len() int { return len(q.items) }

// Items returns a copy of the quiz items.
func (q QuizState) Items() [QuestionCount]QuizItem { return q.items }

// Answer returns the answer at index i, or "" when out of range.
func (q QuizState) Answer(i int) string {
	if i < 0 || i >= len(q.items) {
		return ""
	}
	return q.items[i].Answer
}

// SetAnswer replaces the answer at index i.
func (q *QuizState) SetAnswer(i int, text string) error {
	if i < 0 || i >= len(q.items) {
		return fmt.Errorf("%w: %d", ErrQuestionIndex, i)
	}
	q.items[i].Answer = text
	return nil
}

func (q QuizState) pairs() []prompt.QA {
	out := make([]prompt.QA, len(q.items))
	for i, it := range q.items {
		out[i] = prompt.QA{Question: it.Question, Answer: it.Answer}
	}
	return out
}

// Section is rendered model output under a heading.
type Section struct {
	Purpose prompt.Purpose
	Title   string
	Text    string
}

// Banner is a non-fatal error notice shown in place of a section.
type Banner struct {
	Purpose prompt.Purpose
	Message string
}

// Session is everything one learner has on screen.
type Session struct {
	ID       string
	Phase    Phase
	Request  Request
	Sentence string

	Sections []Section
	Banners  []Banner

	Quiz       QuizState
	Evaluation string

	// next indexes prompt.Sections; lesson counts Begin calls so results
	// from a superseded lesson are dropped.
	next   int
	lesson int
}

// NewSession returns an idle session with a fresh id.
func NewSession() *Session {
	return &Session{
		ID:    uuid.NewString(),
		Phase: PhaseIdle,
		Quiz:  newQuizState(),
	}
}

// Reset returns the session to its initial state under a new id.
func (s *Session) Reset() {
	*s = *NewSession()
}

// Started reports whether a lesson has begun.
func (s *Session) Started() bool {
	return s.Phase != PhaseIdle
}

// Pending reports whether section calls are still outstanding.
func (s *Session) Pending() bool {
	return s.Started() && s.next < len(prompt.Sections)
}

// Progress returns how many section calls have completed.
func (s *Session) Progress() (done, total int) {
	return s.next, len(prompt.Sections)
}

// Evaluated reports whether an evaluation text is available.
func (s *Session) Evaluated() bool {
	return s.Evaluation != ""
}

// BannerFor returns the banner recorded for purpose, if any.
func (s *Session) BannerFor(p prompt.Purpose) (Banner, bool) {
	for _, b := range s.Banners {
		if b.Purpose == p {
			return b, true
		}
	}
	return Banner{}, false
}

func (s *Session) dropBanners(p prompt.Purpose) {
	kept := s.Banners[:0]
	for _, b := range s.Banners {
		if b.Purpose != p {
			kept = append(kept, b)
		}
	}
	s.Banners = kept
}
