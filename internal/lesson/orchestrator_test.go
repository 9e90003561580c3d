package lesson

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingua/internal/catalog"
	"github.com/abhisek/lingua/internal/gateway"
	"github.com/abhisek/lingua/internal/llm"
	"github.com/abhisek/lingua/internal/prompt"
	"github.com/abhisek/lingua/internal/store"
)

type fakeRecorder struct {
	mu     sync.Mutex
	events []store.LessonEventData
	err    error
}

func (f *fakeRecorder) AppendLessonEvent(_ context.Context, data store.LessonEventData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, data)
	return f.err
}

func (f *fakeRecorder) actions() []store.LessonAction {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]store.LessonAction, len(f.events))
	for i, e := range f.events {
		out[i] = e.Action
	}
	return out
}

func ok(text string) llm.MockResponse { return llm.MockResponse{Text: text} }

func fail(msg string) llm.MockResponse {
	return llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New(msg)}}
}

func newTestOrchestrator(responses ...llm.MockResponse) (*Orchestrator, *llm.MockProvider, *fakeRecorder) {
	mock := llm.NewMockProvider(responses...)
	rec := &fakeRecorder{}
	o := New(catalog.Default(), gateway.New(mock, gateway.DefaultConfig()), rec)
	return o, mock, rec
}

func englishBeginner() Request {
	return Request{Language: catalog.English, Difficulty: catalog.Beginner}
}

func TestStartLesson_AllSectionsInOrder(t *testing.T) {
	o, mock, _ := newTestOrchestrator(ok("t"), ok("v"), ok("g"), ok("p"), ok("c"))
	s := NewSession()

	require.NoError(t, o.Dispatch(t.Context(), s, StartLesson{Request: englishBeginner()}))

	assert.Equal(t, PhaseLessonDisplayed, s.Phase)
	assert.Equal(t, "The quick brown fox jumps over the lazy dog.", s.Sentence)
	assert.False(t, s.Pending())
	assert.Empty(t, s.Banners)
	require.Len(t, s.Sections, 5)

	for i, p := range prompt.Sections {
		assert.Equal(t, p, s.Sections[i].Purpose)
		assert.Equal(t, prompt.Title(p), s.Sections[i].Title)
	}
	assert.Equal(t, "t", s.Sections[0].Text)
	assert.Equal(t, "c", s.Sections[4].Text)
	assert.Equal(t, 5, mock.CallCount())
}

func TestStartLesson_ExactTranslationPrompt(t *testing.T) {
	o, mock, _ := newTestOrchestrator(ok("a"), ok("b"), ok("c"), ok("d"), ok("e"))
	s := NewSession()
	require.NoError(t, o.StartLesson(t.Context(), s, englishBeginner(), nil))

	want := "다음 영어 텍스트를 한국어로 번역해주세요: 'The quick brown fox jumps over the lazy dog.'. 번역 결과만 제공해 주세요." +
		"\n\n모든 응답은 한국어로 제공해 주세요."
	assert.Equal(t, want, mock.Prompts()[0])
}

func TestStartLesson_PartialFailures(t *testing.T) {
	o, _, rec := newTestOrchestrator(fail("one"), ok("vocab"), fail("three"), ok("pron"), ok("culture"))
	s := NewSession()

	var seen []Outcome
	require.NoError(t, o.StartLesson(t.Context(), s, englishBeginner(), func(out Outcome) {
		seen = append(seen, out)
	}))

	require.Len(t, s.Sections, 3)
	assert.Equal(t, prompt.Vocabulary, s.Sections[0].Purpose)
	assert.Equal(t, prompt.Pronunciation, s.Sections[1].Purpose)
	assert.Equal(t, prompt.Culture, s.Sections[2].Purpose)

	require.Len(t, s.Banners, 2)
	assert.Equal(t, prompt.Translation, s.Banners[0].Purpose)
	assert.Equal(t, prompt.Grammar, s.Banners[1].Purpose)
	assert.True(t, strings.HasPrefix(s.Banners[0].Message, "Claude API 오류: "))
	assert.Contains(t, s.Banners[1].Message, "three")

	require.Len(t, seen, 5)
	assert.NotNil(t, seen[0].Banner)
	assert.NotNil(t, seen[1].Section)
	assert.False(t, seen[3].Done)
	assert.True(t, seen[4].Done)

	var failures int
	for _, e := range rec.events {
		if e.Action == store.ActionSection && !e.Success {
			failures++
		}
	}
	assert.Equal(t, 2, failures)
}

func TestStartLesson_EmptyAnswerIsSkipped(t *testing.T) {
	o, _, _ := newTestOrchestrator(ok(""), ok("v"), ok("g"), ok("p"), ok("c"))
	s := NewSession()
	require.NoError(t, o.StartLesson(t.Context(), s, englishBeginner(), nil))

	assert.Len(t, s.Sections, 4)
	assert.Empty(t, s.Banners)
}

func TestStartLesson_CustomTextVerbatim(t *testing.T) {
	o, mock, rec := newTestOrchestrator()
	mock.Fallback = &llm.MockResponse{Text: "x"}
	s := NewSession()

	custom := "  El gato duerme.  "
	req := Request{Language: catalog.Spanish, Difficulty: catalog.Advanced, CustomText: custom}
	require.NoError(t, o.StartLesson(t.Context(), s, req, nil))

	assert.Equal(t, custom, s.Sentence)
	prompts := mock.Prompts()
	require.Len(t, prompts, 5)
	for i, p := range prompts {
		if n := strings.Count(p, custom); n != 1 {
			t.Errorf("prompt %d embeds the sentence %d times", i, n)
		}
		if !strings.HasSuffix(p, prompt.Directive) {
			t.Errorf("prompt %d does not request Korean output", i)
		}
	}

	require.NotEmpty(t, rec.events)
	assert.True(t, rec.events[0].Custom)
}

func TestStartLesson_UnknownPair(t *testing.T) {
	o, mock, _ := newTestOrchestrator()
	s := NewSession()

	err := o.StartLesson(t.Context(), s, Request{Language: "클링온어", Difficulty: catalog.Beginner}, nil)
	require.ErrorIs(t, err, catalog.ErrUnknownPair)
	assert.Equal(t, PhaseIdle, s.Phase)
	assert.Zero(t, mock.CallCount())
}

func TestStepAPI_StaleResultsDropped(t *testing.T) {
	o, _, _ := newTestOrchestrator()
	s := NewSession()
	ctx := t.Context()

	require.NoError(t, o.Begin(ctx, s, englishBeginner()))
	call, more := o.NextCall(s)
	require.True(t, more)
	assert.Equal(t, prompt.Translation, call.Purpose)

	// Learner restarts before the first result arrives.
	require.NoError(t, o.Begin(ctx, s, Request{Language: catalog.Japanese, Difficulty: catalog.Advanced}))

	res := gateway.Result{Purpose: call.Purpose, Text: "old"}
	_, applied := o.Apply(ctx, s, call, res)
	assert.False(t, applied)
	assert.Empty(t, s.Sections)

	fresh, _ := o.NextCall(s)
	_, applied = o.Apply(ctx, s, fresh, gateway.Result{Purpose: fresh.Purpose, Text: "new"})
	assert.True(t, applied)
	require.Len(t, s.Sections, 1)
	assert.Equal(t, "new", s.Sections[0].Text)

	// A reset invalidates calls from before it as well.
	next, _ := o.NextCall(s)
	o.Reset(ctx, s)
	_, applied = o.Apply(ctx, s, next, gateway.Result{Purpose: next.Purpose, Text: "late"})
	assert.False(t, applied)
	assert.Empty(t, s.Sections)
}

func TestStepAPI_OnlyOneCallAtATime(t *testing.T) {
	o, _, _ := newTestOrchestrator()
	s := NewSession()
	require.NoError(t, o.Begin(t.Context(), s, englishBeginner()))

	first, _ := o.NextCall(s)
	again, _ := o.NextCall(s)
	assert.Equal(t, first, again, "next call must not advance until a result is applied")

	_, applied := o.Apply(t.Context(), s, PendingCall{SessionID: s.ID, Lesson: first.Lesson, Purpose: prompt.Grammar}, gateway.Result{Text: "x"})
	assert.False(t, applied, "out-of-order result must be rejected")
}

func TestAnswers(t *testing.T) {
	o, mock, _ := newTestOrchestrator()
	mock.Fallback = &llm.MockResponse{Text: "x"}
	s := NewSession()
	ctx := t.Context()

	err := o.Dispatch(ctx, s, AnswerChanged{Index: 0, Text: "fox"})
	require.ErrorIs(t, err, ErrNoLesson)

	require.NoError(t, o.Dispatch(ctx, s, StartLesson{Request: englishBeginner()}))
	require.NoError(t, o.Dispatch(ctx, s, AnswerChanged{Index: 0, Text: "fox"}))
	require.NoError(t, o.Dispatch(ctx, s, AnswerChanged{Index: 2, Text: "jumping"}))
	assert.Equal(t, PhaseAnswersCollected, s.Phase)
	assert.Equal(t, "fox", s.Quiz.Answer(0))
	assert.Equal(t, "", s.Quiz.Answer(1))

	for _, i := range []int{-1, 3, 10} {
		err := o.Dispatch(ctx, s, AnswerChanged{Index: i, Text: "x"})
		assert.ErrorIs(t, err, ErrQuestionIndex, "index %d", i)
	}
	assert.Equal(t, QuestionCount, s.Quiz.Len())
}

func TestSubmit(t *testing.T) {
	o, mock, rec := newTestOrchestrator(ok("t"), ok("v"), ok("g"), ok("p"), ok("c"), ok("잘했어요"))
	s := NewSession()
	ctx := t.Context()

	require.ErrorIs(t, o.Dispatch(ctx, s, SubmitAnswers{}), ErrNoLesson)

	require.NoError(t, o.Dispatch(ctx, s, StartLesson{Request: englishBeginner()}))
	require.NoError(t, o.Dispatch(ctx, s, AnswerChanged{Index: 0, Text: "여우"}))
	require.NoError(t, o.Dispatch(ctx, s, AnswerChanged{Index: 1, Text: "quick"}))
	require.NoError(t, o.Dispatch(ctx, s, SubmitAnswers{}))

	assert.Equal(t, PhaseEvaluated, s.Phase)
	assert.Equal(t, "잘했어요", s.Evaluation)

	want := "다음 문장에 대한 퀴즈 답변을 평가해주세요: 'The quick brown fox jumps over the lazy dog.'\n\n" +
		"질문 1: 이 문장에 나오는 동물은 무엇인가요?\n답변: 여우\n" +
		"질문 2: 문장에서 형용사를 찾아보세요.\n답변: quick\n" +
		"질문 3: 이 문장의 주요 주제는 무엇인가요?\n답변: " +
		"\n\n" + prompt.Directive
	assert.Equal(t, want, mock.Prompts()[5])

	assert.Equal(t, store.ActionEvaluate, rec.actions()[len(rec.events)-1])
}

func TestSubmit_FailureThenResubmit(t *testing.T) {
	o, mock, _ := newTestOrchestrator(ok("t"), ok("v"), ok("g"), ok("p"), ok("c"), fail("overloaded"), ok("좋아요"))
	s := NewSession()
	ctx := t.Context()

	require.NoError(t, o.StartLesson(ctx, s, englishBeginner(), nil))
	require.NoError(t, o.Submit(ctx, s))

	b, found := s.BannerFor(prompt.Evaluation)
	require.True(t, found)
	assert.Contains(t, b.Message, "overloaded")
	assert.Empty(t, s.Evaluation)
	assert.Len(t, s.Sections, 5)

	require.NoError(t, o.Dispatch(ctx, s, AnswerChanged{Index: 0, Text: "dog"}))
	assert.Equal(t, PhaseAnswersCollected, s.Phase)

	require.NoError(t, o.Submit(ctx, s))
	_, found = s.BannerFor(prompt.Evaluation)
	assert.False(t, found, "a successful resubmission clears the old banner")
	assert.Equal(t, "좋아요", s.Evaluation)
	assert.Equal(t, 7, mock.CallCount())
}

func TestSubmit_WhilePending(t *testing.T) {
	o, _, _ := newTestOrchestrator()
	s := NewSession()
	require.NoError(t, o.Begin(t.Context(), s, englishBeginner()))

	assert.ErrorIs(t, o.Submit(t.Context(), s), ErrLessonPending)
}

func TestNewLesson_ResetsToFreshSession(t *testing.T) {
	o, mock, rec := newTestOrchestrator(fail("x"))
	mock.Fallback = &llm.MockResponse{Text: "ok"}
	s := NewSession()
	ctx := t.Context()
	oldID := s.ID

	require.NoError(t, o.Dispatch(ctx, s, StartLesson{Request: englishBeginner()}))
	require.NoError(t, o.Dispatch(ctx, s, AnswerChanged{Index: 1, Text: "lazy"}))
	require.NoError(t, o.Dispatch(ctx, s, SubmitAnswers{}))
	require.NoError(t, o.Dispatch(ctx, s, NewLesson{}))

	assert.NotEqual(t, oldID, s.ID)

	fresh := NewSession()
	got := *s
	got.ID = ""
	fresh.ID = ""
	assert.Equal(t, *fresh, got)

	assert.Equal(t, PhaseIdle, s.Phase)
	for i, it := range s.Quiz.Items() {
		assert.Equal(t, Questions[i], it.Question)
		assert.Empty(t, it.Answer)
	}

	actions := rec.actions()
	assert.Equal(t, store.ActionReset, actions[len(actions)-1])
	assert.Equal(t, oldID, rec.events[len(rec.events)-1].SessionID)
}

func TestBegin_KeepsAnswers(t *testing.T) {
	o, mock, _ := newTestOrchestrator()
	mock.Fallback = &llm.MockResponse{Text: "ok"}
	s := NewSession()
	ctx := t.Context()

	require.NoError(t, o.StartLesson(ctx, s, englishBeginner(), nil))
	require.NoError(t, o.SetAnswer(ctx, s, 0, "fox"))
	require.NoError(t, o.Submit(ctx, s))

	require.NoError(t, o.StartLesson(ctx, s, Request{Language: catalog.Japanese, Difficulty: catalog.Beginner}, nil))
	assert.Equal(t, "fox", s.Quiz.Answer(0))
	assert.Empty(t, s.Evaluation)
	assert.Len(t, s.Sections, 5)
	assert.Equal(t, PhaseLessonDisplayed, s.Phase)
}

func TestRecorderFailureDoesNotBreakLesson(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.Fallback = &llm.MockResponse{Text: "ok"}
	rec := &fakeRecorder{err: errors.New("disk full")}
	o := New(catalog.Default(), gateway.New(mock, gateway.DefaultConfig()), rec)

	s := NewSession()
	require.NoError(t, o.StartLesson(t.Context(), s, englishBeginner(), nil))
	assert.Len(t, s.Sections, 5)
}

func TestNilRecorder(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.Fallback = &llm.MockResponse{Text: "ok"}
	o := New(catalog.Default(), gateway.New(mock, gateway.DefaultConfig()), nil)

	s := NewSession()
	require.NoError(t, o.StartLesson(t.Context(), s, englishBeginner(), nil))
	require.NoError(t, o.Submit(t.Context(), s))
	o.Reset(t.Context(), s)
}

func TestPhaseString(t *testing.T) {
	tests := map[Phase]string{
		PhaseIdle:             "idle",
		PhaseLessonDisplayed:  "lesson_displayed",
		PhaseAnswersCollected: "answers_collected",
		PhaseEvaluated:        "evaluated",
	}
	for p, want := range tests {
		if got := p.String(); got != want {
			t.Errorf("Phase(%d).String() = %q, want %q", int(p), got, want)
		}
	}
}
