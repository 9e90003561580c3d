// Package lesson drives one learner's session: it resolves the sentence,
// issues the section calls one after another, collects quiz answers and
// asks for an evaluation. It is shared by every UI host.
package lesson

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/lingua/internal/catalog"
	"github.com/abhisek/lingua/internal/gateway"
	"github.com/abhisek/lingua/internal/logging"
	"github.com/abhisek/lingua/internal/prompt"
	"github.com/abhisek/lingua/internal/store"
)

// Caller performs one model call. *gateway.Gateway implements it.
type Caller interface {
	Call(ctx context.Context, purpose prompt.Purpose, text string) gateway.Result
}

// EventRecorder persists lesson transitions. store.EventRepo implements it.
type EventRecorder interface {
	AppendLessonEvent(ctx context.Context, data store.LessonEventData) error
}

// Event is something a UI host reports to the orchestrator.
type Event interface {
	isEvent()
}

// StartLesson is the "학습 시작" action.
type StartLesson struct {
	Request Request
}

// AnswerChanged is an edit to one quiz answer field.
type AnswerChanged struct {
	Index int
	Text  string
}

// SubmitAnswers is the "답변 제출" action.
type SubmitAnswers struct{}

// NewLesson is the "새로운 학습 시작" action.
type NewLesson struct{}

func (StartLesson) isEvent()   {}
func (AnswerChanged) isEvent() {}
func (SubmitAnswers) isEvent() {}
func (NewLesson) isEvent()     {}

// PendingCall is a prepared model call. It is tied to the lesson it was
// prepared for and is ignored if that lesson has been superseded.
type PendingCall struct {
	SessionID string
	Lesson    int
	Purpose   prompt.Purpose
	Prompt    string
}

// Outcome describes what one applied call changed.
type Outcome struct {
	Purpose prompt.Purpose
	Section *Section
	Banner  *Banner
	// Done is set once the last section call of the lesson was applied.
	Done bool
}

// Orchestrator applies events to sessions. It holds no per-session state
// and is safe to share; a single Session must not be used concurrently.
type Orchestrator struct {
	catalog *catalog.Catalog
	caller  Caller
	rec     EventRecorder
}

// New creates an Orchestrator. rec may be nil.
func New(cat *catalog.Catalog, caller Caller, rec EventRecorder) *Orchestrator {
	return &Orchestrator{catalog: cat, caller: caller, rec: rec}
}

// Catalog returns the catalog lessons are resolved against.
func (o *Orchestrator) Catalog() *catalog.Catalog {
	return o.catalog
}

// Dispatch applies ev to s, running any model calls it needs to
// completion.
func (o *Orchestrator) Dispatch(ctx context.Context, s *Session, ev Event) error {
	switch ev := ev.(type) {
	case StartLesson:
		return o.StartLesson(ctx, s, ev.Request, nil)
	case AnswerChanged:
		return o.SetAnswer(ctx, s, ev.Index, ev.Text)
	case SubmitAnswers:
		return o.Submit(ctx, s)
	case NewLesson:
		o.Reset(ctx, s)
		return nil
	}
	return fmt.Errorf("unsupported event %T", ev)
}

// StartLesson begins a lesson and issues all five section calls in order.
// observe, if set, sees each outcome as soon as it is applied.
func (o *Orchestrator) StartLesson(ctx context.Context, s *Session, req Request, observe func(Outcome)) error {
	if err := o.Begin(ctx, s, req); err != nil {
		return err
	}
	for {
		out, ok := o.NextSection(ctx, s)
		if !ok {
			return nil
		}
		if observe != nil {
			observe(out)
		}
	}
}

// Begin resolves the sentence and clears the previous lesson's output.
// Quiz answers are kept. No model call is made; use NextCall or
// NextSection to drive the sections.
func (o *Orchestrator) Begin(ctx context.Context, s *Session, req Request) error {
	sentence, err := o.catalog.Resolve(req.Language, req.Difficulty, req.CustomText)
	if err != nil {
		return fmt.Errorf("resolve sentence: %w", err)
	}

	s.Request = req
	s.Sentence = sentence
	s.Sections = nil
	s.Banners = nil
	s.Evaluation = ""
	s.next = 0
	s.lesson++
	s.Phase = PhaseLessonDisplayed

	o.log(ctx, s).WithFields(logrus.Fields{
		"language":   req.Language,
		"difficulty": req.Difficulty,
		"custom":     req.Custom(),
	}).Info("lesson started")
	o.record(ctx, s, store.ActionStart, "", true, "")
	return nil
}

// NextCall prepares the next section call, if any remain.
func (o *Orchestrator) NextCall(s *Session) (PendingCall, bool) {
	if !s.Pending() {
		return PendingCall{}, false
	}
	purpose := prompt.Sections[s.next]
	return PendingCall{
		SessionID: s.ID,
		Lesson:    s.lesson,
		Purpose:   purpose,
		Prompt: prompt.Build(purpose, prompt.Input{
			Language:   string(s.Request.Language),
			Difficulty: string(s.Request.Difficulty),
			Sentence:   s.Sentence,
		}),
	}, true
}

// Call runs a prepared call. It touches no session state and may run on
// another goroutine.
func (o *Orchestrator) Call(ctx context.Context, call PendingCall) gateway.Result {
	ctx = logging.WithSessionID(ctx, call.SessionID)
	return o.caller.Call(ctx, call.Purpose, call.Prompt)
}

// Apply folds a call's result into s. It reports false when the call
// belongs to a lesson that has since been restarted or reset.
func (o *Orchestrator) Apply(ctx context.Context, s *Session, call PendingCall, res gateway.Result) (Outcome, bool) {
	if call.SessionID != s.ID || call.Lesson != s.lesson {
		o.log(ctx, s).WithField("purpose", call.Purpose).Debug("dropping stale result")
		return Outcome{}, false
	}
	if call.Purpose == prompt.Evaluation {
		return o.applyEvaluation(ctx, s, res), true
	}
	if !s.Pending() || prompt.Sections[s.next] != call.Purpose {
		return Outcome{}, false
	}

	out := Outcome{Purpose: call.Purpose}
	switch {
	case !res.OK():
		b := Banner{Purpose: call.Purpose, Message: res.Failure.Notice()}
		s.Banners = append(s.Banners, b)
		out.Banner = &b
		o.record(ctx, s, store.ActionSection, call.Purpose, false, res.Failure.Err.Error())
	case res.Present():
		sec := Section{Purpose: call.Purpose, Title: prompt.Title(call.Purpose), Text: res.Text}
		s.Sections = append(s.Sections, sec)
		out.Section = &sec
		o.record(ctx, s, store.ActionSection, call.Purpose, true, "")
	default:
		o.record(ctx, s, store.ActionSection, call.Purpose, true, store.DetailEmptyResponse)
	}

	s.next++
	out.Done = !s.Pending()
	return out, true
}

// NextSection issues and applies the next section call. It reports false
// when no section calls remain.
func (o *Orchestrator) NextSection(ctx context.Context, s *Session) (Outcome, bool) {
	call, ok := o.NextCall(s)
	if !ok {
		return Outcome{}, false
	}
	return o.Apply(ctx, s, call, o.Call(ctx, call))
}

// SetAnswer stores the answer for question i.
func (o *Orchestrator) SetAnswer(_ context.Context, s *Session, i int, text string) error {
	if !s.Started() {
		return ErrNoLesson
	}
	if err := s.Quiz.SetAnswer(i, text); err != nil {
		return err
	}
	s.Phase = PhaseAnswersCollected
	return nil
}

// EvaluationCall prepares the quiz evaluation call.
func (o *Orchestrator) EvaluationCall(s *Session) (PendingCall, error) {
	if !s.Started() {
		return PendingCall{}, ErrNoLesson
	}
	if s.Pending() {
		return PendingCall{}, ErrLessonPending
	}
	return PendingCall{
		SessionID: s.ID,
		Lesson:    s.lesson,
		Purpose:   prompt.Evaluation,
		Prompt:    prompt.BuildEvaluation(s.Sentence, s.Quiz.pairs()),
	}, nil
}

// Submit sends the answers for evaluation. It may be called again after
// an evaluation to re-grade edited answers.
func (o *Orchestrator) Submit(ctx context.Context, s *Session) error {
	call, err := o.EvaluationCall(s)
	if err != nil {
		return err
	}
	o.Apply(ctx, s, call, o.Call(ctx, call))
	return nil
}

func (o *Orchestrator) applyEvaluation(ctx context.Context, s *Session, res gateway.Result) Outcome {
	s.dropBanners(prompt.Evaluation)
	s.Evaluation = ""
	s.Phase = PhaseEvaluated

	out := Outcome{Purpose: prompt.Evaluation, Done: true}
	if !res.OK() {
		b := Banner{Purpose: prompt.Evaluation, Message: res.Failure.Notice()}
		s.Banners = append(s.Banners, b)
		out.Banner = &b
		o.record(ctx, s, store.ActionEvaluate, prompt.Evaluation, false, res.Failure.Err.Error())
		return out
	}

	s.Evaluation = res.Text
	if res.Present() {
		out.Section = &Section{Purpose: prompt.Evaluation, Title: prompt.Title(prompt.Evaluation), Text: res.Text}
	}
	o.record(ctx, s, store.ActionEvaluate, prompt.Evaluation, true, "")
	return out
}

// Reset discards the session's lesson and gives it a new id.
func (o *Orchestrator) Reset(ctx context.Context, s *Session) {
	if s.Started() {
		o.record(ctx, s, store.ActionReset, "", true, "")
	}
	old := s.ID
	s.Reset()
	o.log(ctx, s).WithField("previous_session", old).Info("session reset")
}

func (o *Orchestrator) log(ctx context.Context, s *Session) logrus.FieldLogger {
	return logging.WithContext(logging.WithSessionID(ctx, s.ID))
}

func (o *Orchestrator) record(ctx context.Context, s *Session, action store.LessonAction, purpose prompt.Purpose, ok bool, detail string) {
	if o.rec == nil {
		return
	}
	err := o.rec.AppendLessonEvent(context.WithoutCancel(ctx), store.LessonEventData{
		SessionID:  s.ID,
		Action:     action,
		Language:   string(s.Request.Language),
		Difficulty: string(s.Request.Difficulty),
		Sentence:   s.Sentence,
		Custom:     s.Request.Custom(),
		Purpose:    string(purpose),
		Success:    ok,
		Detail:     detail,
	})
	if err != nil {
		o.log(ctx, s).WithError(err).WithField("action", action).Warn("failed to record lesson event")
	}
}
