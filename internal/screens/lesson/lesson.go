package lesson

import (
	"context"
	"errors"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingua/internal/catalog"
	"github.com/abhisek/lingua/internal/lesson"
	"github.com/abhisek/lingua/internal/prompt"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/ui/components"
	"github.com/abhisek/lingua/internal/ui/layout"
)

type mode int

const (
	modeForm mode = iota
	modeLesson
)

// Form focus order.
const (
	focusLanguage = iota
	focusDifficulty
	focusCustom
	focusStart
	formFocusCount
)

// Lesson focus order: the answer fields come first.
const (
	focusSubmit = lesson.QuestionCount + iota
	focusNew
	lessonFocusCount
)

const scrollStep = 5

// LessonScreen hosts one learner session: the request form, the lesson as
// it arrives, and the quiz.
type LessonScreen struct {
	ctx  context.Context
	orch *lesson.Orchestrator
	sess *lesson.Session

	mode mode

	language   components.Select
	difficulty components.Select
	custom     components.TextInput
	start      components.Button
	formFocus  int

	answers     [lesson.QuestionCount]components.TextInput
	submit      components.Button
	newLesson   components.Button
	lessonFocus int

	spinner  spinner.Model
	inFlight *lesson.PendingCall
	width    int
	height   int
	scroll   int
	follow   bool // stick to the bottom
	reveal   bool // scroll the focused widget into view
	notice   string
}

var _ screen.Screen = (*LessonScreen)(nil)
var _ screen.KeyHintProvider = (*LessonScreen)(nil)

// New creates a LessonScreen with an empty form.
func New(ctx context.Context, orch *lesson.Orchestrator) *LessonScreen {
	s := &LessonScreen{
		ctx:     ctx,
		orch:    orch,
		sess:    lesson.NewSession(),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}

	langs := orch.Catalog().Languages()
	langOpts := make([]string, len(langs))
	for i, l := range langs {
		langOpts[i] = string(l)
	}
	diffs := catalog.Difficulties()
	diffOpts := make([]string, len(diffs))
	for i, d := range diffs {
		diffOpts[i] = string(d)
	}

	s.language = components.NewSelect("학습할 언어를 선택하세요:", langOpts)
	s.difficulty = components.NewSelect("난이도를 선택하세요:", diffOpts)
	s.custom = components.NewTextInput("직접 문장을 입력하세요 (선택사항):", "", 500)
	s.start = components.NewButton("학습 시작", s.startLesson)

	for i := range s.answers {
		s.answers[i] = components.NewTextInput(answerLabel(i), "", 500)
	}
	s.submit = components.NewButton("답변 제출", s.submitAnswers)
	s.newLesson = components.NewButton("새로운 학습 시작", s.resetLesson)

	s.setFormFocus(focusLanguage)
	return s
}

// NewWithRequest creates a LessonScreen with the form filled in from req.
func NewWithRequest(ctx context.Context, orch *lesson.Orchestrator, req lesson.Request) *LessonScreen {
	s := New(ctx, orch)
	s.language.SetValue(string(req.Language))
	s.difficulty.SetValue(string(req.Difficulty))
	s.custom.SetValue(req.CustomText)
	return s
}

// Session exposes the underlying session state.
func (s *LessonScreen) Session() *lesson.Session {
	return s.sess
}

func (s *LessonScreen) Init() tea.Cmd {
	return nil
}

func (s *LessonScreen) Title() string {
	if s.mode == modeLesson && s.sess.Started() {
		return string(s.sess.Request.Language) + " - " + string(s.sess.Request.Difficulty) + " 레벨 학습"
	}
	return "학습 설정"
}

func (s *LessonScreen) KeyHints() []layout.KeyHint {
	if s.mode == modeForm {
		return []layout.KeyHint{
			{Key: "Tab", Description: "이동"},
			{Key: "←→", Description: "선택"},
			{Key: "Enter", Description: "학습 시작"},
			{Key: "Esc", Description: "뒤로"},
		}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "이동"},
		{Key: "PgUp/PgDn", Description: "스크롤"},
		{Key: "Enter", Description: "실행"},
		{Key: "Esc", Description: "뒤로"},
	}
}

func (s *LessonScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	next, cmd := s.update(msg)
	s.relayout()
	return next, cmd
}

func (s *LessonScreen) update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.SizeMsg:
		s.width, s.height = msg.Width, msg.Height
		return s, nil

	case callDoneMsg:
		return s.handleCallDone(msg)

	case spinner.TickMsg:
		if s.inFlight == nil {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		if s.mode == modeForm {
			return s.handleFormKey(msg)
		}
		return s.handleLessonKey(msg)
	}

	// Cursor blink and similar messages go to the focused field.
	return s, s.forwardToFocused(msg)
}

func (s *LessonScreen) handleFormKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		return s, s.setFormFocus((s.formFocus + 1) % formFocusCount)
	case "shift+tab", "up":
		return s, s.setFormFocus((s.formFocus + formFocusCount - 1) % formFocusCount)
	case "enter":
		if s.formFocus != focusStart {
			return s, s.startLesson()
		}
	}

	var cmd tea.Cmd
	switch s.formFocus {
	case focusLanguage:
		s.language, cmd = s.language.Update(msg)
	case focusDifficulty:
		s.difficulty, cmd = s.difficulty.Update(msg)
	case focusCustom:
		s.custom, cmd = s.custom.Update(msg)
	case focusStart:
		s.start, cmd = s.start.Update(msg)
	}
	return s, cmd
}

func (s *LessonScreen) handleLessonKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		return s, s.setLessonFocus((s.lessonFocus + 1) % lessonFocusCount)
	case "shift+tab", "up":
		return s, s.setLessonFocus((s.lessonFocus + lessonFocusCount - 1) % lessonFocusCount)
	case "pgup":
		s.scroll -= scrollStep
		s.follow = false
		return s, nil
	case "pgdown":
		s.scroll += scrollStep
		s.follow = false
		return s, nil
	case "enter":
		if s.lessonFocus < lesson.QuestionCount {
			return s, s.setLessonFocus(s.lessonFocus + 1)
		}
	}

	switch {
	case s.lessonFocus < lesson.QuestionCount:
		i := s.lessonFocus
		before := s.answers[i].Value()
		var cmd tea.Cmd
		s.answers[i], cmd = s.answers[i].Update(msg)
		if after := s.answers[i].Value(); after != before {
			if err := s.orch.SetAnswer(s.ctx, s.sess, i, after); err != nil {
				s.notice = err.Error()
			}
		}
		return s, cmd
	case s.lessonFocus == focusSubmit:
		var cmd tea.Cmd
		s.submit, cmd = s.submit.Update(msg)
		return s, cmd
	default:
		var cmd tea.Cmd
		s.newLesson, cmd = s.newLesson.Update(msg)
		return s, cmd
	}
}

func (s *LessonScreen) forwardToFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if s.mode == modeForm {
		if s.formFocus == focusCustom {
			s.custom, cmd = s.custom.Update(msg)
		}
		return cmd
	}
	if s.lessonFocus < lesson.QuestionCount {
		s.answers[s.lessonFocus], cmd = s.answers[s.lessonFocus].Update(msg)
	}
	return cmd
}

func (s *LessonScreen) setFormFocus(f int) tea.Cmd {
	s.formFocus = f
	s.language.Focused = f == focusLanguage
	s.difficulty.Focused = f == focusDifficulty
	s.start.Focused = f == focusStart
	if f == focusCustom {
		return s.custom.Focus()
	}
	s.custom.Blur()
	return nil
}

func (s *LessonScreen) setLessonFocus(f int) tea.Cmd {
	s.lessonFocus = f
	s.reveal = true
	s.follow = false
	s.submit.Focused = f == focusSubmit
	s.newLesson.Focused = f == focusNew

	var cmd tea.Cmd
	for i := range s.answers {
		if i == f {
			cmd = s.answers[i].Focus()
		} else {
			s.answers[i].Blur()
		}
	}
	return cmd
}

// request reads the form.
func (s *LessonScreen) request() lesson.Request {
	return lesson.Request{
		Language:   catalog.Language(s.language.Value()),
		Difficulty: catalog.Difficulty(s.difficulty.Value()),
		CustomText: s.custom.Value(),
	}
}

func (s *LessonScreen) startLesson() tea.Cmd {
	if err := s.orch.Begin(s.ctx, s.sess, s.request()); err != nil {
		s.notice = err.Error()
		return nil
	}
	s.notice = ""
	s.mode = modeLesson
	s.scroll = 0
	s.follow = false
	s.syncAnswers()
	focus := s.setLessonFocus(0)
	s.reveal = false
	return tea.Batch(focus, s.issue(s.orch.NextCall(s.sess)))
}

func (s *LessonScreen) submitAnswers() tea.Cmd {
	if s.inFlight != nil {
		s.notice = "응답을 기다리는 중입니다."
		return nil
	}
	call, err := s.orch.EvaluationCall(s.sess)
	if err != nil {
		if errors.Is(err, lesson.ErrLessonPending) {
			s.notice = "수업 내용을 불러오는 중입니다."
		} else {
			s.notice = err.Error()
		}
		return nil
	}
	s.notice = ""
	s.follow = true
	return s.issue(call, true)
}

func (s *LessonScreen) resetLesson() tea.Cmd {
	s.orch.Reset(s.ctx, s.sess)
	s.inFlight = nil
	s.notice = ""
	s.scroll = 0
	s.mode = modeForm
	for i := range s.answers {
		s.answers[i].Reset()
	}
	s.custom.Reset()
	s.language.Selected = 0
	s.difficulty.Selected = 0
	return s.setFormFocus(focusLanguage)
}

// issue runs call in the background. Only one call is in flight at a time;
// the next one is issued when this one's result arrives.
func (s *LessonScreen) issue(call lesson.PendingCall, ok bool) tea.Cmd {
	if !ok {
		return nil
	}
	s.inFlight = &call
	ctx, orch := s.ctx, s.orch
	run := func() tea.Msg {
		return callDoneMsg{Call: call, Result: orch.Call(ctx, call)}
	}
	return tea.Batch(run, s.spinner.Tick)
}

func (s *LessonScreen) handleCallDone(msg callDoneMsg) (screen.Screen, tea.Cmd) {
	if s.inFlight == nil || s.inFlight.SessionID != msg.Call.SessionID || s.inFlight.Lesson != msg.Call.Lesson || s.inFlight.Purpose != msg.Call.Purpose {
		return s, nil
	}
	s.inFlight = nil

	if _, applied := s.orch.Apply(s.ctx, s.sess, msg.Call, msg.Result); !applied {
		return s, nil
	}
	if msg.Call.Purpose == prompt.Evaluation {
		return s, nil
	}
	return s, s.issue(s.orch.NextCall(s.sess))
}

// syncAnswers copies the session's stored answers into the fields.
func (s *LessonScreen) syncAnswers() {
	for i := range s.answers {
		if v := s.sess.Quiz.Answer(i); v != s.answers[i].Value() {
			s.answers[i].SetValue(v)
		}
	}
}
