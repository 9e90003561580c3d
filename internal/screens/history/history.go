package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/catalog"
	"github.com/abhisek/lingua/internal/lesson"
	"github.com/abhisek/lingua/internal/prompt"
	"github.com/abhisek/lingua/internal/router"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/store"
	"github.com/abhisek/lingua/internal/ui/layout"
	"github.com/abhisek/lingua/internal/ui/theme"
)

const historyLimit = 50

// Repo is the slice of store.EventRepo the screen reads from.
type Repo interface {
	LessonHistory(ctx context.Context, limit int) ([]store.LessonSummary, error)
}

// ReplayFunc builds a screen that repeats a past lesson.
type ReplayFunc func(req lesson.Request) screen.Screen

type historyLoadedMsg struct {
	Lessons []store.LessonSummary
	Err     error
}

// HistoryScreen lists past lessons, newest first.
type HistoryScreen struct {
	ctx      context.Context
	repo     Repo
	replay   ReplayFunc
	lessons  []store.LessonSummary
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen. replay may be nil.
func New(ctx context.Context, repo Repo, replay ReplayFunc) *HistoryScreen {
	return &HistoryScreen{
		ctx:      ctx,
		repo:     repo,
		replay:   replay,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	ctx, repo := s.ctx, s.repo
	return func() tea.Msg {
		lessons, err := repo.LessonHistory(ctx, historyLimit)
		return historyLoadedMsg{Lessons: lessons, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "학습 기록"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "자세히"},
		{Key: "↑↓", Description: "이동"},
	}
	if s.replay != nil {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "다시 학습"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "뒤로"})
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.lessons = msg.Lessons
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.lessons)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		case "r":
			return s, s.replaySelected()
		}
	}
	return s, nil
}

func (s *HistoryScreen) replaySelected() tea.Cmd {
	if s.replay == nil || s.selected >= len(s.lessons) {
		return nil
	}
	l := s.lessons[s.selected]
	req := lesson.Request{
		Language:   catalog.Language(l.Language),
		Difficulty: catalog.Difficulty(l.Difficulty),
	}
	if l.Custom {
		req.CustomText = l.Sentence
	}
	next := s.replay(req)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render("\n\n오류: " + s.errMsg)
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  기록을 불러오는 중...")
	}
	if len(s.lessons) == 0 {
		return center.Foreground(theme.TextDim).Italic(true).
			Render("\n\n  아직 학습 기록이 없습니다. 첫 학습을 시작해 보세요!")
	}

	var b strings.Builder
	b.WriteString("\n")
	selectedLine := 0

	for i, l := range s.lessons {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
			selectedLine = strings.Count(b.String(), "\n")
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(prefix+summaryLine(l))))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
				Render("    원문: " + l.Sentence)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, detail))
			b.WriteString("\n")
		}
	}

	offset := max(selectedLine-height+2, 0)
	view, _ := layout.Window(b.String(), offset, height)
	return view
}

func summaryLine(l store.LessonSummary) string {
	status := "평가 전"
	if l.Evaluated {
		status = "평가 완료"
	}
	custom := ""
	if l.Custom {
		custom = " (직접 입력)"
	}
	line := fmt.Sprintf("%s  %s · %s%s  섹션 %d/%d  %s",
		l.StartedAt.Local().Format("2006-01-02 15:04"),
		l.Language, l.Difficulty, custom,
		l.Sections, len(prompt.Sections), status)
	if l.Failures > 0 {
		line += fmt.Sprintf("  오류 %d", l.Failures)
	}
	return line
}
