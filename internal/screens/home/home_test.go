package home

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingua/internal/router"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/screens/placeholder"
	"github.com/abhisek/lingua/internal/store"
)

type fakeHistory struct {
	lessons []store.LessonSummary
}

func (f fakeHistory) LessonHistory(context.Context, int) ([]store.LessonSummary, error) {
	return f.lessons, nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestHome_StartPushesLesson(t *testing.T) {
	h := New(Options{
		Ctx:        t.Context(),
		NewLesson:  func() screen.Screen { return placeholder.New("lesson") },
		Configured: true,
	})

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg")
	}
	if push.Screen.Title() != "lesson" {
		t.Errorf("pushed %q", push.Screen.Title())
	}
}

func TestHome_HistoryWithoutStore(t *testing.T) {
	h := New(Options{Ctx: t.Context(), NewLesson: func() screen.Screen { return nil }})

	_, cmd := h.Update(keyPress('2'))
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if push.Screen.Title() != "학습 기록" {
		t.Errorf("Title = %q", push.Screen.Title())
	}
	if !strings.Contains(push.Screen.View(80, 10), "설정되지 않았습니다") {
		t.Error("expected placeholder notice")
	}
}

func TestHome_Stats(t *testing.T) {
	repo := fakeHistory{lessons: []store.LessonSummary{{Evaluated: true}, {}, {Evaluated: true}}}
	h := New(Options{Ctx: t.Context(), History: repo, Configured: true})

	h.Update(h.Init()())
	view := h.View(100, 40)
	if !strings.Contains(view, "학습 3회") || !strings.Contains(view, "평가 2회") {
		t.Errorf("stats missing from view:\n%s", view)
	}
	if strings.Contains(view, "ANTHROPIC_API_KEY") {
		t.Error("configured app must not show the key warning")
	}
}

func TestHome_WarnsWithoutCredentials(t *testing.T) {
	h := New(Options{Ctx: t.Context()})
	if !strings.Contains(h.View(100, 40), "ANTHROPIC_API_KEY") {
		t.Error("expected key warning")
	}
}
