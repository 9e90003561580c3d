package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingua/internal/catalog"
	"github.com/abhisek/lingua/internal/gateway"
	"github.com/abhisek/lingua/internal/lesson"
	"github.com/abhisek/lingua/internal/llm"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/ui/layout"
)

func testModel(t *testing.T) AppModel {
	t.Helper()
	orch := lesson.New(catalog.Default(), gateway.New(llm.NewMockProvider(), gateway.DefaultConfig()), nil)
	return newAppModel(t.Context(), Options{Orchestrator: orch, Model: "mock", Configured: true})
}

func update(m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(AppModel), cmd
}

func TestApp_NavigatesToLessonAndBack(t *testing.T) {
	m := testModel(t)
	m, _ = update(m, tea.WindowSizeMsg{Width: 100, Height: 40})

	_, cmd := update(m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected menu command")
	}
	m, _ = update(m, cmd())
	if m.router.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", m.router.Depth())
	}
	if got := m.router.Active().Title(); got != "학습 설정" {
		t.Errorf("active = %q", got)
	}

	content := m.render()
	for _, want := range []string{layout.AppName, "학습할 언어를 선택하세요:", "◆ mock"} {
		if !strings.Contains(content, want) {
			t.Errorf("view missing %q", want)
		}
	}

	_, cmd = update(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	m, _ = update(m, cmd())
	if m.router.Depth() != 1 {
		t.Errorf("depth = %d after esc, want 1", m.router.Depth())
	}
}

func TestApp_TooSmall(t *testing.T) {
	m := testModel(t)
	m, _ = update(m, tea.WindowSizeMsg{Width: 30, Height: 10})
	if !strings.Contains(m.render(), "터미널 창이 너무 작습니다") {
		t.Error("expected size warning")
	}
}

// sizeRecorder is a screen that remembers the last size it was given.
type sizeRecorder struct {
	size screen.SizeMsg
}

func (s *sizeRecorder) Init() tea.Cmd { return nil }
func (s *sizeRecorder) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if size, ok := msg.(screen.SizeMsg); ok {
		s.size = size
	}
	return s, nil
}
func (s *sizeRecorder) View(int, int) string { return "" }
func (s *sizeRecorder) Title() string        { return "size" }

func TestApp_ResizeReachesScreens(t *testing.T) {
	m := testModel(t)
	rec := &sizeRecorder{}
	m.router.Push(rec)

	m, _ = update(m, tea.WindowSizeMsg{Width: 100, Height: 40})

	want := screen.SizeMsg{Width: 100, Height: layout.ContentHeight(40)}
	if rec.size != want {
		t.Errorf("size = %+v, want %+v", rec.size, want)
	}
}
