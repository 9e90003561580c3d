package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingua/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title   string
	initRan bool
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

func TestPush(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on pushed screen")
	}
}

func TestPop(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
	if r.Active().Title() != "first" {
		t.Errorf("expected active 'first', got %q", r.Active().Title())
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after pop at bottom, got %d", r.Depth())
	}
}

func TestReplace(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Replace(s2)

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after replace, got %d", r.Depth())
	}
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on replaced screen")
	}
}

func TestReplaceScreenMsg(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Update(ReplaceScreenMsg{Screen: s2})

	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run via ReplaceScreenMsg")
	}
}

func TestReplacePreservesStackDepth(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	s3 := &stubScreen{title: "third"}
	r.Replace(s3)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "third" {
		t.Errorf("expected active 'third', got %q", r.Active().Title())
	}
}

type echoMsg struct{}

// recordingScreen remembers the last message it saw.
type recordingScreen struct {
	stubScreen
	last tea.Msg
}

func (s *recordingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.last = msg
	return s, nil
}

func TestUpdateForwardsToActive(t *testing.T) {
	bottom := &recordingScreen{stubScreen: stubScreen{title: "bottom"}}
	top := &recordingScreen{stubScreen: stubScreen{title: "top"}}
	r := New(bottom)
	r.Push(top)

	r.Update(echoMsg{})

	if _, ok := top.last.(echoMsg); !ok {
		t.Error("expected active screen to receive the message")
	}
	if bottom.last != nil {
		t.Error("expected screens below the top to be left alone")
	}
}

func TestInitRunsInitialScreen(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)
	r.Init()

	if !s1.initRan {
		t.Error("expected Init() to run on the initial screen")
	}
}

func TestSizeReachesScreensAsTheyBecomeActive(t *testing.T) {
	bottom := &recordingScreen{stubScreen: stubScreen{title: "bottom"}}
	r := New(bottom)

	size := screen.SizeMsg{Width: 80, Height: 24}
	r.Update(size)
	if bottom.last != size {
		t.Fatalf("expected active screen to get %v, got %v", size, bottom.last)
	}

	pushed := &recordingScreen{stubScreen: stubScreen{title: "pushed"}}
	r.Push(pushed)
	if pushed.last != size {
		t.Errorf("expected pushed screen to get %v, got %v", size, pushed.last)
	}

	replaced := &recordingScreen{stubScreen: stubScreen{title: "replaced"}}
	r.Replace(replaced)
	if replaced.last != size {
		t.Errorf("expected replacement to get %v, got %v", size, replaced.last)
	}

	bottom.last = nil
	r.Pop()
	if bottom.last != size {
		t.Errorf("expected screen revealed by pop to get %v, got %v", size, bottom.last)
	}
}

func TestNoSizeBeforeFirstResize(t *testing.T) {
	r := New(&stubScreen{title: "first"})
	pushed := &recordingScreen{stubScreen: stubScreen{title: "pushed"}}
	r.Push(pushed)

	if pushed.last != nil {
		t.Errorf("expected no message before the first resize, got %v", pushed.last)
	}
}
