package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

type pressedMsg string

func TestMenu_NavigateAndActivate(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "a", Action: func() tea.Cmd { return func() tea.Msg { return pressedMsg("a") } }},
		{Label: "b", Disabled: true},
		{Label: "c", Action: func() tea.Cmd { return func() tea.Msg { return pressedMsg("c") } }},
	})

	m, _ = m.Update(key("down"))
	if m.Selected != 2 {
		t.Fatalf("expected disabled item to be skipped, selected=%d", m.Selected)
	}

	_, cmd := m.Update(key("enter"))
	if cmd == nil || cmd() != pressedMsg("c") {
		t.Fatal("expected enter to run the selected action")
	}

	m, cmd = m.Update(key("1"))
	if m.Selected != 0 || cmd == nil || cmd() != pressedMsg("a") {
		t.Fatal("expected number key to pick and run the first item")
	}

	if _, cmd := m.Update(key("2")); cmd != nil {
		t.Fatal("disabled item must not run")
	}
}

func TestSelect(t *testing.T) {
	s := NewSelect("난이도", []string{"초급", "중급", "고급"})

	s, _ = s.Update(key("right"))
	if s.Value() != "초급" {
		t.Fatalf("unfocused select must ignore keys, got %q", s.Value())
	}

	s.Focused = true
	s, _ = s.Update(key("right"))
	s, _ = s.Update(key("right"))
	s, _ = s.Update(key("right"))
	if s.Value() != "고급" {
		t.Fatalf("Value = %q, want 고급", s.Value())
	}
	s, _ = s.Update(key("left"))
	if s.Value() != "중급" {
		t.Fatalf("Value = %q, want 중급", s.Value())
	}

	if !s.SetValue("초급") || s.Selected != 0 {
		t.Fatal("SetValue should select an existing option")
	}
	if s.SetValue("전문가") {
		t.Fatal("SetValue should reject unknown options")
	}

	view := s.View()
	for _, want := range []string{"난이도", "초급", "중급", "고급"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestButton(t *testing.T) {
	b := NewButton("학습 시작", func() tea.Cmd { return func() tea.Msg { return pressedMsg("go") } })

	if _, cmd := b.Update(key("enter")); cmd != nil {
		t.Fatal("unfocused button must not fire")
	}
	b.Focused = true
	_, cmd := b.Update(key("enter"))
	if cmd == nil || cmd() != pressedMsg("go") {
		t.Fatal("focused button should fire on enter")
	}
	b.Disabled = true
	if _, cmd := b.Update(key("enter")); cmd != nil {
		t.Fatal("disabled button must not fire")
	}
}

func TestTextInput(t *testing.T) {
	ti := NewTextInput("답변 1", "", 0)

	ti, _ = ti.Update(key("x"))
	if ti.Value() != "" {
		t.Fatal("blurred input must ignore keys")
	}

	ti.Focus()
	for _, r := range "fox" {
		ti, _ = ti.Update(key(string(r)))
	}
	if ti.Value() != "fox" {
		t.Fatalf("Value = %q, want fox", ti.Value())
	}

	ti.Reset()
	if ti.Value() != "" {
		t.Fatal("Reset should clear the value")
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		done, total int
		want        float64
	}{
		{0, 5, 0},
		{2, 5, 0.4},
		{5, 5, 1},
		{7, 5, 1},
		{1, 0, 0},
	}
	for _, tt := range tests {
		p := NewProgressBar("", tt.done, tt.total, 30)
		if got := p.Fraction(); got != tt.want {
			t.Errorf("Fraction(%d/%d) = %v, want %v", tt.done, tt.total, got, tt.want)
		}
	}

	if !strings.Contains(NewProgressBar("섹션", 2, 5, 40).View(), "2/5") {
		t.Error("view should include the counter")
	}
}
