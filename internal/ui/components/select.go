package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingua/internal/ui/theme"
)

// Select is a single-choice radio row.
type Select struct {
	Label    string
	Options  []string
	Selected int
	Focused  bool
}

// NewSelect creates a selector with the first option chosen.
func NewSelect(label string, options []string) Select {
	return Select{Label: label, Options: options}
}

// Update moves the choice with the arrow keys while focused.
func (s Select) Update(msg tea.Msg) (Select, tea.Cmd) {
	if !s.Focused {
		return s, nil
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "left", "h":
		if s.Selected > 0 {
			s.Selected--
		}
	case "right", "l":
		if s.Selected < len(s.Options)-1 {
			s.Selected++
		}
	}
	return s, nil
}

// Value returns the chosen option, or "" when there are none.
func (s Select) Value() string {
	if s.Selected < 0 || s.Selected >= len(s.Options) {
		return ""
	}
	return s.Options[s.Selected]
}

// SetValue selects the option equal to v. It reports whether v was found.
func (s *Select) SetValue(v string) bool {
	for i, opt := range s.Options {
		if opt == v {
			s.Selected = i
			return true
		}
	}
	return false
}

// View renders the label above the options.
func (s Select) View() string {
	var b strings.Builder
	b.WriteString(theme.Label.Render(s.Label))
	b.WriteString("\n")

	parts := make([]string, len(s.Options))
	for i, opt := range s.Options {
		mark := "○ "
		style := theme.Unselected
		if i == s.Selected {
			mark = "● "
			if s.Focused {
				style = theme.Selected
			}
		}
		parts[i] = style.Render(mark + opt)
	}

	prefix := "  "
	if s.Focused {
		prefix = theme.Selected.Render("▸ ")
	}
	b.WriteString(prefix + strings.Join(parts, "   "))
	return b.String()
}
