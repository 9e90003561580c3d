// Package screen defines what the router stacks: home, lesson, history.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingua/internal/ui/layout"
)

// Screen is one page of the terminal UI.
type Screen interface {
	// Init runs when the screen is pushed, e.g. to start an async load.
	Init() tea.Cmd

	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the body between header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// SizeMsg carries the size of the content area between header and footer.
// The router sends it to the active screen on resize and whenever a screen
// becomes active, so screens can lay themselves out in Update.
type SizeMsg struct {
	Width  int
	Height int
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}
