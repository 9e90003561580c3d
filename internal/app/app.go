package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/lesson"
	"github.com/abhisek/lingua/internal/router"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/screens/history"
	"github.com/abhisek/lingua/internal/screens/home"
	lessonscreen "github.com/abhisek/lingua/internal/screens/lesson"
	"github.com/abhisek/lingua/internal/ui/layout"
)

// Options holds the dependencies the terminal UI runs on.
type Options struct {
	Orchestrator *lesson.Orchestrator

	// History is nil when no store is configured.
	History history.Repo

	// Model is shown in the header.
	Model string

	// Configured is false when no LLM credentials were found.
	Configured bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	model  string
	width  int
	height int
}

func newAppModel(ctx context.Context, opts Options) AppModel {
	newLesson := func() screen.Screen {
		return lessonscreen.New(ctx, opts.Orchestrator)
	}
	replay := func(req lesson.Request) screen.Screen {
		return lessonscreen.NewWithRequest(ctx, opts.Orchestrator, req)
	}

	homeScreen := home.New(home.Options{
		Ctx:        ctx,
		NewLesson:  newLesson,
		History:    opts.History,
		Replay:     replay,
		Configured: opts.Configured,
	})
	return AppModel{
		router: router.New(homeScreen),
		model:  opts.Model,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, m.router.Update(screen.SizeMsg{
			Width:  m.width,
			Height: layout.ContentHeight(m.height),
		})

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.model, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "종료"})
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "뒤로"},
			{Key: "Ctrl+C", Description: "종료"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "이동"},
		{Key: "Enter", Description: "선택"},
		{Key: "Ctrl+C", Description: "종료"},
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(ctx, opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}
