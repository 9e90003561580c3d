package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingua/internal/router"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/screens/history"
	"github.com/abhisek/lingua/internal/screens/placeholder"
	"github.com/abhisek/lingua/internal/store"
	"github.com/abhisek/lingua/internal/ui/components"
)

// Options wires the home screen to the rest of the app.
type Options struct {
	Ctx context.Context

	// NewLesson builds a fresh lesson screen.
	NewLesson func() screen.Screen

	// History is nil when no store is configured.
	History history.Repo

	// Replay builds a lesson screen for a past lesson.
	Replay history.ReplayFunc

	// Configured is false when no LLM credentials were found.
	Configured bool
}

type lessonStats struct {
	loaded    bool
	lessons   int
	evaluated int
}

type statsLoadedMsg struct {
	Lessons []store.LessonSummary
}

// HomeScreen is the main menu.
type HomeScreen struct {
	opts       Options
	menu       components.Menu
	menuLabels []string
	stats      lessonStats
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(opts Options) *HomeScreen {
	if opts.Ctx == nil {
		opts.Ctx = context.Background()
	}

	menuLabels := []string{"학습 시작", "학습 기록", "종료"}

	items := []components.MenuItem{
		{Label: menuLabels[0], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: opts.NewLesson()}
			}
		}},
		{Label: menuLabels[1], Action: func() tea.Cmd {
			if opts.History == nil {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: placeholder.NewWithMessage("학습 기록", "기록 저장소가 설정되지 않았습니다.")}
				}
			}
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(opts.Ctx, opts.History, opts.Replay)}
			}
		}},
		{Label: menuLabels[2], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		opts:       opts,
		menu:       components.NewMenu(items),
		menuLabels: menuLabels,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	if h.opts.History == nil {
		return nil
	}
	ctx, repo := h.opts.Ctx, h.opts.History
	return func() tea.Msg {
		lessons, err := repo.LessonHistory(ctx, 0)
		if err != nil {
			return nil
		}
		return statsLoadedMsg{Lessons: lessons}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(statsLoadedMsg); ok {
		h.stats = lessonStats{loaded: true, lessons: len(msg.Lessons)}
		for _, l := range msg.Lessons {
			if l.Evaluated {
				h.stats.evaluated++
			}
		}
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := height < 24 || width < 70
	cw := components.ContentWidth(width)

	sections := []string{renderTitle(cw, compact)}
	if !h.opts.Configured {
		sections = append(sections, renderLLMBanner(cw))
	}
	if h.opts.History != nil {
		sections = append(sections, renderStatsBar(h.stats, cw))
	}
	sections = append(sections, renderMenu(h.menuLabels, h.menu.Selected, cw))

	return components.Center(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "홈"
}
