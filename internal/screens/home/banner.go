package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/ui/layout"
	"github.com/abhisek/lingua/internal/ui/theme"
)

const titleFull = ` ██╗     ██╗███╗   ██╗ ██████╗ ██╗   ██╗ █████╗
 ██║     ██║████╗  ██║██╔════╝ ██║   ██║██╔══██╗
 ██║     ██║██╔██╗ ██║██║  ███╗██║   ██║███████║
 ██║     ██║██║╚██╗██║██║   ██║██║   ██║██╔══██║
 ███████╗██║██║ ╚████║╚██████╔╝╚██████╔╝██║  ██║
 ╚══════╝╚═╝╚═╝  ╚═══╝ ╚═════╝  ╚═════╝ ╚═╝  ╚═╝`

const titleCompact = "L · I · N · G · U · A"

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	art := titleFull
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art) + "\n\n" + theme.Hint.Render(layout.AppName))
}

// renderStatsBar shows how many lessons were started and evaluated.
func renderStatsBar(stats lessonStats, cw int) string {
	lessonStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	evalStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	text := dim.Render("기록 없음")
	if stats.loaded && stats.lessons > 0 {
		text = lessonStyle.Render(fmt.Sprintf("◆ 학습 %d회", stats.lessons)) + "  " +
			evalStyle.Render(fmt.Sprintf("✓ 평가 %d회", stats.evaluated))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw - 2).
		Align(lipgloss.Center).
		Render(text)
}

const buttonWidth = 22

// renderMenu renders each menu item as a fixed-width button.
func renderMenu(items []string, selected int, cw int) string {
	selectedBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.Text).
		Background(theme.Primary).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(0, 1)

	normalBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	buttons := make([]string, len(items))
	for i, label := range items {
		if i == selected {
			buttons[i] = selectedBtn.Render("▸ " + label)
		} else {
			buttons[i] = normalBtn.Render(label)
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderLLMBanner warns that lesson calls will fail without credentials.
func renderLLMBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ ANTHROPIC_API_KEY가 설정되지 않았습니다 (lingua --help 참고)")
}
