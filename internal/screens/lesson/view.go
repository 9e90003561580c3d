package lesson

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/lesson"
	"github.com/abhisek/lingua/internal/prompt"
	"github.com/abhisek/lingua/internal/ui/components"
	"github.com/abhisek/lingua/internal/ui/layout"
	"github.com/abhisek/lingua/internal/ui/theme"
)

func answerLabel(i int) string {
	return fmt.Sprintf("답변 %d", i+1)
}

func lessonWidth(width int) int {
	return max(min(width-4, 100), 20)
}

func (s *LessonScreen) View(width, height int) string {
	if s.mode == modeForm {
		return s.renderForm(width, height)
	}

	doc, _ := s.renderLesson(lessonWidth(width))
	view, _ := layout.Window(doc, s.scroll, height)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, view)
}

// relayout sizes the input fields for the last known window and settles
// the scroll offset, so View only reads state.
func (s *LessonScreen) relayout() {
	if s.width == 0 || s.height == 0 {
		return
	}
	cw := lessonWidth(s.width)
	s.custom.SetWidth(components.ContentWidth(s.width) - 8)
	for i := range s.answers {
		s.answers[i].SetWidth(cw - 6)
	}
	if s.mode != modeLesson {
		return
	}

	doc, focusLine := s.renderLesson(cw)
	switch {
	case s.follow:
		s.scroll = strings.Count(doc, "\n") + 1
	case s.reveal && focusLine >= 0:
		if focusLine < s.scroll {
			s.scroll = focusLine
		} else if focusLine >= s.scroll+s.height-3 {
			s.scroll = focusLine - s.height + 4
		}
	}
	s.reveal = false
	_, s.scroll = layout.Window(doc, s.scroll, s.height)
}

func (s *LessonScreen) renderForm(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render(layout.AppName))
	b.WriteString("\n\n")
	b.WriteString(s.language.View())
	b.WriteString("\n\n")
	b.WriteString(s.difficulty.View())
	b.WriteString("\n\n")
	b.WriteString(s.custom.View())
	b.WriteString("\n\n")
	b.WriteString(s.start.View())
	if s.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Banner.Render(s.notice))
	}

	return components.Center(components.Card(b.String(), cw), width, height)
}

// renderLesson renders the whole lesson page and returns the line the
// focused widget starts on, or -1.
func (s *LessonScreen) renderLesson(cw int) (string, int) {
	var parts []string
	focusLine := -1
	lineCount := func() int {
		return strings.Count(strings.Join(parts, "\n"), "\n") + 1
	}
	add := func(block string) {
		parts = append(parts, block)
	}
	wrap := lipgloss.NewStyle().Width(cw)

	add(theme.Title.Width(cw).Render(s.Title()))
	add("")
	add(theme.Label.Render("원문:") + " " + theme.Sentence.Render(s.sess.Sentence))
	add("")

	// Sections and banners in request order.
	for _, p := range prompt.Sections {
		if sec, ok := sectionFor(s.sess, p); ok {
			add(theme.SectionHeading.Render(sec.Title))
			add(wrap.Render(theme.Body.Render(sec.Text)))
			add("")
		}
		if b, ok := s.sess.BannerFor(p); ok {
			add(theme.Banner.Width(cw).Render(b.Message))
			add("")
		}
	}

	if s.inFlight != nil && s.inFlight.Purpose != prompt.Evaluation {
		done, total := s.sess.Progress()
		add(s.spinner.View() + " " + theme.Hint.Render(prompt.Title(s.inFlight.Purpose)+" 생성 중..."))
		add(components.NewProgressBar("", done, total, cw/2).View())
		add("")
	}

	add(theme.SectionHeading.Render("퀴즈"))
	for i, item := range s.sess.Quiz.Items() {
		add(theme.Body.Render(fmt.Sprintf("질문 %d: %s", i+1, item.Question)))
		if s.lessonFocus == i {
			focusLine = lineCount()
		}
		add(s.answers[i].View())
	}
	add("")

	if s.lessonFocus == focusSubmit {
		focusLine = lineCount()
	}
	add(s.submit.View())

	if s.inFlight != nil && s.inFlight.Purpose == prompt.Evaluation {
		add(s.spinner.View() + " " + theme.Hint.Render("평가 중..."))
	}
	if b, ok := s.sess.BannerFor(prompt.Evaluation); ok {
		add(theme.Banner.Width(cw).Render(b.Message))
	}
	if s.sess.Evaluated() {
		add("")
		add(theme.SectionHeading.Render("평가 결과:"))
		add(wrap.Render(theme.Body.Render(s.sess.Evaluation)))
	}

	if s.notice != "" {
		add("")
		add(theme.Banner.Render(s.notice))
	}

	add("")
	if s.lessonFocus == focusNew {
		focusLine = lineCount()
	}
	add(s.newLesson.View())

	return strings.Join(parts, "\n"), focusLine
}

func sectionFor(sess *lesson.Session, p prompt.Purpose) (lesson.Section, bool) {
	for _, sec := range sess.Sections {
		if sec.Purpose == p {
			return sec, true
		}
	}
	return lesson.Section{}, false
}
