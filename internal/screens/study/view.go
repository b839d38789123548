package study

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/albanobattistella/mecalin/internal/progression"
	"github.com/albanobattistella/mecalin/internal/ui/components"
	"github.com/albanobattistella/mecalin/internal/ui/layout"
	"github.com/albanobattistella/mecalin/internal/ui/theme"
)

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)
	compact := layout.IsCompactHeight(height + layout.HeaderHeight + layout.FooterHeight)

	var sections []string
	switch s.phase {
	case progression.PhaseLessonIntro, progression.PhaseStepIntro:
		sections = s.renderIntro(cw)
	case progression.PhaseCourseComplete:
		sections = s.renderComplete(cw)
	default:
		sections = s.renderTyping(cw, compact)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(sections, "\n\n"))
}

func (s *Screen) renderIntro(cw int) []string {
	heading := theme.Title.Width(cw).Render(s.title)
	body := components.Card(theme.Body.Render(s.description), cw)
	hint := theme.Hint.Width(cw).Align(lipgloss.Center).Render("Press Enter to continue")
	return []string{heading, body, hint}
}

func (s *Screen) renderComplete(cw int) []string {
	sum := s.sess.Summary()
	heading := theme.Correct.Width(cw).Align(lipgloss.Center).Render(s.completion)
	stats := theme.Subtitle.Width(cw).Render(fmt.Sprintf(
		"Steps: %d    Lessons: %d    Mistakes: %d",
		sum.StepsCompleted, sum.LessonsCompleted, sum.Mistakes))
	hint := theme.Hint.Width(cw).Align(lipgloss.Center).
		Render("Enter shows the session summary, R starts the course again")
	return []string{heading, stats, hint}
}

func (s *Screen) renderTyping(cw int, compact bool) []string {
	var sections []string

	if !compact && s.description != "" {
		sections = append(sections, theme.Subtitle.Width(cw).Render(s.description))
	}

	sections = append(sections, lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(s.renderTarget()))

	s.input.SetWidth(cw - 4)
	sections = append(sections, lipgloss.PlaceHorizontal(cw, lipgloss.Center, s.input.View()))

	if step, ok := s.ctrl.Step(); ok && !step.Introduction && step.Repetitions > 1 {
		bar := components.NewCountBar("Repetitions", s.ctrl.State().Repetitions, step.Repetitions, cw)
		sections = append(sections, bar.View())
	}

	kb := s.kb.View()
	if hint := s.kb.FingerHint(); hint != "" {
		kb += "\n\n" + theme.Hint.Render(hint)
	}
	sections = append(sections, lipgloss.PlaceHorizontal(cw, lipgloss.Center, kb))

	return sections
}

// renderTarget draws the target with the typed part, the cursor and the
// remainder styled apart. The cursor turns red while a mistake is pending.
func (s *Screen) renderTarget() string {
	runes := []rune(s.target)
	cur := min(max(s.cursor, 0), len(runes))

	out := theme.Typed.Render(string(runes[:cur]))
	if cur < len(runes) {
		style := theme.Cursor
		if s.mistake {
			style = theme.CursorError
		}
		out += style.Render(string(runes[cur])) + theme.Pending.Render(string(runes[cur+1:]))
	}
	return out
}
