package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/albanobattistella/mecalin/internal/screens/welcome"
	"github.com/albanobattistella/mecalin/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Waiting at the home row
	MascotCelebrating                      // Course finished
)

const mascotIdle = `┌───┬───┬───┬───┐
│ F │ · │ · │ J │
└───┴───┴───┴───┘`

const mascotCelebrating = `┌───┬───┬───┬───┐
│ ★ │ · │ · │ ★ │
└───┴───┴───┴───┘`

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Highlight).
		Bold(true)

	art := strings.TrimPrefix(welcome.Banner(false), "\n")
	if compact {
		art = "M · E · C · A · L · I · N"
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

func renderMascot(variant MascotVariant, cw int) string {
	art, fg := mascotIdle, theme.Primary
	if variant == MascotCelebrating {
		art, fg = mascotCelebrating, theme.Highlight
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(lipgloss.NewStyle().Foreground(fg).Render(art))
}

// renderStatsBar shows the learner's totals in a double-bordered box.
func renderStatsBar(st stats, cw int, compact bool) string {
	lessonStyle := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)
	stepStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	posStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)

	var line string
	if compact {
		line = fmt.Sprintf("%s %s %s",
			lessonStyle.Render(fmt.Sprintf("★%d", st.lessons)),
			stepStyle.Render(fmt.Sprintf("✓%d", st.steps)),
			posStyle.Render(fmt.Sprintf("▸L%d", st.currentLesson)),
		)
	} else {
		line = fmt.Sprintf("%s  %s  %s",
			lessonStyle.Render(fmt.Sprintf("★ %d LESSONS", st.lessons)),
			stepStyle.Render(fmt.Sprintf("✓ %d STEPS", st.steps)),
			posStyle.Render(fmt.Sprintf("▸ LESSON %d", st.currentLesson)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(line)
}
