package studyroom

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/albanobattistella/mecalin/internal/lessons"
	"github.com/albanobattistella/mecalin/internal/progression"
	"github.com/albanobattistella/mecalin/internal/router"
	"github.com/albanobattistella/mecalin/internal/screen"
	"github.com/albanobattistella/mecalin/internal/screens/study"
	"github.com/albanobattistella/mecalin/internal/ui/components"
	"github.com/albanobattistella/mecalin/internal/ui/layout"
	"github.com/albanobattistella/mecalin/internal/ui/theme"
)

// PickerScreen lists the course lessons. Choosing one replaces the picker
// with a study session at that lesson, so Esc returns to the study room.
type PickerScreen struct {
	menu    components.Menu
	current int
	offset  int
}

var _ screen.Screen = (*PickerScreen)(nil)
var _ screen.KeyHintProvider = (*PickerScreen)(nil)

// NewPicker creates the lesson picker with the stored lesson selected.
func NewPicker(deps study.Deps) *PickerScreen {
	course := deps.Course
	if course == nil {
		course = lessons.Default()
	}

	current := 1
	if deps.Progress != nil {
		if v, ok, err := deps.Progress.Uint(context.Background(), progression.KeyCurrentLesson); err == nil && ok {
			current = int(v)
		}
	}

	var items []components.MenuItem
	selected := 0
	for i, lesson := range course.Lessons() {
		id := lesson.ID
		desc := fmt.Sprintf("%d steps", lesson.TypingSteps())
		if lesson.Introduction {
			desc = "introduction"
		}
		if id == current {
			desc += "  (current)"
			selected = i
		}
		items = append(items, components.MenuItem{
			Label:       fmt.Sprintf("%2d. %s", id, lesson.Title),
			Description: desc,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.ReplaceScreenMsg{Screen: study.New(deps, id)}
				}
			},
		})
	}

	menu := components.NewMenu(items)
	menu.Selected = selected
	return &PickerScreen{menu: menu, current: current}
}

func (p *PickerScreen) Init() tea.Cmd {
	return nil
}

func (p *PickerScreen) Title() string {
	return "Choose lesson"
}

func (p *PickerScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (p *PickerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	p.menu, cmd = p.menu.Update(msg)
	return p, cmd
}

// View shows a window of the lesson list that keeps the selection visible.
func (p *PickerScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	rows := max(height-6, 3)

	if p.menu.Selected < p.offset {
		p.offset = p.menu.Selected
	}
	if p.menu.Selected >= p.offset+rows {
		p.offset = p.menu.Selected - rows + 1
	}

	window := p.menu
	end := min(p.offset+rows, len(window.Items))
	window.Items = window.Items[p.offset:end]
	window.Selected = p.menu.Selected - p.offset

	body := lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Render(window.View())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}
