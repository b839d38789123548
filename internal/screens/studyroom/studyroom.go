// Package studyroom is the entry to practice: resume the course, pick a
// lesson or read the student report.
package studyroom

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/albanobattistella/mecalin/internal/router"
	"github.com/albanobattistella/mecalin/internal/screen"
	"github.com/albanobattistella/mecalin/internal/screens/history"
	"github.com/albanobattistella/mecalin/internal/screens/study"
	"github.com/albanobattistella/mecalin/internal/ui/components"
	"github.com/albanobattistella/mecalin/internal/ui/layout"
	"github.com/albanobattistella/mecalin/internal/ui/theme"
)

// StudyRoomScreen lists the practice entry points.
type StudyRoomScreen struct {
	deps study.Deps
	menu components.Menu
}

var _ screen.Screen = (*StudyRoomScreen)(nil)
var _ screen.KeyHintProvider = (*StudyRoomScreen)(nil)

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

// New creates the study room.
func New(deps study.Deps) *StudyRoomScreen {
	items := []components.MenuItem{
		{Label: "Start course", Description: "Continue where you left off", Action: func() tea.Cmd {
			return push(study.New(deps, 0))
		}},
		{Label: "Choose lesson", Description: "Jump to any lesson", Action: func() tea.Cmd {
			return push(NewPicker(deps))
		}},
		{Label: "Student report", Description: "Past sessions", Disabled: deps.Events == nil, Action: func() tea.Cmd {
			return push(history.New(deps.Events))
		}},
	}
	return &StudyRoomScreen{deps: deps, menu: components.NewMenu(items)}
}

func (s *StudyRoomScreen) Init() tea.Cmd {
	return nil
}

func (s *StudyRoomScreen) Title() string {
	return "Study room"
}

func (s *StudyRoomScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Select"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StudyRoomScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *StudyRoomScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	heading := theme.Title.Width(cw).Render("Study room")
	body := lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Render(s.menu.View())
	return components.Frame(heading+"\n\n"+body, width, height)
}
