package placeholder

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/albanobattistella/mecalin/internal/router"
	"github.com/albanobattistella/mecalin/internal/screen"
	"github.com/albanobattistella/mecalin/internal/ui/components"
	"github.com/albanobattistella/mecalin/internal/ui/layout"
	"github.com/albanobattistella/mecalin/internal/ui/theme"
)

// PlaceholderScreen stands in for a menu entry the terminal edition does
// not offer.
type PlaceholderScreen struct {
	title   string
	message string
}

var _ screen.Screen = (*PlaceholderScreen)(nil)
var _ screen.KeyHintProvider = (*PlaceholderScreen)(nil)

// New creates a PlaceholderScreen. message explains what is missing.
func New(title, message string) *PlaceholderScreen {
	return &PlaceholderScreen{title: title, message: message}
}

func (p *PlaceholderScreen) Init() tea.Cmd {
	return nil
}

func (p *PlaceholderScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Enter", Description: "Back"}}
}

func (p *PlaceholderScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		return p, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return p, nil
}

func (p *PlaceholderScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	heading := theme.Subtitle.Render("╌╌ Not available here ╌╌")
	body := components.Card(theme.Body.Render(p.message), cw)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, heading, "", body))
}

func (p *PlaceholderScreen) Title() string {
	return p.title
}
