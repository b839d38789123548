package about

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/albanobattistella/mecalin/internal/router"
	"github.com/albanobattistella/mecalin/internal/screen"
	"github.com/albanobattistella/mecalin/internal/screens/welcome"
	"github.com/albanobattistella/mecalin/internal/ui/components"
	"github.com/albanobattistella/mecalin/internal/ui/layout"
	"github.com/albanobattistella/mecalin/internal/ui/theme"
)

const (
	website   = "https://github.com/nacho/mecalin"
	issues    = "https://github.com/nacho/mecalin/issues"
	license   = "GNU General Public License v3.0"
	developer = "Ignacio Casal Quinteiro"
)

// AboutScreen shows application information.
type AboutScreen struct {
	version string
}

var _ screen.Screen = (*AboutScreen)(nil)
var _ screen.KeyHintProvider = (*AboutScreen)(nil)

// New creates an AboutScreen for the given build version.
func New(version string) *AboutScreen {
	return &AboutScreen{version: version}
}

func (a *AboutScreen) Init() tea.Cmd {
	return nil
}

func (a *AboutScreen) Title() string {
	return "About"
}

func (a *AboutScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Back"},
	}
}

func (a *AboutScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		return a, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return a, nil
}

func (a *AboutScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	link := lipgloss.NewStyle().Foreground(theme.Secondary)

	lines := []string{
		theme.Body.Bold(true).Render("Learn to type with all ten fingers"),
		"",
		dim.Render("Version ") + theme.Body.Render(a.version),
		dim.Render("Developer ") + theme.Body.Render(developer),
		dim.Render("License ") + theme.Body.Render(license),
		"",
		link.Render(website),
		link.Render(issues),
	}

	content := welcome.RenderBanner(cw) + "\n\n" + components.Card(strings.Join(lines, "\n"), cw)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
