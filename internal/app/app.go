package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/albanobattistella/mecalin/internal/router"
	"github.com/albanobattistella/mecalin/internal/screen"
	"github.com/albanobattistella/mecalin/internal/screens/home"
	"github.com/albanobattistella/mecalin/internal/screens/study"
	"github.com/albanobattistella/mecalin/internal/screens/welcome"
	"github.com/albanobattistella/mecalin/internal/ui/layout"
)

// Options configure the interactive program.
type Options struct {
	Deps    study.Deps
	Version string
	// SkipWelcome opens the home screen without the splash animation.
	SkipWelcome bool
	// Lesson opens a study session at that lesson on top of home when
	// positive.
	Lesson int
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router   *router.Router
	language string
	initCmd  tea.Cmd
	width    int
	height   int
}

// newAppModel creates a new AppModel starting at the welcome screen.
func newAppModel(opts Options) AppModel {
	homeFactory := func() screen.Screen {
		return home.New(opts.Deps, opts.Version)
	}

	var root screen.Screen = welcome.New(welcome.Options{
		Course:   opts.Deps.Course,
		Progress: opts.Deps.Progress,
	}, homeFactory)
	if opts.SkipWelcome || opts.Lesson > 0 {
		root = homeFactory()
	}
	r := router.New(root)
	cmds := []tea.Cmd{root.Init()}
	if opts.Lesson > 0 {
		cmds = append(cmds, r.Push(study.New(opts.Deps, opts.Lesson)))
	}

	language := ""
	if opts.Deps.Course != nil {
		language = opts.Deps.Course.Language()
	}
	return AppModel{router: r, language: language, initCmd: tea.Batch(cmds...)}
}

func (m AppModel) Init() tea.Cmd {
	return m.initCmd
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Sequence(m.router.Leave(), tea.Quit)
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
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	v.SetContent(m.render())
	return v
}

// render lays out header, active screen and footer for the current size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	status := m.language
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok && sp.Status() != "" {
			status = sp.Status()
		}
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	quit := layout.KeyHint{Key: "Ctrl+C", Description: "Quit"}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		return append(hp.KeyHints(), quit)
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}, quit}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		quit,
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
