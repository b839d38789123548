package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/albanobattistella/mecalin/internal/progression"
	"github.com/albanobattistella/mecalin/internal/router"
	"github.com/albanobattistella/mecalin/internal/screen"
	"github.com/albanobattistella/mecalin/internal/screens/about"
	"github.com/albanobattistella/mecalin/internal/screens/placeholder"
	"github.com/albanobattistella/mecalin/internal/screens/studentcontrol"
	"github.com/albanobattistella/mecalin/internal/screens/study"
	"github.com/albanobattistella/mecalin/internal/screens/studyroom"
	"github.com/albanobattistella/mecalin/internal/store"
	"github.com/albanobattistella/mecalin/internal/ui/components"
	"github.com/albanobattistella/mecalin/internal/ui/theme"
)

// stats are the totals shown above the menu.
type stats struct {
	lessons       int
	steps         int
	currentLesson int
	finished      bool
}

type statsLoadedMsg struct {
	stats stats
}

// HomeScreen is the main action list.
type HomeScreen struct {
	deps  study.Deps
	menu  components.Menu
	stats stats
}

var _ screen.Screen = (*HomeScreen)(nil)

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

// New creates the home screen. version is shown on the About screen.
func New(deps study.Deps, version string) *HomeScreen {
	items := []components.MenuItem{
		{Label: "Study room", Description: "Learn typing fundamentals", Action: func() tea.Cmd {
			return push(studyroom.New(deps))
		}},
		{Label: "Student control", Description: "Manage student progress", Action: func() tea.Cmd {
			return push(studentcontrol.New(deps))
		}},
		{Label: "Skill game", Description: "Practice with games", Action: func() tea.Cmd {
			return push(placeholder.New("Skill game",
				"The falling keys and scrolling lanes games need a graphical window. Practice in the study room instead."))
		}},
		{Label: "Videos", Description: "Watch typing tutorials", Action: func() tea.Cmd {
			return push(placeholder.New("Videos",
				"Typing tutorials play in the desktop edition. Open the study room to keep practicing."))
		}},
		{Label: "About", Description: "Application information", Action: func() tea.Cmd {
			return push(about.New(version))
		}},
		{Label: "Exit", Description: "Leave Mecalin", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		deps: deps,
		menu: components.NewMenu(items),
	}
}

// Init loads the totals. It runs again whenever the screen is shown, so
// the stats reflect the session that just ended.
func (h *HomeScreen) Init() tea.Cmd {
	deps := h.deps
	return func() tea.Msg {
		return statsLoadedMsg{stats: loadStats(context.Background(), deps)}
	}
}

func loadStats(ctx context.Context, deps study.Deps) stats {
	var st stats
	if deps.Events != nil {
		counts, err := deps.Events.CountByKind(ctx)
		if err == nil {
			st.lessons = counts[store.KindLessonCompleted]
			st.steps = counts[store.KindStepCompleted]
			st.finished = counts[store.KindCourseCompleted] > 0
		} else if deps.Log != nil {
			deps.Log.Warn("load home stats failed", "error", err)
		}
	}
	st.currentLesson = 1
	if deps.Progress != nil {
		if v, ok, err := deps.Progress.Uint(ctx, progression.KeyCurrentLesson); err == nil && ok {
			st.currentLesson = int(v)
		}
	}
	return st
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		h.stats = msg.stats
		return h, nil
	case router.ScreenShownMsg:
		return h, h.Init()
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header and footer
	compact := height+8 < 34 || width < 100

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))

	if !compact {
		variant := MascotIdle
		if h.stats.finished {
			variant = MascotCelebrating
		}
		sections = append(sections, renderMascot(variant, cw))
	}

	sections = append(sections, renderStatsBar(h.stats, cw, compact))
	sections = append(sections, lipgloss.NewStyle().
		Width(cw).
		Foreground(theme.Text).
		Render(h.menu.View()))

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
