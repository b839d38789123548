package welcome

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/albanobattistella/mecalin/internal/lessons"
	"github.com/albanobattistella/mecalin/internal/progression"
	"github.com/albanobattistella/mecalin/internal/router"
	"github.com/albanobattistella/mecalin/internal/screen"
	"github.com/albanobattistella/mecalin/internal/typing"
	"github.com/albanobattistella/mecalin/internal/ui/theme"
)

const tickInterval = 120 * time.Millisecond

// Tagline is typed out when there is no exercise to preview.
const Tagline = "Let's learn to type!"

type tickMsg time.Time

// Options tell the splash where the learner will resume.
type Options struct {
	Course   *lessons.Course
	Progress progression.Persistence
}

// WelcomeScreen types out the learner's next exercise one key at a time,
// then shows the banner and where the course resumes. Any key moves on to
// the home screen.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	demo         string
	typed        string
	keys         []rune
	resume       string
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by homeFactory.
func New(opts Options, homeFactory func() screen.Screen) *WelcomeScreen {
	resume, demo := preview(opts.Course, opts.Progress)
	return &WelcomeScreen{
		homeFactory: homeFactory,
		demo:        demo,
		keys:        typing.VisibleKeys(demo).Sorted(),
		resume:      resume,
	}
}

// preview describes the stored position and picks the first typing text
// from there on.
func preview(course *lessons.Course, progress progression.Persistence) (resume, demo string) {
	if course == nil {
		return "", Tagline
	}

	id := 1
	if progress != nil {
		if v, ok, err := progress.Uint(context.Background(), progression.KeyCurrentLesson); err == nil && ok {
			id = int(v)
		}
	}
	lesson, ok := course.Lesson(id)
	if !ok {
		if lesson, ok = course.First(); !ok {
			return fmt.Sprintf("Course %s", course.Language()), Tagline
		}
	}
	resume = fmt.Sprintf("Course %s · lesson %d of %d: %s",
		course.Language(), lesson.ID, course.Len(), lesson.Title)

	for l, ok := lesson, true; ok; l, ok = course.NextLesson(l.ID) {
		for _, step := range l.Steps {
			if !step.Introduction && step.Text != "" {
				return resume, step.Text
			}
		}
	}
	return resume, Tagline
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.done() {
			return w, nil
		}
		if r, ok := w.nextKey(); ok {
			w.typed += string(r)
		}
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}
	return w, nil
}

// nextKey is the character the demo types next.
func (w *WelcomeScreen) nextKey() (rune, bool) {
	return typing.NextExpected(w.typed, w.demo)
}

func (w *WelcomeScreen) done() bool {
	return typing.Classify(w.typed, w.demo) == typing.StatusComplete
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	homeScreen := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: homeScreen}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	sections := []string{w.renderKeys(), "", w.renderDemo()}

	dim := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
	if !w.done() {
		sections = append(sections, "", dim.Render("any key skips"))
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			strings.Join(sections, "\n"))
	}

	sections = append(sections, "", RenderBanner(width), "")
	if w.demo != Tagline {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Text).Bold(true).Render(Tagline))
	}
	if w.resume != "" {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Secondary).Render(w.resume))
	}
	sections = append(sections, "", dim.Render("press any key to continue"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(sections, "\n"))
}

// renderKeys draws a keycap for every key the demo uses, lighting up the
// one about to be pressed.
func (w *WelcomeScreen) renderKeys() string {
	next, ok := w.nextKey()
	if ok {
		next = []rune(strings.ToLower(string(next)))[0]
	}

	idle := lipgloss.NewStyle().Foreground(theme.Primary)
	lit := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Reverse(true)

	caps := make([]string, 0, len(w.keys))
	for _, r := range w.keys {
		label := strings.ToUpper(string(r))
		if r == ' ' {
			label = "space"
		}
		style := idle
		if ok && r == next {
			style = lit
		}
		caps = append(caps, style.Render("["+label+"]"))
	}
	return strings.Join(caps, " ")
}

// renderDemo shows the typed part, the cursor and the rest of the text.
func (w *WelcomeScreen) renderDemo() string {
	pos := typing.CursorPosition(w.typed)
	rest := []rune(w.demo)[pos:]

	typed := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(w.typed)
	if len(rest) == 0 {
		return typed
	}
	cursor := lipgloss.NewStyle().Foreground(theme.Accent).Underline(true).Render(string(rest[0]))
	ahead := lipgloss.NewStyle().Foreground(theme.TextDim).Render(string(rest[1:]))
	return typed + cursor + ahead
}
