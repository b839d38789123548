// Package studentcontrol shows where the learner stands in the course and
// lets them start over.
package studentcontrol

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/albanobattistella/mecalin/internal/lessons"
	"github.com/albanobattistella/mecalin/internal/logging"
	"github.com/albanobattistella/mecalin/internal/progression"
	"github.com/albanobattistella/mecalin/internal/router"
	"github.com/albanobattistella/mecalin/internal/screen"
	"github.com/albanobattistella/mecalin/internal/screens/study"
	"github.com/albanobattistella/mecalin/internal/store"
	"github.com/albanobattistella/mecalin/internal/ui/components"
	"github.com/albanobattistella/mecalin/internal/ui/layout"
	"github.com/albanobattistella/mecalin/internal/ui/theme"
)

// position is the stored place in the course plus journal totals.
type position struct {
	lesson     lessons.Lesson
	step       int
	lessonsTot int
	stepsTot   int
}

type positionLoadedMsg struct {
	pos position
}

type resetConfirmedMsg struct{}

type resetCancelledMsg struct{}

// StudentControlScreen manages the learner's progress.
type StudentControlScreen struct {
	deps       study.Deps
	menu       components.Menu
	confirm    components.Confirm
	confirming bool
	pos        position
	loaded     bool
	notice     string
}

var _ screen.Screen = (*StudentControlScreen)(nil)
var _ screen.KeyHintProvider = (*StudentControlScreen)(nil)

// New creates the student control screen.
func New(deps study.Deps) *StudentControlScreen {
	if deps.Course == nil {
		deps.Course = lessons.Default()
	}
	if deps.Log == nil {
		deps.Log = logging.Nop()
	}
	s := &StudentControlScreen{deps: deps}
	s.menu = components.NewMenu([]components.MenuItem{
		{Label: "Reset progress", Description: "Start the course again", Action: func() tea.Cmd {
			s.confirming = true
			s.confirm = components.NewConfirm("Reset all progress to lesson 1?",
				func() tea.Cmd { return func() tea.Msg { return resetConfirmedMsg{} } },
				func() tea.Cmd { return func() tea.Msg { return resetCancelledMsg{} } },
			)
			return nil
		}},
		{Label: "Back", Description: "Return to the main menu", Action: func() tea.Cmd {
			return func() tea.Msg { return router.PopScreenMsg{} }
		}},
	})
	return s
}

func (s *StudentControlScreen) Init() tea.Cmd {
	deps := s.deps
	return func() tea.Msg {
		return positionLoadedMsg{pos: loadPosition(context.Background(), deps)}
	}
}

func loadPosition(ctx context.Context, deps study.Deps) position {
	var pos position
	lessonID, step := 1, 1
	if deps.Progress != nil {
		if v, ok, err := deps.Progress.Uint(ctx, progression.KeyCurrentLesson); err == nil && ok {
			lessonID = int(v)
		}
		if v, ok, err := deps.Progress.Uint(ctx, progression.KeyCurrentStep); err == nil && ok {
			step = int(v)
		}
	}
	lesson, ok := deps.Course.Lesson(lessonID)
	if !ok {
		lesson, _ = deps.Course.First()
		step = 1
	}
	pos.lesson = lesson
	pos.step = step

	if deps.Events != nil {
		counts, err := deps.Events.CountByKind(ctx)
		if err == nil {
			pos.lessonsTot = counts[store.KindLessonCompleted]
			pos.stepsTot = counts[store.KindStepCompleted]
		} else {
			deps.Log.Warn("load progress totals failed", "error", err)
		}
	}
	return pos
}

// resetProgress moves the stored position back to the first lesson.
func (s *StudentControlScreen) resetProgress() {
	progression.New(s.deps.Course, s.deps.Progress, nil, progression.WithLogger(s.deps.Log)).Reset()
	if s.deps.Progress == nil {
		return
	}
	if err := s.deps.Progress.SetUint(context.Background(), progression.KeyCurrentStep, 1); err != nil {
		s.deps.Log.Warn("reset step failed", "error", err)
	}
	s.deps.Log.Info("progress reset", "language", s.deps.Course.Language())
}

func (s *StudentControlScreen) Title() string {
	return "Student control"
}

func (s *StudentControlScreen) KeyHints() []layout.KeyHint {
	if s.confirming {
		return []layout.KeyHint{
			{Key: "←→", Description: "Choose"},
			{Key: "Enter", Description: "Confirm"},
			{Key: "Y/N", Description: "Yes/No"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Select"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StudentControlScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case positionLoadedMsg:
		s.pos = msg.pos
		s.loaded = true
		return s, nil
	case resetConfirmedMsg:
		s.confirming = false
		s.resetProgress()
		s.notice = "Progress reset. The next session starts at lesson 1."
		return s, s.Init()
	case resetCancelledMsg:
		s.confirming = false
		return s, nil
	}

	var cmd tea.Cmd
	if s.confirming {
		s.confirm, cmd = s.confirm.Update(msg)
		return s, cmd
	}
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *StudentControlScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, theme.Title.Width(cw).Render("Student control"))
	if s.loaded {
		sections = append(sections, components.Card(s.renderPosition(), cw))
	}
	if s.notice != "" {
		sections = append(sections, theme.Correct.Width(cw).Align(lipgloss.Center).Render(s.notice))
	}
	if s.confirming {
		sections = append(sections, lipgloss.PlaceHorizontal(cw, lipgloss.Center, s.confirm.View()))
	} else {
		sections = append(sections, lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Render(s.menu.View()))
	}

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (s *StudentControlScreen) renderPosition() string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	lesson := s.pos.lesson

	where := fmt.Sprintf("Lesson %d: %s", lesson.ID, lesson.Title)
	step := "Introduction"
	if n := len(lesson.Steps); !lesson.Introduction && n > 0 {
		step = fmt.Sprintf("Step %d of %d", min(s.pos.step, n), n)
	}

	lines := []string{
		dim.Render("Course ") + theme.Body.Render(s.deps.Course.Language()),
		dim.Render("Current ") + theme.Body.Render(where),
		dim.Render("Position ") + theme.Body.Render(step),
		"",
		dim.Render("Lessons completed ") + theme.Body.Render(fmt.Sprint(s.pos.lessonsTot)),
		dim.Render("Steps completed ") + theme.Body.Render(fmt.Sprint(s.pos.stepsTot)),
	}
	return strings.Join(lines, "\n")
}
