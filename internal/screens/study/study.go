// Package study is the typing screen. It presents the progression
// controller and feeds it the learner's keystrokes.
package study

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/albanobattistella/mecalin/internal/keyboard"
	"github.com/albanobattistella/mecalin/internal/lessons"
	"github.com/albanobattistella/mecalin/internal/logging"
	"github.com/albanobattistella/mecalin/internal/progression"
	"github.com/albanobattistella/mecalin/internal/router"
	"github.com/albanobattistella/mecalin/internal/screen"
	"github.com/albanobattistella/mecalin/internal/screens/summary"
	"github.com/albanobattistella/mecalin/internal/session"
	"github.com/albanobattistella/mecalin/internal/store"
	"github.com/albanobattistella/mecalin/internal/ui/components"
	"github.com/albanobattistella/mecalin/internal/ui/layout"
)

// Deps are the collaborators shared by every study session.
type Deps struct {
	Course   *lessons.Course
	Layout   *keyboard.Layout
	Progress progression.Persistence
	// Events may be nil, in which case nothing is journaled.
	Events store.EventRepo
	Log    *logging.Logger
}

// Screen implements screen.Screen for a study session.
type Screen struct {
	ctrl  *progression.Controller
	sess  *session.Session
	log   *logging.Logger
	input components.TypingInput
	kb    components.Keyboard

	title       string
	description string
	lessonID    int
	stepNumber  int
	totalSteps  int
	target      string
	cursor      int
	phase       progression.Phase
	completion  string

	// mistake is set by a rejected insertion until the correction lands.
	mistake bool
	ended   bool

	deferred []func()
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
	_ screen.StatusProvider  = (*Screen)(nil)
	_ screen.Leaver          = (*Screen)(nil)
	_ progression.Resettable = (*Screen)(nil)
)

// New starts a session at the stored position. A positive lessonID jumps
// to that lesson instead.
func New(deps Deps, lessonID int) *Screen {
	if deps.Log == nil {
		deps.Log = logging.Nop()
	}
	if deps.Layout == nil {
		deps.Layout = keyboard.Default()
	}
	if deps.Course == nil {
		deps.Course = lessons.Default()
	}

	s := &Screen{
		input: components.NewTypingInput(""),
		kb:    components.NewKeyboard(deps.Layout),
	}
	s.sess = session.New(deps.Course.Language(), deps.Events, deps.Log)
	s.log = deps.Log.With("session_id", s.sess.ID)
	s.ctrl = progression.New(deps.Course, deps.Progress, s,
		progression.WithScheduler(s),
		progression.WithObserver(s.sess),
		progression.WithLogger(s.log),
	)

	s.ctrl.Start()
	if lessonID > 0 {
		if err := s.ctrl.JumpToLesson(lessonID); err != nil {
			s.log.Warn("jump to lesson failed", "lesson", lessonID, "error", err)
		}
	}
	s.sess.Start(s.lessonID)
	s.log.Info("study session started", "lesson", s.lessonID, "language", deps.Course.Language())
	return s
}

func (s *Screen) Init() tea.Cmd {
	return tea.Batch(s.input.Init(), s.flush())
}

func (s *Screen) Title() string {
	if s.phase == progression.PhaseCourseComplete {
		return "Course complete"
	}
	if s.title == "" {
		return "Study"
	}
	return s.title
}

// Status is the position shown on the right of the header.
func (s *Screen) Status() string {
	switch {
	case s.phase == progression.PhaseCourseComplete || s.lessonID == 0:
		return ""
	case s.stepNumber == 0:
		return fmt.Sprintf("Lesson %d", s.lessonID)
	default:
		return fmt.Sprintf("Lesson %d: Step %d/%d", s.lessonID, s.stepNumber, s.totalSteps)
	}
}

func (s *Screen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case progression.PhaseLessonIntro, progression.PhaseStepIntro:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
			{Key: "Ctrl+E", Description: "End session"},
			{Key: "Esc", Description: "Back"},
		}
	case progression.PhaseCourseComplete:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Summary"},
			{Key: "R", Description: "Start over"},
			{Key: "Esc", Description: "Back"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Backspace", Description: "Delete"},
			{Key: "Ctrl+R", Description: "Restart lesson"},
			{Key: "Ctrl+E", Description: "End session"},
			{Key: "Esc", Description: "Back"},
		}
	}
}

// Reset restarts the course from the first lesson.
func (s *Screen) Reset() {
	s.ctrl.Reset()
}

// Phase returns the controller phase.
func (s *Screen) Phase() progression.Phase {
	return s.ctrl.Phase()
}

// Leave records the end of the session when the screen is closed.
func (s *Screen) Leave() tea.Cmd {
	s.end()
	return nil
}

func (s *Screen) end() {
	if s.ended {
		return
	}
	s.ended = true
	s.sess.End(s.lessonID)
	s.log.Info("study session ended",
		"lesson", s.lessonID,
		"steps", s.sess.StepsCompleted(),
		"lessons", s.sess.LessonsCompleted(),
	)
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case deferredMsg:
		msg.task()
		return s, s.flush()

	case tea.PasteMsg:
		if s.phase == progression.PhaseActiveTyping {
			s.insert(msg.Content)
		}
		return s, s.flush()

	case tea.KeyPressMsg:
		cmd := s.handleKey(msg)
		return s, tea.Batch(cmd, s.flush())
	}
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+e":
		return s.finish()
	case "ctrl+r":
		if s.phase != progression.PhaseCourseComplete {
			if err := s.ctrl.JumpToLesson(s.lessonID); err != nil {
				s.log.Warn("restart lesson failed", "lesson", s.lessonID, "error", err)
			}
		}
		return nil
	}

	switch s.phase {
	case progression.PhaseLessonIntro, progression.PhaseStepIntro:
		switch msg.String() {
		case "enter", "space":
			if err := s.ctrl.OnContinue(); err != nil {
				s.log.Debug("continue ignored", "phase", s.phase, "error", err)
			}
		}
	case progression.PhaseActiveTyping:
		return s.handleTyping(msg)
	case progression.PhaseCourseComplete:
		switch msg.String() {
		case "enter":
			return s.finish()
		case "r":
			s.completion = ""
			s.ctrl.Reset()
		}
	}
	return nil
}

func (s *Screen) handleTyping(msg tea.KeyPressMsg) tea.Cmd {
	in, changed, cmd := s.input.Edit(msg)
	s.input = in
	if changed {
		if err := s.ctrl.OnBufferReplaced(s.input.Value()); err == nil {
			s.ctrl.OnBufferSettled()
		}
		return cmd
	}
	if msg.Text != "" && msg.Mod&(tea.ModCtrl|tea.ModAlt) == 0 {
		s.insert(msg.Text)
	}
	return cmd
}

// insert offers fragment to the controller. Only accepted text reaches the
// buffer; a rejection flags the cursor until the deferred correction runs.
func (s *Screen) insert(fragment string) {
	d, err := s.ctrl.OnInsertion(fragment)
	if err != nil {
		return
	}
	if !d.Accepted {
		s.mistake = true
		return
	}
	s.mistake = false
	s.input.Append(fragment)
	s.ctrl.OnBufferSettled()
}

// finish ends the session and swaps this screen for its summary.
func (s *Screen) finish() tea.Cmd {
	s.end()
	sum := summary.New(s.sess.Summary())
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: sum}
	}
}
