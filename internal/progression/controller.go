// Package progression drives a learner through a course: it decides which
// lesson and step are active, validates keystrokes and advances when a step
// has been typed correctly often enough.
package progression

import (
	"context"
	"errors"

	"github.com/albanobattistella/mecalin/internal/lessons"
	"github.com/albanobattistella/mecalin/internal/logging"
	"github.com/albanobattistella/mecalin/internal/typing"
)

// CompletionMessage is published when the last lesson is finished.
const CompletionMessage = "Congratulations! You have completed the course."

var (
	// ErrInvalidPhase is returned when an input event does not apply to the
	// current phase.
	ErrInvalidPhase = errors.New("operation not valid in current phase")

	// ErrUnknownLesson is returned by JumpToLesson for ids not in the course.
	ErrUnknownLesson = errors.New("unknown lesson")
)

// Controller owns the progression state of one study session. It is not
// safe for concurrent use; all calls must come from the UI event loop.
type Controller struct {
	course *lessons.Course
	store  Persistence
	view   Presenter
	sched  Scheduler
	obs    Observer
	log    *logging.Logger

	state  State
	lesson lessons.Lesson

	// pending is set between a rejected insertion and its deferred
	// correction.
	pending bool
	// gen invalidates deferred corrections scheduled before a step change.
	gen int
}

// Option customises a Controller.
type Option func(*Controller)

// WithScheduler sets where deferred corrections are posted. Defaults to a
// private Queue, which never drains on its own.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.sched = s }
}

// WithObserver registers completion callbacks.
func WithObserver(o Observer) Option {
	return func(c *Controller) { c.obs = o }
}

// WithLogger sets the logger used for swallowed persistence errors.
func WithLogger(l *logging.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// New creates a controller. Call Start to load the stored position.
func New(course *lessons.Course, store Persistence, view Presenter, opts ...Option) *Controller {
	c := &Controller{
		course: course,
		store:  store,
		view:   view,
		sched:  &Queue{},
		obs:    nopObserver{},
		log:    logging.Nop(),
	}
	if c.store == nil {
		c.store = NewMemoryPersistence()
	}
	if c.view == nil {
		c.view = NopPresenter{}
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start resumes at the stored lesson and step. Unknown lessons fall back to
// the first lesson; out-of-range steps clamp to the last step.
func (c *Controller) Start() {
	lessonID := c.readUint(KeyCurrentLesson, 1)
	stepNumber := c.readUint(KeyCurrentStep, 1)

	lesson, ok := c.course.Lesson(lessonID)
	if !ok {
		c.log.Warn("stored lesson not in course, restarting", "lesson", lessonID)
		lesson, ok = c.course.First()
		stepNumber = 1
	}
	if !ok {
		c.finishCourse()
		return
	}

	c.LoadLesson(lesson)

	// The stored step belongs to the stored lesson only. A step-less lesson
	// moves straight on to the next one, which starts from its first step.
	if c.state.LessonID != lesson.ID || c.state.Phase == PhaseCourseComplete {
		return
	}
	index := stepNumber - 1
	if index < 0 {
		index = 0
	}
	if !lesson.Introduction && index > 0 {
		c.LoadStep(index)
	}
}

// Reset restarts the course from its first lesson.
func (c *Controller) Reset() {
	lesson, ok := c.course.First()
	if !ok {
		c.finishCourse()
		return
	}
	c.LoadLesson(lesson)
}

// JumpToLesson loads the lesson with the given id.
func (c *Controller) JumpToLesson(id int) error {
	lesson, ok := c.course.Lesson(id)
	if !ok {
		return ErrUnknownLesson
	}
	c.LoadLesson(lesson)
	return nil
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	return c.state.Phase
}

// State returns a copy of the progression state.
func (c *Controller) State() State {
	return c.state
}

// Lesson returns the active lesson.
func (c *Controller) Lesson() lessons.Lesson {
	return c.lesson
}

// Step returns the active step, if the lesson has one.
func (c *Controller) Step() (lessons.Step, bool) {
	if c.state.StepIndex < 0 || c.state.StepIndex >= len(c.lesson.Steps) {
		return lessons.Step{}, false
	}
	return c.lesson.Steps[c.state.StepIndex], true
}

// Course returns the course being studied.
func (c *Controller) Course() *lessons.Course {
	return c.course
}

// LoadLesson makes lesson current and either shows its introduction or
// loads its first step.
func (c *Controller) LoadLesson(lesson lessons.Lesson) {
	c.gen++
	c.pending = false
	c.lesson = lesson
	c.state = State{LessonID: lesson.ID}
	c.persist(KeyCurrentLesson, lesson.ID)

	c.view.TitleUpdated(lesson.Title)
	c.view.DescriptionUpdated(lesson.Description)

	if lesson.Introduction {
		c.view.SubtitleUpdated(lesson.ID, 0, 0)
		c.clearTarget()
		c.setPhase(PhaseLessonIntro)
		return
	}
	c.LoadStep(0)
}

// LoadStep makes the step at index current. An index past the end clamps to
// the last step; a lesson without steps is treated as finished.
func (c *Controller) LoadStep(index int) {
	steps := c.lesson.Steps
	if len(steps) == 0 {
		c.log.Warn("lesson has no steps", "lesson", c.lesson.ID)
		c.advanceLesson()
		return
	}
	if index < 0 {
		index = 0
	}
	if index >= len(steps) {
		c.log.Warn("step out of range, clamping", "lesson", c.lesson.ID, "step", index+1, "steps", len(steps))
		index = len(steps) - 1
	}

	c.gen++
	c.pending = false
	c.state.StepIndex = index
	c.state.Repetitions = 0
	c.state.Mistakes = 0
	c.state.Typed = ""
	c.persist(KeyCurrentStep, index+1)

	step := steps[index]
	c.view.SubtitleUpdated(c.lesson.ID, index+1, len(steps))
	c.view.InputReplaced("")

	if step.Introduction {
		c.view.DescriptionUpdated(step.DescriptionText())
		c.clearTarget()
		c.setPhase(PhaseStepIntro)
		return
	}

	if d := step.DescriptionText(); d != "" {
		c.view.DescriptionUpdated(d)
	} else {
		c.view.DescriptionUpdated(c.lesson.Description)
	}
	c.view.TargetTextUpdated(step.Text)
	c.view.VisibleKeysUpdated(typing.VisibleKeys(step.Text))
	c.setPhase(PhaseActiveTyping)
	c.publishCursor()
}

// OnInsertion validates an attempted insertion. Accepted fragments are
// appended to the typed buffer. A rejection schedules a deferred rewrite of
// the buffer to the start of the current word; while that correction is
// pending, further insertions are rejected without scheduling another.
func (c *Controller) OnInsertion(fragment string) (typing.Decision, error) {
	if c.state.Phase != PhaseActiveTyping {
		return typing.Decision{}, ErrInvalidPhase
	}
	step, _ := c.Step()

	if c.pending {
		return typing.Decision{CorrectedPrefix: typing.WordBoundaryPrefix(c.state.Typed)}, nil
	}

	d := typing.ValidateInsertion(c.state.Typed, fragment, step.Text)
	if d.Accepted {
		c.state.Typed += fragment
		c.publishCursor()
		return d, nil
	}

	c.state.Mistakes++
	c.pending = true
	gen := c.gen
	prefix := d.CorrectedPrefix
	c.sched.Defer(func() {
		if gen != c.gen {
			return
		}
		c.pending = false
		c.view.InputReplaced(prefix)
		if err := c.OnBufferReplaced(prefix); err != nil {
			return
		}
		c.OnBufferSettled()
	})
	return d, nil
}

// OnBufferReplaced re-synchronises the typed buffer with the UI, e.g. after
// a correction or a deletion.
func (c *Controller) OnBufferReplaced(text string) error {
	if c.state.Phase != PhaseActiveTyping {
		return ErrInvalidPhase
	}
	c.state.Typed = text
	c.publishCursor()
	return nil
}

// OnBufferSettled runs once the typed buffer is stable. A complete buffer
// counts as one repetition; enough repetitions advance to the next step.
func (c *Controller) OnBufferSettled() {
	if c.state.Phase != PhaseActiveTyping {
		return
	}
	step, ok := c.Step()
	if !ok {
		return
	}

	if typing.Classify(c.state.Typed, step.Text) != typing.StatusComplete {
		c.publishNextKey(step.Text)
		return
	}

	c.state.Repetitions++
	if c.state.Repetitions >= step.Repetitions {
		c.obs.StepCompleted(c.lesson.ID, c.state.StepIndex+1, c.state.Repetitions, c.state.Mistakes)
		c.advanceStep()
		return
	}

	c.state.Typed = ""
	c.view.InputReplaced("")
	c.publishCursor()
}

// OnContinue acknowledges an introduction.
func (c *Controller) OnContinue() error {
	switch c.state.Phase {
	case PhaseLessonIntro:
		c.advanceLesson()
	case PhaseStepIntro:
		c.advanceStep()
	default:
		return ErrInvalidPhase
	}
	return nil
}

func (c *Controller) advanceStep() {
	if c.state.StepIndex+1 < len(c.lesson.Steps) {
		c.LoadStep(c.state.StepIndex + 1)
		return
	}
	c.advanceLesson()
}

func (c *Controller) advanceLesson() {
	finished := c.lesson.ID
	c.setPhase(PhaseLessonComplete)
	c.obs.LessonCompleted(finished)

	next, ok := c.course.NextLesson(finished)
	if !ok {
		c.finishCourse()
		return
	}
	c.LoadLesson(next)
}

func (c *Controller) finishCourse() {
	c.gen++
	c.pending = false
	c.clearTarget()
	c.setPhase(PhaseCourseComplete)
	c.obs.CourseCompleted(c.lesson.ID)
	c.view.CourseCompleted(CompletionMessage)
}

func (c *Controller) setPhase(p Phase) {
	c.state.Phase = p
	c.view.PhaseChanged(p)
}

func (c *Controller) clearTarget() {
	c.view.TargetTextUpdated("")
	c.view.VisibleKeysUpdated(nil)
	c.view.CursorPositionUpdated(0)
	c.view.CurrentKeyUpdated(0, false)
}

func (c *Controller) publishCursor() {
	c.view.CursorPositionUpdated(typing.CursorPosition(c.state.Typed))
	if step, ok := c.Step(); ok {
		c.publishNextKey(step.Text)
	}
}

func (c *Controller) publishNextKey(target string) {
	c.view.CurrentKeyUpdated(typing.NextExpected(c.state.Typed, target))
}

func (c *Controller) readUint(key string, def int) int {
	v, ok, err := c.store.Uint(context.Background(), key)
	if err != nil {
		c.log.Warn("read progress failed, using default", "key", key, "error", err)
		return def
	}
	if !ok {
		return def
	}
	return int(v)
}

func (c *Controller) persist(key string, v int) {
	if v < 0 {
		v = 0
	}
	if err := c.store.SetUint(context.Background(), key, uint(v)); err != nil {
		c.log.Warn("persist progress failed", "key", key, "value", v, "error", err)
	}
}
