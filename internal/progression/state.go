package progression

// Phase is the controller's state-machine mode.
type Phase int

const (
	PhaseLessonIntro    Phase = iota // Showing a lesson introduction
	PhaseStepIntro                   // Showing a step introduction
	PhaseActiveTyping                // Learner is typing a step
	PhaseLessonComplete              // Transient, between lessons
	PhaseCourseComplete              // Terminal
)

func (p Phase) String() string {
	switch p {
	case PhaseLessonIntro:
		return "lesson-intro"
	case PhaseStepIntro:
		return "step-intro"
	case PhaseActiveTyping:
		return "active-typing"
	case PhaseLessonComplete:
		return "lesson-complete"
	case PhaseCourseComplete:
		return "course-complete"
	default:
		return "unknown"
	}
}

// State is the mutable position of a learner within a course.
type State struct {
	LessonID int

	// StepIndex is 0-based; the persisted step number is StepIndex+1.
	StepIndex int

	// Repetitions counts complete retypings of the current step.
	Repetitions int

	// Typed mirrors the UI's editable buffer.
	Typed string

	Phase Phase

	// Mistakes counts rejected insertions in the current step.
	Mistakes int
}
