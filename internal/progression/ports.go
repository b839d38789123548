package progression

import (
	"context"
	"sync"

	"github.com/albanobattistella/mecalin/internal/typing"
)

// Persistence keys.
const (
	KeyCurrentLesson = "current-lesson"
	KeyCurrentStep   = "current-step"
)

// Persistence is the key/value store holding the learner's position.
// Reads happen once when a session starts; writes on every lesson or step
// load. Write failures are logged by the controller and never surface.
type Persistence interface {
	// Uint returns the stored value and whether the key exists.
	Uint(ctx context.Context, key string) (uint, bool, error)
	SetUint(ctx context.Context, key string, v uint) error
}

// Presenter receives everything the UI needs to render a session.
type Presenter interface {
	TargetTextUpdated(text string)
	CursorPositionUpdated(index int)
	// CurrentKeyUpdated carries the next expected key; ok is false when
	// nothing more is expected.
	CurrentKeyUpdated(key rune, ok bool)
	// VisibleKeysUpdated carries the focus-mode key set; nil shows all keys.
	VisibleKeysUpdated(keys typing.KeySet)
	TitleUpdated(title string)
	// SubtitleUpdated reports the position. stepNumber and totalSteps are 0
	// for introduction lessons.
	SubtitleUpdated(lessonID, stepNumber, totalSteps int)
	DescriptionUpdated(text string)
	// InputReplaced asks the UI to overwrite its editable buffer.
	InputReplaced(text string)
	PhaseChanged(phase Phase)
	CourseCompleted(message string)
}

// Scheduler posts a task to run on a later turn of the event loop.
type Scheduler interface {
	Defer(task func())
}

// Observer is notified of completed units of work.
type Observer interface {
	StepCompleted(lessonID, stepNumber, repetitions, mistakes int)
	LessonCompleted(lessonID int)
	CourseCompleted(lastLessonID int)
}

// Resettable is the capability shared by every practice view.
type Resettable interface {
	Reset()
	Phase() Phase
}

// NopPresenter ignores every update. Embed it to implement a subset.
type NopPresenter struct{}

func (NopPresenter) TargetTextUpdated(string)         {}
func (NopPresenter) CursorPositionUpdated(int)        {}
func (NopPresenter) CurrentKeyUpdated(rune, bool)     {}
func (NopPresenter) VisibleKeysUpdated(typing.KeySet) {}
func (NopPresenter) TitleUpdated(string)              {}
func (NopPresenter) SubtitleUpdated(int, int, int)    {}
func (NopPresenter) DescriptionUpdated(string)        {}
func (NopPresenter) InputReplaced(string)             {}
func (NopPresenter) PhaseChanged(Phase)               {}
func (NopPresenter) CourseCompleted(string)           {}

type nopObserver struct{}

func (nopObserver) StepCompleted(int, int, int, int) {}
func (nopObserver) LessonCompleted(int)              {}
func (nopObserver) CourseCompleted(int)              {}

// Queue is a FIFO Scheduler drained explicitly by its owner.
type Queue struct {
	tasks []func()
}

func (q *Queue) Defer(task func()) {
	q.tasks = append(q.tasks, task)
}

// Len returns the number of pending tasks.
func (q *Queue) Len() int {
	return len(q.tasks)
}

// Drain runs pending tasks in order, including tasks they defer, and
// returns how many ran.
func (q *Queue) Drain() int {
	n := 0
	for len(q.tasks) > 0 {
		task := q.tasks[0]
		q.tasks = q.tasks[1:]
		task()
		n++
	}
	return n
}

// MemoryPersistence keeps values in a map. Useful for tests and for
// sessions that should not be saved.
type MemoryPersistence struct {
	mu     sync.Mutex
	values map[string]uint

	// Err, when set, is returned by every call.
	Err error
}

// NewMemoryPersistence returns an empty store.
func NewMemoryPersistence() *MemoryPersistence {
	return &MemoryPersistence{values: make(map[string]uint)}
}

func (m *MemoryPersistence) Uint(_ context.Context, key string) (uint, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, false, m.Err
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryPersistence) SetUint(_ context.Context, key string, v uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.values[key] = v
	return nil
}
