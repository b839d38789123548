package progression

import (
	"context"
	"errors"
	"testing"

	"github.com/albanobattistella/mecalin/internal/lessons"
	"github.com/albanobattistella/mecalin/internal/typing"
)

// recordingPresenter captures the latest value of every update.
type recordingPresenter struct {
	target      string
	cursor      int
	key         rune
	keyOK       bool
	visible     typing.KeySet
	title       string
	subtitle    [3]int
	description string
	input       string
	inputWrites int
	phases      []Phase
	completed   string
}

func (p *recordingPresenter) TargetTextUpdated(text string) { p.target = text }
func (p *recordingPresenter) CursorPositionUpdated(i int)   { p.cursor = i }
func (p *recordingPresenter) CurrentKeyUpdated(k rune, ok bool) {
	p.key, p.keyOK = k, ok
}
func (p *recordingPresenter) VisibleKeysUpdated(keys typing.KeySet) { p.visible = keys }
func (p *recordingPresenter) TitleUpdated(title string)             { p.title = title }
func (p *recordingPresenter) SubtitleUpdated(lessonID, step, total int) {
	p.subtitle = [3]int{lessonID, step, total}
}
func (p *recordingPresenter) DescriptionUpdated(text string) { p.description = text }
func (p *recordingPresenter) InputReplaced(text string) {
	p.input = text
	p.inputWrites++
}
func (p *recordingPresenter) PhaseChanged(phase Phase)   { p.phases = append(p.phases, phase) }
func (p *recordingPresenter) CourseCompleted(msg string) { p.completed = msg }

type stepEvent struct {
	lesson, step, reps, mistakes int
}

type recordingObserver struct {
	steps          []stepEvent
	lessons        []int
	courseFinished bool
}

func (o *recordingObserver) StepCompleted(lessonID, stepNumber, reps, mistakes int) {
	o.steps = append(o.steps, stepEvent{lessonID, stepNumber, reps, mistakes})
}
func (o *recordingObserver) LessonCompleted(id int) { o.lessons = append(o.lessons, id) }
func (o *recordingObserver) CourseCompleted(int)    { o.courseFinished = true }

type harness struct {
	c     *Controller
	view  *recordingPresenter
	obs   *recordingObserver
	store *MemoryPersistence
	queue *Queue
}

func newHarness(t *testing.T, course *lessons.Course) *harness {
	t.Helper()
	h := &harness{
		view:  &recordingPresenter{},
		obs:   &recordingObserver{},
		store: NewMemoryPersistence(),
		queue: &Queue{},
	}
	h.c = New(course, h.store, h.view, WithScheduler(h.queue), WithObserver(h.obs))
	return h
}

// typeText feeds text one rune at a time the way the UI does: validate,
// settle accepted insertions, then let deferred corrections run.
func (h *harness) typeText(t *testing.T, text string) {
	t.Helper()
	for _, r := range text {
		d, err := h.c.OnInsertion(string(r))
		if err != nil {
			t.Fatalf("OnInsertion(%q): %v", r, err)
		}
		if d.Accepted {
			h.c.OnBufferSettled()
		}
		h.queue.Drain()
	}
}

func (h *harness) stored(key string) uint {
	v, _, _ := h.store.Uint(context.Background(), key)
	return v
}

func singleStepCourse(n int) *lessons.Course {
	ls := make([]lessons.Lesson, 0, n)
	for i := 1; i <= n; i++ {
		ls = append(ls, lessons.Lesson{
			ID:    i,
			Title: "Lesson",
			Steps: []lessons.Step{{ID: 1, Text: "fj", Repetitions: 1}},
		})
	}
	return lessons.NewCourse("xx", ls)
}

func theCatCourse() *lessons.Course {
	return lessons.NewCourse("xx", []lessons.Lesson{
		{
			ID:    1,
			Title: "Cats",
			Steps: []lessons.Step{
				{ID: 1, Text: "the cat", Repetitions: 2},
				{ID: 2, Text: "a dog", Repetitions: 1},
			},
		},
		{ID: 2, Title: "More", Steps: []lessons.Step{{ID: 1, Text: "x", Repetitions: 1}}},
	})
}

func TestStart_DefaultsToFirstLessonAndStep(t *testing.T) {
	h := newHarness(t, theCatCourse())
	h.c.Start()

	s := h.c.State()
	if s.LessonID != 1 || s.StepIndex != 0 {
		t.Fatalf("position = lesson %d step %d, want lesson 1 step 0", s.LessonID, s.StepIndex)
	}
	if s.Phase != PhaseActiveTyping {
		t.Errorf("phase = %v, want %v", s.Phase, PhaseActiveTyping)
	}
	if h.view.target != "the cat" {
		t.Errorf("target = %q, want %q", h.view.target, "the cat")
	}
	if h.view.title != "Cats" {
		t.Errorf("title = %q, want %q", h.view.title, "Cats")
	}
	if h.view.subtitle != [3]int{1, 1, 2} {
		t.Errorf("subtitle = %v, want [1 1 2]", h.view.subtitle)
	}
	if !h.view.keyOK || h.view.key != 't' {
		t.Errorf("current key = %q/%v, want 't'", h.view.key, h.view.keyOK)
	}
	if got := h.view.visible.String(); got != " aceht" {
		t.Errorf("visible keys = %q, want %q", got, " aceht")
	}
	if got := h.stored(KeyCurrentLesson); got != 1 {
		t.Errorf("stored lesson = %d, want 1", got)
	}
	if got := h.stored(KeyCurrentStep); got != 1 {
		t.Errorf("stored step = %d, want 1", got)
	}
}

func TestTheCatExample(t *testing.T) {
	h := newHarness(t, theCatCourse())
	h.c.Start()

	// "the bat": 'b' is rejected at index 4 and the buffer reverts to "the ".
	h.typeText(t, "the b")
	s := h.c.State()
	if s.Typed != "the " {
		t.Fatalf("typed = %q after correction, want %q", s.Typed, "the ")
	}
	if h.view.input != "the " {
		t.Errorf("input = %q, want %q", h.view.input, "the ")
	}
	if h.view.cursor != 4 {
		t.Errorf("cursor = %d, want 4", h.view.cursor)
	}
	if s.Mistakes != 1 {
		t.Errorf("mistakes = %d, want 1", s.Mistakes)
	}

	// Finishing the text completes the first repetition.
	h.typeText(t, "cat")
	s = h.c.State()
	if s.Repetitions != 1 || s.StepIndex != 0 {
		t.Fatalf("after first repetition: reps %d step %d, want 1 and 0", s.Repetitions, s.StepIndex)
	}
	if s.Typed != "" || h.view.input != "" {
		t.Errorf("buffer not cleared: typed %q input %q", s.Typed, h.view.input)
	}
	if s.Phase != PhaseActiveTyping {
		t.Errorf("phase = %v, want %v", s.Phase, PhaseActiveTyping)
	}

	// Second repetition advances exactly once.
	h.typeText(t, "the cat")
	s = h.c.State()
	if s.StepIndex != 1 || s.Repetitions != 0 {
		t.Fatalf("after second repetition: step %d reps %d, want 1 and 0", s.StepIndex, s.Repetitions)
	}
	if h.view.target != "a dog" {
		t.Errorf("target = %q, want %q", h.view.target, "a dog")
	}
	if got := h.stored(KeyCurrentStep); got != 2 {
		t.Errorf("stored step = %d, want 2", got)
	}
	if len(h.obs.steps) != 1 || h.obs.steps[0] != (stepEvent{1, 1, 2, 1}) {
		t.Errorf("step events = %+v, want one {1 1 2 1}", h.obs.steps)
	}
}

func TestMistakeMidWordRevertsWholeWord(t *testing.T) {
	h := newHarness(t, theCatCourse())
	h.c.Start()

	h.typeText(t, "the ca")
	d, err := h.c.OnInsertion("x")
	if err != nil {
		t.Fatalf("OnInsertion: %v", err)
	}
	if d.Accepted {
		t.Fatal("expected rejection")
	}
	if d.CorrectedPrefix != "the " {
		t.Errorf("corrected prefix = %q, want %q", d.CorrectedPrefix, "the ")
	}

	// The buffer is untouched until the deferred task runs.
	if got := h.c.State().Typed; got != "the ca" {
		t.Errorf("typed before drain = %q, want %q", got, "the ca")
	}
	if h.queue.Len() != 1 {
		t.Fatalf("queued tasks = %d, want 1", h.queue.Len())
	}
	h.queue.Drain()
	if got := h.c.State().Typed; got != "the " {
		t.Errorf("typed after drain = %q, want %q", got, "the ")
	}
}

func TestMistakeInFirstWordRevertsToEmpty(t *testing.T) {
	h := newHarness(t, theCatCourse())
	h.c.Start()

	h.typeText(t, "thx")
	if got := h.c.State().Typed; got != "" {
		t.Errorf("typed = %q, want empty", got)
	}
	if h.view.cursor != 0 {
		t.Errorf("cursor = %d, want 0", h.view.cursor)
	}
}

func TestInsertionsWhileCorrectionPending(t *testing.T) {
	h := newHarness(t, theCatCourse())
	h.c.Start()

	h.typeText(t, "the ")
	if _, err := h.c.OnInsertion("x"); err != nil {
		t.Fatal(err)
	}
	d, err := h.c.OnInsertion("c")
	if err != nil {
		t.Fatal(err)
	}
	if d.Accepted {
		t.Error("insertion accepted while a correction is pending")
	}
	if h.queue.Len() != 1 {
		t.Errorf("queued tasks = %d, want 1", h.queue.Len())
	}
	if got := h.c.State().Mistakes; got != 1 {
		t.Errorf("mistakes = %d, want 1", got)
	}

	h.queue.Drain()
	h.typeText(t, "cat")
	if got := h.c.State().Repetitions; got != 1 {
		t.Errorf("repetitions = %d, want 1", got)
	}
}

func TestStaleCorrectionIsDropped(t *testing.T) {
	h := newHarness(t, theCatCourse())
	h.c.Start()

	h.typeText(t, "the ")
	if _, err := h.c.OnInsertion("x"); err != nil {
		t.Fatal(err)
	}
	if err := h.c.JumpToLesson(2); err != nil {
		t.Fatal(err)
	}
	writes := h.view.inputWrites
	h.queue.Drain()

	if h.view.inputWrites != writes {
		t.Error("stale correction rewrote the input")
	}
	if got := h.c.State().Typed; got != "" {
		t.Errorf("typed = %q, want empty", got)
	}
}

func TestPasteIsValidatedAsUnit(t *testing.T) {
	h := newHarness(t, theCatCourse())
	h.c.Start()

	d, err := h.c.OnInsertion("the cab")
	if err != nil {
		t.Fatal(err)
	}
	if d.Accepted {
		t.Fatal("expected rejection of the whole fragment")
	}
	h.queue.Drain()
	if got := h.c.State().Typed; got != "the " {
		t.Errorf("typed = %q, want the correctly pasted word kept", got)
	}
	if got := h.c.State().Mistakes; got != 1 {
		t.Errorf("mistakes = %d, want 1", got)
	}

	d, _ = h.c.OnInsertion("cat")
	if !d.Accepted {
		t.Fatal("expected acceptance")
	}
	h.c.OnBufferSettled()
	if got := h.c.State().Repetitions; got != 1 {
		t.Errorf("repetitions = %d, want 1", got)
	}
}

func TestCompletingLessonLoadsNext(t *testing.T) {
	h := newHarness(t, singleStepCourse(3))
	h.c.Start()

	h.typeText(t, "fj")

	s := h.c.State()
	if s.LessonID != 2 {
		t.Fatalf("lesson = %d, want 2", s.LessonID)
	}
	if s.StepIndex != 0 || s.Repetitions != 0 || s.Typed != "" {
		t.Errorf("state not reset: %+v", s)
	}
	if got := h.stored(KeyCurrentLesson); got != 2 {
		t.Errorf("stored lesson = %d, want 2", got)
	}
	if got := h.stored(KeyCurrentStep); got != 1 {
		t.Errorf("stored step = %d, want 1", got)
	}
	if len(h.obs.lessons) != 1 || h.obs.lessons[0] != 1 {
		t.Errorf("lesson events = %v, want [1]", h.obs.lessons)
	}
}

func TestCourseCompletion(t *testing.T) {
	h := newHarness(t, singleStepCourse(3))
	h.store.SetUint(context.Background(), KeyCurrentLesson, 3)
	h.c.Start()

	h.typeText(t, "fj")

	if got := h.c.Phase(); got != PhaseCourseComplete {
		t.Fatalf("phase = %v, want %v", got, PhaseCourseComplete)
	}
	if h.view.completed != CompletionMessage {
		t.Errorf("completion message = %q", h.view.completed)
	}
	if !h.obs.courseFinished {
		t.Error("observer not told about course completion")
	}
	if _, err := h.c.OnInsertion("f"); !errors.Is(err, ErrInvalidPhase) {
		t.Errorf("insertion after completion err = %v, want ErrInvalidPhase", err)
	}
}

func TestLessonComplete_IsTransient(t *testing.T) {
	h := newHarness(t, singleStepCourse(2))
	h.c.Start()
	h.typeText(t, "fj")

	var sawLessonComplete bool
	for _, p := range h.view.phases {
		if p == PhaseLessonComplete {
			sawLessonComplete = true
		}
	}
	if !sawLessonComplete {
		t.Error("expected a transient lesson-complete phase")
	}
	if got := h.c.Phase(); got != PhaseActiveTyping {
		t.Errorf("phase = %v, want %v", got, PhaseActiveTyping)
	}
}

func introCourse() *lessons.Course {
	desc := "Rest your fingers."
	return lessons.NewCourse("xx", []lessons.Lesson{
		{ID: 1, Title: "Welcome", Description: "Hello", Introduction: true},
		{
			ID:    2,
			Title: "Home row",
			Steps: []lessons.Step{
				{ID: 1, Description: &desc, Introduction: true},
				{ID: 2, Text: "ff", Repetitions: 1},
			},
		},
	})
}

func TestIntroductionFlow(t *testing.T) {
	h := newHarness(t, introCourse())
	h.c.Start()

	if got := h.c.Phase(); got != PhaseLessonIntro {
		t.Fatalf("phase = %v, want %v", got, PhaseLessonIntro)
	}
	if h.view.description != "Hello" {
		t.Errorf("description = %q, want %q", h.view.description, "Hello")
	}
	if h.view.subtitle != [3]int{1, 0, 0} {
		t.Errorf("subtitle = %v, want [1 0 0]", h.view.subtitle)
	}
	if _, err := h.c.OnInsertion("f"); !errors.Is(err, ErrInvalidPhase) {
		t.Errorf("insertion during intro err = %v, want ErrInvalidPhase", err)
	}

	if err := h.c.OnContinue(); err != nil {
		t.Fatalf("continue: %v", err)
	}
	if got := h.c.Phase(); got != PhaseStepIntro {
		t.Fatalf("phase = %v, want %v", got, PhaseStepIntro)
	}
	if h.view.description != "Rest your fingers." {
		t.Errorf("description = %q", h.view.description)
	}

	if err := h.c.OnContinue(); err != nil {
		t.Fatalf("continue: %v", err)
	}
	if got := h.c.Phase(); got != PhaseActiveTyping {
		t.Fatalf("phase = %v, want %v", got, PhaseActiveTyping)
	}
	if got := h.c.State().StepIndex; got != 1 {
		t.Errorf("step = %d, want 1", got)
	}
	if err := h.c.OnContinue(); !errors.Is(err, ErrInvalidPhase) {
		t.Errorf("continue while typing err = %v, want ErrInvalidPhase", err)
	}
}

func TestStart_ResumesStoredPosition(t *testing.T) {
	h := newHarness(t, theCatCourse())
	ctx := context.Background()
	h.store.SetUint(ctx, KeyCurrentLesson, 1)
	h.store.SetUint(ctx, KeyCurrentStep, 2)
	h.c.Start()

	s := h.c.State()
	if s.LessonID != 1 || s.StepIndex != 1 {
		t.Errorf("position = lesson %d step %d, want lesson 1 step 1", s.LessonID, s.StepIndex)
	}
	if h.view.target != "a dog" {
		t.Errorf("target = %q, want %q", h.view.target, "a dog")
	}
}

func TestStart_ClampsCorruptPosition(t *testing.T) {
	stepless := lessons.NewCourse("xx", []lessons.Lesson{
		{ID: 1, Title: "Empty"},
		{ID: 2, Title: "Pairs", Steps: []lessons.Step{
			{ID: 1, Text: "aa", Repetitions: 1},
			{ID: 2, Text: "bb", Repetitions: 1},
			{ID: 3, Text: "cc", Repetitions: 1},
		}},
	})

	tests := []struct {
		name       string
		course     *lessons.Course
		lesson     uint
		step       uint
		wantLesson int
		wantStep   int
	}{
		{"step past end", theCatCourse(), 1, 99, 1, 1},
		{"step zero", theCatCourse(), 1, 0, 1, 0},
		{"unknown lesson", theCatCourse(), 42, 2, 1, 0},
		{"lesson zero", theCatCourse(), 0, 1, 1, 0},
		{"stored lesson has no steps", stepless, 1, 3, 2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, tt.course)
			ctx := context.Background()
			h.store.SetUint(ctx, KeyCurrentLesson, tt.lesson)
			h.store.SetUint(ctx, KeyCurrentStep, tt.step)
			h.c.Start()

			s := h.c.State()
			if s.LessonID != tt.wantLesson || s.StepIndex != tt.wantStep {
				t.Errorf("position = lesson %d step %d, want lesson %d step %d",
					s.LessonID, s.StepIndex, tt.wantLesson, tt.wantStep)
			}
			if got := h.stored(KeyCurrentStep); int(got) != tt.wantStep+1 {
				t.Errorf("stored step = %d, want %d", got, tt.wantStep+1)
			}
		})
	}
}

func TestPersistenceFailuresDoNotInterrupt(t *testing.T) {
	h := newHarness(t, singleStepCourse(2))
	h.store.Err = errors.New("disk full")
	h.c.Start()

	h.typeText(t, "fj")
	if got := h.c.State().LessonID; got != 2 {
		t.Errorf("lesson = %d, want 2", got)
	}
}

func TestEmptyTargetNeverCompletes(t *testing.T) {
	course := lessons.NewCourse("xx", []lessons.Lesson{
		{ID: 1, Steps: []lessons.Step{{ID: 1, Text: "", Repetitions: 1}}},
	})
	h := newHarness(t, course)
	h.c.Start()

	h.c.OnBufferSettled()
	if got := h.c.State().Repetitions; got != 0 {
		t.Errorf("repetitions = %d, want 0", got)
	}
	if got := h.c.Phase(); got != PhaseActiveTyping {
		t.Errorf("phase = %v, want %v", got, PhaseActiveTyping)
	}
}

func TestLessonWithoutStepsIsSkipped(t *testing.T) {
	course := lessons.NewCourse("xx", []lessons.Lesson{
		{ID: 1},
		{ID: 2, Steps: []lessons.Step{{ID: 1, Text: "a", Repetitions: 1}}},
	})
	h := newHarness(t, course)
	h.c.Start()
	if got := h.c.State().LessonID; got != 2 {
		t.Errorf("lesson = %d, want 2", got)
	}
}

func TestEmptyCourseCompletesImmediately(t *testing.T) {
	h := newHarness(t, lessons.NewCourse("xx", nil))
	h.c.Start()
	if got := h.c.Phase(); got != PhaseCourseComplete {
		t.Errorf("phase = %v, want %v", got, PhaseCourseComplete)
	}
}

func TestResetReturnsToFirstLesson(t *testing.T) {
	h := newHarness(t, singleStepCourse(3))
	h.c.Start()
	h.typeText(t, "fj")
	h.typeText(t, "fj")

	var r Resettable = h.c
	r.Reset()
	if got := h.c.State().LessonID; got != 1 {
		t.Errorf("lesson = %d, want 1", got)
	}
	if got := r.Phase(); got != PhaseActiveTyping {
		t.Errorf("phase = %v, want %v", got, PhaseActiveTyping)
	}
}

func TestJumpToUnknownLesson(t *testing.T) {
	h := newHarness(t, singleStepCourse(1))
	h.c.Start()
	if err := h.c.JumpToLesson(7); !errors.Is(err, ErrUnknownLesson) {
		t.Errorf("err = %v, want ErrUnknownLesson", err)
	}
}

func TestBufferReplacedResyncsCursor(t *testing.T) {
	h := newHarness(t, theCatCourse())
	h.c.Start()
	h.typeText(t, "the c")

	// Backspace in the UI.
	if err := h.c.OnBufferReplaced("the "); err != nil {
		t.Fatal(err)
	}
	h.c.OnBufferSettled()
	if h.view.cursor != 4 {
		t.Errorf("cursor = %d, want 4", h.view.cursor)
	}
	if h.view.key != 'c' {
		t.Errorf("next key = %q, want 'c'", h.view.key)
	}
}
