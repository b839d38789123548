// Package drill runs a study session over plain line-oriented I/O. Each
// input line is one attempt at the current target; an empty line
// acknowledges an introduction.
package drill

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/albanobattistella/mecalin/internal/lessons"
	"github.com/albanobattistella/mecalin/internal/logging"
	"github.com/albanobattistella/mecalin/internal/progression"
	"github.com/albanobattistella/mecalin/internal/session"
	"github.com/albanobattistella/mecalin/internal/store"
	"github.com/albanobattistella/mecalin/internal/typing"
)

// maxLineBytes bounds one input line, so a large paste is judged rather
// than aborting the drill.
const maxLineBytes = 1 << 20

// Options configure a drill.
type Options struct {
	Course   *lessons.Course
	Progress progression.Persistence
	Events   store.EventRepo
	Log      *logging.Logger
	// Lesson starts at that lesson instead of the stored position when
	// positive.
	Lesson int
}

// Result summarises a finished drill.
type Result struct {
	Summary session.Summary
	// Completed is true when the course was finished during the drill.
	Completed bool
}

// Run drives the controller from in until the course completes or in is
// exhausted. Prompts and feedback go to out.
func Run(ctx context.Context, in io.Reader, out io.Writer, opts Options) (Result, error) {
	if opts.Log == nil {
		opts.Log = logging.Nop()
	}
	if opts.Course == nil {
		opts.Course = lessons.Default()
	}

	p := &printer{out: out}
	queue := &progression.Queue{}
	sess := session.New(opts.Course.Language(), opts.Events, opts.Log)
	ctrl := progression.New(opts.Course, opts.Progress, p,
		progression.WithScheduler(queue),
		progression.WithObserver(sess),
		progression.WithLogger(opts.Log),
	)

	ctrl.Start()
	if opts.Lesson > 0 {
		if err := ctrl.JumpToLesson(opts.Lesson); err != nil {
			return Result{}, fmt.Errorf("jump to lesson %d: %w", opts.Lesson, err)
		}
	}
	sess.Start(ctrl.State().LessonID)
	defer func() { sess.End(ctrl.State().LessonID) }()

	p.prompt(ctrl)
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for ctrl.Phase() != progression.PhaseCourseComplete && scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return Result{Summary: sess.Summary()}, err
		}
		attempt(ctrl, queue, p, strings.TrimRight(scanner.Text(), "\r"))
		p.prompt(ctrl)
	}
	if err := scanner.Err(); err != nil {
		return Result{Summary: sess.Summary()}, fmt.Errorf("read input: %w", err)
	}

	sess.End(ctrl.State().LessonID)
	return Result{
		Summary:   sess.Summary(),
		Completed: ctrl.Phase() == progression.PhaseCourseComplete,
	}, nil
}

// attempt feeds one line to the controller rune by rune, stopping at the
// first rejection. The deferred correction runs before the next line.
func attempt(ctrl *progression.Controller, queue *progression.Queue, p *printer, line string) {
	switch ctrl.Phase() {
	case progression.PhaseLessonIntro, progression.PhaseStepIntro:
		if line != "" {
			p.printf("  introductions continue on an empty line\n")
			return
		}
		_ = ctrl.OnContinue()
		return
	case progression.PhaseActiveTyping:
	default:
		return
	}

	// Every line retypes the target from scratch.
	if err := ctrl.OnBufferReplaced(""); err != nil {
		return
	}
	step, _ := ctrl.Step()
	for i, r := range []rune(line) {
		d, err := ctrl.OnInsertion(string(r))
		if err != nil {
			return
		}
		if !d.Accepted {
			want, ok := typing.NextExpected(ctrl.State().Typed, step.Text)
			if ok {
				p.printf("  ✗ position %d: typed %q, expected %q\n", i+1, r, want)
			} else {
				p.printf("  ✗ position %d: typed %q past the end\n", i+1, r)
			}
			queue.Drain()
			return
		}
	}

	before := ctrl.State()
	ctrl.OnBufferSettled()
	queue.Drain()

	switch {
	case typing.Classify(line, step.Text) != typing.StatusComplete:
		p.printf("  … incomplete, %d of %d characters\n", len([]rune(line)), len([]rune(step.Text)))
	case ctrl.State().LessonID == before.LessonID && ctrl.State().StepIndex == before.StepIndex:
		p.printf("  ✓ %d/%d\n", ctrl.State().Repetitions, step.Repetitions)
	default:
		p.printf("  ✓ step complete\n")
	}
}

// printer is the presenter for line mode. It keeps what it is told and
// prints a prompt once per input line.
type printer struct {
	out         io.Writer
	title       string
	lessonID    int
	stepNumber  int
	totalSteps  int
	description string
	target      string
	lastHeader  string
	completion  string
}

var _ progression.Presenter = (*printer)(nil)

func (p *printer) printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

func (p *printer) TargetTextUpdated(text string)    { p.target = text }
func (p *printer) CursorPositionUpdated(int)        {}
func (p *printer) CurrentKeyUpdated(rune, bool)     {}
func (p *printer) VisibleKeysUpdated(typing.KeySet) {}
func (p *printer) TitleUpdated(title string)        { p.title = title }
func (p *printer) DescriptionUpdated(text string)   { p.description = text }
func (p *printer) InputReplaced(string)             {}
func (p *printer) PhaseChanged(progression.Phase)   {}
func (p *printer) CourseCompleted(message string)   { p.completion = message }
func (p *printer) SubtitleUpdated(lessonID, stepNumber, totalSteps int) {
	p.lessonID, p.stepNumber, p.totalSteps = lessonID, stepNumber, totalSteps
}

func (p *printer) prompt(ctrl *progression.Controller) {
	header := fmt.Sprintf("Lesson %d: %s", p.lessonID, p.title)
	if p.totalSteps > 0 {
		header += fmt.Sprintf(" (step %d/%d)", p.stepNumber, p.totalSteps)
	}

	switch ctrl.Phase() {
	case progression.PhaseCourseComplete:
		p.printf("\n%s\n", p.completion)
		return
	case progression.PhaseLessonIntro, progression.PhaseStepIntro:
		p.printf("\n%s\n%s\n[press Enter to continue]\n", header, p.description)
	case progression.PhaseActiveTyping:
		if header != p.lastHeader {
			p.printf("\n%s\n", header)
			if p.description != "" {
				p.printf("%s\n", p.description)
			}
		}
		p.printf("> %s\n", p.target)
	}
	p.lastHeader = header
}
