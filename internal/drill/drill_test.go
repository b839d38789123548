package drill

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albanobattistella/mecalin/internal/lessons"
	"github.com/albanobattistella/mecalin/internal/progression"
)

func testCourse() *lessons.Course {
	return lessons.NewCourse("us", []lessons.Lesson{
		{ID: 1, Title: "Welcome", Description: "Rest your fingers on the home row.", Introduction: true},
		{ID: 2, Title: "Home row", Steps: []lessons.Step{
			{ID: 1, Text: "fj fj", Repetitions: 2},
			{ID: 2, Text: "dk", Repetitions: 1},
		}},
	})
}

func drill(t *testing.T, input string, opts Options) (Result, string) {
	t.Helper()
	if opts.Course == nil {
		opts.Course = testCourse()
	}
	var out bytes.Buffer
	res, err := Run(context.Background(), strings.NewReader(input), &out, opts)
	require.NoError(t, err)
	return res, out.String()
}

func TestDrillCompletesCourse(t *testing.T) {
	mem := progression.NewMemoryPersistence()
	res, out := drill(t, "\nfj fj\nfj fj\ndk\n", Options{Progress: mem})

	assert.True(t, res.Completed)
	assert.Equal(t, 2, res.Summary.StepsCompleted)
	assert.Equal(t, 0, res.Summary.Mistakes)
	assert.Contains(t, out, "Rest your fingers")
	assert.Contains(t, out, "> fj fj")
	assert.Contains(t, out, "✓ 1/2")
	assert.Contains(t, out, progression.CompletionMessage)
}

func TestDrillReportsMistake(t *testing.T) {
	res, out := drill(t, "fj fk\nfj fj\nfj fj\n", Options{Lesson: 2})

	assert.False(t, res.Completed)
	assert.Equal(t, 1, res.Summary.StepsCompleted)
	assert.Equal(t, 1, res.Summary.Mistakes, "mistakes are reported with the completed step")
	assert.Contains(t, out, `position 5: typed 'k', expected 'j'`)
}

func TestDrillIncompleteLine(t *testing.T) {
	_, out := drill(t, "fj\n", Options{Lesson: 2})
	assert.Contains(t, out, "incomplete, 2 of 5")
}

func TestDrillResumesStoredPosition(t *testing.T) {
	mem := progression.NewMemoryPersistence()
	ctx := context.Background()
	require.NoError(t, mem.SetUint(ctx, progression.KeyCurrentLesson, 2))
	require.NoError(t, mem.SetUint(ctx, progression.KeyCurrentStep, 2))

	res, out := drill(t, "dk\n", Options{Progress: mem})
	assert.True(t, res.Completed)
	assert.Contains(t, out, "(step 2/2)")
}

func TestDrillUnknownLesson(t *testing.T) {
	_, err := Run(context.Background(), strings.NewReader(""), &bytes.Buffer{},
		Options{Course: testCourse(), Lesson: 9})
	assert.ErrorIs(t, err, progression.ErrUnknownLesson)
}

func TestDrillIntroductionNeedsEmptyLine(t *testing.T) {
	res, out := drill(t, "fj fj\n\nfj fj\n", Options{})

	assert.Contains(t, out, "introductions continue on an empty line")
	assert.Equal(t, 0, res.Summary.Mistakes)
	assert.Contains(t, out, "✓ 1/2", "the empty line moved on to the first step")
}

func TestDrillLongLineIsJudged(t *testing.T) {
	long := strings.Repeat("x", 200*1024)
	res, out := drill(t, long+"\nfj fj\nfj fj\n", Options{Lesson: 2})

	assert.Contains(t, out, `position 1: typed 'x', expected 'f'`)
	assert.Equal(t, 1, res.Summary.StepsCompleted)
}
