package lessons

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albanobattistella/mecalin/internal/logging"
)

func TestLoadBuiltInDatasets(t *testing.T) {
	for _, code := range Languages() {
		t.Run(code, func(t *testing.T) {
			c, err := Load(code)
			require.NoError(t, err)
			assert.Equal(t, code, c.Language())
			require.Greater(t, c.Len(), 1)

			first, ok := c.First()
			require.True(t, ok)
			assert.Equal(t, 1, first.ID)
			assert.True(t, first.Introduction, "lesson 1 introduces the course")

			for i, l := range c.Lessons() {
				assert.Equal(t, i+1, l.ID, "lesson ids are consecutive")
				for _, s := range l.Steps {
					assert.GreaterOrEqual(t, s.Repetitions, 1)
					if !s.Introduction {
						assert.NotEmpty(t, s.Text, "lesson %d step %d", l.ID, s.ID)
					}
				}
			}
		})
	}
}

func TestLoadUnsupportedLanguage(t *testing.T) {
	_, err := Load("fr")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedLanguage))
}

func TestLoadOrDefaultFallsBack(t *testing.T) {
	got := LoadOrDefault("fr", logging.Nop())
	want := Default()
	assert.Equal(t, want.Lessons(), got.Lessons())
}

func TestLessonLookup(t *testing.T) {
	c := NewCourse("xx", []Lesson{
		{ID: 1, Title: "one"},
		{ID: 2, Title: "two"},
		{ID: 3, Title: "three"},
	})

	l, ok := c.Lesson(2)
	require.True(t, ok)
	assert.Equal(t, "two", l.Title)

	_, ok = c.Lesson(9)
	assert.False(t, ok)

	next, ok := c.NextLesson(1)
	require.True(t, ok)
	assert.Equal(t, 2, next.ID)

	_, ok = c.NextLesson(3)
	assert.False(t, ok, "end of course")
}

func TestNextLessonStopsAtGap(t *testing.T) {
	c := NewCourse("xx", []Lesson{{ID: 1}, {ID: 2}, {ID: 4}})
	_, ok := c.NextLesson(2)
	assert.False(t, ok)
}

func TestParseNormalizesRepetitions(t *testing.T) {
	raw := []byte(`{"lessons":[{"id":1,"title":"t","description":"d","steps":[
		{"id":1,"text":"aa","repetitions":0},
		{"id":2,"text":"bb"},
		{"id":3,"text":"cc","repetitions":3,"description":"three times"}
	]}]}`)
	c, err := Parse(raw, "xx")
	require.NoError(t, err)

	l, ok := c.Lesson(1)
	require.True(t, ok)
	require.Len(t, l.Steps, 3)
	assert.Equal(t, 1, l.Steps[0].Repetitions)
	assert.Equal(t, 1, l.Steps[1].Repetitions)
	assert.Equal(t, 3, l.Steps[2].Repetitions)
	assert.Equal(t, "", l.Steps[0].DescriptionText())
	assert.Equal(t, "three times", l.Steps[2].DescriptionText())
	assert.False(t, l.Introduction)
}

func TestParseRejectsInvalidDocuments(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"malformed json", `{"lessons": [`},
		{"missing lessons", `{}`},
		{"missing title", `{"lessons":[{"id":1,"description":"d","steps":[]}]}`},
		{"zero lesson id", `{"lessons":[{"id":0,"title":"t","description":"d","steps":[]}]}`},
		{"step text wrong type", `{"lessons":[{"id":1,"title":"t","description":"d","steps":[{"id":1,"text":5}]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.raw), "xx")
			assert.Error(t, err)
		})
	}
}

func TestTypingSteps(t *testing.T) {
	l := Lesson{Steps: []Step{{Introduction: true}, {Text: "a"}, {Text: "b"}}}
	assert.Equal(t, 2, l.TypingSteps())
}
