package lessons

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/albanobattistella/mecalin/internal/logging"
)

// DefaultLanguage is the dataset used when nothing else is available.
const DefaultLanguage = "us"

// ErrUnsupportedLanguage is returned by Load for codes without a dataset.
var ErrUnsupportedLanguage = errors.New("unsupported course language")

//go:embed data/*.json
var datasets embed.FS

var languages = []string{"es", "us"}

// Course is an ordered, read-only collection of lessons for one language.
type Course struct {
	language string
	lessons  []Lesson
}

// NewCourse builds a course from lessons, normalising step repetitions.
func NewCourse(language string, lessons []Lesson) *Course {
	normalize(lessons)
	return &Course{language: language, lessons: lessons}
}

// Languages returns the codes that have a built-in dataset.
func Languages() []string {
	return slices.Clone(languages)
}

// Load returns the built-in course for a two-letter language code.
func Load(code string) (*Course, error) {
	if !slices.Contains(languages, code) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, code)
	}
	raw, err := datasets.ReadFile("data/" + code + ".json")
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", code, err)
	}
	return Parse(raw, code)
}

// Parse validates and decodes a course document.
func Parse(raw []byte, language string) (*Course, error) {
	if err := Validate(raw); err != nil {
		return nil, err
	}
	var ds dataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	return NewCourse(language, ds.Lessons), nil
}

// Default returns the fallback course: the built-in default dataset, or an
// empty course if even that cannot be parsed. It never fails.
func Default() *Course {
	c, err := Load(DefaultLanguage)
	if err != nil {
		return &Course{language: DefaultLanguage}
	}
	return c
}

// LoadOrDefault loads the course for code and substitutes Default on any
// error. Load errors are logged, never surfaced to the learner.
func LoadOrDefault(code string, log *logging.Logger) *Course {
	c, err := Load(code)
	if err != nil {
		log.Warn("course load failed, using default course", "language", code, "error", err)
		return Default()
	}
	return c
}

// normalize applies dataset defaults that JSON decoding cannot express.
func normalize(lessons []Lesson) {
	for i := range lessons {
		for j := range lessons[i].Steps {
			if lessons[i].Steps[j].Repetitions < 1 {
				lessons[i].Steps[j].Repetitions = 1
			}
		}
	}
}

// Language returns the code this course was loaded for.
func (c *Course) Language() string {
	return c.language
}

// Lessons returns all lessons in dataset order.
func (c *Course) Lessons() []Lesson {
	return c.lessons
}

// Len returns the number of lessons.
func (c *Course) Len() int {
	return len(c.lessons)
}

// Lesson looks a lesson up by id.
func (c *Course) Lesson(id int) (Lesson, bool) {
	for _, l := range c.lessons {
		if l.ID == id {
			return l, true
		}
	}
	return Lesson{}, false
}

// NextLesson returns the lesson with id+1. A false result marks the end of
// the course. Lesson ids are expected to be consecutive; a gap ends the
// course early.
func (c *Course) NextLesson(id int) (Lesson, bool) {
	return c.Lesson(id + 1)
}

// First returns the first lesson in dataset order.
func (c *Course) First() (Lesson, bool) {
	if len(c.lessons) == 0 {
		return Lesson{}, false
	}
	return c.lessons[0], true
}
