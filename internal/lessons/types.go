package lessons

// Step is a single typing exercise inside a lesson.
type Step struct {
	ID          int      `json:"id"`
	Text        string   `json:"text"`
	Description *string  `json:"description"`
	TargetKeys  []string `json:"target_keys,omitempty"`
	Repetitions int      `json:"repetitions"`

	// Introduction steps only carry descriptive text and need no typing.
	Introduction bool `json:"introduction"`
}

// DescriptionText returns the step description or "" when absent.
func (s Step) DescriptionText() string {
	if s.Description == nil {
		return ""
	}
	return *s.Description
}

// Lesson is a titled unit of ordered steps.
type Lesson struct {
	ID           int      `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	TargetKeys   []string `json:"target_keys,omitempty"`
	Introduction bool     `json:"introduction"`
	Steps        []Step   `json:"steps"`
}

// TypingSteps returns the number of steps that require typing.
func (l Lesson) TypingSteps() int {
	n := 0
	for _, s := range l.Steps {
		if !s.Introduction {
			n++
		}
	}
	return n
}

// dataset mirrors the on-disk JSON document for one language.
type dataset struct {
	Lessons []Lesson `json:"lessons"`
}
