package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/albanobattistella/mecalin/internal/ui/theme"
)

// TypingInput wraps bubbles/textinput as the learner's editable buffer.
// Text is only ever appended through Append or SetValue so that every
// insertion can be validated first; Edit forwards deletion keys.
type TypingInput struct {
	Model textinput.Model
}

// NewTypingInput creates a focused, unlimited single-line input.
func NewTypingInput(placeholder string) TypingInput {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.Placeholder = placeholder
	ti.Focus()

	s := ti.Styles()
	s.Focused.Prompt = s.Focused.Prompt.Foreground(theme.Primary)
	s.Focused.Text = s.Focused.Text.Foreground(theme.Text)
	s.Focused.Placeholder = s.Focused.Placeholder.Foreground(theme.TextDim)
	ti.SetStyles(s)

	return TypingInput{Model: ti}
}

// Init returns the initial command.
func (t TypingInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Edit applies a deletion key to the buffer and reports whether the value
// changed. Keys that would insert text are ignored.
func (t TypingInput) Edit(msg tea.KeyPressMsg) (TypingInput, bool, tea.Cmd) {
	switch msg.String() {
	case "backspace", "ctrl+h", "ctrl+w", "alt+backspace", "ctrl+u":
	default:
		return t, false, nil
	}
	before := t.Model.Value()
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	t.Model.CursorEnd()
	return t, t.Model.Value() != before, cmd
}

// Append adds an already validated fragment.
func (t *TypingInput) Append(fragment string) {
	t.SetValue(t.Model.Value() + fragment)
}

// SetValue overwrites the buffer and moves the cursor to its end.
func (t *TypingInput) SetValue(s string) {
	t.Model.SetValue(s)
	t.Model.CursorEnd()
}

// SetWidth sets the visible width of the buffer.
func (t *TypingInput) SetWidth(w int) {
	t.Model.SetWidth(w)
}

// View renders the text input.
func (t TypingInput) View() string {
	return t.Model.View()
}

// Value returns the current input value.
func (t TypingInput) Value() string {
	return t.Model.Value()
}
