package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/albanobattistella/mecalin/internal/ui/theme"
)

// Confirm asks a yes/no question. The "No" button is focused first so that
// a stray Enter never triggers the destructive choice.
type Confirm struct {
	Question string
	buttons  [2]Button
	focus    int
}

// NewConfirm creates a confirmation dialog. onYes runs when the learner
// accepts; onNo when they decline.
func NewConfirm(question string, onYes, onNo func() tea.Cmd) Confirm {
	c := Confirm{
		Question: question,
		buttons: [2]Button{
			NewButton("Yes", false, onYes),
			NewButton("No", true, onNo),
		},
		focus: 1,
	}
	return c
}

// Update moves focus with left/right/tab and presses with enter. y and n
// are shortcuts.
func (c Confirm) Update(msg tea.Msg) (Confirm, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "left", "h", "right", "l", "tab":
		c.setFocus(1 - c.focus)
		return c, nil
	case "y":
		c.setFocus(0)
		return c, c.press()
	case "n":
		c.setFocus(1)
		return c, c.press()
	}

	var cmd tea.Cmd
	c.buttons[c.focus], cmd = c.buttons[c.focus].Update(msg)
	return c, cmd
}

// Accepting reports whether the "Yes" button has focus.
func (c Confirm) Accepting() bool {
	return c.focus == 0
}

func (c *Confirm) setFocus(i int) {
	c.focus = i
	for j := range c.buttons {
		c.buttons[j].Active = j == i
	}
}

func (c Confirm) press() tea.Cmd {
	if b := c.buttons[c.focus]; b.OnPress != nil {
		return b.OnPress()
	}
	return nil
}

// View renders the question above the two buttons.
func (c Confirm) View() string {
	question := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(c.Question)
	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		c.buttons[0].View(), "   ", c.buttons[1].View())
	return lipgloss.JoinVertical(lipgloss.Center, question, "", buttons)
}
