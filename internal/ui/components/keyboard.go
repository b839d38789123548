package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/albanobattistella/mecalin/internal/keyboard"
	"github.com/albanobattistella/mecalin/internal/typing"
	"github.com/albanobattistella/mecalin/internal/ui/theme"
)

// rowIndent staggers the rows like a physical keyboard.
var rowIndent = []int{0, 3, 4, 6}

// Keyboard draws a layout as rows of key caps.
type Keyboard struct {
	Layout *keyboard.Layout

	// Visible is the focus-mode key set. Keys outside it are drawn without
	// a label; nil shows every label.
	Visible typing.KeySet

	// Current is the next expected character; HasCurrent is false when no
	// key should be highlighted.
	Current    rune
	HasCurrent bool
}

// NewKeyboard creates a diagram for l with every label visible.
func NewKeyboard(l *keyboard.Layout) Keyboard {
	return Keyboard{Layout: l}
}

// Highlight sets the key to highlight.
func (k *Keyboard) Highlight(r rune, ok bool) {
	k.Current, k.HasCurrent = r, ok
}

func (k Keyboard) isCurrent(key keyboard.Key) bool {
	return k.HasCurrent && key.Matches(k.Current)
}

func (k Keyboard) cap(key keyboard.Key) string {
	label := key.Label()
	switch {
	case k.isCurrent(key):
		return theme.KeyCurrent.Render(label)
	case k.Visible.Contains(key.LabelRune()):
		return theme.Key.Render(label)
	default:
		return theme.KeyHidden.Render(strings.Repeat("·", lipgloss.Width(label)))
	}
}

// View renders the diagram, one line per row plus the space bar.
func (k Keyboard) View() string {
	if k.Layout == nil {
		return ""
	}

	lines := make([]string, 0, len(k.Layout.Keys)+1)
	for i, row := range k.Layout.Keys {
		caps := make([]string, 0, len(row))
		for _, key := range row {
			caps = append(caps, k.cap(key))
		}
		indent := 0
		if i < len(rowIndent) {
			indent = rowIndent[i]
		}
		lines = append(lines, strings.Repeat(" ", indent)+strings.Join(caps, " "))
	}

	style := theme.KeyHidden
	switch {
	case k.isCurrent(k.Layout.Space):
		style = theme.KeyCurrent
	case k.Visible.Contains(' '):
		style = theme.Key
	}
	bar := style.Render(lipgloss.PlaceHorizontal(24, lipgloss.Center, "space"))
	lines = append(lines, strings.Repeat(" ", rowIndent[len(rowIndent)-1]+6)+bar)

	return strings.Join(lines, "\n")
}

// FingerHint names the finger for the current key, or "" when there is
// nothing to type or the layout cannot produce it.
func (k Keyboard) FingerHint() string {
	if !k.HasCurrent || k.Layout == nil {
		return ""
	}
	f, ok := k.Layout.Finger(k.Current)
	if !ok {
		return ""
	}
	if f == keyboard.BothThumbs {
		return "Use either thumb"
	}
	return "Use your " + f.Label() + " finger"
}
