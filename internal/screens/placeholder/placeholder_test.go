package placeholder

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albanobattistella/mecalin/internal/router"
)

func TestPlaceholder(t *testing.T) {
	p := New("Videos", "Tutorials play in the desktop edition.")
	assert.Equal(t, "Videos", p.Title())
	assert.Contains(t, p.View(100, 30), "desktop edition")

	_, cmd := p.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}
