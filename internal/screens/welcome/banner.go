package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/albanobattistella/mecalin/internal/ui/theme"
)

const bannerArt = `
 __  __                    _ _
|  \/  | ___  ___ __ _  | (_)_ __
| |\/| |/ _ \/ __/ _' | | | | '_ \
| |  | |  __/ (_| (_| | | | | | | |
|_|  |_|\___|\___\__,_| |_|_|_| |_|`

const bannerCompact = "M E C A L I N"

// Banner returns the unstyled banner art.
func Banner(compact bool) string {
	if compact {
		return bannerCompact
	}
	return bannerArt
}

// RenderBanner returns the MECALIN banner styled in the primary color.
// Uses a compact fallback for terminals narrower than 40 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	return style.Render(Banner(width < 40))
}
