package theme

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
)

// Bar renders a horizontal rate bar of the given cell width followed by the
// percentage.
func Bar(percent float64, width int) string {
	if width < 4 {
		width = 4
	}
	filled := int(float64(width) * percent)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	filledStr := lipgloss.NewStyle().
		Foreground(Secondary).
		Render(strings.Repeat("█", filled))
	emptyStr := lipgloss.NewStyle().
		Foreground(Border).
		Render(strings.Repeat("░", width-filled))

	return filledStr + emptyStr + Rate(percent).Render(fmt.Sprintf(" %3d%%", int(percent*100+0.5)))
}
