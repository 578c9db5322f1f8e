package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/imihigo/internal/domain"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a bar like [████░░░░]  45.0% for a percentage. The
// bar is capped at full width, the label is not, and the color follows the
// status thresholds.
func RenderProgress(pct float64, width int) string {
	return fmt.Sprintf("[%s] %s", RenderCompactBar(pct, width, false), Percent(pct))
}

// RenderCompactBar renders just the blocks of a progress bar.
func RenderCompactBar(pct float64, width int, dim bool) string {
	width = max(width, 2)
	frac := min(max(pct/100, 0), 1)

	filled := min(int(frac*float64(width)), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	if dim {
		return StyleDim.Render(bar)
	}
	return StatusColor(domain.StatusFor(pct)).Render(bar)
}
