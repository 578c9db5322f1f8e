package formatter

import (
	"strings"

	"github.com/alexanderramin/imihigo/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Palette. Statuses reuse the traffic-light trio.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

func fg(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

var (
	StyleGreen  = fg(ColorGreen)
	StyleYellow = fg(ColorYellow)
	StyleRed    = fg(ColorRed)
	StyleBlue   = fg(ColorBlue)
	StylePurple = fg(ColorPurple)
	StyleDim    = fg(ColorDim)
	StyleHeader = fg(ColorHeader).Bold(true)
	StyleBold   = fg(ColorFg).Bold(true)
	StyleNotice = fg(ColorYellow).Bold(true)
)

var statusStyles = map[domain.Status]lipgloss.Style{
	domain.StatusOnTrack:  StyleGreen,
	domain.StatusWarning:  StyleYellow,
	domain.StatusCritical: StyleRed,
}

// StatusColor returns the style for a progress status; unknown statuses are dim.
func StatusColor(s domain.Status) lipgloss.Style {
	if st, ok := statusStyles[s]; ok {
		return st
	}
	return StyleDim
}

// StatusIndicator renders a dot and the status in capitals, e.g. "● ON TRACK".
func StatusIndicator(s domain.Status) string {
	label := "UNKNOWN"
	if _, ok := statusStyles[s]; ok {
		label = strings.ReplaceAll(string(s), "_", " ")
	}
	return StatusColor(s).Render("● " + label)
}

// Header renders text in capitals over a dim rule of the same width.
func Header(text string) string {
	title := strings.ToUpper(text)
	rule := strings.Repeat("─", lipgloss.Width(title))
	return StyleHeader.Render(title) + "\n" + StyleDim.Render(rule)
}

func Dim(text string) string  { return StyleDim.Render(text) }
func Bold(text string) string { return StyleBold.Render(text) }

// KindBadge labels a hierarchy level in purple.
func KindBadge(k domain.NodeKind) string {
	if k == "" {
		return OrDash("")
	}
	s := string(k)
	return StylePurple.Render(strings.ToUpper(s[:1]) + s[1:])
}
