package formatter

import (
	"strings"

	"github.com/alexanderramin/imihigo/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// TreeItem is one node of a rendered tree, listed in depth-first order.
type TreeItem struct {
	Title  string
	Level  int
	IsLast bool
	Status domain.Status
	// Detail, when set, is shown as a badge aligned to the widest row.
	Detail string
}

// RenderTree draws items with box-drawing connectors and a status dot per node.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	rows := make([]string, len(items))
	width := 0
	// continues[l] is set while the open node at level l has siblings below.
	continues := make([]bool, 0, 8)
	for i, it := range items {
		var prefix strings.Builder
		for l := 1; l < it.Level; l++ {
			if l < len(continues) && continues[l] {
				prefix.WriteString("│  ")
			} else {
				prefix.WriteString("   ")
			}
		}
		switch {
		case it.Level == 0:
		case it.IsLast:
			prefix.WriteString("└─ ")
		default:
			prefix.WriteString("├─ ")
		}
		for len(continues) <= it.Level {
			continues = append(continues, false)
		}
		continues[it.Level] = !it.IsLast

		rows[i] = prefix.String() + StatusColor(it.Status).Render("● ") + it.Title
		width = max(width, lipgloss.Width(rows[i]))
	}

	var out strings.Builder
	for i, row := range rows {
		out.WriteString(row)
		if d := items[i].Detail; d != "" {
			out.WriteString(strings.Repeat(" ", width-lipgloss.Width(row)+2))
			out.WriteString(StyleBlue.Render("[ " + d + " ]"))
		}
		out.WriteByte('\n')
	}
	return out.String()
}
