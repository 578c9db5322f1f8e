package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/imihigo/internal/rollup"
	"github.com/alexanderramin/imihigo/internal/templates"
)

// FormatTemplateList renders every saved template with its headline figures.
// The selected one is marked with an arrow.
func FormatTemplateList(repo templates.Repository) string {
	if repo.Len() == 0 {
		return Dim("No templates saved. Run 'imihigo new' to author one.") + "\n"
	}
	current, hasCurrent := repo.CurrentIndex()

	headers := []string{"", "#", "PILLARS", "INDICATORS", "PROGRESS", "STATUS"}
	rows := make([][]string, 0, repo.Len())
	for i, c := range repo.Contracts() {
		d := rollup.BuildDashboard(c)
		names := make([]string, 0, len(d.Pillars))
		for _, p := range d.Pillars {
			names = append(names, OrDash(p.Name))
		}
		marker := " "
		if hasCurrent && i == current {
			marker = StyleGreen.Render("▶")
		}
		rows = append(rows, []string{
			marker,
			fmt.Sprintf("%d", i),
			strings.Join(names, ", "),
			fmt.Sprintf("%d", d.IndicatorCount),
			RenderProgress(d.Progress, statusProgressBarWidth),
			StatusIndicator(d.Status),
		})
	}
	out := RenderTable(headers, rows, AlignLeft, AlignRight, AlignLeft, AlignRight)
	if !hasCurrent {
		out += "\n" + Dim("No template selected.") + "\n"
	}
	return out
}

// FormatLastSaved renders the time of the last write in local time.
func FormatLastSaved(ts *time.Time) string {
	if ts == nil {
		return Dim("Not saved yet.")
	}
	return Dim("Last saved " + ts.Local().Format("2006-01-02 15:04"))
}
