package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/imihigo/internal/rollup"
)

// FormatLevelReport renders a level-scoped rollup with its quarter breakdown.
func FormatLevelReport(r rollup.LevelReport) string {
	var b strings.Builder

	if r.SelectedID == "" {
		b.WriteString(Header("All "+string(r.Level)+"s") + "\n")
	} else {
		// Name and id keep their case so the id can be pasted into edits.
		b.WriteString(Header(string(r.Level)) + "\n")
		b.WriteString(fmt.Sprintf("%s %s\n", Bold(OrDash(r.SelectedName)), StyleDim.Render(r.SelectedID)))
	}
	b.WriteString(fmt.Sprintf("%s  %s\n", RenderProgress(r.Progress(), 20), StatusIndicator(r.Status())))
	b.WriteString(Dim(fmt.Sprintf("%d indicators, baseline %s", r.IndicatorCount, Figure(r.Baseline))) + "\n\n")

	headers := []string{"QUARTER", "BASELINE", "TARGET", "ACHIEVEMENT"}
	rows := make([][]string, 0, len(r.Quarters)+1)
	for i, q := range r.Quarters {
		rows = append(rows, []string{fmt.Sprintf("Q%d", i+1), Figure(q.Baseline), Figure(q.Target), Figure(q.Achievement)})
	}
	rows = append(rows, []string{Bold("Annual"), Figure(r.Baseline), Figure(r.AnnualTarget), Figure(r.AnnualAchievement)})
	b.WriteString(RenderTable(headers, rows, AlignLeft, AlignRight, AlignRight, AlignRight))

	return RenderBox("Analytics", b.String())
}

// FormatLevelOptions lists the nodes selectable at a level.
func FormatLevelOptions(level rollup.Level, opts []rollup.Option) string {
	if len(opts) == 0 {
		return Dim(fmt.Sprintf("No %s nodes.", level)) + "\n"
	}
	headers := []string{"ID", "NAME", "TEMPLATE"}
	rows := make([][]string, 0, len(opts))
	for _, o := range opts {
		rows = append(rows, []string{o.ID, OrDash(o.Name), fmt.Sprintf("#%d", o.ContractIndex)})
	}
	return RenderTable(headers, rows)
}
