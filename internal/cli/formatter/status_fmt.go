package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/imihigo/internal/domain"
	"github.com/alexanderramin/imihigo/internal/rollup"
)

const statusProgressBarWidth = 10

// FormatDashboard renders the headline view of one contract: overall
// progress, indicator status counts and the per-pillar breakdown.
func FormatDashboard(title string, d rollup.Dashboard) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s  %s\n", RenderProgress(d.Progress, 20), StatusIndicator(d.Status)))
	b.WriteString(Dim(fmt.Sprintf("%s achieved of %s targeted across %d indicators",
		Figure(d.Totals.Achieved), Figure(d.Totals.Target), d.IndicatorCount)) + "\n\n")

	headers := []string{"PILLAR", "ACHIEVED", "TARGET", "PROGRESS", "STATUS"}
	rows := make([][]string, 0, len(d.Pillars))
	for _, p := range d.Pillars {
		rows = append(rows, []string{
			Bold(OrDash(p.Name)),
			Figure(p.Totals.Achieved),
			Figure(p.Totals.Target),
			RenderProgress(p.Progress, statusProgressBarWidth),
			StatusIndicator(p.Status),
		})
	}
	b.WriteString(RenderTable(headers, rows, AlignLeft, AlignRight, AlignRight))

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s, %s, %s\n",
		StyleRed.Render(fmt.Sprintf("%d Critical", d.Counts.Critical)),
		StyleYellow.Render(fmt.Sprintf("%d Warning", d.Counts.Warning)),
		StyleGreen.Render(fmt.Sprintf("%d On Track", d.Counts.OnTrack)),
	))
	if d.IndicatorCount > 0 {
		share := float64(d.Counts.OnTrack) / float64(d.IndicatorCount) * 100
		b.WriteString(Dim(fmt.Sprintf("%.0f%% of indicators currently on target.", share)) + "\n")
	}

	return RenderBox(title, b.String())
}

// FormatContractTree renders every node of a contract with its rollup.
func FormatContractTree(lines []rollup.TreeLine) string {
	items := make([]TreeItem, len(lines))
	for i, l := range lines {
		s := l.Summary
		title := OrDash(s.Name) + " " + StyleDim.Render(s.ID)
		items[i] = TreeItem{
			Title:  title,
			Level:  l.Depth,
			IsLast: isLastSibling(lines, i),
			Status: s.Status,
			Detail: fmt.Sprintf("%s / %s  %s", Figure(s.Totals.Achieved), Figure(s.Totals.Target), Percent(s.Progress)),
		}
	}
	return RenderTree(items)
}

func isLastSibling(lines []rollup.TreeLine, i int) bool {
	depth := lines[i].Depth
	for _, l := range lines[i+1:] {
		if l.Depth == depth {
			return false
		}
		if l.Depth < depth {
			return true
		}
	}
	return true
}

// FormatIndicator renders one indicator's quarters, as shown after an edit.
func FormatIndicator(ind *domain.Indicator) string {
	var b strings.Builder
	headers := []string{"QUARTER", "TARGET", "ACHIEVEMENT", "PROGRESS"}
	rows := make([][]string, 0, domain.QuarterCount+1)
	for i, q := range ind.Quarters {
		p := rollup.Progress(q.Achievement, q.Target)
		rows = append(rows, []string{
			fmt.Sprintf("Q%d", i+1),
			Figure(q.Target),
			Figure(q.Achievement),
			StatusColor(domain.StatusFor(p)).Render(Percent(p)),
		})
	}
	t := rollup.Of(ind)
	rows = append(rows, []string{
		Bold("Annual"),
		Figure(ind.AnnualTarget),
		Figure(t.Achieved),
		StatusColor(t.Status()).Render(Percent(t.Progress())),
	})
	b.WriteString(Dim(fmt.Sprintf("Baseline: %s   Source: %s", OrDash(ind.Baseline.String()), OrDash(ind.SourceOfData))) + "\n\n")
	b.WriteString(RenderTable(headers, rows, AlignLeft, AlignRight, AlignRight, AlignRight))
	return RenderBox(OrDash(ind.Name), b.String())
}
