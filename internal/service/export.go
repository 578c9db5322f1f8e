package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/imihigo/internal/domain"
	"github.com/alexanderramin/imihigo/internal/rollup"
)

// ExportHeader is the column row of the CSV report.
var ExportHeader = []string{
	"Pillar", "Sector", "Outcome", "Output", "Indicator",
	"Baseline", "Source of Data", "Annual Target",
	"Q1 Target", "Q1 Achievement", "Q2 Target", "Q2 Achievement",
	"Q3 Target", "Q3 Achievement", "Q4 Target", "Q4 Achievement",
	"Total Achievement", "Progress %",
}

// ExportRows flattens a contract into one row per indicator, in document
// order. The header is not included.
func ExportRows(c *domain.Contract) [][]string {
	if c == nil {
		return nil
	}
	rows := make([][]string, 0)
	for _, r := range c.IndicatorRows() {
		ind := r.Indicator
		total := ind.TotalAchievement()
		row := []string{
			r.Pillar.Name, r.Sector.Name, r.Outcome.Name, r.Output.Name, ind.Name,
			ind.Baseline.String(), ind.SourceOfData, formatNumber(ind.AnnualTarget),
		}
		for _, q := range ind.Quarters {
			row = append(row, formatNumber(q.Target), formatNumber(q.Achievement))
		}
		row = append(row,
			formatNumber(total),
			strconv.FormatFloat(rollup.Progress(total, ind.AnnualTarget), 'f', 2, 64),
		)
		rows = append(rows, row)
	}
	return rows
}

// RenderCSV renders the header unquoted followed by the rows with every field
// double-quoted and embedded quotes doubled. Lines are joined with "\n".
func RenderCSV(header []string, rows [][]string) string {
	var b strings.Builder
	b.WriteString(strings.Join(header, ","))
	for _, row := range rows {
		b.WriteByte('\n')
		for i, field := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(field, `"`, `""`))
			b.WriteByte('"')
		}
	}
	return b.String()
}

// ExportFileName names the report after the UTC date of now.
func ExportFileName(now time.Time) string {
	return "imihigo_report_" + now.UTC().Format(time.DateOnly) + ".csv"
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
