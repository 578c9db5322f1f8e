package rollup

import "github.com/alexanderramin/imihigo/internal/domain"

// StatusCounts tallies indicators by their individual status.
type StatusCounts struct {
	OnTrack  int
	Warning  int
	Critical int
}

func (sc *StatusCounts) add(s domain.Status) {
	switch s {
	case domain.StatusOnTrack:
		sc.OnTrack++
	case domain.StatusWarning:
		sc.Warning++
	default:
		sc.Critical++
	}
}

// NodeSummary is the rolled-up view of one node.
type NodeSummary struct {
	ID       string
	Name     string
	Kind     domain.NodeKind
	Totals   Totals
	Progress float64
	Status   domain.Status
}

// Summarize rolls up a single node.
func Summarize(n domain.Node) NodeSummary {
	t := Of(n)
	return NodeSummary{
		ID:       n.NodeID(),
		Name:     n.NodeName(),
		Kind:     n.Kind(),
		Totals:   t,
		Progress: t.Progress(),
		Status:   t.Status(),
	}
}

// Dashboard is the headline view of one contract.
type Dashboard struct {
	Totals         Totals
	Progress       float64
	Status         domain.Status
	IndicatorCount int
	Counts         StatusCounts
	Pillars        []NodeSummary
}

// BuildDashboard computes overall progress, per-indicator status counts and
// the per-pillar breakdown. A nil contract yields an empty dashboard.
func BuildDashboard(c *domain.Contract) Dashboard {
	var d Dashboard
	if c == nil {
		d.Status = domain.StatusFor(0)
		return d
	}
	c.EachIndicator(func(ind *domain.Indicator) {
		t := Of(ind)
		d.Totals = d.Totals.Add(t)
		d.IndicatorCount++
		d.Counts.add(t.Status())
	})
	d.Progress = d.Totals.Progress()
	d.Status = d.Totals.Status()

	for _, p := range c.Pillars() {
		d.Pillars = append(d.Pillars, Summarize(p))
	}
	return d
}

// TreeLine is one node of a rolled-up tree listing.
type TreeLine struct {
	Depth   int
	Summary NodeSummary
}

// Tree lists every node of the contract in document order with its rollup.
func Tree(c *domain.Contract) []TreeLine {
	if c == nil {
		return nil
	}
	var lines []TreeLine
	c.Walk(func(n domain.Node) {
		lines = append(lines, TreeLine{Depth: n.Kind().Depth(), Summary: Summarize(n)})
	})
	return lines
}
