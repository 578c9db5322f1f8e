package rollup

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/imihigo/internal/domain"
)

// ErrUnknownLevel indicates a level selector outside indicator/output/outcome.
var ErrUnknownLevel = errors.New("unknown rollup level")

// Level selects the hierarchy level for ad-hoc analytics.
type Level string

const (
	LevelIndicator Level = "indicator"
	LevelOutput    Level = "output"
	LevelOutcome   Level = "outcome"
)

// Levels lists the selectable levels, narrowest first.
var Levels = []Level{LevelIndicator, LevelOutput, LevelOutcome}

func ParseLevel(s string) (Level, error) {
	for _, l := range Levels {
		if string(l) == s {
			return l, nil
		}
	}
	return "", fmt.Errorf("level %q: %w", s, ErrUnknownLevel)
}

// Kind maps the level to the node kind it selects.
func (l Level) Kind() domain.NodeKind {
	switch l {
	case LevelIndicator:
		return domain.KindIndicator
	case LevelOutput:
		return domain.KindOutput
	case LevelOutcome:
		return domain.KindOutcome
	default:
		return ""
	}
}

// QuarterReport is one quarter of a LevelReport.
type QuarterReport struct {
	// Baseline is the aggregate baseline divided evenly over the quarters. It
	// is a display convenience, not a stored value.
	Baseline    float64
	Target      float64
	Achievement float64
}

// LevelReport aggregates the indicators under one selected node, or under
// every node of the level when nothing is selected.
type LevelReport struct {
	Level             Level
	SelectedID        string
	SelectedName      string
	IndicatorCount    int
	Baseline          float64
	AnnualTarget      float64
	AnnualAchievement float64
	Quarters          [domain.QuarterCount]QuarterReport
}

// Progress is AnnualAchievement/AnnualTarget as a percentage.
func (r LevelReport) Progress() float64 {
	return Progress(r.AnnualAchievement, r.AnnualTarget)
}

func (r LevelReport) Status() domain.Status {
	return domain.StatusFor(r.Progress())
}

// ByLevel aggregates the forest at the given level. An empty selectedID
// covers every node of that level across all contracts. An id that does not
// name a node of that level yields a report with zero figures.
func ByLevel(forest Forest, level Level, selectedID string) (LevelReport, error) {
	kind := level.Kind()
	if kind == "" {
		return LevelReport{}, fmt.Errorf("level %q: %w", level, ErrUnknownLevel)
	}
	report := LevelReport{Level: level, SelectedID: selectedID}

	if selectedID == "" {
		// Every indicator sits beneath exactly one node of each level, so the
		// whole-forest view is the sum over all indicators.
		accumulate(&report, forest)
		return report, nil
	}

	for _, c := range forest {
		if c == nil {
			continue
		}
		n, ok := c.Node(selectedID)
		if !ok || n.Kind() != kind {
			continue
		}
		report.SelectedName = n.NodeName()
		accumulate(&report, n)
		break
	}
	return report, nil
}

func accumulate(r *LevelReport, src Source) {
	src.EachIndicator(func(ind *domain.Indicator) {
		r.IndicatorCount++
		r.Baseline += ind.Baseline.Value
		r.AnnualTarget += ind.AnnualTarget
		r.AnnualAchievement += ind.TotalAchievement()
		for i, q := range ind.Quarters {
			r.Quarters[i].Target += q.Target
			r.Quarters[i].Achievement += q.Achievement
		}
	})
	for i := range r.Quarters {
		r.Quarters[i].Baseline = r.Baseline / domain.QuarterCount
	}
}

// Option is a selectable node at some level.
type Option struct {
	ID            string
	Name          string
	ContractIndex int
}

// Options lists every node of the level across the forest, in contract order
// and then document order.
func Options(forest Forest, level Level) ([]Option, error) {
	kind := level.Kind()
	if kind == "" {
		return nil, fmt.Errorf("level %q: %w", level, ErrUnknownLevel)
	}
	var out []Option
	for ci, c := range forest {
		if c == nil {
			continue
		}
		for _, n := range c.NodesOfKind(kind) {
			out = append(out, Option{ID: n.NodeID(), Name: n.NodeName(), ContractIndex: ci})
		}
	}
	return out, nil
}
