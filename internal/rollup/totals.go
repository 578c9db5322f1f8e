// Package rollup reduces contract trees into progress figures. Every level,
// from a single indicator to a whole forest of contracts, uses the same
// ratio-of-sums definition: progress = Σachievement / Σtarget * 100.
package rollup

import (
	"math"

	"github.com/alexanderramin/imihigo/internal/domain"
)

// Source is anything that can enumerate indicators: a node at any level, a
// contract, or a Forest.
type Source interface {
	EachIndicator(fn func(*domain.Indicator))
}

// Forest is a set of contracts rolled up together.
type Forest []*domain.Contract

func (f Forest) EachIndicator(fn func(*domain.Indicator)) {
	for _, c := range f {
		if c != nil {
			c.EachIndicator(fn)
		}
	}
}

// Totals holds the summed achievement and target of a subtree.
type Totals struct {
	Achieved float64
	Target   float64
}

func (t Totals) Add(o Totals) Totals {
	return Totals{Achieved: t.Achieved + o.Achieved, Target: t.Target + o.Target}
}

// Progress is Achieved/Target as a percentage, or 0 when there is no target.
func (t Totals) Progress() float64 {
	return Progress(t.Achieved, t.Target)
}

func (t Totals) Status() domain.Status {
	return domain.StatusFor(t.Progress())
}

// Progress returns achieved/target*100. A target of zero or less, or any
// non-finite intermediate, yields 0.
func Progress(achieved, target float64) float64 {
	if target <= 0 {
		return 0
	}
	p := achieved / target * 100
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0
	}
	return p
}

// Of sums every descendant indicator of src: all four quarters of
// achievement against the annual target.
func Of(src Source) Totals {
	var t Totals
	if src == nil {
		return t
	}
	src.EachIndicator(func(ind *domain.Indicator) {
		t.Achieved += ind.TotalAchievement()
		t.Target += ind.AnnualTarget
	})
	return t
}

// QuarterOf restricts Of to quarter q: that quarter's achievement against
// that quarter's target.
func QuarterOf(src Source, q int) (Totals, error) {
	if err := domain.CheckQuarter(q); err != nil {
		return Totals{}, err
	}
	var t Totals
	if src == nil {
		return t, nil
	}
	src.EachIndicator(func(ind *domain.Indicator) {
		t.Achieved += ind.Quarters[q-1].Achievement
		t.Target += ind.Quarters[q-1].Target
	})
	return t, nil
}

// OfNode rolls up the node with the given id. Unknown ids yield zero totals.
func OfNode(c *domain.Contract, id string) Totals {
	if c == nil {
		return Totals{}
	}
	n, ok := c.Node(id)
	if !ok {
		return Totals{}
	}
	return Of(n)
}

// QuarterOfNode is OfNode restricted to quarter q.
func QuarterOfNode(c *domain.Contract, id string, q int) (Totals, error) {
	if err := domain.CheckQuarter(q); err != nil {
		return Totals{}, err
	}
	if c == nil {
		return Totals{}, nil
	}
	n, ok := c.Node(id)
	if !ok {
		return Totals{}, nil
	}
	return QuarterOf(n, q)
}

// Count returns the number of indicators beneath src.
func Count(src Source) int {
	n := 0
	if src == nil {
		return n
	}
	src.EachIndicator(func(*domain.Indicator) { n++ })
	return n
}
