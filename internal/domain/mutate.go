package domain

import (
	"fmt"
	"slices"
)

// WithAchievement returns a contract in which one quarter's achievement of
// the indicator is replaced. AnnualTarget is not recomputed.
//
// An unknown indicator id is a no-op: the receiver is returned unchanged. A
// quarter outside 1..4 is an error.
func (c *Contract) WithAchievement(indicatorID string, quarter int, achievement float64) (*Contract, error) {
	if err := CheckQuarter(quarter); err != nil {
		return c, err
	}
	return c.withIndicator(indicatorID, func(ind *Indicator) error {
		return ind.SetAchievement(quarter, achievement)
	})
}

// WithQuarterTarget returns a contract in which one quarter's target of the
// indicator is replaced and AnnualTarget re-derived from the four targets.
func (c *Contract) WithQuarterTarget(indicatorID string, quarter int, target float64) (*Contract, error) {
	if err := CheckQuarter(quarter); err != nil {
		return c, err
	}
	return c.withIndicator(indicatorID, func(ind *Indicator) error {
		return ind.SetQuarterTarget(quarter, target)
	})
}

// WithIndicatorField returns a contract in which one free-text field of the
// indicator is replaced.
func (c *Contract) WithIndicatorField(indicatorID string, field IndicatorField, value string) (*Contract, error) {
	if !ValidIndicatorFields[field] {
		return c, fmt.Errorf("field %q: %w", field, ErrUnknownField)
	}
	return c.withIndicator(indicatorID, func(ind *Indicator) error {
		return ind.SetField(field, value)
	})
}

// WithName returns a contract in which the node with the given id, at any
// level, carries a new name. Unknown ids are a no-op.
func (c *Contract) WithName(nodeID, name string) *Contract {
	loc, ok := c.index[nodeID]
	if !ok {
		return c
	}
	pc := c.copyPath(loc.Path)
	switch loc.Kind {
	case KindPillar:
		pc.pillar.Name = name
	case KindSector:
		pc.sector.Name = name
	case KindOutcome:
		pc.outcome.Name = name
	case KindOutput:
		pc.output.Name = name
	case KindIndicator:
		pc.indicator.Name = name
	}
	return &Contract{pillars: pc.pillars, index: c.index}
}

func (c *Contract) withIndicator(id string, fn func(*Indicator) error) (*Contract, error) {
	loc, ok := c.index[id]
	if !ok || loc.Kind != KindIndicator {
		return c, nil
	}
	pc := c.copyPath(loc.Path)
	if err := fn(pc.indicator); err != nil {
		return c, err
	}
	return &Contract{pillars: pc.pillars, index: c.index}, nil
}

// pathCopy holds fresh copies of every node on one root-to-node path. Only
// the levels covered by the path are set.
type pathCopy struct {
	pillars   []*Pillar
	pillar    *Pillar
	sector    *Sector
	outcome   *Outcome
	output    *Output
	indicator *Indicator
}

// copyPath shallow-copies the pillar slice and every node along path. Child
// slices are cloned only on the levels the path descends through, so all
// siblings off the path stay shared with the receiver.
func (c *Contract) copyPath(path []int) pathCopy {
	var pc pathCopy
	pc.pillars = slices.Clone(c.pillars)

	p := *pc.pillars[path[0]]
	pc.pillars[path[0]] = &p
	pc.pillar = &p
	if len(path) == 1 {
		return pc
	}

	p.Sectors = slices.Clone(p.Sectors)
	s := *p.Sectors[path[1]]
	p.Sectors[path[1]] = &s
	pc.sector = &s
	if len(path) == 2 {
		return pc
	}

	s.Outcomes = slices.Clone(s.Outcomes)
	oc := *s.Outcomes[path[2]]
	s.Outcomes[path[2]] = &oc
	pc.outcome = &oc
	if len(path) == 3 {
		return pc
	}

	oc.Outputs = slices.Clone(oc.Outputs)
	op := *oc.Outputs[path[3]]
	oc.Outputs[path[3]] = &op
	pc.output = &op
	if len(path) == 4 {
		return pc
	}

	op.Indicators = slices.Clone(op.Indicators)
	ind := *op.Indicators[path[4]]
	op.Indicators[path[4]] = &ind
	pc.indicator = &ind
	return pc
}
