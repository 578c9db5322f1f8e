package domain

import (
	"encoding/json"
	"fmt"
)

// Node is implemented by every level of the contract hierarchy.
type Node interface {
	NodeID() string
	NodeName() string
	Kind() NodeKind
	// EachIndicator calls fn for every indicator at or beneath the node, in
	// document order.
	EachIndicator(fn func(*Indicator))
}

type Pillar struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Sectors []*Sector `json:"sectors"`
}

type Sector struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Outcomes []*Outcome `json:"outcomes"`
}

type Outcome struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Outputs []*Output `json:"outputs"`
}

type Output struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Indicators []*Indicator `json:"indicators"`
}

// Indicator is the leaf of the hierarchy. AnnualTarget is derived from the
// quarter targets whenever those are authored or edited.
type Indicator struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Baseline     Baseline `json:"baseline"`
	SourceOfData string   `json:"sourceOfData"`
	AnnualTarget float64  `json:"annualTarget"`
	Quarters     Quarters `json:"quarters"`
}

// NewIndicator returns an empty indicator with zeroed quarters.
func NewIndicator(id string) *Indicator {
	return &Indicator{ID: id}
}

func (i *Indicator) UnmarshalJSON(data []byte) error {
	type plain Indicator
	var aux struct {
		plain
		AnnualTarget flexFloat `json:"annualTarget"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*i = Indicator(aux.plain)
	i.AnnualTarget = float64(aux.AnnualTarget)
	return nil
}

// TotalAchievement sums the achievements of all four quarters.
func (i *Indicator) TotalAchievement() float64 {
	return i.Quarters.AchievementSum()
}

// SetQuarterTarget replaces one quarter's target and re-derives AnnualTarget.
func (i *Indicator) SetQuarterTarget(q int, target float64) error {
	if err := CheckQuarter(q); err != nil {
		return err
	}
	i.Quarters[q-1].Target = target
	i.AnnualTarget = i.Quarters.TargetSum()
	return nil
}

// SetAchievement replaces one quarter's achievement. AnnualTarget is left
// untouched.
func (i *Indicator) SetAchievement(q int, achievement float64) error {
	if err := CheckQuarter(q); err != nil {
		return err
	}
	i.Quarters[q-1].Achievement = achievement
	return nil
}

// SetField writes one free-text field.
func (i *Indicator) SetField(field IndicatorField, value string) error {
	switch field {
	case FieldName:
		i.Name = value
	case FieldBaseline:
		i.Baseline = ParseBaseline(value)
	case FieldSourceOfData:
		i.SourceOfData = value
	default:
		return fmt.Errorf("field %q: %w", field, ErrUnknownField)
	}
	return nil
}

func (p *Pillar) NodeID() string   { return p.ID }
func (p *Pillar) NodeName() string { return p.Name }
func (p *Pillar) Kind() NodeKind   { return KindPillar }

func (p *Pillar) EachIndicator(fn func(*Indicator)) {
	for _, s := range p.Sectors {
		s.EachIndicator(fn)
	}
}

func (s *Sector) NodeID() string   { return s.ID }
func (s *Sector) NodeName() string { return s.Name }
func (s *Sector) Kind() NodeKind   { return KindSector }

func (s *Sector) EachIndicator(fn func(*Indicator)) {
	for _, oc := range s.Outcomes {
		oc.EachIndicator(fn)
	}
}

func (oc *Outcome) NodeID() string   { return oc.ID }
func (oc *Outcome) NodeName() string { return oc.Name }
func (oc *Outcome) Kind() NodeKind   { return KindOutcome }

func (oc *Outcome) EachIndicator(fn func(*Indicator)) {
	for _, op := range oc.Outputs {
		op.EachIndicator(fn)
	}
}

func (op *Output) NodeID() string   { return op.ID }
func (op *Output) NodeName() string { return op.Name }
func (op *Output) Kind() NodeKind   { return KindOutput }

func (op *Output) EachIndicator(fn func(*Indicator)) {
	for _, ind := range op.Indicators {
		fn(ind)
	}
}

func (i *Indicator) NodeID() string   { return i.ID }
func (i *Indicator) NodeName() string { return i.Name }
func (i *Indicator) Kind() NodeKind   { return KindIndicator }

func (i *Indicator) EachIndicator(fn func(*Indicator)) {
	fn(i)
}

// ClonePillar returns a deep copy of p.
func ClonePillar(p *Pillar) *Pillar {
	out := &Pillar{ID: p.ID, Name: p.Name, Sectors: make([]*Sector, len(p.Sectors))}
	for si, s := range p.Sectors {
		sc := &Sector{ID: s.ID, Name: s.Name, Outcomes: make([]*Outcome, len(s.Outcomes))}
		for oci, oc := range s.Outcomes {
			occ := &Outcome{ID: oc.ID, Name: oc.Name, Outputs: make([]*Output, len(oc.Outputs))}
			for opi, op := range oc.Outputs {
				opc := &Output{ID: op.ID, Name: op.Name, Indicators: make([]*Indicator, len(op.Indicators))}
				for ii, ind := range op.Indicators {
					cp := *ind
					opc.Indicators[ii] = &cp
				}
				occ.Outputs[opi] = opc
			}
			sc.Outcomes[oci] = occ
		}
		out.Sectors[si] = sc
	}
	return out
}
