package builder

import (
	"fmt"

	"github.com/alexanderramin/imihigo/internal/domain"
)

// AddSector appends an empty sector to pillar p and returns its id.
func (b *Builder) AddSector(p int) (string, error) {
	pillar, err := b.pillar(p)
	if err != nil {
		return "", err
	}
	s := &domain.Sector{ID: b.newID(), Outcomes: []*domain.Outcome{}}
	pillar.Sectors = append(pillar.Sectors, s)
	return s.ID, nil
}

func (b *Builder) AddOutcome(p, s int) (string, error) {
	sector, err := b.sector(p, s)
	if err != nil {
		return "", err
	}
	oc := &domain.Outcome{ID: b.newID(), Outputs: []*domain.Output{}}
	sector.Outcomes = append(sector.Outcomes, oc)
	return oc.ID, nil
}

func (b *Builder) AddOutput(p, s, oc int) (string, error) {
	outcome, err := b.outcome(p, s, oc)
	if err != nil {
		return "", err
	}
	op := &domain.Output{ID: b.newID(), Indicators: []*domain.Indicator{}}
	outcome.Outputs = append(outcome.Outputs, op)
	return op.ID, nil
}

// AddIndicator appends an indicator with zeroed quarters and target.
func (b *Builder) AddIndicator(p, s, oc, op int) (string, error) {
	output, err := b.output(p, s, oc, op)
	if err != nil {
		return "", err
	}
	ind := domain.NewIndicator(b.newID())
	output.Indicators = append(output.Indicators, ind)
	return ind.ID, nil
}

func (b *Builder) RenamePillar(p int, name string) error {
	pillar, err := b.pillar(p)
	if err != nil {
		return err
	}
	pillar.Name = name
	return nil
}

func (b *Builder) RenameSector(p, s int, name string) error {
	sector, err := b.sector(p, s)
	if err != nil {
		return err
	}
	sector.Name = name
	return nil
}

func (b *Builder) RenameOutcome(p, s, oc int, name string) error {
	outcome, err := b.outcome(p, s, oc)
	if err != nil {
		return err
	}
	outcome.Name = name
	return nil
}

func (b *Builder) RenameOutput(p, s, oc, op int, name string) error {
	output, err := b.output(p, s, oc, op)
	if err != nil {
		return err
	}
	output.Name = name
	return nil
}

// UpdateIndicatorField writes one free-text field of an indicator.
func (b *Builder) UpdateIndicatorField(p, s, oc, op, i int, field domain.IndicatorField, value string) error {
	ind, err := b.indicator(p, s, oc, op, i)
	if err != nil {
		return err
	}
	return ind.SetField(field, value)
}

// SetQuarterTarget sets one quarter's target and re-derives the annual target.
func (b *Builder) SetQuarterTarget(p, s, oc, op, i, q int, target float64) error {
	ind, err := b.indicator(p, s, oc, op, i)
	if err != nil {
		return err
	}
	return ind.SetQuarterTarget(q, target)
}

func (b *Builder) pillar(p int) (*domain.Pillar, error) {
	if err := b.expect(StageBuilding, "edit structure"); err != nil {
		return nil, err
	}
	if p < 0 || p >= len(b.pillars) {
		return nil, fmt.Errorf("pillar %d of %d: %w", p, len(b.pillars), domain.ErrIndexOutOfRange)
	}
	return b.pillars[p], nil
}

func (b *Builder) sector(p, s int) (*domain.Sector, error) {
	pillar, err := b.pillar(p)
	if err != nil {
		return nil, err
	}
	if s < 0 || s >= len(pillar.Sectors) {
		return nil, fmt.Errorf("sector %d of pillar %d: %w", s, p, domain.ErrIndexOutOfRange)
	}
	return pillar.Sectors[s], nil
}

func (b *Builder) outcome(p, s, oc int) (*domain.Outcome, error) {
	sector, err := b.sector(p, s)
	if err != nil {
		return nil, err
	}
	if oc < 0 || oc >= len(sector.Outcomes) {
		return nil, fmt.Errorf("outcome %d of sector %d.%d: %w", oc, p, s, domain.ErrIndexOutOfRange)
	}
	return sector.Outcomes[oc], nil
}

func (b *Builder) output(p, s, oc, op int) (*domain.Output, error) {
	outcome, err := b.outcome(p, s, oc)
	if err != nil {
		return nil, err
	}
	if op < 0 || op >= len(outcome.Outputs) {
		return nil, fmt.Errorf("output %d of outcome %d.%d.%d: %w", op, p, s, oc, domain.ErrIndexOutOfRange)
	}
	return outcome.Outputs[op], nil
}

func (b *Builder) indicator(p, s, oc, op, i int) (*domain.Indicator, error) {
	output, err := b.output(p, s, oc, op)
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= len(output.Indicators) {
		return nil, fmt.Errorf("indicator %d of output %d.%d.%d.%d: %w", i, p, s, oc, op, domain.ErrIndexOutOfRange)
	}
	return output.Indicators[i], nil
}
