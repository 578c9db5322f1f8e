package testutil

import (
	"fmt"
	"math/rand"
	"strconv"

	"github.com/alexanderramin/imihigo/internal/domain"
	"github.com/google/uuid"
)

// Figures is one number per quarter, quarter 1 first.
type Figures [domain.QuarterCount]float64

func Targets(q1, q2, q3, q4 float64) Figures      { return Figures{q1, q2, q3, q4} }
func Achievements(q1, q2, q3, q4 float64) Figures { return Figures{q1, q2, q3, q4} }

// contractFixture accumulates a tree. Each option appends to the most recently
// added node of the level above, creating default ancestors when needed.
type contractFixture struct {
	pillars []*domain.Pillar
}

type ContractOption func(*contractFixture)

type IndicatorOption func(*domain.Indicator)

func WithBaseline(raw string) IndicatorOption {
	return func(ind *domain.Indicator) {
		ind.Baseline = domain.ParseBaseline(raw)
	}
}

func WithSource(source string) IndicatorOption {
	return func(ind *domain.Indicator) {
		ind.SourceOfData = source
	}
}

func WithPillar(id string) ContractOption {
	return func(f *contractFixture) {
		f.pillars = append(f.pillars, &domain.Pillar{ID: id, Name: "Pillar " + id, Sectors: []*domain.Sector{}})
	}
}

func WithSector(id string) ContractOption {
	return func(f *contractFixture) {
		p := f.pillar()
		p.Sectors = append(p.Sectors, &domain.Sector{ID: id, Name: "Sector " + id, Outcomes: []*domain.Outcome{}})
	}
}

func WithOutcome(id string) ContractOption {
	return func(f *contractFixture) {
		s := f.sector()
		s.Outcomes = append(s.Outcomes, &domain.Outcome{ID: id, Name: "Outcome " + id, Outputs: []*domain.Output{}})
	}
}

func WithOutput(id string) ContractOption {
	return func(f *contractFixture) {
		oc := f.outcome()
		oc.Outputs = append(oc.Outputs, &domain.Output{ID: id, Name: "Output " + id, Indicators: []*domain.Indicator{}})
	}
}

// WithIndicator appends an indicator whose annual target is the sum of the
// quarter targets.
func WithIndicator(id string, targets, achievements Figures, opts ...IndicatorOption) ContractOption {
	return func(f *contractFixture) {
		op := f.output()
		ind := domain.NewIndicator(id)
		ind.Name = "Indicator " + id
		for i := range ind.Quarters {
			ind.Quarters[i] = domain.QuarterlyData{Target: targets[i], Achievement: achievements[i]}
		}
		ind.AnnualTarget = ind.Quarters.TargetSum()
		for _, opt := range opts {
			opt(ind)
		}
		op.Indicators = append(op.Indicators, ind)
	}
}

func (f *contractFixture) pillar() *domain.Pillar {
	if len(f.pillars) == 0 {
		WithPillar(uuid.New().String())(f)
	}
	return f.pillars[len(f.pillars)-1]
}

func (f *contractFixture) sector() *domain.Sector {
	p := f.pillar()
	if len(p.Sectors) == 0 {
		WithSector(uuid.New().String())(f)
	}
	return p.Sectors[len(p.Sectors)-1]
}

func (f *contractFixture) outcome() *domain.Outcome {
	s := f.sector()
	if len(s.Outcomes) == 0 {
		WithOutcome(uuid.New().String())(f)
	}
	return s.Outcomes[len(s.Outcomes)-1]
}

func (f *contractFixture) output() *domain.Output {
	oc := f.outcome()
	if len(oc.Outputs) == 0 {
		WithOutput(uuid.New().String())(f)
	}
	return oc.Outputs[len(oc.Outputs)-1]
}

// NewTestContract builds a contract from options. With no options it holds a
// single empty pillar.
func NewTestContract(opts ...ContractOption) *domain.Contract {
	f := &contractFixture{}
	for _, opt := range opts {
		opt(f)
	}
	f.pillar()
	return domain.MustContract(f.pillars)
}

// RandomContract builds a contract of random shape and figures. Some
// indicators get zero targets and non-numeric baselines.
func RandomContract(rng *rand.Rand) *domain.Contract {
	var opts []ContractOption
	nPillars := rng.Intn(3) + 1
	for p := 0; p < nPillars; p++ {
		opts = append(opts, WithPillar(uuid.New().String()))
		nSectors := rng.Intn(3)
		for s := 0; s < nSectors; s++ {
			opts = append(opts, WithSector(uuid.New().String()))
			nOutcomes := rng.Intn(3) + 1
			for oc := 0; oc < nOutcomes; oc++ {
				opts = append(opts, WithOutcome(uuid.New().String()))
				nOutputs := rng.Intn(3) + 1
				for op := 0; op < nOutputs; op++ {
					opts = append(opts, WithOutput(uuid.New().String()))
					nIndicators := rng.Intn(4)
					for i := 0; i < nIndicators; i++ {
						var tg, ach Figures
						for q := range tg {
							if rng.Intn(4) > 0 {
								tg[q] = float64(rng.Intn(200))
							}
							ach[q] = float64(rng.Intn(250))
						}
						baseline := strconv.Itoa(rng.Intn(1000))
						if rng.Intn(5) == 0 {
							baseline = fmt.Sprintf("about %d", rng.Intn(10))
						}
						opts = append(opts, WithIndicator(uuid.New().String(), tg, ach, WithBaseline(baseline)))
					}
				}
			}
		}
	}
	return NewTestContract(opts...)
}
