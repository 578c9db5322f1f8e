package domain

import "github.com/google/uuid"

// NewID returns a fresh, collision-free node id.
func NewID() string {
	return uuid.New().String()
}

// Default display names used while authoring.
const (
	UnnamedPillar = "Unnamed Pillar"
)

// SeedPillars returns the tree of the built-in example contract.
func SeedPillars() []*Pillar {
	return []*Pillar{
		{
			ID:   "p-1",
			Name: "Economic Development Pillar",
			Sectors: []*Sector{
				{
					ID:   "s-1",
					Name: "Agriculture & Livestock",
					Outcomes: []*Outcome{
						{
							ID:   "oc-1",
							Name: "Increased agricultural productivity",
							Outputs: []*Output{
								{
									ID:   "op-1",
									Name: "Fertilizer distribution improved",
									Indicators: []*Indicator{
										{
											ID:           "ind-1",
											Name:         "Quantity of chemical fertilizers used by farmers (Tons)",
											Baseline:     ParseBaseline("500"),
											SourceOfData: "Ministry of Agriculture Reports",
											AnnualTarget: 1000,
											Quarters: Quarters{
												{Target: 250, Achievement: 240},
												{Target: 250, Achievement: 260},
												{Target: 250, Achievement: 100},
												{Target: 250, Achievement: 0},
											},
										},
									},
								},
							},
						},
					},
				},
			},
		},
	}
}

// SeedContract returns the built-in example contract used when no stored
// templates exist.
func SeedContract() *Contract {
	return MustContract(SeedPillars())
}
