package importer

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/alexanderramin/imihigo/internal/domain"
)

type ordered[T any] struct {
	node  T
	order int
	pos   int
}

func sortChildren[T any](items []ordered[T]) []T {
	slices.SortStableFunc(items, func(a, b ordered[T]) int {
		return cmp.Or(cmp.Compare(a.order, b.order), cmp.Compare(a.pos, b.pos))
	})
	out := make([]T, len(items))
	for i, it := range items {
		out[i] = it.node
	}
	return out
}

// Convert transforms a validated ImportSchema into a frozen contract. Every
// node gets a fresh id; refs only link the file together. Siblings are
// ordered by Order and then by position in the file. Call
// ValidateImportSchema first; Convert assumes the schema is valid.
func Convert(schema *ImportSchema, newID func() string) (*domain.Contract, error) {
	if newID == nil {
		newID = domain.NewID
	}

	var pillars []ordered[*domain.Pillar]
	sectors := make(map[string][]ordered[*domain.Sector])
	outcomes := make(map[string][]ordered[*domain.Outcome])
	outputs := make(map[string][]ordered[*domain.Output])
	indicators := make(map[string][]ordered[*domain.Indicator])

	for pos, n := range schema.Nodes {
		parent := ""
		if n.ParentRef != nil {
			parent = *n.ParentRef
		}
		switch domain.NodeKind(n.Kind) {
		case domain.KindPillar:
			pillars = append(pillars, ordered[*domain.Pillar]{&domain.Pillar{ID: n.Ref, Name: n.Name}, n.Order, pos})
		case domain.KindSector:
			sectors[parent] = append(sectors[parent], ordered[*domain.Sector]{&domain.Sector{ID: n.Ref, Name: n.Name}, n.Order, pos})
		case domain.KindOutcome:
			outcomes[parent] = append(outcomes[parent], ordered[*domain.Outcome]{&domain.Outcome{ID: n.Ref, Name: n.Name}, n.Order, pos})
		case domain.KindOutput:
			outputs[parent] = append(outputs[parent], ordered[*domain.Output]{&domain.Output{ID: n.Ref, Name: n.Name}, n.Order, pos})
		default:
			return nil, fmt.Errorf("node %q: unsupported kind %q", n.Ref, n.Kind)
		}
	}

	for pos, in := range schema.Indicators {
		ind := domain.NewIndicator(in.Ref)
		ind.Name = in.Name
		ind.Baseline = in.Baseline
		ind.SourceOfData = in.SourceOfData
		for q, v := range in.Targets {
			ind.Quarters[q].Target = v
		}
		for q, v := range in.Achievements {
			ind.Quarters[q].Achievement = v
		}
		ind.AnnualTarget = ind.Quarters.TargetSum()
		indicators[in.OutputRef] = append(indicators[in.OutputRef], ordered[*domain.Indicator]{ind, in.Order, pos})
	}

	// Link children by ref, then swap refs for fresh ids.
	tree := sortChildren(pillars)
	for _, p := range tree {
		p.Sectors = sortChildren(sectors[p.ID])
		for _, s := range p.Sectors {
			s.Outcomes = sortChildren(outcomes[s.ID])
			for _, oc := range s.Outcomes {
				oc.Outputs = sortChildren(outputs[oc.ID])
				for _, op := range oc.Outputs {
					op.Indicators = sortChildren(indicators[op.ID])
					for _, ind := range op.Indicators {
						ind.ID = newID()
					}
					op.ID = newID()
				}
				oc.ID = newID()
			}
			s.ID = newID()
		}
		p.ID = newID()
	}

	c, err := domain.NewContract(tree)
	if err != nil {
		return nil, fmt.Errorf("freezing imported contract: %w", err)
	}
	return c, nil
}
