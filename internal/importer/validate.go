package importer

import (
	"fmt"

	"github.com/alexanderramin/imihigo/internal/domain"
)

// parentKind maps each importable node kind to the kind of its parent.
var parentKind = map[domain.NodeKind]domain.NodeKind{
	domain.KindPillar:  "",
	domain.KindSector:  domain.KindPillar,
	domain.KindOutcome: domain.KindSector,
	domain.KindOutput:  domain.KindOutcome,
}

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	kinds := make(map[string]domain.NodeKind)
	errs = append(errs, validateNodes(schema.Nodes, kinds)...)
	errs = append(errs, validateIndicators(schema.Indicators, kinds)...)

	return errs
}

func validateNodes(nodes []NodeImport, kinds map[string]domain.NodeKind) []error {
	var errs []error
	pillars := 0

	for i, n := range nodes {
		prefix := fmt.Sprintf("nodes[%d]", i)

		if n.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if _, dup := kinds[n.Ref]; dup {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, n.Ref))
		}

		kind := domain.NodeKind(n.Kind)
		want, known := parentKind[kind]
		switch {
		case n.Kind == "":
			errs = append(errs, fmt.Errorf("%s.kind is required", prefix))
		case !known:
			errs = append(errs, fmt.Errorf("%s.kind: invalid value %q", prefix, n.Kind))
		case kind == domain.KindPillar:
			pillars++
			if n.ParentRef != nil && *n.ParentRef != "" {
				errs = append(errs, fmt.Errorf("%s.parent_ref: a pillar has no parent", prefix))
			}
		case n.ParentRef == nil || *n.ParentRef == "":
			errs = append(errs, fmt.Errorf("%s.parent_ref is required for a %s", prefix, kind))
		default:
			got, ok := kinds[*n.ParentRef]
			if !ok {
				errs = append(errs, fmt.Errorf("%s.parent_ref: ref %q not found (must appear earlier in nodes list)", prefix, *n.ParentRef))
			} else if got != want {
				errs = append(errs, fmt.Errorf("%s.parent_ref: parent of %s must be %s, got %s", prefix, kind, want, got))
			}
		}

		if n.Ref != "" && known {
			if _, dup := kinds[n.Ref]; !dup {
				kinds[n.Ref] = kind
			}
		}
	}

	if pillars == 0 {
		errs = append(errs, fmt.Errorf("nodes: at least one pillar is required"))
	}
	return errs
}

func validateIndicators(items []IndicatorImport, kinds map[string]domain.NodeKind) []error {
	var errs []error
	refs := make(map[string]bool)

	for i, ind := range items {
		prefix := fmt.Sprintf("indicators[%d]", i)

		if ind.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if _, dup := kinds[ind.Ref]; dup || refs[ind.Ref] {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, ind.Ref))
		} else {
			refs[ind.Ref] = true
		}

		if ind.OutputRef == "" {
			errs = append(errs, fmt.Errorf("%s.output_ref is required", prefix))
		} else if got, ok := kinds[ind.OutputRef]; !ok {
			errs = append(errs, fmt.Errorf("%s.output_ref: ref %q not found in nodes", prefix, ind.OutputRef))
		} else if got != domain.KindOutput {
			errs = append(errs, fmt.Errorf("%s.output_ref: ref %q is %s, want output", prefix, ind.OutputRef, got))
		}

		if len(ind.Targets) > domain.QuarterCount {
			errs = append(errs, fmt.Errorf("%s.targets: at most %d quarters, got %d", prefix, domain.QuarterCount, len(ind.Targets)))
		}
		if len(ind.Achievements) > domain.QuarterCount {
			errs = append(errs, fmt.Errorf("%s.achievements: at most %d quarters, got %d", prefix, domain.QuarterCount, len(ind.Achievements)))
		}
	}

	return errs
}
