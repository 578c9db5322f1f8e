package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrStr(s string) *string { return &s }

func validMinimalSchema() *ImportSchema {
	return &ImportSchema{
		Nodes: []NodeImport{
			{Ref: "p1", Name: "Economy", Kind: "pillar"},
			{Ref: "s1", ParentRef: ptrStr("p1"), Name: "Agriculture", Kind: "sector"},
			{Ref: "oc1", ParentRef: ptrStr("s1"), Name: "Productivity", Kind: "outcome"},
			{Ref: "op1", ParentRef: ptrStr("oc1"), Name: "Fertilizer", Kind: "output"},
		},
		Indicators: []IndicatorImport{
			{Ref: "i1", OutputRef: "op1", Name: "Tons used", Targets: []float64{250, 250, 250, 250}},
		},
	}
}

func errorText(errs []error) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "\n")
}

func TestValidateImportSchema_ValidMinimal(t *testing.T) {
	assert.Empty(t, ValidateImportSchema(validMinimalSchema()))
}

func TestValidateImportSchema_PillarOnly(t *testing.T) {
	schema := &ImportSchema{Nodes: []NodeImport{{Ref: "p1", Name: "Lonely", Kind: "pillar"}}}
	assert.Empty(t, ValidateImportSchema(schema))
}

func TestValidateImportSchema_NoPillar(t *testing.T) {
	errs := ValidateImportSchema(&ImportSchema{})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "at least one pillar")
}

func TestValidateImportSchema_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ImportSchema)
		want   string
	}{
		{
			name:   "missing ref",
			mutate: func(s *ImportSchema) { s.Nodes[1].Ref = "" },
			want:   "nodes[1].ref is required",
		},
		{
			name:   "duplicate node ref",
			mutate: func(s *ImportSchema) { s.Nodes[1].Ref = "p1" },
			want:   `duplicate ref "p1"`,
		},
		{
			name:   "unknown kind",
			mutate: func(s *ImportSchema) { s.Nodes[1].Kind = "department" },
			want:   `nodes[1].kind: invalid value "department"`,
		},
		{
			name:   "indicator as node",
			mutate: func(s *ImportSchema) { s.Nodes[3].Kind = "indicator" },
			want:   `nodes[3].kind: invalid value "indicator"`,
		},
		{
			name:   "pillar with parent",
			mutate: func(s *ImportSchema) { s.Nodes[0].ParentRef = ptrStr("x") },
			want:   "a pillar has no parent",
		},
		{
			name:   "sector without parent",
			mutate: func(s *ImportSchema) { s.Nodes[1].ParentRef = nil },
			want:   "nodes[1].parent_ref is required for a sector",
		},
		{
			name:   "forward parent ref",
			mutate: func(s *ImportSchema) { s.Nodes[1].ParentRef = ptrStr("op1") },
			want:   "must appear earlier",
		},
		{
			name:   "skipped level",
			mutate: func(s *ImportSchema) { s.Nodes[2].ParentRef = ptrStr("p1") },
			want:   "parent of outcome must be sector, got pillar",
		},
		{
			name:   "indicator under outcome",
			mutate: func(s *ImportSchema) { s.Indicators[0].OutputRef = "oc1" },
			want:   `ref "oc1" is outcome, want output`,
		},
		{
			name:   "indicator ref clashes with node",
			mutate: func(s *ImportSchema) { s.Indicators[0].Ref = "op1" },
			want:   `indicators[0].ref: duplicate ref "op1"`,
		},
		{
			name:   "too many quarters",
			mutate: func(s *ImportSchema) { s.Indicators[0].Targets = []float64{1, 2, 3, 4, 5} },
			want:   "at most 4 quarters, got 5",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema := validMinimalSchema()
			tt.mutate(schema)
			errs := ValidateImportSchema(schema)
			require.NotEmpty(t, errs)
			assert.Contains(t, errorText(errs), tt.want)
		})
	}
}

func TestValidateImportSchema_CollectsAllErrors(t *testing.T) {
	schema := validMinimalSchema()
	schema.Nodes[1].Kind = ""
	schema.Indicators[0].OutputRef = ""
	errs := ValidateImportSchema(schema)
	assert.GreaterOrEqual(t, len(errs), 2)
}
