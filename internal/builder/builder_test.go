package builder

import (
	"fmt"
	"testing"

	"github.com/alexanderramin/imihigo/internal/domain"
	"github.com/alexanderramin/imihigo/internal/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialIDs() Option {
	n := 0
	return WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	})
}

// newBuilding returns a builder in the structure step with the given names.
func newBuilding(t *testing.T, names ...string) *Builder {
	t.Helper()
	b := New(sequentialIDs())
	require.NoError(t, b.SetCountInt(len(names)))
	require.NoError(t, b.ConfirmCount())
	for i, n := range names {
		require.NoError(t, b.SetName(i, n))
	}
	require.NoError(t, b.ConfirmNames())
	return b
}

func TestBuilder_UnnamedPillarScenario(t *testing.T) {
	b := New()
	require.NoError(t, b.SetCount("2"))
	require.NoError(t, b.ConfirmCount())
	require.NoError(t, b.SetName(0, "A"))
	require.NoError(t, b.SetName(1, ""))
	require.NoError(t, b.ConfirmNames())

	_, err := b.AddSector(0)
	require.NoError(t, err)
	_, err = b.AddOutcome(0, 0)
	require.NoError(t, err)
	_, err = b.AddOutput(0, 0, 0)
	require.NoError(t, err)
	_, err = b.AddIndicator(0, 0, 0, 0)
	require.NoError(t, err)

	repo, idx, err := b.Complete(templates.New(nil, nil))
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	pillars := repo.Current().Pillars()
	require.Len(t, pillars, 2)
	assert.Equal(t, "A", pillars[0].Name)
	assert.Equal(t, "Unnamed Pillar", pillars[1].Name)
	assert.NotEqual(t, pillars[0].ID, pillars[1].ID)
	assert.Empty(t, pillars[1].Sectors)

	ind := pillars[0].Sectors[0].Outcomes[0].Outputs[0].Indicators[0]
	assert.Equal(t, 0.0, ind.AnnualTarget)
	assert.Equal(t, domain.Quarters{}, ind.Quarters)
	assert.Equal(t, "", ind.Name)
}

func TestSetCount_Coercion(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"3", 3},
		{" 4 ", 4},
		{"", 1},
		{"abc", 1},
		{"0", 1},
		{"-2", 1},
		{"2.9", 2},
		{"5 pillars", 5},
		{"1e9", MaxPillarCount},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			b := New()
			require.NoError(t, b.SetCount(tt.raw))
			assert.Equal(t, tt.want, b.Count())
		})
	}
}

func TestConfirmCount_PrefillsAndKeepsTypedNames(t *testing.T) {
	b := New()
	require.NoError(t, b.SetCountInt(2))
	require.NoError(t, b.ConfirmCount())
	assert.Equal(t, []string{"Pillar 1", "Pillar 2"}, b.Names())

	require.NoError(t, b.SetName(0, "Economy"))
	require.NoError(t, b.Back())
	require.NoError(t, b.SetCountInt(3))
	require.NoError(t, b.ConfirmCount())
	assert.Equal(t, []string{"Economy", "Pillar 2", "Pillar 3"}, b.Names())
}

func TestBuilder_StageViolations(t *testing.T) {
	b := New()
	assert.ErrorIs(t, b.SetName(0, "x"), ErrBuilderState)
	assert.ErrorIs(t, b.ConfirmNames(), ErrBuilderState)
	_, err := b.AddSector(0)
	assert.ErrorIs(t, err, ErrBuilderState)
	_, _, err = b.Complete(templates.New(nil, nil))
	assert.ErrorIs(t, err, ErrBuilderState)

	b = newBuilding(t, "A")
	assert.ErrorIs(t, b.SetCountInt(2), ErrBuilderState)
	assert.ErrorIs(t, b.ConfirmCount(), ErrBuilderState)

	_, _, err = b.Complete(templates.New(nil, nil))
	require.NoError(t, err)
	assert.Equal(t, StageComplete, b.Stage())
	_, err = b.AddSector(0)
	assert.ErrorIs(t, err, ErrBuilderState)
}

func TestBuilder_IndexOutOfRange(t *testing.T) {
	b := newBuilding(t, "A")

	_, err := b.AddSector(1)
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)
	_, err = b.AddOutcome(0, 0)
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)

	_, err = b.AddSector(0)
	require.NoError(t, err)
	_, err = b.AddOutput(0, 0, 0)
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)
	_, err = b.AddIndicator(0, -1, 0, 0)
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)
	assert.ErrorIs(t, b.SetQuarterTarget(0, 0, 0, 0, 0, 1, 5), domain.ErrIndexOutOfRange)
	assert.ErrorIs(t, b.RenameOutput(0, 0, 0, 0, "x"), domain.ErrIndexOutOfRange)

	b2 := New()
	require.NoError(t, b2.ConfirmCount())
	assert.ErrorIs(t, b2.SetName(1, "x"), domain.ErrIndexOutOfRange)
}

func TestBuilder_SetQuarterTargetDerivesAnnual(t *testing.T) {
	b := newBuilding(t, "A")
	_, _ = b.AddSector(0)
	_, _ = b.AddOutcome(0, 0)
	_, _ = b.AddOutput(0, 0, 0)
	_, _ = b.AddIndicator(0, 0, 0, 0)

	for q, v := range []float64{10, 20, 30, 40} {
		require.NoError(t, b.SetQuarterTarget(0, 0, 0, 0, 0, q+1, v))
	}
	ind := b.Outline()[0].Sectors[0].Outcomes[0].Outputs[0].Indicators[0]
	assert.Equal(t, 100.0, ind.AnnualTarget)

	require.NoError(t, b.SetQuarterTarget(0, 0, 0, 0, 0, 2, 0))
	ind = b.Outline()[0].Sectors[0].Outcomes[0].Outputs[0].Indicators[0]
	assert.Equal(t, 80.0, ind.AnnualTarget)

	assert.ErrorIs(t, b.SetQuarterTarget(0, 0, 0, 0, 0, 5, 1), domain.ErrInvalidQuarter)
}

func TestBuilder_FieldsAndRenames(t *testing.T) {
	b := newBuilding(t, "A")
	_, _ = b.AddSector(0)
	_, _ = b.AddOutcome(0, 0)
	_, _ = b.AddOutput(0, 0, 0)
	id, err := b.AddIndicator(0, 0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "id-5", id)

	require.NoError(t, b.RenamePillar(0, "Economy"))
	require.NoError(t, b.RenameSector(0, 0, "Agriculture"))
	require.NoError(t, b.RenameOutcome(0, 0, 0, "Yield"))
	require.NoError(t, b.RenameOutput(0, 0, 0, 0, "Fertilizer"))
	require.NoError(t, b.UpdateIndicatorField(0, 0, 0, 0, 0, domain.FieldName, "Tons used"))
	require.NoError(t, b.UpdateIndicatorField(0, 0, 0, 0, 0, domain.FieldBaseline, "500"))
	require.NoError(t, b.UpdateIndicatorField(0, 0, 0, 0, 0, domain.FieldSourceOfData, "Ministry"))
	assert.ErrorIs(t, b.UpdateIndicatorField(0, 0, 0, 0, 0, domain.IndicatorField("color"), "red"), domain.ErrUnknownField)

	p := b.Outline()[0]
	assert.Equal(t, "Economy", p.Name)
	assert.Equal(t, "Agriculture", p.Sectors[0].Name)
	assert.Equal(t, "Yield", p.Sectors[0].Outcomes[0].Name)
	assert.Equal(t, "Fertilizer", p.Sectors[0].Outcomes[0].Outputs[0].Name)
	ind := p.Sectors[0].Outcomes[0].Outputs[0].Indicators[0]
	assert.Equal(t, "Tons used", ind.Name)
	assert.Equal(t, 500.0, ind.Baseline.Value)
	assert.Equal(t, "Ministry", ind.SourceOfData)
}

func TestBuilder_OutlineIsACopy(t *testing.T) {
	b := newBuilding(t, "A")
	out := b.Outline()
	out[0].Name = "changed"
	assert.Equal(t, "A", b.Outline()[0].Name)
}

func TestComplete_AppendsAndSelects(t *testing.T) {
	repo := templates.New([]*domain.Contract{domain.SeedContract()}, nil)

	b := newBuilding(t, "A", "B")
	next, idx, err := b.Complete(repo)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	cur, ok := next.CurrentIndex()
	require.True(t, ok)
	assert.Equal(t, 1, cur)
	assert.Equal(t, 1, repo.Len())
}

func TestComplete_RejectedTreeKeepsBuilderOpen(t *testing.T) {
	repo := templates.New([]*domain.Contract{domain.SeedContract()}, nil)
	b := New(WithIDGenerator(func() string { return "p-1" }))
	require.NoError(t, b.ConfirmCount())
	require.NoError(t, b.ConfirmNames())

	_, _, err := b.Complete(repo)
	assert.ErrorIs(t, err, domain.ErrDuplicateID)
	assert.Equal(t, StageBuilding, b.Stage())
}
