package formatter

import (
	"strings"
	"testing"

	"github.com/alexanderramin/imihigo/internal/domain"
	"github.com/alexanderramin/imihigo/internal/rollup"
	"github.com/alexanderramin/imihigo/internal/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDashboard_Seed(t *testing.T) {
	out := FormatDashboard("Seed", rollup.BuildDashboard(domain.SeedContract()))
	assert.Contains(t, out, "SEED")
	assert.Contains(t, out, "Economic Development Pillar")
	assert.Contains(t, out, "60.0%")
	assert.Contains(t, out, "CRITICAL")
	assert.Contains(t, out, "1 Critical, 0 Warning, 0 On Track")
	assert.Contains(t, out, "600 achieved of 1,000 targeted across 1 indicators")
}

func TestFormatContractTree_Seed(t *testing.T) {
	out := FormatContractTree(rollup.Tree(domain.SeedContract()))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "Economic Development Pillar")
	assert.Contains(t, lines[1], "└─ ")
	assert.Contains(t, lines[4], "Quantity of chemical fertilizers")
	assert.Contains(t, lines[4], "600 / 1,000  60.0%")
}

func TestIsLastSibling(t *testing.T) {
	lines := []rollup.TreeLine{{Depth: 0}, {Depth: 1}, {Depth: 2}, {Depth: 1}, {Depth: 0}}
	assert.False(t, isLastSibling(lines, 0))
	assert.False(t, isLastSibling(lines, 1))
	assert.True(t, isLastSibling(lines, 2))
	assert.True(t, isLastSibling(lines, 3))
	assert.True(t, isLastSibling(lines, 4))
}

func TestFormatIndicator(t *testing.T) {
	ind, ok := domain.SeedContract().Indicator("ind-1")
	require.True(t, ok)
	out := FormatIndicator(ind)
	assert.Contains(t, out, "Q2")
	assert.Contains(t, out, "104.0%")
	assert.Contains(t, out, "Ministry of Agriculture Reports")
}

func TestFormatLevelReport(t *testing.T) {
	r, err := rollup.ByLevel(rollup.Forest{domain.SeedContract()}, rollup.LevelOutput, "op-1")
	require.NoError(t, err)
	out := FormatLevelReport(r)
	assert.Contains(t, out, "OUTPUT")
	assert.Contains(t, out, "Fertilizer distribution improved")
	assert.Contains(t, out, "op-1")
	assert.NotContains(t, out, "OP-1")
	assert.Contains(t, out, "125")
	assert.Contains(t, out, "1 indicators, baseline 500")

	all, err := rollup.ByLevel(rollup.Forest{domain.SeedContract()}, rollup.LevelOutcome, "")
	require.NoError(t, err)
	assert.Contains(t, FormatLevelReport(all), "ALL OUTCOMES")
}

func TestFormatTemplateList(t *testing.T) {
	assert.Contains(t, FormatTemplateList(templates.New(nil, nil)), "No templates saved")

	repo := templates.New([]*domain.Contract{domain.SeedContract()}, nil)
	assert.Contains(t, FormatTemplateList(repo), "No template selected")
	out := FormatTemplateList(repo.SelectIndex(0))
	assert.Contains(t, out, "▶")
	assert.Contains(t, out, "Economic Development Pillar")
}
