package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/imihigo/internal/builder"
	"github.com/alexanderramin/imihigo/internal/domain"
	"github.com/alexanderramin/imihigo/internal/importer"
	"github.com/alexanderramin/imihigo/internal/rollup"
	"github.com/alexanderramin/imihigo/internal/templates"
)

// ErrNoContractSelected is returned by operations that need a selected
// contract when none is selected or the selection is stale.
var ErrNoContractSelected = errors.New("no contract selected")

// PersistenceService saves and restores the template repository. It observes
// a templates.Workspace so every committed change is written.
type PersistenceService interface {
	templates.Observer
	Load(ctx context.Context) templates.Repository
	Save(ctx context.Context, repo templates.Repository) error
	// LastSaved reports when the templates were last written, nil if never.
	LastSaved(ctx context.Context) (*time.Time, error)
}

type ExportService interface {
	// Export writes the CSV report of the selected contract into dir and
	// returns the file path.
	Export(ctx context.Context, dir string) (string, error)
}

// ImportResult holds the outcome of a contract import.
type ImportResult struct {
	// Index is the position of the new template, which is now selected.
	Index          int
	Contract       *domain.Contract
	IndicatorCount int
}

type ImportService interface {
	ImportContract(ctx context.Context, filePath string) (*ImportResult, error)
	ImportContractFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}

// EditResult is the outcome of a point edit on the selected contract.
type EditResult struct {
	Contract *domain.Contract
	// Applied is false when the id matched no node and nothing changed.
	Applied bool
}

// PerformanceService is the entry point used by the command line. It applies
// edits to the selected contract and answers rollup queries.
type PerformanceService interface {
	Templates(ctx context.Context) templates.Repository
	Current(ctx context.Context) (*domain.Contract, int, error)
	SelectTemplate(ctx context.Context, index *int) (templates.Repository, error)
	RemoveTemplate(ctx context.Context, index int) (templates.Repository, error)
	CompleteBuilder(ctx context.Context, b *builder.Builder) (int, error)

	RecordAchievement(ctx context.Context, indicatorID string, quarter int, value float64) (EditResult, error)
	SetQuarterTarget(ctx context.Context, indicatorID string, quarter int, value float64) (EditResult, error)
	SetIndicatorField(ctx context.Context, indicatorID string, field domain.IndicatorField, value string) (EditResult, error)
	Rename(ctx context.Context, nodeID, name string) (EditResult, error)

	Dashboard(ctx context.Context) (rollup.Dashboard, error)
	Tree(ctx context.Context) ([]rollup.TreeLine, error)
	Analytics(ctx context.Context, level rollup.Level, nodeID string) (rollup.LevelReport, error)
	AnalyticsOptions(ctx context.Context, level rollup.Level) ([]rollup.Option, error)
}
