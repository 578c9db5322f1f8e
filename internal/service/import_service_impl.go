package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/imihigo/internal/importer"
	"github.com/alexanderramin/imihigo/internal/templates"
)

// ErrInvalidImport wraps the validation failures of an import file.
var ErrInvalidImport = errors.New("import validation failed")

type importService struct {
	workspace *templates.Workspace
	observer  UseCaseObserver
}

func NewImportService(workspace *templates.Workspace, observers ...UseCaseObserver) ImportService {
	return &importService{
		workspace: workspace,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportContract(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.importSchema(ctx, schema)
}

func (s *importService) ImportContractFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error) {
	return s.importSchema(ctx, schema)
}

func (s *importService) importSchema(ctx context.Context, schema *importer.ImportSchema) (result *ImportResult, err error) {
	fields := map[string]any{"nodes": len(schema.Nodes), "indicators": len(schema.Indicators)}
	done := observe(ctx, s.observer, "import-contract", fields)
	defer func() { done(err) }()

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	c, err := importer.Convert(schema, nil)
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}

	var idx int
	if _, err := s.workspace.Update(ctx, func(r templates.Repository) (templates.Repository, error) {
		next, i, err := r.Append(c)
		idx = i
		return next, err
	}); err != nil {
		return nil, fmt.Errorf("storing imported contract: %w", err)
	}
	fields["index"] = idx

	return &ImportResult{
		Index:          idx,
		Contract:       c,
		IndicatorCount: len(schema.Indicators),
	}, nil
}

func formatValidationErrors(errs []error) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%d errors:", len(errs))
	for _, e := range errs {
		b.WriteString("\n  - " + e.Error())
	}
	return fmt.Errorf("%w (%s)", ErrInvalidImport, b.String())
}
