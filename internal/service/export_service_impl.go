package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alexanderramin/imihigo/internal/templates"
)

type exportService struct {
	workspace *templates.Workspace
	now       func() time.Time
	observer  UseCaseObserver
}

func NewExportService(workspace *templates.Workspace, observers ...UseCaseObserver) ExportService {
	return &exportService{
		workspace: workspace,
		now:       time.Now,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *exportService) Export(ctx context.Context, dir string) (path string, err error) {
	fields := map[string]any{"dir": dir}
	done := observe(ctx, s.observer, "export-report", fields)
	defer func() { done(err) }()

	c := s.workspace.Snapshot().Current()
	if c == nil {
		return "", ErrNoContractSelected
	}

	rows := ExportRows(c)
	fields["rows"] = len(rows)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}
	path = filepath.Join(dir, ExportFileName(s.now()))
	if err := os.WriteFile(path, []byte(RenderCSV(ExportHeader, rows)), 0644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	fields["path"] = path
	return path, nil
}
