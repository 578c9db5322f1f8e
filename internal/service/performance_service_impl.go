package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/imihigo/internal/builder"
	"github.com/alexanderramin/imihigo/internal/domain"
	"github.com/alexanderramin/imihigo/internal/rollup"
	"github.com/alexanderramin/imihigo/internal/templates"
)

type performanceService struct {
	workspace *templates.Workspace
	observer  UseCaseObserver
}

func NewPerformanceService(workspace *templates.Workspace, observers ...UseCaseObserver) PerformanceService {
	return &performanceService{
		workspace: workspace,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *performanceService) Templates(ctx context.Context) templates.Repository {
	return s.workspace.Snapshot()
}

func (s *performanceService) Current(ctx context.Context) (*domain.Contract, int, error) {
	repo := s.workspace.Snapshot()
	i, ok := repo.CurrentIndex()
	if !ok {
		return nil, 0, ErrNoContractSelected
	}
	return repo.Current(), i, nil
}

// SelectTemplate selects index, or clears the selection when index is nil.
// Unlike templates.Repository.Select, an index outside the repository is
// rejected.
func (s *performanceService) SelectTemplate(ctx context.Context, index *int) (repo templates.Repository, err error) {
	fields := map[string]any{}
	if index != nil {
		fields["index"] = *index
	}
	done := observe(ctx, s.observer, "select-template", fields)
	defer func() { done(err) }()

	return s.workspace.Update(ctx, func(r templates.Repository) (templates.Repository, error) {
		if index != nil {
			if _, err := r.Contract(*index); err != nil {
				return r, err
			}
		}
		return r.Select(index), nil
	})
}

func (s *performanceService) RemoveTemplate(ctx context.Context, index int) (repo templates.Repository, err error) {
	done := observe(ctx, s.observer, "remove-template", map[string]any{"index": index})
	defer func() { done(err) }()

	return s.workspace.Update(ctx, func(r templates.Repository) (templates.Repository, error) {
		return r.Remove(index)
	})
}

// CompleteBuilder stores the authored contract and selects it.
func (s *performanceService) CompleteBuilder(ctx context.Context, b *builder.Builder) (idx int, err error) {
	fields := map[string]any{}
	done := observe(ctx, s.observer, "complete-builder", fields)
	defer func() { done(err) }()

	_, err = s.workspace.Update(ctx, func(r templates.Repository) (templates.Repository, error) {
		next, i, err := b.Complete(r)
		idx = i
		return next, err
	})
	if err != nil {
		return 0, err
	}
	fields["index"] = idx
	return idx, nil
}

func (s *performanceService) RecordAchievement(ctx context.Context, indicatorID string, quarter int, value float64) (EditResult, error) {
	return s.edit(ctx, "record-achievement", indicatorID, map[string]any{"quarter": quarter, "value": value},
		func(c *domain.Contract) (*domain.Contract, error) {
			return c.WithAchievement(indicatorID, quarter, value)
		})
}

func (s *performanceService) SetQuarterTarget(ctx context.Context, indicatorID string, quarter int, value float64) (EditResult, error) {
	return s.edit(ctx, "set-quarter-target", indicatorID, map[string]any{"quarter": quarter, "value": value},
		func(c *domain.Contract) (*domain.Contract, error) {
			return c.WithQuarterTarget(indicatorID, quarter, value)
		})
}

func (s *performanceService) SetIndicatorField(ctx context.Context, indicatorID string, field domain.IndicatorField, value string) (EditResult, error) {
	return s.edit(ctx, "set-indicator-field", indicatorID, map[string]any{"field": string(field)},
		func(c *domain.Contract) (*domain.Contract, error) {
			return c.WithIndicatorField(indicatorID, field, value)
		})
}

func (s *performanceService) Rename(ctx context.Context, nodeID, name string) (EditResult, error) {
	return s.edit(ctx, "rename-node", nodeID, map[string]any{},
		func(c *domain.Contract) (*domain.Contract, error) {
			return c.WithName(nodeID, name), nil
		})
}

// edit applies fn to the selected contract and commits the result. An id
// that matches nothing leaves the repository unchanged and reports
// Applied=false.
func (s *performanceService) edit(
	ctx context.Context,
	name, nodeID string,
	fields map[string]any,
	fn func(*domain.Contract) (*domain.Contract, error),
) (res EditResult, err error) {
	fields["node_id"] = nodeID
	done := observe(ctx, s.observer, name, fields)
	defer func() { done(err) }()

	repo := s.workspace.Snapshot()
	if _, ok := repo.CurrentIndex(); !ok {
		return EditResult{}, ErrNoContractSelected
	}
	// Mutations are pure, so a dry run on the snapshot tells whether the id
	// matches anything. A no-op must not reach the workspace observers.
	current := repo.Current()
	preview, err := fn(current)
	if err != nil {
		return EditResult{}, fmt.Errorf("%s: %w", name, err)
	}
	if preview == current {
		fields["applied"] = false
		return EditResult{Contract: current}, nil
	}

	_, err = s.workspace.Update(ctx, func(r templates.Repository) (templates.Repository, error) {
		i, ok := r.CurrentIndex()
		if !ok {
			return r, ErrNoContractSelected
		}
		current := r.Current()
		next, err := fn(current)
		if err != nil {
			return r, err
		}
		res.Contract = next
		res.Applied = next != current
		if !res.Applied {
			return r, nil
		}
		return r.Replace(i, next)
	})
	if err != nil {
		return EditResult{}, fmt.Errorf("%s: %w", name, err)
	}
	fields["applied"] = res.Applied
	return res, nil
}

func (s *performanceService) Dashboard(ctx context.Context) (rollup.Dashboard, error) {
	c, _, err := s.Current(ctx)
	if err != nil {
		return rollup.BuildDashboard(nil), err
	}
	return rollup.BuildDashboard(c), nil
}

func (s *performanceService) Tree(ctx context.Context) ([]rollup.TreeLine, error) {
	c, _, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	return rollup.Tree(c), nil
}

// Analytics aggregates over every saved template.
func (s *performanceService) Analytics(ctx context.Context, level rollup.Level, nodeID string) (report rollup.LevelReport, err error) {
	done := observe(ctx, s.observer, "analytics", map[string]any{"level": string(level), "node_id": nodeID})
	defer func() { done(err) }()

	return rollup.ByLevel(rollup.Forest(s.workspace.Snapshot().Contracts()), level, nodeID)
}

func (s *performanceService) AnalyticsOptions(ctx context.Context, level rollup.Level) ([]rollup.Option, error) {
	return rollup.Options(rollup.Forest(s.workspace.Snapshot().Contracts()), level)
}
