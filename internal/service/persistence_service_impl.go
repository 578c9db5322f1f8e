package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/imihigo/internal/db"
	"github.com/alexanderramin/imihigo/internal/domain"
	"github.com/alexanderramin/imihigo/internal/repository"
	"github.com/alexanderramin/imihigo/internal/templates"
)

// Storage keys for the saved templates and the selected index.
const (
	KeyTemplates     = "templates"
	KeySelectedIndex = "selected-index"
)

type persistenceService struct {
	store    repository.KVStore
	uow      db.UnitOfWork
	logger   *slog.Logger
	observer UseCaseObserver
}

func NewPersistenceService(
	store repository.KVStore,
	uow db.UnitOfWork,
	logger *slog.Logger,
	observers ...UseCaseObserver,
) PersistenceService {
	return &persistenceService{
		store:    store,
		uow:      uow,
		logger:   loggerOrDiscard(logger),
		observer: useCaseObserverOrNoop(observers),
	}
}

// Load restores the repository. It never fails: a missing, empty or corrupt
// template list is replaced by the seed contract, and a missing or corrupt
// selection reads as index 0.
func (s *persistenceService) Load(ctx context.Context) templates.Repository {
	fields := map[string]any{}
	done := observe(ctx, s.observer, "load-templates", fields)
	defer done(nil)

	contracts, source := s.loadContracts(ctx)
	fields["source"] = source
	fields["template_count"] = len(contracts)

	selected := s.loadSelection(ctx)
	return templates.New(contracts, &selected)
}

func (s *persistenceService) loadContracts(ctx context.Context) ([]*domain.Contract, string) {
	seed := []*domain.Contract{domain.SeedContract()}

	raw, err := s.store.Get(ctx, KeyTemplates)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.DebugContext(ctx, "no stored templates, using seed")
			return seed, "seed"
		}
		s.logger.WarnContext(ctx, "reading stored templates failed, using seed", "error", err)
		return seed, "seed"
	}

	entries, err := splitTemplates(raw)
	if err != nil {
		s.logger.WarnContext(ctx, "stored templates are corrupt, using seed", "error", err)
		return seed, "seed"
	}
	contracts := make([]*domain.Contract, 0, len(entries))
	for i, entry := range entries {
		c, err := decodeContract(entry)
		if err != nil {
			s.logger.WarnContext(ctx, "dropping corrupt stored template", "template", i, "error", err)
			continue
		}
		contracts = append(contracts, c)
	}
	if len(contracts) == 0 {
		return seed, "seed"
	}
	if err := checkUniqueIDs(contracts); err != nil {
		s.logger.WarnContext(ctx, "stored templates share node ids", "error", err)
	}
	return contracts, "store"
}

// splitTemplates decodes the outer list only, so one bad template does not
// take the others with it.
func splitTemplates(raw string) ([]json.RawMessage, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("decoding templates: %w", err)
	}
	return entries, nil
}

func decodeContract(entry json.RawMessage) (*domain.Contract, error) {
	var c *domain.Contract
	if err := json.Unmarshal(entry, &c); err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("template is null: %w", domain.ErrMalformedContract)
	}
	return c, nil
}

func checkUniqueIDs(contracts []*domain.Contract) error {
	seen := make(map[string]int)
	for i, c := range contracts {
		for _, id := range c.IDs() {
			if j, ok := seen[id]; ok {
				return fmt.Errorf("id %q in templates %d and %d: %w", id, j, i, domain.ErrDuplicateID)
			}
			seen[id] = i
		}
	}
	return nil
}

func (s *persistenceService) loadSelection(ctx context.Context) int {
	raw, err := s.store.Get(ctx, KeySelectedIndex)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.WarnContext(ctx, "reading selected index failed", "error", err)
		}
		return 0
	}
	n, ok := parseLeadingInt(raw)
	if !ok {
		s.logger.WarnContext(ctx, "stored selected index is not a number", "value", raw)
		return 0
	}
	return n
}

var leadingInt = regexp.MustCompile(`^[+-]?\d+`)

// parseLeadingInt reads the integer prefix of s, so "2x" is 2. Surrounding
// whitespace is ignored.
func parseLeadingInt(s string) (int, bool) {
	m := leadingInt.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	return n, err == nil
}

// Save writes the whole repository in one transaction. A cleared selection
// removes the selected-index key.
func (s *persistenceService) Save(ctx context.Context, repo templates.Repository) (err error) {
	fields := map[string]any{"template_count": repo.Len()}
	done := observe(ctx, s.observer, "save-templates", fields)
	defer func() { done(err) }()

	payload, err := json.Marshal(repo.Contracts())
	if err != nil {
		return fmt.Errorf("encoding templates: %w", err)
	}
	fields["bytes"] = len(payload)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txStore := repository.NewSQLiteKVStore(tx)
		if err := txStore.Set(ctx, KeyTemplates, string(payload)); err != nil {
			return err
		}
		if sel, ok := repo.Selected(); ok {
			return txStore.Set(ctx, KeySelectedIndex, strconv.Itoa(sel))
		}
		return txStore.Delete(ctx, KeySelectedIndex)
	})
}

func (s *persistenceService) LastSaved(ctx context.Context) (*time.Time, error) {
	ts, err := s.store.UpdatedAt(ctx, KeyTemplates)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("last saved: %w", err)
	}
	return ts, nil
}

// RepositoryChanged saves after each workspace change. Failures are logged;
// the in-memory state stays authoritative.
func (s *persistenceService) RepositoryChanged(ctx context.Context, repo templates.Repository) {
	if err := s.Save(ctx, repo); err != nil {
		s.logger.ErrorContext(ctx, "saving templates failed", "error", err)
	}
}
