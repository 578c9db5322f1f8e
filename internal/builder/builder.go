// Package builder authors a new contract through the count, names and
// structure steps, then hands it to the template repository.
package builder

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alexanderramin/imihigo/internal/domain"
	"github.com/alexanderramin/imihigo/internal/templates"
)

// ErrBuilderState indicates an operation issued in the wrong stage.
var ErrBuilderState = errors.New("operation not allowed in current builder stage")

// MaxPillarCount caps the pillar count accepted by SetCount.
const MaxPillarCount = 100

type Stage string

const (
	StageCount    Stage = "count"
	StageNames    Stage = "names"
	StageBuilding Stage = "building"
	StageComplete Stage = "complete"
)

// Builder is a single-use authoring session. It is not safe for concurrent
// use.
type Builder struct {
	stage   Stage
	count   int
	names   []string
	pillars []*domain.Pillar
	newID   func() string
}

type Option func(*Builder)

// WithIDGenerator replaces the uuid generator, mainly for tests.
func WithIDGenerator(fn func() string) Option {
	return func(b *Builder) {
		b.newID = fn
	}
}

func New(opts ...Option) *Builder {
	b := &Builder{stage: StageCount, count: 1, newID: domain.NewID}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Builder) Stage() Stage { return b.stage }

// Count returns the confirmed or pending pillar count.
func (b *Builder) Count() int { return b.count }

func (b *Builder) expect(s Stage, op string) error {
	if b.stage != s {
		return fmt.Errorf("%s in stage %s: %w", op, b.stage, ErrBuilderState)
	}
	return nil
}

// SetCount parses a pillar count typed by the author. Leading digits are
// used; anything that does not yield a positive number becomes 1.
func (b *Builder) SetCount(raw string) error {
	return b.SetCountInt(parseCount(raw))
}

// SetCountInt sets the pillar count, clamped to 1..MaxPillarCount.
func (b *Builder) SetCountInt(n int) error {
	if err := b.expect(StageCount, "set count"); err != nil {
		return err
	}
	b.count = max(1, min(n, MaxPillarCount))
	return nil
}

func parseCount(raw string) int {
	v := domain.ParseFigure(strings.TrimSpace(raw))
	if math.IsNaN(v) || v < 1 {
		return 1
	}
	if v > MaxPillarCount {
		return MaxPillarCount
	}
	return int(v)
}

// ConfirmCount moves to the names step. Names already typed are kept; the
// rest are pre-filled with "Pillar k".
func (b *Builder) ConfirmCount() error {
	if err := b.expect(StageCount, "confirm count"); err != nil {
		return err
	}
	names := make([]string, b.count)
	for i := range names {
		if i < len(b.names) && b.names[i] != "" {
			names[i] = b.names[i]
			continue
		}
		names[i] = "Pillar " + strconv.Itoa(i+1)
	}
	b.names = names
	b.stage = StageNames
	return nil
}

// Back returns from the names step to the count step, keeping typed names.
func (b *Builder) Back() error {
	if err := b.expect(StageNames, "back"); err != nil {
		return err
	}
	b.stage = StageCount
	return nil
}

func (b *Builder) SetName(i int, name string) error {
	if err := b.expect(StageNames, "set name"); err != nil {
		return err
	}
	if i < 0 || i >= len(b.names) {
		return fmt.Errorf("pillar name %d of %d: %w", i, len(b.names), domain.ErrIndexOutOfRange)
	}
	b.names[i] = name
	return nil
}

// Names returns a copy of the working pillar names.
func (b *Builder) Names() []string {
	return append([]string(nil), b.names...)
}

// ConfirmNames allocates one empty pillar per name and moves to the
// structure step. A name left empty becomes domain.UnnamedPillar.
func (b *Builder) ConfirmNames() error {
	if err := b.expect(StageNames, "confirm names"); err != nil {
		return err
	}
	b.pillars = make([]*domain.Pillar, len(b.names))
	for i, name := range b.names {
		b.pillars[i] = &domain.Pillar{
			ID:      b.newID(),
			Name:    cmp.Or(name, domain.UnnamedPillar),
			Sectors: []*domain.Sector{},
		}
	}
	b.stage = StageBuilding
	return nil
}

// Outline returns a deep copy of the tree built so far.
func (b *Builder) Outline() []*domain.Pillar {
	out := make([]*domain.Pillar, len(b.pillars))
	for i, p := range b.pillars {
		out[i] = domain.ClonePillar(p)
	}
	return out
}

// Complete freezes the tree, appends it to repo (which selects it) and ends
// the session. The builder is left in the structure step when the tree is
// rejected.
func (b *Builder) Complete(repo templates.Repository) (templates.Repository, int, error) {
	if err := b.expect(StageBuilding, "complete"); err != nil {
		return repo, 0, err
	}
	c, err := domain.NewContract(b.pillars)
	if err != nil {
		return repo, 0, fmt.Errorf("freezing contract: %w", err)
	}
	next, idx, err := repo.Append(c)
	if err != nil {
		return repo, 0, fmt.Errorf("storing contract: %w", err)
	}
	b.pillars = nil
	b.names = nil
	b.stage = StageComplete
	return next, idx, nil
}
