package templates

import (
	"fmt"
	"slices"

	"github.com/alexanderramin/imihigo/internal/domain"
)

// Repository is an ordered list of completed contracts plus an optional
// selection. It is a value: every operation returns a new Repository and
// leaves the receiver, and every contract it holds, untouched.
type Repository struct {
	contracts []*domain.Contract
	selected  *int
}

// New builds a repository from stored contracts. Nil entries are dropped. The
// selection is kept as given even when it is out of range.
func New(contracts []*domain.Contract, selected *int) Repository {
	r := Repository{contracts: make([]*domain.Contract, 0, len(contracts))}
	for _, c := range contracts {
		if c != nil {
			r.contracts = append(r.contracts, c)
		}
	}
	r.selected = copyIndex(selected)
	return r
}

// Contracts returns the contracts in order. The slice is a copy.
func (r Repository) Contracts() []*domain.Contract {
	return slices.Clone(r.contracts)
}

func (r Repository) Len() int {
	return len(r.contracts)
}

// Contract returns the contract at index i.
func (r Repository) Contract(i int) (*domain.Contract, error) {
	if i < 0 || i >= len(r.contracts) {
		return nil, fmt.Errorf("template %d of %d: %w", i, len(r.contracts), domain.ErrIndexOutOfRange)
	}
	return r.contracts[i], nil
}

// Selected returns the stored selection, which may be stale.
func (r Repository) Selected() (int, bool) {
	if r.selected == nil {
		return 0, false
	}
	return *r.selected, true
}

// CurrentIndex returns the selection only when it points at a contract.
func (r Repository) CurrentIndex() (int, bool) {
	i, ok := r.Selected()
	if !ok || i < 0 || i >= len(r.contracts) {
		return 0, false
	}
	return i, true
}

// Current returns the selected contract, or nil when nothing is selected or
// the selection is stale.
func (r Repository) Current() *domain.Contract {
	i, ok := r.CurrentIndex()
	if !ok {
		return nil
	}
	return r.contracts[i]
}

// Append adds c at the end and selects it. Ids already used by another
// contract are rejected with domain.ErrDuplicateID.
func (r Repository) Append(c *domain.Contract) (Repository, int, error) {
	if c == nil {
		return r, 0, fmt.Errorf("appending template: %w", domain.ErrMalformedContract)
	}
	for i, existing := range r.contracts {
		for _, id := range c.IDs() {
			if _, taken := existing.Locate(id); taken {
				return r, 0, fmt.Errorf("id %q already used by template %d: %w", id, i, domain.ErrDuplicateID)
			}
		}
	}
	out := Repository{contracts: append(slices.Clone(r.contracts), c)}
	idx := len(out.contracts) - 1
	out.selected = &idx
	return out, idx, nil
}

// Select sets or clears the selection. Out-of-range indices are stored and
// read back as "no contract selected".
func (r Repository) Select(index *int) Repository {
	return Repository{contracts: r.contracts, selected: copyIndex(index)}
}

// SelectIndex is Select for a concrete index.
func (r Repository) SelectIndex(i int) Repository {
	return r.Select(&i)
}

// Replace commits a new version of the contract at index i. The new version
// is expected to share the ids of the one it replaces.
func (r Repository) Replace(i int, c *domain.Contract) (Repository, error) {
	if i < 0 || i >= len(r.contracts) {
		return r, fmt.Errorf("replacing template %d of %d: %w", i, len(r.contracts), domain.ErrIndexOutOfRange)
	}
	if c == nil {
		return r, fmt.Errorf("replacing template %d: %w", i, domain.ErrMalformedContract)
	}
	out := Repository{contracts: slices.Clone(r.contracts), selected: copyIndex(r.selected)}
	out.contracts[i] = c
	return out, nil
}

// Remove drops the contract at index i. A selection of i is cleared and a
// later selection shifts down by one.
func (r Repository) Remove(i int) (Repository, error) {
	if i < 0 || i >= len(r.contracts) {
		return r, fmt.Errorf("removing template %d of %d: %w", i, len(r.contracts), domain.ErrIndexOutOfRange)
	}
	out := Repository{contracts: slices.Delete(slices.Clone(r.contracts), i, i+1)}
	if sel, ok := r.Selected(); ok {
		switch {
		case sel == i:
		case sel > i:
			sel--
			out.selected = &sel
		default:
			out.selected = &sel
		}
	}
	return out, nil
}

func copyIndex(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
