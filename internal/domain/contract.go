package domain

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Location is the ownership chain of a node inside a contract.
type Location struct {
	Kind NodeKind
	// Path holds the child position at each level, pillar first. Its length
	// is Kind.Depth()+1.
	Path []int
	// Ancestors holds the ids of the owning nodes, pillar first.
	Ancestors []string
}

// Contract is one performance contract: a non-empty ordered list of pillars.
//
// A Contract is an immutable snapshot. Every edit goes through the With*
// methods, which return a new Contract that shares all untouched subtrees with
// the receiver. The node pointers reachable from Pillars must be treated as
// read-only.
type Contract struct {
	pillars []*Pillar
	// index maps every node id to its location. The shape of a contract never
	// changes after authoring, so all versions derived from one contract share
	// the same index.
	index map[string]Location
}

// NewContract freezes pillars into a Contract after checking the structural
// invariants. The contract takes ownership of the tree; callers must not
// modify it afterwards.
func NewContract(pillars []*Pillar) (*Contract, error) {
	if len(pillars) == 0 {
		return nil, ErrEmptyContract
	}
	index, err := buildIndex(pillars)
	if err != nil {
		return nil, err
	}
	return &Contract{pillars: slices.Clone(pillars), index: index}, nil
}

// MustContract is NewContract for fixtures whose shape is known to be valid.
func MustContract(pillars []*Pillar) *Contract {
	c, err := NewContract(pillars)
	if err != nil {
		panic(err)
	}
	return c
}

func buildIndex(pillars []*Pillar) (map[string]Location, error) {
	index := make(map[string]Location)
	add := func(id string, kind NodeKind, path []int, ancestors []string) error {
		if id == "" {
			return fmt.Errorf("%s at %v has no id: %w", kind, path, ErrMalformedContract)
		}
		if _, dup := index[id]; dup {
			return fmt.Errorf("%s %q: %w", kind, id, ErrDuplicateID)
		}
		index[id] = Location{Kind: kind, Path: slices.Clone(path), Ancestors: slices.Clone(ancestors)}
		return nil
	}
	missing := func(kind NodeKind, path []int) error {
		return fmt.Errorf("missing %s at %v: %w", kind, path, ErrMalformedContract)
	}

	for pi, p := range pillars {
		if p == nil {
			return nil, missing(KindPillar, []int{pi})
		}
		if err := add(p.ID, KindPillar, []int{pi}, nil); err != nil {
			return nil, err
		}
		for si, s := range p.Sectors {
			if s == nil {
				return nil, missing(KindSector, []int{pi, si})
			}
			if err := add(s.ID, KindSector, []int{pi, si}, []string{p.ID}); err != nil {
				return nil, err
			}
			for oci, oc := range s.Outcomes {
				if oc == nil {
					return nil, missing(KindOutcome, []int{pi, si, oci})
				}
				if err := add(oc.ID, KindOutcome, []int{pi, si, oci}, []string{p.ID, s.ID}); err != nil {
					return nil, err
				}
				for opi, op := range oc.Outputs {
					if op == nil {
						return nil, missing(KindOutput, []int{pi, si, oci, opi})
					}
					if err := add(op.ID, KindOutput, []int{pi, si, oci, opi}, []string{p.ID, s.ID, oc.ID}); err != nil {
						return nil, err
					}
					for ii, ind := range op.Indicators {
						if ind == nil {
							return nil, missing(KindIndicator, []int{pi, si, oci, opi, ii})
						}
						if err := add(ind.ID, KindIndicator, []int{pi, si, oci, opi, ii}, []string{p.ID, s.ID, oc.ID, op.ID}); err != nil {
							return nil, err
						}
					}
				}
			}
		}
	}
	return index, nil
}

// Pillars returns the pillars in order. The returned slice is a copy; the
// nodes it points to are shared and must not be modified.
func (c *Contract) Pillars() []*Pillar {
	return slices.Clone(c.pillars)
}

// Len returns the number of pillars.
func (c *Contract) Len() int {
	return len(c.pillars)
}

// Size returns the number of nodes at every level.
func (c *Contract) Size() int {
	return len(c.index)
}

// IDs returns every node id in the contract, in no particular order.
func (c *Contract) IDs() []string {
	ids := make([]string, 0, len(c.index))
	for id := range c.index {
		ids = append(ids, id)
	}
	return ids
}

// Locate returns the location of the node with the given id.
func (c *Contract) Locate(id string) (Location, bool) {
	loc, ok := c.index[id]
	return loc, ok
}

// Node resolves an id to its node.
func (c *Contract) Node(id string) (Node, bool) {
	loc, ok := c.index[id]
	if !ok {
		return nil, false
	}
	return c.nodeAt(loc.Path), true
}

// Indicator resolves an id to an indicator. Ids of other kinds report false.
func (c *Contract) Indicator(id string) (*Indicator, bool) {
	loc, ok := c.index[id]
	if !ok || loc.Kind != KindIndicator {
		return nil, false
	}
	return c.nodeAt(loc.Path).(*Indicator), true
}

func (c *Contract) nodeAt(path []int) Node {
	p := c.pillars[path[0]]
	if len(path) == 1 {
		return p
	}
	s := p.Sectors[path[1]]
	if len(path) == 2 {
		return s
	}
	oc := s.Outcomes[path[2]]
	if len(path) == 3 {
		return oc
	}
	op := oc.Outputs[path[3]]
	if len(path) == 4 {
		return op
	}
	return op.Indicators[path[4]]
}

// EachIndicator calls fn for every indicator in document order. A nil
// contract has no indicators.
func (c *Contract) EachIndicator(fn func(*Indicator)) {
	if c == nil {
		return
	}
	for _, p := range c.pillars {
		p.EachIndicator(fn)
	}
}

// Walk visits every node depth-first in document order.
func (c *Contract) Walk(fn func(Node)) {
	for _, p := range c.pillars {
		fn(p)
		for _, s := range p.Sectors {
			fn(s)
			for _, oc := range s.Outcomes {
				fn(oc)
				for _, op := range oc.Outputs {
					fn(op)
					for _, ind := range op.Indicators {
						fn(ind)
					}
				}
			}
		}
	}
}

// NodesOfKind returns every node of the given kind in document order.
func (c *Contract) NodesOfKind(kind NodeKind) []Node {
	var out []Node
	c.Walk(func(n Node) {
		if n.Kind() == kind {
			out = append(out, n)
		}
	})
	return out
}

// IndicatorRow is one indicator together with its owning nodes.
type IndicatorRow struct {
	Pillar    *Pillar
	Sector    *Sector
	Outcome   *Outcome
	Output    *Output
	Indicator *Indicator
}

// IndicatorRows flattens the contract into one row per indicator.
func (c *Contract) IndicatorRows() []IndicatorRow {
	var rows []IndicatorRow
	for _, p := range c.pillars {
		for _, s := range p.Sectors {
			for _, oc := range s.Outcomes {
				for _, op := range oc.Outputs {
					for _, ind := range op.Indicators {
						rows = append(rows, IndicatorRow{Pillar: p, Sector: s, Outcome: oc, Output: op, Indicator: ind})
					}
				}
			}
		}
	}
	return rows
}

// MarshalJSON writes the contract as its pillar array.
func (c *Contract) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.pillars)
}

// UnmarshalJSON reads a pillar array and re-checks the invariants.
func (c *Contract) UnmarshalJSON(data []byte) error {
	var pillars []*Pillar
	if err := json.Unmarshal(data, &pillars); err != nil {
		return err
	}
	decoded, err := NewContract(pillars)
	if err != nil {
		return err
	}
	*c = *decoded
	return nil
}
