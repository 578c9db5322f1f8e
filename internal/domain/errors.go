package domain

import "errors"

var (
	// ErrIndexOutOfRange indicates a positional address that does not point
	// at an existing node. It always signals a caller bug.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidQuarter indicates a quarter number outside 1..4.
	ErrInvalidQuarter = errors.New("quarter must be between 1 and 4")

	ErrEmptyContract = errors.New("contract must contain at least one pillar")

	// ErrDuplicateID indicates two nodes sharing an id.
	ErrDuplicateID = errors.New("duplicate node id")

	// ErrMalformedContract indicates a structurally broken tree, such as a
	// missing node or an empty id.
	ErrMalformedContract = errors.New("malformed contract")

	ErrIncompleteQuarters = errors.New("indicator must define quarters 1 through 4")

	ErrUnknownField = errors.New("unknown indicator field")
)
