package atlaspack

import "errors"

// Sentinel errors for the atlaspack package.
var (
	// ErrOutOfSpace is returned by Allocate/AllocateNamed when the shelf
	// policy cannot place the requested rectangle. The allocator's state
	// is unchanged; it remains safe to use after this error.
	ErrOutOfSpace = errors.New("atlaspack: out of space")

	// ErrInvalidSize is returned when a requested width or height is
	// less than 1. It is distinct from ErrOutOfSpace: this is a
	// precondition violation by the caller, not a packing failure.
	ErrInvalidSize = errors.New("atlaspack: size must have width >= 1 and height >= 1")
)
