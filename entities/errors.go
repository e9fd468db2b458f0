package entities

import "errors"

// Error kinds raised by the market graph, loader and encoders. Callers branch
// on these with errors.Is, mirroring the eyre! sentinels the engine was
// ported from.
var (
	// ErrDuplicatePool is returned when a pool identifier is already registered.
	ErrDuplicatePool = errors.New("pool already exists")
	// ErrNotFound is returned when a token or pool lookup misses.
	ErrNotFound = errors.New("not found")
	// ErrUnsupportedPoolClass is returned when an encoder has no rule for a PoolClass.
	ErrUnsupportedPoolClass = errors.New("unsupported pool class")
	// ErrMissingOffset is returned when the ABI encoder lacks a stack-splice offset.
	ErrMissingOffset = errors.New("missing stack splice offset")
	// ErrNotImplemented marks a deliberately unimplemented code path (dYdX flash).
	ErrNotImplemented = errors.New("not implemented")
)
