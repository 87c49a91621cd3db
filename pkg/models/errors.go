package models

import "errors"

// Sentinel errors shared across services.
var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrStaleDeduction is returned when a deduction plan no longer
	// matches the stored pantry: a referenced lot was deleted or its
	// quantity changed since the snapshot was taken.
	ErrStaleDeduction = errors.New("deduction plan is stale")
	// ErrZeroServings is returned instead of producing a NaN or Inf
	// per-serving cost.
	ErrZeroServings = errors.New("recipe has zero servings")
)
