package flavor

import "errors"

var (
	// ErrMissingFields is returned when smart add gets neither a full triple
	// nor an ingredient with a descriptor.
	ErrMissingFields = errors.New("missing required fields: ingredient and descriptor are required")

	// ErrCannotInfer is returned when no compound is recorded against the
	// seed descriptor.
	ErrCannotInfer = errors.New("cannot infer compound from descriptor")
)
