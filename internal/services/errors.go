package services

import "errors"

// Sentinel errors the handlers translate to HTTP statuses. Services wrap
// them with fmt.Errorf("%w: detail") so the detail survives into the
// response while errors.Is keeps matching.
var (
	// ErrInvalidInput marks a request the caller can fix: bad target
	// column, malformed CSV, mismatched ids.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotCompatible marks an explainer/metric pair outside the catalog
	// entries for the model's task type.
	ErrNotCompatible = errors.New("not compatible")
)
