package curve

import "errors"

var (
	// ErrIndexOutOfRange is returned by structural edits given an index outside the valid bound.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrPhaseNotFound is returned by field mutators addressing a missing phase.
	ErrPhaseNotFound = errors.New("phase not found")
	// ErrInvalidValue is returned when a boundary value cannot be used as a whole number.
	ErrInvalidValue = errors.New("invalid value")
	// ErrCursorInvalidated is reported by a cursor whose curve was edited after it was created.
	ErrCursorInvalidated = errors.New("curve modified during iteration")
	// ErrCorrupt is wrapped by every integrity check failure.
	ErrCorrupt = errors.New("firing curve corrupt")
)
