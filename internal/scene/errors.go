package scene

import "errors"

// Common errors for scene operations.
var (
	// ErrObjectNotFound is returned when an operation names an unknown object.
	ErrObjectNotFound = errors.New("object not found")

	// ErrDuplicateObject is returned when adding an object whose ID is taken.
	ErrDuplicateObject = errors.New("object already exists")

	// ErrInvalidKind is returned when adding an object of an unknown kind.
	ErrInvalidKind = errors.New("invalid object kind")

	// ErrTransientActive is returned when starting a transient operation
	// while one is already in progress.
	ErrTransientActive = errors.New("transient operation already in progress")

	// ErrNoTransient is returned when committing without an active
	// transient operation.
	ErrNoTransient = errors.New("no transient operation in progress")
)
