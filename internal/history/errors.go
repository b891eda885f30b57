package history

import "errors"

// Common errors for history operations.
var (
	// ErrDisposed is returned when operating on a disposed engine.
	ErrDisposed = errors.New("history engine is disposed")

	// ErrCaptureFailed wraps a failure to serialize the document during capture.
	ErrCaptureFailed = errors.New("snapshot capture failed")

	// ErrRestoreFailed wraps a failure to restore a snapshot during replay.
	ErrRestoreFailed = errors.New("snapshot restore failed")
)
