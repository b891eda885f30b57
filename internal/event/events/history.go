package events

import "easel/internal/event/topic"

// History event topics.
const (
	// TopicHistoryAppended is published when a new snapshot enters the undo stack.
	TopicHistoryAppended topic.Topic = "history.appended"

	// TopicHistoryUndone is published after an undo completes.
	TopicHistoryUndone topic.Topic = "history.undone"

	// TopicHistoryRedone is published after a redo completes.
	TopicHistoryRedone topic.Topic = "history.redone"

	// TopicHistoryCleared is published when history is reset to a fresh bootstrap.
	TopicHistoryCleared topic.Topic = "history.cleared"

	// TopicHistoryError is published when an undo or redo fails.
	TopicHistoryError topic.Topic = "history.error"
)

// HistoryAppended is published when a new snapshot enters the undo stack.
type HistoryAppended struct {
	// Token is the snapshot token that was appended.
	Token string

	// Bootstrap is true for the initial entry captured at construction.
	Bootstrap bool
}

// HistoryUndone is published after an undo completes.
type HistoryUndone struct {
	// Token is the snapshot token that was undone away from.
	Token string
}

// HistoryRedone is published after a redo completes.
type HistoryRedone struct {
	// Token is the snapshot token that was restored.
	Token string
}

// HistoryCleared is published when history is reset to a fresh bootstrap.
type HistoryCleared struct{}

// HistoryError is published when a history operation fails. For failed
// replays ("undo", "redo") the document and both stacks are left in their
// pre-operation state; a failed "capture" or "batch" pushes nothing.
type HistoryError struct {
	// Op is the operation that failed: "capture", "batch", "undo", or "redo".
	Op string

	// Err is the failure.
	Err error
}
