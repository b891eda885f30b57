package history

import (
	"context"
	"fmt"
	"sync"

	"easel/internal/event"
	"easel/internal/event/events"
	"easel/internal/event/topic"
	"easel/internal/scene/codec"
)

const publishSource = "history"

// Document is the adapter contract the engine observes and restores.
// Any type satisfying it works; the engine holds no other reference into
// document internals.
type Document interface {
	// Token serializes the document's complete current state.
	Token() (codec.Token, error)

	// Restore replaces the document's entire state from a token.
	// It may block while resources referenced by the snapshot load.
	Restore(ctx context.Context, t codec.Token) error

	// RemoveAll deletes the given objects as one atomic operation.
	// Used by the selection batcher for compound deletes.
	RemoveAll(ctx context.Context, ids []string) error
}

// Option configures an Engine.
type Option func(*settings)

type settings struct {
	maxEntries int
}

// WithMaxEntries caps the undo stack at n entries (0 = unlimited).
// The bootstrap entry is always retained.
func WithMaxEntries(n int) Option {
	return func(s *settings) {
		s.maxEntries = n
	}
}

// Engine provides linear undo/redo over full-state snapshots of a Document.
//
// It subscribes to the document's scene.* mutation events at construction,
// decides per event whether a distinct undoable state was reached, and
// pushes the serialized snapshot when it was. Undo and Redo restore
// previously captured snapshots while a suspension guard keeps the
// restore's own event echoes out of history.
type Engine struct {
	bus   event.Bus
	doc   Document
	store *Store
	guard Guard

	mu sync.Mutex

	// current is the token last committed or restored; mutations that
	// serialize to the same token are no-ops and are not captured.
	current codec.Token

	// transient is set between transient-started and transient-committed;
	// mutations observed while set are intermediate frames.
	transient bool

	batch batcher

	subs     []event.Subscription
	disposed bool
}

// New constructs an engine over the given document, captures the bootstrap
// snapshot, and subscribes to the document's mutation events on the bus.
func New(ctx context.Context, bus event.Bus, doc Document, opts ...Option) (*Engine, error) {
	var cfg settings
	for _, opt := range opts {
		opt(&cfg)
	}

	bootstrap, err := doc.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCaptureFailed, err)
	}

	e := &Engine{
		bus:     bus,
		doc:     doc,
		store:   NewStore(bootstrap, cfg.maxEntries),
		current: bootstrap,
	}
	e.batch.reset()

	if err := e.subscribeAll(); err != nil {
		e.Dispose()
		return nil, err
	}

	if err := e.publish(ctx, events.TopicHistoryAppended, events.HistoryAppended{
		Token:     string(bootstrap),
		Bootstrap: true,
	}); err != nil {
		e.Dispose()
		return nil, err
	}

	return e, nil
}

// subscribeAll registers the engine's handlers. Each subscription handle is
// kept so Dispose can remove exactly what was added.
func (e *Engine) subscribeAll() error {
	handlers := []struct {
		topic topic.Topic
		fn    event.HandlerFunc
	}{
		{events.TopicSceneObjectAdded, e.handleMutation},
		{events.TopicSceneObjectRemoved, e.handleRemoved},
		{events.TopicSceneObjectModified, e.handleMutation},
		{events.TopicSceneTransientStarted, e.handleTransientStarted},
		{events.TopicSceneTransientCommitted, e.handleTransientCommitted},
		{events.TopicSceneSelectionCreated, e.handleSelectionChanged},
		{events.TopicSceneSelectionUpdated, e.handleSelectionChanged},
		{events.TopicSceneSelectionCleared, e.handleSelectionCleared},
		{events.TopicSceneCleared, e.handleMutation},
	}

	for _, h := range handlers {
		sub, err := e.bus.SubscribeFunc(h.topic, h.fn, event.WithPriority(event.PriorityCritical))
		if err != nil {
			return fmt.Errorf("subscribing to %s: %w", h.topic, err)
		}
		e.subs = append(e.subs, sub)
	}
	return nil
}

// handleMutation processes a direct capture trigger.
func (e *Engine) handleMutation(ctx context.Context, _ event.Envelope) error {
	return e.capture(ctx)
}

// handleTransientStarted suppresses capture until the operation commits.
func (e *Engine) handleTransientStarted(_ context.Context, _ event.Envelope) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.disposed {
		e.transient = true
	}
	return nil
}

// handleTransientCommitted clears the suppression and captures the
// committed state, never an intermediate frame.
func (e *Engine) handleTransientCommitted(ctx context.Context, _ event.Envelope) error {
	e.mu.Lock()
	if e.disposed {
		e.mu.Unlock()
		return nil
	}
	e.transient = false
	e.mu.Unlock()

	return e.capture(ctx)
}

// capture runs the capture decision: suspended or transient mutations are
// ignored, unchanged state is deduplicated, everything else is pushed.
func (e *Engine) capture(ctx context.Context) error {
	if e.guard.Suspended() {
		return nil
	}

	e.mu.Lock()
	if e.disposed || e.transient {
		e.mu.Unlock()
		return nil
	}
	e.mu.Unlock()

	// Serialize outside the lock; handlers invoked by a concurrent publish
	// may need the engine.
	latest, err := e.doc.Token()
	if err != nil {
		e.publishError(ctx, "capture", err)
		return fmt.Errorf("%w: %w", ErrCaptureFailed, err)
	}

	e.mu.Lock()
	if e.disposed || latest == e.current {
		e.mu.Unlock()
		return nil
	}
	e.store.Push(latest)
	e.current = latest
	e.mu.Unlock()

	return e.publish(ctx, events.TopicHistoryAppended, events.HistoryAppended{
		Token: string(latest),
	})
}

// replayReset drops mutation-tracking state after a successful restore.
// The restore replaced the whole document, which implicitly aborts any
// in-progress transient operation and invalidates the pending selection;
// leaving either set would suppress or mis-batch captures indefinitely.
// Caller holds the lock.
func (e *Engine) replayReset() {
	e.transient = false
	e.batch.reset()
}

// Undo restores the previous snapshot and shifts the undone entry onto the
// redo stack. A no-op when only the bootstrap entry remains.
//
// The suspension guard spans the whole restore, including failure paths, so
// the restore's event echoes are never recorded as new history. On failure
// the stacks are returned to their pre-undo state.
func (e *Engine) Undo(ctx context.Context) error {
	e.mu.Lock()
	if e.disposed {
		e.mu.Unlock()
		return ErrDisposed
	}
	popped, ok := e.store.PopUndo()
	if !ok {
		e.mu.Unlock()
		return nil
	}
	e.store.PushRedo(popped)
	// The new top is the state to restore: the popped entry is the state
	// being undone away from.
	target, _ := e.store.PeekUndo()
	release := e.guard.Acquire()
	e.mu.Unlock()
	defer release()

	if err := e.doc.Restore(ctx, target); err != nil {
		e.mu.Lock()
		e.store.PopRedo()
		e.store.PushUndo(popped)
		e.mu.Unlock()
		e.publishError(ctx, "undo", err)
		return fmt.Errorf("%w: %w", ErrRestoreFailed, err)
	}

	e.mu.Lock()
	e.current = target
	e.replayReset()
	e.mu.Unlock()
	release()

	return e.publish(ctx, events.TopicHistoryUndone, events.HistoryUndone{
		Token: string(popped),
	})
}

// Redo restores the most recently undone snapshot and shifts it back onto
// the undo stack. A no-op when the redo stack is empty.
func (e *Engine) Redo(ctx context.Context) error {
	e.mu.Lock()
	if e.disposed {
		e.mu.Unlock()
		return ErrDisposed
	}
	next, ok := e.store.PopRedo()
	if !ok {
		e.mu.Unlock()
		return nil
	}
	e.store.PushUndo(next)
	release := e.guard.Acquire()
	e.mu.Unlock()
	defer release()

	if err := e.doc.Restore(ctx, next); err != nil {
		e.mu.Lock()
		e.store.PopUndo()
		e.store.PushRedo(next)
		e.mu.Unlock()
		e.publishError(ctx, "redo", err)
		return fmt.Errorf("%w: %w", ErrRestoreFailed, err)
	}

	e.mu.Lock()
	e.current = next
	e.replayReset()
	e.mu.Unlock()
	release()

	return e.publish(ctx, events.TopicHistoryRedone, events.HistoryRedone{
		Token: string(next),
	})
}

// CanUndo returns true if an entry sits above the bootstrap.
func (e *Engine) CanUndo() bool {
	return e.store.CanUndo()
}

// CanRedo returns true if a redo entry is pending.
func (e *Engine) CanRedo() bool {
	return e.store.CanRedo()
}

// UndoDepth returns the number of undoable entries.
func (e *Engine) UndoDepth() int {
	return e.store.UndoDepth()
}

// RedoDepth returns the number of redoable entries.
func (e *Engine) RedoDepth() int {
	return e.store.RedoDepth()
}

// SetMaxEntries changes the undo stack cap at runtime, trimming immediately.
func (e *Engine) SetMaxEntries(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.disposed {
		e.store.SetMaxEntries(n)
	}
}

// ClearHistory resets both stacks to a fresh bootstrap entry equal to the
// document's current state. The document itself is untouched.
func (e *Engine) ClearHistory(ctx context.Context) error {
	e.mu.Lock()
	if e.disposed {
		e.mu.Unlock()
		return ErrDisposed
	}
	e.mu.Unlock()

	bootstrap, err := e.doc.Token()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCaptureFailed, err)
	}

	e.mu.Lock()
	if e.disposed {
		e.mu.Unlock()
		return ErrDisposed
	}
	e.store.Reset(bootstrap)
	e.current = bootstrap
	e.mu.Unlock()

	return e.publish(ctx, events.TopicHistoryCleared, events.HistoryCleared{})
}

// Dispose unsubscribes all handlers and clears the stacks. Idempotent;
// mutation events arriving afterwards are inert.
func (e *Engine) Dispose() {
	e.mu.Lock()
	if e.disposed {
		e.mu.Unlock()
		return
	}
	e.disposed = true
	subs := e.subs
	e.subs = nil
	e.batch.reset()
	e.mu.Unlock()

	for _, sub := range subs {
		_ = e.bus.Unsubscribe(sub)
	}
	e.store.Close()
}

// publish emits a history event on the bus.
func (e *Engine) publish(ctx context.Context, t topic.Topic, payload any) error {
	return e.bus.Publish(ctx, event.New(t, payload, publishSource))
}

// publishError reports a failed operation to observers. Failures surface as
// events (and returned errors), never as panics: history operations run off
// UI affordances that must stay responsive.
func (e *Engine) publishError(ctx context.Context, op string, err error) {
	_ = e.bus.Publish(ctx, event.New(events.TopicHistoryError, events.HistoryError{
		Op:  op,
		Err: err,
	}, publishSource))
}
