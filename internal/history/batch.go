package history

import (
	"context"

	"easel/internal/event"
	"easel/internal/event/events"
)

// batcher tracks the active multi-object selection so that deleting it
// collapses to one history entry instead of one per object.
//
// Selection events replace the pending set wholesale; a selection larger
// than one object arms batching. State is protected by the engine's mutex.
type batcher struct {
	pending map[string]struct{}
	order   []string
	armed   bool
}

// reset drops all batching state.
func (b *batcher) reset() {
	b.pending = make(map[string]struct{})
	b.order = nil
	b.armed = false
}

// set replaces the pending set with the given selection.
func (b *batcher) set(ids []string) {
	b.pending = make(map[string]struct{}, len(ids))
	b.order = append([]string(nil), ids...)
	for _, id := range ids {
		b.pending[id] = struct{}{}
	}
	b.armed = len(ids) > 1
}

// contains reports membership in the pending set.
func (b *batcher) contains(id string) bool {
	_, ok := b.pending[id]
	return ok
}

// take returns the pending set minus the given member, in selection order,
// and clears all batching state.
func (b *batcher) take(exclude string) []string {
	var rest []string
	for _, id := range b.order {
		if id != exclude {
			rest = append(rest, id)
		}
	}
	b.reset()
	return rest
}

// handleSelectionChanged replaces the pending selection wholesale.
func (e *Engine) handleSelectionChanged(_ context.Context, env event.Envelope) error {
	payload, ok := env.Payload.(events.SelectionChanged)
	if !ok {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.disposed {
		e.batch.set(payload.ObjectIDs)
	}
	return nil
}

// handleSelectionCleared disarms batching.
func (e *Engine) handleSelectionCleared(_ context.Context, _ event.Envelope) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.disposed {
		e.batch.reset()
	}
	return nil
}

// handleRemoved routes an object-removed notification.
//
// When batching is armed and the removed object belongs to the pending
// selection, the whole remaining selection is removed as one atomic
// document operation with capture suspended, followed by exactly one
// capture pass. The suspension also stops this handler from re-entering
// itself on the compound removal's own per-object notifications.
//
// A removal outside an armed selection passes straight through to the
// ordinary capture path.
func (e *Engine) handleRemoved(ctx context.Context, env event.Envelope) error {
	if e.guard.Suspended() {
		return nil
	}

	payload, ok := env.Payload.(events.ObjectRemoved)
	if !ok {
		return nil
	}

	e.mu.Lock()
	if e.disposed {
		e.mu.Unlock()
		return nil
	}
	if !e.batch.armed || !e.batch.contains(payload.ObjectID) {
		e.mu.Unlock()
		return e.capture(ctx)
	}

	rest := e.batch.take(payload.ObjectID)
	release := e.guard.Acquire()
	e.mu.Unlock()

	err := e.doc.RemoveAll(ctx, rest)
	release()
	if err != nil {
		e.publishError(ctx, "batch", err)
		return err
	}

	return e.capture(ctx)
}
