// Package history provides linear undo/redo over full-state snapshots of an
// event-emitting document.
//
// The engine observes the document's mutation events and decides, per event,
// whether a distinct undoable unit of work was reached. Three mechanisms
// reconcile the chatty event stream with the transactional semantics users
// expect:
//
//   - Transient suppression: between transient-started and
//     transient-committed (a drag in progress) mutations are observed but
//     not captured; only the committed state produces an entry.
//
//   - Deduplication: a mutation whose serialized state equals the last
//     committed token changed nothing and produces no entry.
//
//   - Selection batching: deleting a multi-object selection raises one
//     removal event per object; the batcher removes the whole selection as
//     one atomic operation under capture suspension and captures once.
//
// # Stacks
//
// The Store keeps two token stacks. The undo stack always retains its
// bottom "bootstrap" entry, the document state when history began, so
// undoing past the beginning is a silent no-op. Any ordinary capture clears
// the redo stack.
//
// # Replay
//
// Undo and Redo restore snapshots through the Document adapter while a
// reference-counted suspension Guard is held, so the restore's own event
// echoes are never mistaken for new history. The guard spans the entire
// restore, including failure paths; a failed restore leaves the document
// and both stacks in their pre-operation state and is reported via a
// history.error event as well as the returned error.
//
// # Usage
//
//	eng, err := history.New(ctx, bus, doc)
//	...
//	eng.Undo(ctx)
//	eng.Redo(ctx)
//	eng.Dispose()
package history
