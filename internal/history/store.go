package history

import (
	"sync"

	"easel/internal/scene/codec"
)

// Store holds the undo and redo stacks of snapshot tokens.
//
// The undo stack is never empty once constructed: its bottom entry is the
// bootstrap snapshot, the document's state when history began. Undoing past
// the bootstrap is impossible, so CanUndo reports true only when something
// sits above it.
type Store struct {
	mu sync.Mutex

	undo []codec.Token
	redo []codec.Token

	// maxEntries caps the undo stack; 0 means unlimited. The bootstrap
	// entry is always retained, oldest entries above it are dropped.
	maxEntries int
}

// NewStore creates a store seeded with the bootstrap snapshot.
func NewStore(bootstrap codec.Token, maxEntries int) *Store {
	if maxEntries < 0 {
		maxEntries = 0
	}
	return &Store{
		undo:       []codec.Token{bootstrap},
		maxEntries: maxEntries,
	}
}

// Push appends a committed snapshot to the undo stack and clears the redo
// stack. Pushing by ordinary mutation invalidates any redoable future.
func (s *Store) Push(t codec.Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.undo = append(s.undo, t)
	s.redo = nil
	s.capLocked()
}

// capLocked enforces maxEntries. Caller holds the lock.
func (s *Store) capLocked() {
	if s.maxEntries <= 0 || len(s.undo) <= s.maxEntries {
		return
	}
	// Keep the bootstrap plus the most recent entries.
	excess := len(s.undo) - s.maxEntries
	kept := make([]codec.Token, 0, s.maxEntries)
	kept = append(kept, s.undo[0])
	kept = append(kept, s.undo[1+excess:]...)
	s.undo = kept
}

// SetMaxEntries changes the undo stack cap and trims immediately.
// Values below zero are treated as unlimited.
func (s *Store) SetMaxEntries(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n < 0 {
		n = 0
	}
	s.maxEntries = n
	s.capLocked()
}

// PopUndo removes and returns the top undo entry.
// The bootstrap entry is never popped; ok is false when only it remains.
func (s *Store) PopUndo() (t codec.Token, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.undo) <= 1 {
		return "", false
	}
	t = s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	return t, true
}

// PopRedo removes and returns the top redo entry.
func (s *Store) PopRedo() (t codec.Token, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.redo) == 0 {
		return "", false
	}
	t = s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	return t, true
}

// PeekUndo returns the top undo entry without removing it.
func (s *Store) PeekUndo() (t codec.Token, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.undo) == 0 {
		return "", false
	}
	return s.undo[len(s.undo)-1], true
}

// PushUndo appends to the undo stack without touching the redo stack.
// Used when shifting an entry back during redo or failure rollback.
func (s *Store) PushUndo(t codec.Token) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.undo = append(s.undo, t)
}

// PushRedo appends to the redo stack.
func (s *Store) PushRedo(t codec.Token) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.redo = append(s.redo, t)
}

// CanUndo returns true if an entry sits above the bootstrap.
func (s *Store) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.undo) > 1
}

// CanRedo returns true if the redo stack is non-empty.
func (s *Store) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.redo) > 0
}

// UndoDepth returns the number of undoable entries (excluding the bootstrap).
func (s *Store) UndoDepth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.undo) - 1
}

// RedoDepth returns the number of redoable entries.
func (s *Store) RedoDepth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.redo)
}

// Reset discards both stacks and re-seeds the undo stack with a fresh
// bootstrap entry. The document itself is untouched.
func (s *Store) Reset(bootstrap codec.Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.undo = []codec.Token{bootstrap}
	s.redo = nil
}

// Close empties both stacks entirely. Only used on engine disposal, after
// which the store is not reused.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.undo = nil
	s.redo = nil
}
