package history

import "sync/atomic"

// Guard is a reference-counted capture suspension.
//
// While any acquisition is outstanding, the engine ignores every mutation
// notification: during a replay they are echoes of the restore, and during
// a compound removal they are the batcher's own synthetic removals. A
// reference count rather than a boolean lets the two reasons overlap
// without one clearing the other's suppression.
type Guard struct {
	n atomic.Int32
}

// Acquire suspends capture and returns the matching release function.
// The release is idempotent, so it is safe to call on every exit path:
//
//	release := g.Acquire()
//	defer release()
func (g *Guard) Acquire() (release func()) {
	g.n.Add(1)

	var done atomic.Bool
	return func() {
		if done.CompareAndSwap(false, true) {
			g.n.Add(-1)
		}
	}
}

// Suspended returns true while any acquisition is outstanding.
func (g *Guard) Suspended() bool {
	return g.n.Load() > 0
}
