// Package script runs user Lua hooks on history notifications.
//
// A hook file defines any subset of the global functions on_append(token,
// bootstrap), on_undo(token), on_redo(token), and on_clear(). The runner
// subscribes to history.* topics at low priority and invokes the matching
// function per event. Lua errors are logged and counted but never reach
// the engine.
package script
