// Package app is the terminal front end: a minimal drawing surface over the
// scene document with full undo/redo.
//
// Keys: r/c/p/l add shapes, Tab cycles selection, a selects all, d deletes
// the selection, m then arrows moves it (Enter commits), u undoes, U or
// Ctrl-R redoes, x clears the scene, X clears history, q quits.
package app
