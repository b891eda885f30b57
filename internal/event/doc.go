// Package event provides the publish/subscribe bus that connects the scene
// document to the history engine and the UI.
//
// # Design
//
// Delivery is strictly synchronous and ordered: Publish runs every matching
// handler in the caller's goroutine before returning. The history engine is
// built on this guarantee: a document mutation, the capture decision it
// triggers, and the history notification that follows all execute within the
// same logical turn, so the engine's suspension guards are always observed
// by the notifications they are meant to suppress.
//
// # Subscriptions
//
// Subscribe returns a stable Subscription handle; the identical handle is
// passed to Unsubscribe. Handler identity therefore cannot drift between
// subscribe and unsubscribe, which would otherwise leak subscriptions.
// Subscriptions support priorities (lower runs first), filter predicates,
// one-shot delivery, and pause/resume.
//
// # Topics
//
// Topics are hierarchical dot-separated strings ("scene.object.added");
// subscription patterns may use "*" (one segment) and "**" (any segments).
// See the topic subpackage.
package event
