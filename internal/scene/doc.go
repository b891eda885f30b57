// Package scene implements the drawing document the history engine observes.
//
// A Scene is an insertion-ordered collection of objects plus an active
// selection and an optional in-progress transient (continuous) operation.
// Every mutation publishes a scene.* event on the bus; the scene itself
// knows nothing about history.
//
// Scene satisfies the history.Document contract: Token serializes the full
// state through the codec, Restore replaces it wholesale, and RemoveAll
// performs an atomic compound removal for multi-object deletes.
package scene
