// Package events defines the topic constants and payload types published on
// the event bus.
//
// Scene topics (scene.*) are the document's mutation vocabulary; history
// topics (history.*) are emitted by the history engine for UI and scripting
// consumers. Payload types are plain structs carried inside event.Envelope.
package events
