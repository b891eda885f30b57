// Package codec converts scene state to and from snapshot tokens.
//
// A Token is canonical JSON: struct-ordered fields, objects in insertion
// order, and a format version stamp. Because encoding is deterministic,
// token equality implies equivalent document state, which is what the
// history engine's deduplication relies on.
//
// Decode validates tokens before unmarshaling and reports ErrMalformedToken
// for anything that is not a snapshot, so a corrupted or foreign token can
// never half-restore a document.
package codec
