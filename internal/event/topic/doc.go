// Package topic provides hierarchical topic types and pattern matching for
// the event bus.
//
// # Topic Format
//
// Topics use dot-notation to create hierarchical namespaces:
//
//	scene.object.added
//	scene.selection.updated
//	history.undone
//
// # Wildcards
//
// Two wildcard patterns are supported in subscription patterns:
//
//   - "*" matches exactly one segment
//   - "**" matches zero or more segments
//
// Examples:
//
//	scene.*            matches scene.cleared (not scene.object.added)
//	scene.**           matches scene.cleared and scene.object.added
//	history.*          matches history.appended, history.undone, ...
//	**                 matches everything
package topic
