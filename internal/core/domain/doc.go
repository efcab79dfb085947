// Package domain defines the core business entities for the selection engine.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Asset: a remote media record identified by a unique id
//   - Query: one remote search against a named category
//   - FilterRule: a local path+pattern predicate over asset payloads
//   - SetNode: a node in the union/intersection/minus combination tree
//   - SelectionRequest / SelectionResult: one pipeline invocation and its outcome
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
