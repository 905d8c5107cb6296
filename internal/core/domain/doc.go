// Package domain defines the core entities of the findex engine.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - IndexEntry: One filesystem node (path, name, kind, size, mtime)
//   - Snapshot: A persisted image of the index plus its build time
//   - EngineStatus: Observable engine state for callers
//
// It also owns the normalisation rules that turn untrusted snapshot
// data into well-typed entries, and the exclusion rules that decide
// which paths are never worth indexing.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
