// Package domain defines the core types of the swordfish launcher.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - QueryMode: The fixed, ordered list of search modes
//   - Query / QueryResponse: The resolver request and response
//   - ResultEntry: A typed result with a kind-specific preview
//   - SearchSession: Snapshot of the search session aggregate
//   - KeyEvent: A platform-neutral keyboard event
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
