// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the launcher to function:
//
//   - ResultResolver: Turns a Query into a list of typed results
//   - WindowController: Shows and hides the palette and settings windows
//   - Shell: Opens paths/URLs and copies text to the clipboard
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the resolver degrades gracefully:
//
//   - IndexStore: Persisted file path index. Without it Search mode has no file results.
//   - HistorySource: Browser history. Without it BrowserHistory mode is empty.
//   - Calculator: Expression evaluation. Without it no calculator results are produced.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
