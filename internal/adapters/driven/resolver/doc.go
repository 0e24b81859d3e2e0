// Package resolver provides the launcher's result resolver.
//
// The Engine answers each query mode from a different data source:
//
//   - Search: the persisted file path index, fuzzy matched
//   - BrowserHistory: browser history databases, fuzzy matched and ranked by frecency
//   - Scripts: files in the scripts directory, with a highlighted preview
//   - Chat: always empty
//
// In every mode, input that evaluates to a different value is answered
// with a calculator result ahead of everything else.
package resolver
