// Package memory provides in-memory implementations of driven ports.
// They back tests, and the index store is the fallback when the
// SQLite index cannot be opened.
package memory
