package domain

import "time"

// IndexedPath is a file system path recorded by the indexer.
type IndexedPath struct {
	Path        string
	LastUpdated time.Time
}

// IndexStats summarises the file index.
type IndexStats struct {
	Paths       int
	LastUpdated time.Time
}

// HistoryVisit is one URL read from a browser history database.
type HistoryVisit struct {
	Browser    BrowserKind
	URL        string
	Title      string
	VisitCount int64
	LastVisit  time.Time
}
