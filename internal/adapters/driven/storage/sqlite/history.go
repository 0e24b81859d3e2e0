package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/custodia-labs/swordfish/internal/core/domain"
	"github.com/custodia-labs/swordfish/internal/core/ports/driven"
	"github.com/custodia-labs/swordfish/internal/logger"
)

// Ensure HistoryReader implements the interface.
var _ driven.HistorySource = (*HistoryReader)(nil)

// Visit times are stored relative to these epochs.
const (
	// chromiumEpochOffset is the number of microseconds between 1601-01-01
	// and the Unix epoch.
	chromiumEpochOffset = 11644473600000000
)

const (
	chromiumQuery = `SELECT url, COALESCE(title, ''), visit_count, last_visit_time FROM urls ORDER BY visit_count DESC`
	firefoxQuery  = `SELECT url, COALESCE(title, ''), visit_count, COALESCE(last_visit_date, 0) FROM moz_places ORDER BY visit_count DESC`
)

// walSuffix names the write-ahead log SQLite keeps next to a database.
const walSuffix = "-wal"

// HistoryReader reads browser history databases. Browsers keep their
// database locked, so each one is copied to a temporary file before reading.
// Visits read from a database are cached until its files change on disk.
type HistoryReader struct {
	databases []domain.HistoryDatabase
	tempDir   string
	log       zerolog.Logger

	mu    sync.Mutex
	cache map[string]cachedVisits
}

// cachedVisits holds the visits read from one database and the file
// state they were read at.
type cachedVisits struct {
	stamp  fileStamp
	visits []domain.HistoryVisit
}

// fileStamp identifies a version of a database and its WAL sidecar.
type fileStamp struct {
	modTime    time.Time
	size       int64
	walModTime time.Time
	walSize    int64
}

func (s fileStamp) equal(o fileStamp) bool {
	return s.size == o.size && s.walSize == o.walSize &&
		s.modTime.Equal(o.modTime) && s.walModTime.Equal(o.walModTime)
}

func stampOf(path string) (fileStamp, error) {
	info, err := os.Stat(path)
	if err != nil {
		return fileStamp{}, fmt.Errorf("stat %s: %w", path, err)
	}
	st := fileStamp{modTime: info.ModTime(), size: info.Size()}
	if wal, err := os.Stat(path + walSuffix); err == nil {
		st.walModTime = wal.ModTime()
		st.walSize = wal.Size()
	}
	return st, nil
}

// NewHistoryReader creates a reader for dbs. When dbs is empty the
// well-known browser locations below the user's home directory are probed.
func NewHistoryReader(dbs []domain.HistoryDatabase) *HistoryReader {
	if len(dbs) == 0 {
		if home, err := os.UserHomeDir(); err == nil {
			dbs = DetectHistoryDatabases(home)
		}
	}
	return &HistoryReader{
		databases: dbs,
		tempDir:   os.TempDir(),
		log:       logger.Component("history"),
		cache:     make(map[string]cachedVisits),
	}
}

// Databases returns the databases this reader reads.
func (r *HistoryReader) Databases() []domain.HistoryDatabase {
	return r.databases
}

// Visits reads every database and returns visits merged by URL, most
// recently visited first. Unreadable databases are logged and skipped.
// A database is only copied and scanned again when its files have changed
// since the previous call.
func (r *HistoryReader) Visits(ctx context.Context) ([]domain.HistoryVisit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	merged := make(map[string]domain.HistoryVisit)

	for _, db := range r.databases {
		visits, err := r.cached(ctx, db)
		if err != nil {
			r.log.Warn().Err(err).Str("path", db.Path).Msg("skipping history database")
			continue
		}
		for _, v := range visits {
			prev, seen := merged[v.URL]
			if seen {
				v.VisitCount += prev.VisitCount
				if prev.LastVisit.After(v.LastVisit) {
					v.LastVisit = prev.LastVisit
				}
				if v.Title == "" {
					v.Title = prev.Title
				}
			}
			merged[v.URL] = v
		}
	}

	out := make([]domain.HistoryVisit, 0, len(merged))
	for _, v := range merged {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].LastVisit.Equal(out[j].LastVisit) {
			return out[i].LastVisit.After(out[j].LastVisit)
		}
		return out[i].URL < out[j].URL
	})
	return out, nil
}

// cached returns the visits of db, reading it only when its stamp moved.
// Callers hold r.mu.
func (r *HistoryReader) cached(ctx context.Context, db domain.HistoryDatabase) ([]domain.HistoryVisit, error) {
	stamp, err := stampOf(db.Path)
	if err != nil {
		delete(r.cache, db.Path)
		return nil, err
	}
	if c, ok := r.cache[db.Path]; ok && c.stamp.equal(stamp) {
		return c.visits, nil
	}

	visits, err := r.read(ctx, db)
	if err != nil {
		delete(r.cache, db.Path)
		return nil, err
	}
	r.cache[db.Path] = cachedVisits{stamp: stamp, visits: visits}
	r.log.Debug().Str("path", db.Path).Int("visits", len(visits)).Msg("history database cached")
	return visits, nil
}

func (r *HistoryReader) read(ctx context.Context, db domain.HistoryDatabase) ([]domain.HistoryVisit, error) {
	query, toTime, err := schemaFor(db.Kind)
	if err != nil {
		return nil, err
	}

	copyPath, err := r.copyToTemp(db.Path)
	if err != nil {
		return nil, err
	}
	defer removeCopy(copyPath)

	conn, err := sql.Open("sqlite", copyPath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", db.Path, err)
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", db.Path, err)
	}
	defer rows.Close()

	browser := BrowserLabel(db)
	var visits []domain.HistoryVisit
	for rows.Next() {
		var (
			rawURL, title string
			count, stamp  int64
		)
		if err := rows.Scan(&rawURL, &title, &count, &stamp); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", db.Path, err)
		}
		clean, ok := CleanURL(rawURL)
		if !ok {
			continue
		}
		visits = append(visits, domain.HistoryVisit{
			Browser:    browser,
			URL:        clean,
			Title:      title,
			VisitCount: count,
			LastVisit:  toTime(stamp),
		})
	}
	return visits, rows.Err()
}

// copyToTemp copies the database at path, and its WAL when present, to a
// temporary location. Remove the copy with removeCopy.
func (r *HistoryReader) copyToTemp(path string) (string, error) {
	dst, err := os.CreateTemp(r.tempDir, "swordfish-history-*.sqlite")
	if err != nil {
		return "", fmt.Errorf("creating temp copy: %w", err)
	}
	name := dst.Name()
	if err := dst.Close(); err != nil {
		os.Remove(name)
		return "", fmt.Errorf("creating temp copy: %w", err)
	}

	if err := copyFile(path, name); err != nil {
		removeCopy(name)
		return "", err
	}
	if _, err := os.Stat(path + walSuffix); err == nil {
		if err := copyFile(path+walSuffix, name+walSuffix); err != nil {
			removeCopy(name)
			return "", err
		}
	}
	return name, nil
}

func copyFile(from, to string) error {
	src, err := os.Open(from)
	if err != nil {
		return fmt.Errorf("opening %s: %w", from, err)
	}
	defer src.Close()

	dst, err := os.OpenFile(to, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating %s: %w", to, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("copying %s: %w", from, err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("copying %s: %w", from, err)
	}
	return nil
}

// removeCopy deletes a temporary copy together with the sidecars SQLite
// may have created next to it.
func removeCopy(name string) {
	for _, p := range []string{name, name + walSuffix, name + "-shm"} {
		os.Remove(p)
	}
}

func schemaFor(kind domain.BrowserKind) (string, func(int64) time.Time, error) {
	switch kind {
	case domain.BrowserChromium:
		return chromiumQuery, chromiumTime, nil
	case domain.BrowserFirefox:
		return firefoxQuery, firefoxTime, nil
	default:
		return "", nil, fmt.Errorf("%w: browser kind %q", domain.ErrInvalidInput, kind)
	}
}

// chromiumTime converts microseconds since 1601-01-01.
func chromiumTime(us int64) time.Time {
	if us <= 0 {
		return time.Time{}
	}
	return time.UnixMicro(us - chromiumEpochOffset).UTC()
}

// firefoxTime converts microseconds since the Unix epoch.
func firefoxTime(us int64) time.Time {
	if us <= 0 {
		return time.Time{}
	}
	return time.UnixMicro(us).UTC()
}

// CleanURL drops the query and fragment and trims trailing separators.
// Non-web URLs are rejected.
func CleanURL(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", false
	}
	u.RawQuery = ""
	u.ForceQuery = false
	u.Fragment = ""
	u.RawFragment = ""
	return strings.TrimRight(u.String(), "/#?&"), true
}

// BrowserLabel names the browser a database belongs to, from its path.
func BrowserLabel(db domain.HistoryDatabase) string {
	p := strings.ToLower(filepath.ToSlash(db.Path))
	switch {
	case strings.Contains(p, "/arc/"):
		return "Arc"
	case strings.Contains(p, "bravesoftware"):
		return "Brave"
	case strings.Contains(p, "google-chrome"), strings.Contains(p, "google/chrome"):
		return "Chrome"
	case strings.Contains(p, "/chromium/"):
		return "Chromium"
	case db.Kind == domain.BrowserFirefox:
		return "Firefox"
	default:
		return db.Kind.Description()
	}
}

// DetectHistoryDatabases returns the history databases of known browsers
// that exist below home.
func DetectHistoryDatabases(home string) []domain.HistoryDatabase {
	var candidates []domain.HistoryDatabase
	for _, c := range knownLocations() {
		matches, err := filepath.Glob(filepath.Join(home, filepath.FromSlash(c.Path)))
		if err != nil {
			continue
		}
		for _, m := range matches {
			if info, err := os.Stat(m); err == nil && !info.IsDir() {
				candidates = append(candidates, domain.HistoryDatabase{Kind: c.Kind, Path: m})
			}
		}
	}
	return candidates
}

func knownLocations() []domain.HistoryDatabase {
	chromium := func(p string) domain.HistoryDatabase {
		return domain.HistoryDatabase{Kind: domain.BrowserChromium, Path: p}
	}
	firefox := func(p string) domain.HistoryDatabase {
		return domain.HistoryDatabase{Kind: domain.BrowserFirefox, Path: p}
	}

	switch runtime.GOOS {
	case "darwin":
		return []domain.HistoryDatabase{
			chromium("Library/Application Support/Google/Chrome/Default/History"),
			chromium("Library/Application Support/Arc/User Data/Default/History"),
			chromium("Library/Application Support/BraveSoftware/Brave-Browser/Default/History"),
			firefox("Library/Application Support/Firefox/Profiles/*/places.sqlite"),
		}
	case "windows":
		return []domain.HistoryDatabase{
			chromium("AppData/Local/Google/Chrome/User Data/Default/History"),
			chromium("AppData/Local/BraveSoftware/Brave-Browser/User Data/Default/History"),
			firefox("AppData/Roaming/Mozilla/Firefox/Profiles/*.default-release/places.sqlite"),
		}
	default:
		return []domain.HistoryDatabase{
			chromium(".config/google-chrome/Default/History"),
			chromium(".config/chromium/Default/History"),
			chromium(".config/BraveSoftware/Brave-Browser/Default/History"),
			firefox(".mozilla/firefox/*.default-release/places.sqlite"),
		}
	}
}
