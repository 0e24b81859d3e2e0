package resolver

import (
	"context"
	"sort"
	"time"

	"github.com/sahilm/fuzzy"

	"github.com/custodia-labs/swordfish/internal/core/domain"
)

// Frecency weights.
const (
	visitWeight   = 0.4
	recencyWeight = 0.6
	recencyScale  = 100.0
)

// Frecency ranks a visit by how often and how recently it was seen.
// A visit today scores 60 on recency; the recency part halves after a day
// and keeps decaying.
func Frecency(v domain.HistoryVisit, now time.Time) float64 {
	ageDays := now.Sub(v.LastVisit).Hours() / 24
	if ageDays < 0 {
		ageDays = 0
	}
	return float64(v.VisitCount)*visitWeight + recencyWeight*recencyScale/(1+ageDays)
}

type scoredVisit struct {
	visit    domain.HistoryVisit
	score    int
	frecency float64
}

func (e *Engine) searchHistory(ctx context.Context, term string) ([]domain.ResultEntry, error) {
	if e.history == nil {
		return []domain.ResultEntry{}, nil
	}

	visits, err := e.history.Visits(ctx)
	if err != nil {
		return nil, err
	}

	now := e.now()
	scored := rankVisits(term, visits, now)

	results := make([]domain.ResultEntry, 0, e.limit(len(scored)))
	for _, s := range scored[:e.limit(len(scored))] {
		results = append(results, historyResult(s.visit, s.frecency))
	}
	return results, nil
}

// rankVisits keeps visits whose URL or title fuzzy matches term, best
// match first and frecency breaking ties. An empty term keeps everything,
// ordered by frecency alone.
func rankVisits(term string, visits []domain.HistoryVisit, now time.Time) []scoredVisit {
	scores := make(map[int]int, len(visits))
	if term == "" {
		for i := range visits {
			scores[i] = 0
		}
	} else {
		urls := make([]string, len(visits))
		titles := make([]string, len(visits))
		for i, v := range visits {
			urls[i] = v.URL
			titles[i] = v.Title
		}
		for _, m := range fuzzy.Find(term, urls) {
			scores[m.Index] = m.Score
		}
		for _, m := range fuzzy.Find(term, titles) {
			if prev, ok := scores[m.Index]; !ok || m.Score > prev {
				scores[m.Index] = m.Score
			}
		}
	}

	scored := make([]scoredVisit, 0, len(scores))
	for i, score := range scores {
		scored = append(scored, scoredVisit{
			visit:    visits[i],
			score:    score,
			frecency: Frecency(visits[i], now),
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if a.frecency != b.frecency {
			return a.frecency > b.frecency
		}
		return a.visit.URL < b.visit.URL
	})
	return scored
}

func historyResult(v domain.HistoryVisit, frecency float64) domain.ResultEntry {
	heading := v.Title
	if heading == "" {
		heading = v.URL
	}

	preview := domain.BrowserHistoryPreview{
		URL:        v.URL,
		Title:      v.Title,
		Browser:    v.Browser.Description(),
		VisitCount: v.VisitCount,
		Frecency:   frecency,
	}
	if !v.LastVisit.IsZero() {
		preview.LastVisit = v.LastVisit.Format(time.RFC3339)
	}

	return domain.ResultEntry{
		Heading:    heading,
		Subheading: v.URL,
		Preview:    preview,
	}
}
