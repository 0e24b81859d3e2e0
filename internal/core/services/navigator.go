package services

import "github.com/custodia-labs/swordfish/internal/core/domain"

// SelectionListener is notified when keyboard navigation moves the cursor.
// Renderers use it to keep the selected row in view.
type SelectionListener func(index int)

// canRecall reports whether Up should walk search history instead of
// moving the cursor.
func canRecall(s *domain.SearchSession) bool {
	return !s.Touched && s.Cursor == 0 && len(s.History) > 0
}

// recallHistory steps one entry further into the past, most recent first,
// wrapping from the oldest entry back to the most recent. It returns the
// recalled search string.
func recallHistory(s *domain.SearchSession) string {
	n := len(s.History)
	s.HistoryIndex = s.HistoryIndex%n + 1
	return s.History[n-s.HistoryIndex]
}

// stepCursor moves the cursor by delta with wraparound. It reports whether
// the cursor changed. Empty result lists leave the cursor at 0.
func stepCursor(s *domain.SearchSession, delta int) bool {
	n := len(s.Results)
	if n == 0 {
		s.Cursor = 0
		return false
	}
	next := ((s.Cursor+delta)%n + n) % n
	if next == s.Cursor {
		return false
	}
	s.Cursor = next
	return true
}

// clampCursor forces the cursor into [0, max(0, len(Results)-1)].
func clampCursor(s *domain.SearchSession) {
	switch {
	case len(s.Results) == 0, s.Cursor < 0:
		s.Cursor = 0
	case s.Cursor >= len(s.Results):
		s.Cursor = len(s.Results) - 1
	}
}

// resultAt resolves a selection key to an index. Key 0 selects the cursor;
// keys 1-9 select that position, clamped to the last result.
func resultAt(s *domain.SearchSession, key int) (int, bool) {
	n := len(s.Results)
	if n == 0 {
		return 0, false
	}
	if key <= 0 {
		i := s.Cursor
		if i >= n {
			i = n - 1
		}
		return i, true
	}
	return min(key, n) - 1, true
}
