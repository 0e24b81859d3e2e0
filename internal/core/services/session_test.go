package services

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/swordfish/internal/core/domain"
)

func newTestSession() (*Session, *MockWindow, *MockShell) {
	window := &MockWindow{}
	shell := &MockShell{}
	return NewSession(NewQueryChannel(&MockResolver{}), window, shell), window, shell
}

func TestSession_SetSearchString(t *testing.T) {
	s, _, _ := newTestSession()

	s.SetSearchString("readme")

	snap := s.Snapshot()
	assert.Equal(t, "readme", snap.SearchString)
	assert.True(t, snap.Touched)
	assert.True(t, snap.Loading)

	tickets := s.Channel().Drain()
	require.Len(t, tickets, 1)
	assert.Equal(t, domain.Query{SearchString: "readme", Mode: domain.ModeSearch}, tickets[0].Query)
}

func TestSession_SetSearchString_UnchangedIsNoop(t *testing.T) {
	s, _, _ := newTestSession()
	s.SetSearchString("readme")
	s.Channel().Drain()

	s.SetSearchString("readme")

	assert.False(t, s.Channel().Pending())
}

func TestSession_SetSearchString_EmptyClearsTouched(t *testing.T) {
	s, _, _ := newTestSession()
	s.SetSearchString("r")
	s.SetSearchString("")

	assert.False(t, s.Snapshot().Touched)
	assert.Len(t, s.Channel().Drain(), 2)
}

func TestSession_SetMode(t *testing.T) {
	s, _, _ := newTestSession()
	s.SetSearchString("foo")
	answer(t, s, fileResults("a", "b", "c"))
	s.SetCursor(2)

	require.NoError(t, s.SetMode(domain.ModeScripts))

	snap := s.Snapshot()
	assert.Equal(t, domain.ModeScripts, snap.Mode)
	assert.Equal(t, 0, snap.Cursor)
	assert.Equal(t, "foo", snap.SearchString)

	tickets := s.Channel().Drain()
	require.Len(t, tickets, 1)
	assert.Equal(t, domain.Query{SearchString: "foo", Mode: domain.ModeScripts}, tickets[0].Query)
}

func TestSession_SetMode_OutOfRange(t *testing.T) {
	s, _, _ := newTestSession()

	err := s.SetMode(domain.QueryMode(42))

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, domain.ModeSearch, s.Snapshot().Mode)
	assert.False(t, s.Channel().Pending())
}

func TestSession_ModeWrap(t *testing.T) {
	s, _, _ := newTestSession()

	for range len(domain.ModeList) {
		s.NextMode()
	}
	assert.Equal(t, domain.ModeSearch, s.Snapshot().Mode)

	s.PrevMode()
	assert.Equal(t, domain.ModeChat, s.Snapshot().Mode)
}

func TestSession_CursorWraparound(t *testing.T) {
	s, _, _ := newTestSession()
	s.SetSearchString("x")
	answer(t, s, fileResults("a", "b", "c", "d"))

	for range 4 {
		s.CursorDown()
	}
	assert.Equal(t, 0, s.Snapshot().Cursor)

	s.CursorUp()
	assert.Equal(t, 3, s.Snapshot().Cursor)
}

func TestSession_CursorOnEmptyResults(t *testing.T) {
	s, _, _ := newTestSession()
	s.SetSearchString("nothing")

	assert.NotPanics(t, func() {
		s.CursorDown()
		s.CursorUp()
	})
	assert.Equal(t, 0, s.Snapshot().Cursor)
}

func TestSession_SetCursorClamps(t *testing.T) {
	s, _, _ := newTestSession()
	s.SetSearchString("x")
	answer(t, s, fileResults("a", "b"))

	s.SetCursor(10)
	assert.Equal(t, 1, s.Snapshot().Cursor)

	s.SetCursor(-3)
	assert.Equal(t, 0, s.Snapshot().Cursor)
}

func TestSession_CursorClampedAfterResultsShrink(t *testing.T) {
	s, _, _ := newTestSession()
	s.SetSearchString("x")
	answer(t, s, fileResults("a", "b", "c", "d"))
	s.SetCursor(3)

	s.SetSearchString("xy")
	answer(t, s, fileResults("a"))

	assert.Equal(t, 0, s.Snapshot().Cursor)
}

func TestSession_CursorBoundsUnderRandomSequences(t *testing.T) {
	s, _, _ := newTestSession()
	rng := rand.New(rand.NewSource(7))

	for i := range 2000 {
		switch rng.Intn(5) {
		case 0:
			s.CursorUp()
		case 1:
			s.CursorDown()
		case 2:
			s.SetCursor(rng.Intn(20) - 5)
		case 3:
			names := make([]string, rng.Intn(6))
			for j := range names {
				names[j] = string(rune('a' + j))
			}
			s.SetSearchString(string(rune('a' + i%26)))
			answer(t, s, fileResults(names...))
		case 4:
			s.NextMode()
		}

		snap := s.Snapshot()
		assert.GreaterOrEqual(t, snap.Cursor, 0)
		assert.LessOrEqual(t, snap.Cursor, max(0, len(snap.Results)-1))
	}
}

func TestSession_SelectionListener(t *testing.T) {
	s, _, _ := newTestSession()
	var seen []int
	s.OnSelectionChange(func(i int) { seen = append(seen, i) })
	s.SetSearchString("x")
	answer(t, s, fileResults("a", "b", "c"))

	s.CursorDown()
	s.CursorDown()
	s.CursorUp()
	s.SetCursor(0)

	assert.Equal(t, []int{1, 2, 1}, seen)
}

func TestSession_HistoryRecall(t *testing.T) {
	s, _, _ := newTestSession()
	for _, q := range []string{"a", "b", "c"} {
		s.SetSearchString(q)
		s.ResetAndHide(context.Background())
	}
	require.Equal(t, []string{"a", "b", "c"}, s.Snapshot().History)

	var recalled []string
	for range 4 {
		s.CursorUp()
		recalled = append(recalled, s.Snapshot().SearchString)
	}

	assert.Equal(t, []string{"c", "b", "a", "c"}, recalled)
	assert.False(t, s.Snapshot().Touched)

	tickets := s.Channel().Drain()
	require.Len(t, tickets, 4)
	assert.Equal(t, "c", tickets[3].Query.SearchString)
}

func TestSession_HistoryRecallKeepsCursor(t *testing.T) {
	s, _, _ := newTestSession()
	for _, q := range []string{"x", "y"} {
		s.SetSearchString(q)
		s.ResetAndHide(context.Background())
	}

	s.CursorUp()

	snap := s.Snapshot()
	assert.Equal(t, "y", snap.SearchString)
	assert.Equal(t, 0, snap.Cursor)
}

func TestSession_HistoryRecallStopsOnceTyped(t *testing.T) {
	s, _, _ := newTestSession()
	s.SetSearchString("old")
	s.ResetAndHide(context.Background())

	s.SetSearchString("new")
	answer(t, s, fileResults("a", "b"))
	s.CursorUp()

	snap := s.Snapshot()
	assert.Equal(t, "new", snap.SearchString)
	assert.Equal(t, 1, snap.Cursor)
}

func TestSession_CursorDownDoesNotRecall(t *testing.T) {
	s, _, _ := newTestSession()
	s.SetSearchString("old")
	s.ResetAndHide(context.Background())

	s.CursorDown()

	assert.Equal(t, "", s.Snapshot().SearchString)
}

func TestSession_StaleResponseRejected(t *testing.T) {
	s, _, _ := newTestSession()

	s.SetSearchString("foo")
	foo := s.Channel().Drain()[0]
	s.SetSearchString("bar")
	bar := s.Channel().Drain()[0]

	require.True(t, s.ApplyResponse(Response{Ticket: bar, Results: fileResults("bar1", "bar2")}))
	assert.False(t, s.ApplyResponse(Response{Ticket: foo, Results: fileResults("foo1")}))

	snap := s.Snapshot()
	require.Len(t, snap.Results, 2)
	assert.Equal(t, "bar1", snap.Results[0].Heading)
	assert.False(t, snap.Loading)
}

func TestSession_ResponseAfterResetIsRejected(t *testing.T) {
	s, _, _ := newTestSession()
	s.SetSearchString("foo")
	tk := s.Channel().Drain()[0]

	s.ResetAndHide(context.Background())

	assert.False(t, s.ApplyResponse(Response{Ticket: tk, Results: fileResults("late")}))
	assert.Empty(t, s.Snapshot().Results)
}

func TestSession_ErrorResponseClearsResults(t *testing.T) {
	s, _, _ := newTestSession()
	s.SetSearchString("x")
	answer(t, s, fileResults("a"))

	s.SetSearchString("xy")
	tk := s.Channel().Drain()[0]
	accepted := s.ApplyResponse(Response{Ticket: tk, Err: errors.New("timeout")})

	assert.True(t, accepted)
	snap := s.Snapshot()
	assert.Empty(t, snap.Results)
	assert.Equal(t, 0, snap.Cursor)
	assert.False(t, snap.Loading)
}

func TestSession_SelectedResult(t *testing.T) {
	s, _, _ := newTestSession()

	_, ok := s.SelectedResult(0)
	assert.False(t, ok)
	_, ok = s.SelectedResult(3)
	assert.False(t, ok)

	s.SetSearchString("x")
	answer(t, s, fileResults("a", "b", "c"))
	s.SetCursor(1)

	tests := []struct {
		name string
		key  int
		want string
	}{
		{"cursor", 0, "b"},
		{"first", 1, "a"},
		{"third", 3, "c"},
		{"clamped", 9, "c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, ok := s.SelectedResult(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.want, entry.Heading)
		})
	}
}

func TestSession_ReadmeScenario(t *testing.T) {
	s, _, shell := newTestSession()

	s.SetSearchString("readme")
	answer(t, s, fileResults("readme1", "readme2", "readme3"))
	assert.Equal(t, 0, s.Snapshot().Cursor)

	s.CursorDown()
	s.CursorDown()
	assert.Equal(t, 2, s.Snapshot().Cursor)

	entry, ok := s.SelectedResult(0)
	require.True(t, ok)
	require.NoError(t, s.OpenResult(context.Background(), entry))

	assert.Equal(t, []string{"/tmp/readme3"}, shell.Opened)
	snap := s.Snapshot()
	assert.Equal(t, "", snap.SearchString)
	assert.Empty(t, snap.Results)
	assert.Equal(t, []string{"readme"}, snap.History)
}

func TestSession_OpenResult_CalculatorCopies(t *testing.T) {
	s, _, shell := newTestSession()
	entry := domain.NewCalculatorResult("4", "2+2", "2+2 = 4")

	require.NoError(t, s.OpenResult(context.Background(), &entry))

	assert.Equal(t, []string{"4"}, shell.Copied)
	assert.Empty(t, shell.Opened)
}

func TestSession_OpenResult_BrowserHistoryOpensURL(t *testing.T) {
	s, _, shell := newTestSession()
	entry := domain.ResultEntry{
		Heading:    "Go",
		Subheading: "https://go.dev",
		Preview:    domain.BrowserHistoryPreview{URL: "https://go.dev"},
	}

	require.NoError(t, s.OpenResult(context.Background(), &entry))

	assert.Equal(t, []string{"https://go.dev"}, shell.Opened)
}

func TestSession_OpenResult_FailureStillResets(t *testing.T) {
	s, window, shell := newTestSession()
	shell.OpenFunc = func(context.Context, string) error { return errors.New("no such file") }
	s.SetSearchString("gone")
	answer(t, s, fileResults("gone"))
	entry, _ := s.SelectedResult(0)

	err := s.OpenResult(context.Background(), entry)

	require.Error(t, err)
	assert.Equal(t, 1, window.HideCalls)
	snap := s.Snapshot()
	assert.Equal(t, "", snap.SearchString)
	assert.Empty(t, snap.Results)
	assert.Equal(t, []string{"gone"}, snap.History)
}

func TestSession_OpenResult_Nil(t *testing.T) {
	s, window, _ := newTestSession()
	s.SetSearchString("keep")

	err := s.OpenResult(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrNoSelection)
	assert.Equal(t, 0, window.HideCalls)
	assert.Equal(t, "keep", s.Snapshot().SearchString)
}

func TestSession_CopySelected(t *testing.T) {
	s, _, shell := newTestSession()
	assert.ErrorIs(t, s.CopySelected(context.Background()), domain.ErrNoSelection)

	s.SetSearchString("x")
	answer(t, s, fileResults("a"))

	require.NoError(t, s.CopySelected(context.Background()))
	assert.Equal(t, []string{"/tmp/a"}, shell.Copied)
	assert.Equal(t, "x", s.Snapshot().SearchString)
}

func TestSession_OpenSettings(t *testing.T) {
	s, window, _ := newTestSession()
	toggled := 0
	window.ToggleSettingsFunc = func(context.Context) error {
		toggled++
		return nil
	}

	require.NoError(t, s.OpenSettings(context.Background()))
	assert.Equal(t, 1, toggled)
}

func TestSession_ResetAndHide_Idempotent(t *testing.T) {
	s, window, _ := newTestSession()
	require.NoError(t, s.SetMode(domain.ModeScripts))
	s.SetSearchString("deploy")
	answer(t, s, fileResults("deploy.sh"))

	s.ResetAndHide(context.Background())
	once := s.Snapshot()
	s.ResetAndHide(context.Background())
	twice := s.Snapshot()

	assert.Equal(t, once, twice)
	assert.Equal(t, "", twice.SearchString)
	assert.Equal(t, 0, twice.Cursor)
	assert.Empty(t, twice.Results)
	assert.Equal(t, []string{"deploy"}, twice.History)
	assert.Equal(t, domain.ModeScripts, twice.Mode)
	assert.Equal(t, 2, window.HideCalls)
}

func TestSession_ResetAndHide_HideFailureStillResets(t *testing.T) {
	s, window, _ := newTestSession()
	window.HideMainFunc = func(context.Context) error { return errors.New("rpc down") }
	s.SetSearchString("abc")

	s.ResetAndHide(context.Background())

	assert.Equal(t, "", s.Snapshot().SearchString)
	assert.Equal(t, []string{"abc"}, s.Snapshot().History)
}

func TestSession_HandleWindowHidden(t *testing.T) {
	s, window, _ := newTestSession()
	s.SetSearchString("abc")

	s.HandleWindowHidden(context.Background())

	assert.Equal(t, 0, window.HideCalls)
	assert.Equal(t, "", s.Snapshot().SearchString)
	assert.Equal(t, []string{"abc"}, s.Snapshot().History)
}

func TestSession_SnapshotIsCopy(t *testing.T) {
	s, _, _ := newTestSession()
	s.SetSearchString("x")
	answer(t, s, fileResults("a"))

	snap := s.Snapshot()
	snap.Results[0].Heading = "mutated"

	assert.Equal(t, "a", s.Snapshot().Results[0].Heading)
}
