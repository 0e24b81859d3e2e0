package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/custodia-labs/swordfish/internal/core/domain"
	"github.com/custodia-labs/swordfish/internal/core/ports/driven"
	"github.com/custodia-labs/swordfish/internal/core/ports/driving"
	"github.com/custodia-labs/swordfish/internal/logger"
)

// Ensure Session implements the interface.
var _ driving.SessionController = (*Session)(nil)

// Session is the search session controller. It is the only writer of the
// SearchSession aggregate and must be driven from a single goroutine.
type Session struct {
	state     domain.SearchSession
	channel   *QueryChannel
	window    driven.WindowController
	shell     driven.Shell
	listeners []SelectionListener
	log       zerolog.Logger
}

// NewSession creates a session with empty state.
func NewSession(channel *QueryChannel, window driven.WindowController, shell driven.Shell) *Session {
	return &Session{
		channel: channel,
		window:  window,
		shell:   shell,
		log:     logger.Component("session"),
	}
}

// Channel returns the query channel the session issues requests on.
func (s *Session) Channel() *QueryChannel {
	return s.channel
}

// OnSelectionChange registers l for keyboard cursor moves.
func (s *Session) OnSelectionChange(l SelectionListener) {
	s.listeners = append(s.listeners, l)
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() domain.SearchSession {
	return s.state.Clone()
}

// Start issues the initial query for the empty session.
func (s *Session) Start() {
	s.issue()
}

// SetSearchString replaces the search text and issues a query.
func (s *Session) SetSearchString(text string) {
	if text == s.state.SearchString {
		return
	}
	s.state.SearchString = text
	s.state.Touched = text != ""
	s.state.HistoryIndex = 0
	s.issue()
}

// SetMode selects m, resets the cursor and issues a query for the current text.
func (s *Session) SetMode(m domain.QueryMode) error {
	if !m.IsValid() {
		return fmt.Errorf("%w: mode %d", domain.ErrInvalidInput, int(m))
	}
	s.state.Cursor = 0
	if m == s.state.Mode {
		return nil
	}
	s.state.Mode = m
	s.issue()
	return nil
}

// NextMode advances to the next mode, wrapping.
func (s *Session) NextMode() {
	_ = s.SetMode(s.state.Mode.Next())
}

// PrevMode retreats to the previous mode, wrapping.
func (s *Session) PrevMode() {
	_ = s.SetMode(s.state.Mode.Prev())
}

// SetCursor sets the cursor, clamped to the result list.
// Pointer hover uses this, so no selection notification is sent.
func (s *Session) SetCursor(i int) {
	s.state.Cursor = i
	clampCursor(&s.state)
}

// CursorUp moves the cursor up, or recalls history when the input is
// untouched and the cursor sits on the first row.
func (s *Session) CursorUp() {
	if canRecall(&s.state) {
		s.state.SearchString = recallHistory(&s.state)
		s.issue()
		return
	}
	if stepCursor(&s.state, -1) {
		s.notify()
	}
}

// CursorDown moves the cursor down with wraparound.
func (s *Session) CursorDown() {
	if stepCursor(&s.state, 1) {
		s.notify()
	}
}

// SelectedResult returns the cursor's result for key 0 or the key-th
// result for numeric shortcuts. It returns false when there are no results.
func (s *Session) SelectedResult(key int) (*domain.ResultEntry, bool) {
	i, ok := resultAt(&s.state, key)
	if !ok {
		return nil, false
	}
	entry := s.state.Results[i]
	return &entry, true
}

// OpenResult runs the entry's side effect and then resets the session.
// The reset happens even when the side effect fails.
func (s *Session) OpenResult(ctx context.Context, entry *domain.ResultEntry) error {
	if entry == nil {
		return domain.ErrNoSelection
	}

	err := s.dispatch(ctx, entry)
	if err != nil {
		s.log.Warn().
			Err(err).
			Str("kind", entry.Kind().String()).
			Str("value", entry.Value()).
			Msg("open result failed")
	}

	s.ResetAndHide(ctx)

	if err != nil {
		return fmt.Errorf("open %s result: %w", entry.Kind(), err)
	}
	return nil
}

func (s *Session) dispatch(ctx context.Context, entry *domain.ResultEntry) error {
	if s.shell == nil {
		return domain.ErrUnsupportedPlatform
	}
	switch entry.Preview.(type) {
	case domain.CalculatorPreview:
		return s.shell.CopyText(ctx, entry.Value())
	default:
		return s.shell.Open(ctx, entry.Value())
	}
}

// CopySelected copies the selected result's value to the clipboard.
func (s *Session) CopySelected(ctx context.Context) error {
	entry, ok := s.SelectedResult(0)
	if !ok {
		return domain.ErrNoSelection
	}
	if s.shell == nil {
		return domain.ErrUnsupportedPlatform
	}
	if err := s.shell.CopyText(ctx, entry.Value()); err != nil {
		s.log.Warn().Err(err).Msg("copy failed")
		return fmt.Errorf("copy result: %w", err)
	}
	return nil
}

// OpenSettings toggles the settings window.
func (s *Session) OpenSettings(ctx context.Context) error {
	if s.window == nil {
		return domain.ErrUnsupportedPlatform
	}
	if err := s.window.ToggleSettings(ctx); err != nil {
		return fmt.Errorf("toggle settings: %w", err)
	}
	return nil
}

// ResetAndHide hides the main window and clears the session.
// A failed hide is logged; the local reset always happens.
func (s *Session) ResetAndHide(ctx context.Context) {
	if s.window != nil {
		if err := s.window.HideMain(ctx); err != nil {
			s.log.Warn().Err(err).Msg("hide main window failed")
		}
	}
	s.reset()
}

// HandleWindowHidden resets the session after the window was hidden by
// something other than the session itself.
func (s *Session) HandleWindowHidden(_ context.Context) {
	s.reset()
}

// ApplyResponse stores resp if it answers the latest query.
// It reports whether the response was accepted.
func (s *Session) ApplyResponse(resp Response) bool {
	if !s.channel.IsCurrent(resp.Ticket) {
		s.log.Debug().
			Str("ticket", resp.Ticket.ID).
			Uint64("seq", resp.Ticket.Seq).
			Msg("dropping stale response")
		return false
	}

	s.state.Results = resp.Results
	s.state.InlineResult = resp.InlineResult
	if resp.Err != nil {
		s.state.Results = nil
		s.state.InlineResult = ""
	}
	s.state.Loading = false
	clampCursor(&s.state)
	return true
}

func (s *Session) reset() {
	if s.state.SearchString != "" {
		s.state.History = append(s.state.History, s.state.SearchString)
	}
	s.state.SearchString = ""
	s.state.Touched = false
	s.state.Cursor = 0
	s.state.Results = nil
	s.state.InlineResult = ""
	s.state.Loading = false
	s.state.HistoryIndex = 0
	s.channel.Invalidate()
}

func (s *Session) issue() {
	s.state.Loading = true
	s.channel.Issue(s.state.Query())
}

func (s *Session) notify() {
	for _, l := range s.listeners {
		l(s.state.Cursor)
	}
}
