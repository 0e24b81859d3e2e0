package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/swordfish/internal/core/domain"
)

func newTestDispatcher(results ...string) (*Dispatcher, *Session, *MockWindow, *MockShell) {
	s, window, shell := newTestSession()
	if len(results) > 0 {
		s.SetSearchString("q")
		tickets := s.Channel().Drain()
		s.ApplyResponse(Response{Ticket: tickets[len(tickets)-1], Results: fileResults(results...)})
	}
	return NewDispatcher(s), s, window, shell
}

func TestDispatcher_Tab(t *testing.T) {
	d, s, _, _ := newTestDispatcher()
	ctx := context.Background()

	out := d.Dispatch(ctx, domain.KeyEvent{Key: domain.KeyTab})
	assert.Equal(t, ActionNextMode, out.Action)
	assert.True(t, out.PreventDefault)
	assert.Equal(t, domain.ModeBrowserHistory, s.Snapshot().Mode)

	out = d.Dispatch(ctx, domain.KeyEvent{Key: domain.KeyTab, Shift: true})
	assert.Equal(t, ActionPrevMode, out.Action)
	assert.Equal(t, domain.ModeSearch, s.Snapshot().Mode)

	d.Dispatch(ctx, domain.KeyEvent{Key: domain.KeyTab, Shift: true})
	assert.Equal(t, domain.ModeChat, s.Snapshot().Mode)
}

func TestDispatcher_Settings(t *testing.T) {
	d, _, window, _ := newTestDispatcher()
	toggled := 0
	window.ToggleSettingsFunc = func(context.Context) error {
		toggled++
		return nil
	}

	out := d.Dispatch(context.Background(), domain.KeyEvent{Key: ",", Meta: true})
	assert.Equal(t, ActionOpenSettings, out.Action)
	out = d.Dispatch(context.Background(), domain.KeyEvent{Key: ",", Ctrl: true})
	assert.Equal(t, ActionOpenSettings, out.Action)
	assert.Equal(t, 2, toggled)

	out = d.Dispatch(context.Background(), domain.KeyEvent{Key: ","})
	assert.False(t, out.Handled)
	assert.Equal(t, 2, toggled)
}

func TestDispatcher_NumberedShortcut(t *testing.T) {
	d, s, _, shell := newTestDispatcher("a", "b", "c")

	out := d.Dispatch(context.Background(), domain.KeyEvent{Key: "2", Meta: true})

	assert.Equal(t, ActionOpenNumbered, out.Action)
	require.NoError(t, out.Err)
	assert.Equal(t, []string{"/tmp/b"}, shell.Opened)
	assert.Equal(t, "", s.Snapshot().SearchString)
}

func TestDispatcher_NumberedShortcutClamps(t *testing.T) {
	d, _, _, shell := newTestDispatcher("a", "b")

	d.Dispatch(context.Background(), domain.KeyEvent{Key: "9", Ctrl: true})

	assert.Equal(t, []string{"/tmp/b"}, shell.Opened)
}

func TestDispatcher_NumberedShortcutOnEmptyResults(t *testing.T) {
	d, s, window, shell := newTestDispatcher()
	s.SetSearchString("keep")

	out := d.Dispatch(context.Background(), domain.KeyEvent{Key: "1", Meta: true})

	assert.True(t, out.Handled)
	assert.NoError(t, out.Err)
	assert.Empty(t, shell.Opened)
	assert.Equal(t, 0, window.HideCalls)
	assert.Equal(t, "keep", s.Snapshot().SearchString)
}

func TestDispatcher_DigitWithoutModifierIsText(t *testing.T) {
	d, _, _, shell := newTestDispatcher("a")

	out := d.Dispatch(context.Background(), domain.KeyEvent{Key: "1"})

	assert.False(t, out.Handled)
	assert.True(t, out.FocusInput)
	assert.Empty(t, shell.Opened)
}

func TestDispatcher_Copy(t *testing.T) {
	d, s, _, shell := newTestDispatcher("a", "b")
	s.SetCursor(1)

	for _, key := range []string{"c", "C"} {
		out := d.Dispatch(context.Background(), domain.KeyEvent{Key: key, Meta: true, Shift: true})
		assert.Equal(t, ActionCopy, out.Action)
		require.NoError(t, out.Err)
	}

	assert.Equal(t, []string{"/tmp/b", "/tmp/b"}, shell.Copied)
	assert.Equal(t, "q", s.Snapshot().SearchString)

	out := d.Dispatch(context.Background(), domain.KeyEvent{Key: "c", Meta: true})
	assert.False(t, out.Handled)
}

func TestDispatcher_Arrows(t *testing.T) {
	d, s, _, _ := newTestDispatcher("a", "b", "c")

	out := d.Dispatch(context.Background(), domain.KeyEvent{Key: domain.KeyArrowDown})
	assert.Equal(t, ActionCursorDown, out.Action)
	assert.True(t, out.PreventDefault)
	assert.Equal(t, 1, s.Snapshot().Cursor)

	out = d.Dispatch(context.Background(), domain.KeyEvent{Key: domain.KeyArrowUp})
	assert.Equal(t, ActionCursorUp, out.Action)
	assert.True(t, out.PreventDefault)
	assert.Equal(t, 0, s.Snapshot().Cursor)
}

func TestDispatcher_Enter(t *testing.T) {
	d, s, _, shell := newTestDispatcher("a", "b")
	s.SetCursor(1)

	out := d.Dispatch(context.Background(), domain.KeyEvent{Key: domain.KeyEnter})

	assert.Equal(t, ActionOpen, out.Action)
	require.NoError(t, out.Err)
	assert.Equal(t, []string{"/tmp/b"}, shell.Opened)
	assert.Equal(t, []string{"q"}, s.Snapshot().History)
}

func TestDispatcher_EnterWithoutResults(t *testing.T) {
	d, _, _, _ := newTestDispatcher()

	out := d.Dispatch(context.Background(), domain.KeyEvent{Key: domain.KeyEnter})

	assert.ErrorIs(t, out.Err, domain.ErrNoSelection)
}

func TestDispatcher_Escape(t *testing.T) {
	d, s, window, _ := newTestDispatcher("a")

	out := d.Dispatch(context.Background(), domain.KeyEvent{Key: domain.KeyEscape})

	assert.Equal(t, ActionReset, out.Action)
	assert.Equal(t, 1, window.HideCalls)
	assert.Equal(t, "", s.Snapshot().SearchString)
}

func TestDispatcher_TabWinsOverModifiers(t *testing.T) {
	d, s, window, _ := newTestDispatcher()
	toggled := false
	window.ToggleSettingsFunc = func(context.Context) error {
		toggled = true
		return nil
	}

	out := d.Dispatch(context.Background(), domain.KeyEvent{Key: domain.KeyTab, Meta: true})

	assert.Equal(t, ActionNextMode, out.Action)
	assert.False(t, toggled)
	assert.Equal(t, domain.ModeBrowserHistory, s.Snapshot().Mode)
}

func TestDispatcher_EveryKeyFocusesInput(t *testing.T) {
	d, _, _, _ := newTestDispatcher("a")
	keys := []domain.KeyEvent{
		{Key: "x"},
		{Key: domain.KeyArrowDown},
		{Key: domain.KeyTab},
		{Key: ",", Meta: true},
		{Key: domain.KeyEscape},
	}

	for _, k := range keys {
		assert.True(t, d.Dispatch(context.Background(), k).FocusInput, k.Key)
	}
}
