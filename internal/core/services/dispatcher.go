package services

import (
	"context"

	"github.com/custodia-labs/swordfish/internal/core/domain"
)

// Action names the session operation a key event was mapped to.
type Action string

// Dispatcher actions.
const (
	ActionNone         Action = ""
	ActionNextMode     Action = "next_mode"
	ActionPrevMode     Action = "prev_mode"
	ActionOpenSettings Action = "open_settings"
	ActionOpenNumbered Action = "open_numbered"
	ActionCopy         Action = "copy"
	ActionCursorUp     Action = "cursor_up"
	ActionCursorDown   Action = "cursor_down"
	ActionOpen         Action = "open"
	ActionReset        Action = "reset"
)

// Outcome describes what a dispatched key event did.
type Outcome struct {
	Action Action

	// Handled is false when no binding matched and the key belongs to
	// the text input.
	Handled bool

	// PreventDefault suppresses the input's own handling of the key.
	PreventDefault bool

	// FocusInput is always true: every key re-focuses the search input.
	FocusInput bool

	// Err is the error returned by the session operation, if any.
	Err error
}

// Dispatcher maps key events to session operations.
type Dispatcher struct {
	session *Session
}

// NewDispatcher creates a dispatcher for session.
func NewDispatcher(session *Session) *Dispatcher {
	return &Dispatcher{session: session}
}

// Dispatch runs the first binding that matches ev.
func (d *Dispatcher) Dispatch(ctx context.Context, ev domain.KeyEvent) Outcome {
	out := d.dispatch(ctx, ev)
	out.FocusInput = true
	out.Handled = out.Action != ActionNone
	return out
}

func (d *Dispatcher) dispatch(ctx context.Context, ev domain.KeyEvent) Outcome {
	s := d.session
	mod := ev.HasPlatformModifier()

	if ev.Key == domain.KeyTab {
		if ev.Shift {
			s.PrevMode()
			return Outcome{Action: ActionPrevMode, PreventDefault: true}
		}
		s.NextMode()
		return Outcome{Action: ActionNextMode, PreventDefault: true}
	}

	if ev.Key == "," && mod {
		return Outcome{Action: ActionOpenSettings, Err: s.OpenSettings(ctx)}
	}

	if digit, ok := ev.Digit(); ok && mod {
		out := Outcome{Action: ActionOpenNumbered, PreventDefault: true}
		if entry, ok := s.SelectedResult(digit); ok {
			out.Err = s.OpenResult(ctx, entry)
		}
		return out
	}

	if (ev.Key == "c" || ev.Key == "C") && mod && ev.Shift {
		return Outcome{Action: ActionCopy, PreventDefault: true, Err: s.CopySelected(ctx)}
	}

	switch ev.Key {
	case domain.KeyArrowUp:
		s.CursorUp()
		return Outcome{Action: ActionCursorUp, PreventDefault: true}
	case domain.KeyArrowDown:
		s.CursorDown()
		return Outcome{Action: ActionCursorDown, PreventDefault: true}
	case domain.KeyEnter:
		entry, _ := s.SelectedResult(0)
		return Outcome{Action: ActionOpen, Err: s.OpenResult(ctx, entry)}
	case domain.KeyEscape:
		s.ResetAndHide(ctx)
		return Outcome{Action: ActionReset}
	}

	return Outcome{}
}
