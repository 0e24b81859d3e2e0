package domain

// Key names used by KeyEvent.Key for non-printable keys.
const (
	KeyTab       = "Tab"
	KeyEnter     = "Enter"
	KeyEscape    = "Escape"
	KeyArrowUp   = "ArrowUp"
	KeyArrowDown = "ArrowDown"
)

// KeyEvent is a platform-neutral keyboard event.
// Key is either one of the Key* names or the printable character.
type KeyEvent struct {
	Key   string
	Shift bool
	Ctrl  bool
	Meta  bool
	Alt   bool
}

// HasPlatformModifier reports whether Cmd (Meta) or Ctrl is held.
func (k KeyEvent) HasPlatformModifier() bool {
	return k.Meta || k.Ctrl
}

// Digit returns the numeric value of a 1-9 key.
func (k KeyEvent) Digit() (int, bool) {
	if len(k.Key) != 1 || k.Key[0] < '1' || k.Key[0] > '9' {
		return 0, false
	}
	return int(k.Key[0] - '0'), true
}
