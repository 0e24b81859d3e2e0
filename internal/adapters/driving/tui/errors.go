package tui

import "errors"

// ErrMissingSession is returned when the session controller is not provided.
var ErrMissingSession = errors.New("tui: session controller is required")

// ErrMissingDispatcher is returned when the key dispatcher is not provided.
var ErrMissingDispatcher = errors.New("tui: key dispatcher is required")

// ErrMissingWindow is returned when the window controller is not provided.
var ErrMissingWindow = errors.New("tui: window controller is required")
