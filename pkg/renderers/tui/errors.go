package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoOptions is returned for an enumerated field without options.
	ErrNoOptions = errors.New("tui: field has no options")
)
