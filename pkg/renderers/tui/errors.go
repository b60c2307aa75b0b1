package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrTooManyAttempts is returned when values keep failing validation.
	ErrTooManyAttempts = errors.New("tui: too many invalid attempts")
)
