package lua

import "errors"

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrTimeout is returned when a script outlives its deadline.
	ErrTimeout = errors.New("lua execution timeout")

	// ErrCanceled is returned when the caller cancels a running script.
	ErrCanceled = errors.New("lua execution canceled")
)
