package dispatcher

import "errors"

// Dispatcher errors.
var (
	// ErrUnknownCommand indicates no handler is registered for a command.
	ErrUnknownCommand = errors.New("dispatcher: unknown command")

	// ErrCommandCancelled indicates the command was cancelled by a hook.
	ErrCommandCancelled = errors.New("dispatcher: command cancelled by hook")

	// ErrPanic indicates the handler panicked.
	ErrPanic = errors.New("dispatcher: handler panic")
)
