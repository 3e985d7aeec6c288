// Package handler provides the handler interface and result types for
// command dispatch.
package handler

import (
	"context"

	"github.com/dshills/textcutter/internal/scene"
)

// Command is a named request over a selection.
type Command struct {
	// Name identifies the handler (e.g., "split-lines").
	Name string

	// Selection is the set of nodes the command acts on.
	Selection []scene.Node
}

// Handler processes a command.
type Handler interface {
	// Handle executes the command and returns a result.
	Handle(ctx context.Context, cmd Command) Result

	// Priority returns the handler priority (higher = checked first).
	Priority() int
}

// HandlerFunc is a function adapter for the Handler interface.
type HandlerFunc struct {
	fn   func(ctx context.Context, cmd Command) Result
	prio int
}

// NewHandlerFunc creates a HandlerFunc from a function.
func NewHandlerFunc(fn func(ctx context.Context, cmd Command) Result) *HandlerFunc {
	return &HandlerFunc{fn: fn}
}

// NewHandlerFuncWithPriority creates a HandlerFunc with a specified priority.
func NewHandlerFuncWithPriority(fn func(ctx context.Context, cmd Command) Result, priority int) *HandlerFunc {
	return &HandlerFunc{fn: fn, prio: priority}
}

// Handle implements Handler.Handle.
func (f *HandlerFunc) Handle(ctx context.Context, cmd Command) Result {
	if f.fn == nil {
		return Errorf("handler function is nil")
	}
	return f.fn(ctx, cmd)
}

// Priority implements Handler.Priority.
func (f *HandlerFunc) Priority() int {
	return f.prio
}
