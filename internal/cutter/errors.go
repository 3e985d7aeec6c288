package cutter

import (
	"errors"
	"fmt"

	"github.com/dshills/textcutter/internal/join"
)

// Errors returned by engine operations.
var (
	// ErrPreconditionFailed indicates the selection has the wrong size or
	// contains the wrong kind of node.
	ErrPreconditionFailed = errors.New("precondition failed")

	// ErrFontUnavailable indicates a font used by the request cannot be loaded.
	ErrFontUnavailable = errors.New("font unavailable")

	// ErrInstanceRestricted indicates a layer is nested inside an instance.
	ErrInstanceRestricted = errors.New("layer is inside an instance")

	// ErrInsufficientInput indicates a join with fewer than two text layers.
	ErrInsufficientInput = join.ErrInsufficientInput
)

// OperationError describes why a request was rejected or failed.
type OperationError struct {
	Op      string // Operation name (e.g., "split-lines")
	Node    string // Offending node id, if any
	Message string // User-facing status
	Err     error  // Underlying error
}

func newOpError(op, node, msg string, err error) *OperationError {
	return &OperationError{Op: op, Node: node, Message: msg, Err: err}
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Op
	if e.Node != "" {
		msg = fmt.Sprintf("%s %s", msg, e.Node)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Message returns the status string to show for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var oe *OperationError
	if errors.As(err, &oe) && oe.Message != "" {
		return oe.Message
	}
	switch {
	case errors.Is(err, ErrInsufficientInput):
		return "Select at least two text layers to join."
	case errors.Is(err, ErrPreconditionFailed):
		return "Select a single text node."
	case errors.Is(err, ErrFontUnavailable):
		return "Whoops, you need to have the font for this layer installed."
	case errors.Is(err, ErrInstanceRestricted):
		return "Layers inside an instance cannot be restructured."
	default:
		return "Something went wrong: " + err.Error()
	}
}
