package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrNoDocument indicates an operation that needs an open document.
	ErrNoDocument = errors.New("no document open")
)

// OperationError represents a failed application operation.
type OperationError struct {
	Op     string // open, load, select, script, save
	Target string // file path, when there is one
	Err    error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{Op: op, Target: target, Err: err}
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
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
