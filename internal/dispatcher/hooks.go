package dispatcher

import (
	"github.com/dshills/textcutter/internal/dispatcher/handler"
)

// PreDispatchHook is called before a command is dispatched.
// Returning false cancels the dispatch.
type PreDispatchHook interface {
	PreDispatch(cmd *handler.Command) bool
}

// PostDispatchHook is called after a command is dispatched.
// It may inspect or modify the result.
type PostDispatchHook interface {
	PostDispatch(cmd *handler.Command, result *handler.Result)
}

// PreDispatchFunc is a function adapter for PreDispatchHook.
type PreDispatchFunc func(cmd *handler.Command) bool

// PreDispatch implements PreDispatchHook.
func (f PreDispatchFunc) PreDispatch(cmd *handler.Command) bool {
	return f(cmd)
}

// PostDispatchFunc is a function adapter for PostDispatchHook.
type PostDispatchFunc func(cmd *handler.Command, result *handler.Result)

// PostDispatch implements PostDispatchHook.
func (f PostDispatchFunc) PostDispatch(cmd *handler.Command, result *handler.Result) {
	f(cmd, result)
}

// Logger is the logging interface used by LoggingHook.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
}

// LoggingHook logs every dispatch and its outcome.
type LoggingHook struct {
	log Logger
}

// NewLoggingHook creates a new logging hook.
func NewLoggingHook(log Logger) *LoggingHook {
	return &LoggingHook{log: log}
}

// PreDispatch logs the command being dispatched.
func (h *LoggingHook) PreDispatch(cmd *handler.Command) bool {
	h.log.Debug("dispatching %s (%d selected)", cmd.Name, len(cmd.Selection))
	return true
}

// PostDispatch logs the dispatch result.
func (h *LoggingHook) PostDispatch(cmd *handler.Command, result *handler.Result) {
	h.log.Info("%s -> %s: %s", cmd.Name, result.Status, result)
}
