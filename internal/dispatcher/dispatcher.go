package dispatcher

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/dshills/textcutter/internal/dispatcher/handler"
	"github.com/dshills/textcutter/internal/scene"
)

// Command is a named request over a selection.
type Command = handler.Command

// Dispatcher routes commands to handlers.
type Dispatcher struct {
	mu sync.RWMutex

	registry *Registry
	config   Config
	metrics  *Metrics

	preHooks  []PreDispatchHook
	postHooks []PostDispatchHook
}

// New creates a new dispatcher with the given configuration.
func New(config Config) *Dispatcher {
	d := &Dispatcher{
		registry: NewRegistry(),
		config:   config,
	}
	if config.EnableMetrics {
		d.metrics = NewMetrics()
	}
	return d
}

// NewWithDefaults creates a new dispatcher with default configuration.
func NewWithDefaults() *Dispatcher {
	return New(DefaultConfig())
}

// Dispatch executes a command synchronously.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd Command) handler.Result {
	startTime := time.Now()

	if !d.runPreHooks(&cmd) {
		result := handler.CancelledWithMessage("cancelled by hook")
		d.record(cmd.Name, startTime, result)
		return result
	}

	h := d.registry.Get(cmd.Name)
	if h == nil {
		result := handler.Error(fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Name)).
			WithMessage(fmt.Sprintf("Unknown command %q.", cmd.Name))
		d.runPostHooks(&cmd, &result)
		d.record(cmd.Name, startTime, result)
		return result
	}

	if d.config.DefaultTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.config.DefaultTimeout)
		defer cancel()
	}

	var result handler.Result
	if d.config.RecoverFromPanic {
		result = d.executeWithRecovery(ctx, h, cmd)
	} else {
		result = h.Handle(ctx, cmd)
	}

	d.runPostHooks(&cmd, &result)
	d.record(cmd.Name, startTime, result)
	return result
}

// record adds a finished dispatch to the metrics, if enabled.
func (d *Dispatcher) record(name string, start time.Time, result handler.Result) {
	if d.metrics != nil {
		d.metrics.RecordDispatch(name, time.Since(start), result.Status)
	}
}

// Run is shorthand for dispatching name over sel.
func (d *Dispatcher) Run(ctx context.Context, name string, sel []scene.Node) handler.Result {
	return d.Dispatch(ctx, Command{Name: name, Selection: sel})
}

// executeWithRecovery executes a handler with panic recovery.
func (d *Dispatcher) executeWithRecovery(ctx context.Context, h handler.Handler, cmd Command) (result handler.Result) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)

			result = handler.Error(fmt.Errorf("%w in %s: %v\n%s", ErrPanic, cmd.Name, r, stack[:n])).
				WithMessage("Something went wrong.")

			if d.metrics != nil {
				d.metrics.RecordPanic(cmd.Name)
			}
		}
	}()

	return h.Handle(ctx, cmd)
}

// RegisterHandler registers a handler for a command name.
func (d *Dispatcher) RegisterHandler(name string, h handler.Handler) {
	d.registry.Register(name, h)
}

// RegisterHandlerFunc registers a handler function for a command name.
func (d *Dispatcher) RegisterHandlerFunc(name string, fn func(context.Context, Command) handler.Result) {
	d.registry.Register(name, handler.NewHandlerFunc(fn))
}

// RegisterPreHook registers a pre-dispatch hook.
func (d *Dispatcher) RegisterPreHook(hook PreDispatchHook) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.preHooks = append(d.preHooks, hook)
}

// RegisterPostHook registers a post-dispatch hook.
func (d *Dispatcher) RegisterPostHook(hook PostDispatchHook) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.postHooks = append(d.postHooks, hook)
}

// runPreHooks runs all pre-dispatch hooks.
// Returns false if any hook cancels the command.
func (d *Dispatcher) runPreHooks(cmd *Command) bool {
	d.mu.RLock()
	hooks := make([]PreDispatchHook, len(d.preHooks))
	copy(hooks, d.preHooks)
	d.mu.RUnlock()

	for _, h := range hooks {
		if !h.PreDispatch(cmd) {
			return false
		}
	}
	return true
}

// runPostHooks runs all post-dispatch hooks.
func (d *Dispatcher) runPostHooks(cmd *Command, result *handler.Result) {
	d.mu.RLock()
	hooks := make([]PostDispatchHook, len(d.postHooks))
	copy(hooks, d.postHooks)
	d.mu.RUnlock()

	for _, h := range hooks {
		h.PostDispatch(cmd, result)
	}
}

// Commands returns the registered command names.
func (d *Dispatcher) Commands() []string {
	return d.registry.List()
}

// Registry returns the handler registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Metrics returns the metrics collector (may be nil if disabled).
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Config returns the dispatcher configuration.
func (d *Dispatcher) Config() Config {
	return d.config
}
