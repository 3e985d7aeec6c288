package fonts

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Loader loads one font into the host. It may block.
type Loader interface {
	LoadFont(ctx context.Context, key Key) error
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, key Key) error

// LoadFont implements Loader.
func (f LoaderFunc) LoadFont(ctx context.Context, key Key) error {
	return f(ctx, key)
}

// DefaultMaxConcurrent bounds in-flight loads.
const DefaultMaxConcurrent = 8

// Scheduler loads fonts through a Loader, remembering which keys have
// already been loaded so each one is requested at most once.
type Scheduler struct {
	loader Loader
	limit  int

	mu     sync.Mutex
	loaded map[Key]struct{}
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithMaxConcurrent sets how many loads may run at once.
func WithMaxConcurrent(n int) SchedulerOption {
	return func(s *Scheduler) {
		if n > 0 {
			s.limit = n
		}
	}
}

// NewScheduler creates a scheduler backed by loader.
func NewScheduler(loader Loader, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		loader: loader,
		limit:  DefaultMaxConcurrent,
		loaded: make(map[Key]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsLoaded reports whether key has been loaded by this scheduler.
func (s *Scheduler) IsLoaded(key Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.loaded[key]
	return ok
}

// EnsureLoaded loads every key in keys that is not loaded yet and waits for
// all of them. The first failure is returned as an *UnavailableError; keys
// that did load stay cached.
func (s *Scheduler) EnsureLoaded(ctx context.Context, keys *Set) error {
	if keys == nil || keys.Len() == 0 {
		return nil
	}

	var pending []Key
	s.mu.Lock()
	for _, k := range keys.Keys() {
		if _, ok := s.loaded[k]; !ok {
			pending = append(pending, k)
		}
	}
	s.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.limit)
	for _, k := range pending {
		g.Go(func() error {
			if err := s.loader.LoadFont(gctx, k); err != nil {
				return &UnavailableError{Key: k, Err: err}
			}
			s.mu.Lock()
			s.loaded[k] = struct{}{}
			s.mu.Unlock()
			return nil
		})
	}
	return g.Wait()
}
