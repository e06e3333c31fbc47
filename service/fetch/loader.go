// Package fetch tracks the lifecycle of one explorer call: the data it
// produced, whether it is still outstanding, and a fixed error message when it
// failed.
//
// A Loader issues exactly one call per Load and never retries. Starting a new
// Load, or closing the loader, cancels the call in flight; a response that
// arrives for a superseded call is discarded instead of overwriting newer
// state.
package fetch

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/brojonat/soldungen/service/metrics"
)

// State is the (data, loading, error) triple shown by a page section.
type State[T any] struct {
	Data    T
	Loading bool
	Err     string
}

// Failed reports whether the last completed load failed.
func (s State[T]) Failed() bool { return s.Err != "" }

// Func performs one call. It must honor ctx cancellation.
type Func[T any] func(ctx context.Context) (T, error)

// Config describes one section.
type Config struct {
	// Section names the section in logs and metrics, e.g. "blocks".
	Section string

	// Message is the fixed text shown when a load fails.
	Message string

	// Describe, when set, derives the shown text from the error instead of
	// using Message.
	Describe func(err error) string

	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

// Loader owns one State and the call that fills it.
type Loader[T any] struct {
	cfg Config
	fn  Func[T]

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	closed bool
	state  State[T]
}

// New creates an idle loader.
func New[T any](cfg Config, fn Func[T]) *Loader[T] {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Loader[T]{cfg: cfg, fn: fn}
}

// Section returns the section name.
func (l *Loader[T]) Section() string { return l.cfg.Section }

// State returns a snapshot of the current state.
func (l *Loader[T]) State() State[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Load runs the call and returns the resulting state. If another Load starts
// or the loader is closed before the call returns, the result is dropped and
// the state current at that moment is returned.
func (l *Loader[T]) Load(ctx context.Context) State[T] {
	l.mu.Lock()
	if l.closed {
		defer l.mu.Unlock()
		return l.state
	}
	if l.cancel != nil {
		l.cancel()
	}
	l.gen++
	gen := l.gen
	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.state.Loading = true
	l.mu.Unlock()

	data, err := l.fn(ctx)
	cancel()

	l.mu.Lock()
	defer l.mu.Unlock()

	if gen != l.gen || l.closed {
		l.cfg.Logger.DebugContext(ctx, "discarding stale response", "section", l.cfg.Section)
		if l.cfg.Metrics != nil {
			l.cfg.Metrics.RecordStaleResponse(l.cfg.Section)
		}
		return l.state
	}

	l.cancel = nil
	l.state.Loading = false

	if err != nil {
		var zero T
		l.state.Data = zero
		l.state.Err = l.message(err)
		l.cfg.Logger.WarnContext(ctx, "section load failed",
			"section", l.cfg.Section,
			"error", err,
		)
		if l.cfg.Metrics != nil {
			l.cfg.Metrics.RecordSectionLoad(l.cfg.Section, "error")
		}
		return l.state
	}

	l.state.Data = data
	l.state.Err = ""
	if l.cfg.Metrics != nil {
		l.cfg.Metrics.RecordSectionLoad(l.cfg.Section, "ok")
	}
	return l.state
}

// Refresh runs Load and discards the returned state.
func (l *Loader[T]) Refresh(ctx context.Context) {
	l.Load(ctx)
}

// Close cancels any call in flight. Later loads are no-ops.
func (l *Loader[T]) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.state.Loading = false
}

func (l *Loader[T]) message(err error) string {
	if l.cfg.Describe != nil {
		if msg := l.cfg.Describe(err); msg != "" {
			return msg
		}
	}
	return l.cfg.Message
}
