package conduit

import (
	"context"
	"log/slog"

	"github.com/aretw0/conduit/internal/logging"
	"github.com/aretw0/conduit/internal/runtime"
	"github.com/aretw0/conduit/pkg/domain"
	"github.com/aretw0/conduit/pkg/pipeline"
)

// Suspension is the resumption token returned by a paused traversal.
type Suspension = runtime.Suspension

// Engine is the high-level entry point for the Conduit library. It wraps
// the internal runtime and provides a simplified API for consumers.
type Engine struct {
	runtime *runtime.Engine
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New initializes a new Conduit Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}

	eng.runtime = runtime.NewEngine(
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
	)
	return eng
}

// Apply drives conn through p from the start. It returns the updated conn,
// the pending effect requests of the pausing step (if any), and a non-nil
// Suspension when the traversal paused at an Update step.
//
// A conn that is already sent comes back unchanged with no effects: steps
// never execute on a sent conn, and skipping them is intentional behavior,
// not an error.
func (e *Engine) Apply(ctx context.Context, p pipeline.Pipeline, conn *domain.Conn) (*domain.Conn, []domain.EffectRequest, *Suspension) {
	return e.runtime.Apply(ctx, p, conn)
}

// Resume continues a paused traversal with the effect's result message.
// Steps before the paused position are not re-executed.
func (e *Engine) Resume(ctx context.Context, s *Suspension, msg domain.EffectResult, conn *domain.Conn) (*domain.Conn, []domain.EffectRequest, *Suspension) {
	return e.runtime.Resume(ctx, s, msg, conn)
}
