package runtime

import (
	"context"
	"log/slog"

	"github.com/aretw0/conduit/internal/logging"
	"github.com/aretw0/conduit/pkg/domain"
	"github.com/aretw0/conduit/pkg/pipeline"
)

// Engine is the core pipeline interpreter. It is stateless: everything a
// traversal needs travels in its arguments, so one Engine may serve any
// number of conns concurrently.
type Engine struct {
	hooks  domain.LifecycleHooks
	logger *slog.Logger
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a structured logger for traversal events.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates a new engine.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Apply drives conn through p from the start, with the synthetic initial
// message. It returns the updated conn, the pending effect requests of the
// pausing step (if any), and a Suspension token when the traversal paused.
// A nil Suspension means the traversal terminated: either the end of the
// sequence was reached or the conn was sent.
func (e *Engine) Apply(ctx context.Context, p pipeline.Pipeline, conn *domain.Conn) (*domain.Conn, []domain.EffectRequest, *Suspension) {
	return e.run(ctx, p.Steps(), 0, domain.EffectResult{}, conn, false)
}

// Resume re-enters a paused traversal. The Update step at the remembered
// position is invoked with msg instead of the initial message; steps before
// it are never re-executed, steps after it proceed normally once it yields
// no further effects.
//
// A Suspension must be resumed at most once; the caller owns that
// discipline (the engine has no way to detect a double resume).
func (e *Engine) Resume(ctx context.Context, s *Suspension, msg domain.EffectResult, conn *domain.Conn) (*domain.Conn, []domain.EffectRequest, *Suspension) {
	if s == nil {
		return conn, nil, nil
	}
	if e.hooks.OnResume != nil {
		ev := pauseEvent(conn, s.Position, 0)
		e.hooks.OnResume(ctx, &ev)
	}
	return e.run(ctx, s.steps, s.Position, msg, conn, true)
}

// run is the traversal loop. It maintains an explicit step slice and
// position counter instead of recursing, so router nesting never grows the
// call stack. The steps slice is owned by the traversal and may be spliced.
func (e *Engine) run(ctx context.Context, steps []pipeline.Step, pos int, msg domain.EffectResult, conn *domain.Conn, resuming bool) (*domain.Conn, []domain.EffectRequest, *Suspension) {
	for {
		// The sent check happens at the top of every iteration, so a
		// transition to Sent mid-step silently skips everything after it.
		if conn.Sent() {
			e.complete(ctx, conn)
			return conn, nil, nil
		}
		if pos >= len(steps) {
			e.complete(ctx, conn)
			return conn, nil, nil
		}

		step := steps[pos]
		if e.hooks.OnStepEnter != nil {
			e.hooks.OnStepEnter(ctx, &domain.StepEvent{ConnID: conn.ID, Kind: step.Kind(), Position: pos})
		}

		switch s := step.(type) {
		case pipeline.TransformStep:
			conn = s.Fn(conn)
			pos++

		case pipeline.UpdateStep:
			in := domain.EffectResult{}
			if resuming {
				in = msg
				resuming = false
			}
			next, effects := s.Fn(in, conn)
			conn = next
			if len(effects) > 0 {
				for i := range effects {
					effects[i].Position = pos
				}
				e.logger.Debug("traversal paused",
					"conn", conn.ID,
					"position", pos,
					"effects", len(effects),
				)
				if e.hooks.OnPause != nil {
					ev := pauseEvent(conn, pos, len(effects))
					e.hooks.OnPause(ctx, &ev)
				}
				return conn, effects, &Suspension{steps: steps, Position: pos}
			}
			pos++

		case pipeline.RouterStep:
			sub := s.Fn(conn).Steps()
			// Splice the chosen sub-pipeline in place of the router step.
			// The router itself is consumed and never re-invoked.
			spliced := make([]pipeline.Step, 0, len(steps)-1+len(sub))
			spliced = append(spliced, steps[:pos]...)
			spliced = append(spliced, sub...)
			spliced = append(spliced, steps[pos+1:]...)
			steps = spliced
		}
	}
}

func (e *Engine) complete(ctx context.Context, conn *domain.Conn) {
	if e.hooks.OnComplete != nil {
		e.hooks.OnComplete(ctx, &domain.CompleteEvent{ConnID: conn.ID, Sent: conn.Sent()})
	}
}

// pauseEvent builds the pause/resume event payload.
func pauseEvent(conn *domain.Conn, pos, effects int) domain.PauseEvent {
	return domain.PauseEvent{ConnID: conn.ID, Position: pos, Effects: effects}
}
