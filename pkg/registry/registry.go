// Package registry provides a name-based effect dispatcher: hosts register
// effect implementations by name, and the HTTP adapter (or any other
// runtime) resolves pending effect requests through it.
package registry

import (
	"context"
	"sync"

	"github.com/aretw0/conduit/pkg/domain"
)

// EffectFunc defines the signature for an effect implementation. It
// receives a context and the request's argument map, and returns a result
// or error.
type EffectFunc func(ctx context.Context, args map[string]any) (any, error)

// Registry manages the available effects. Safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	effects map[string]EffectFunc
}

// New creates a new empty registry.
func New() *Registry {
	return &Registry{
		effects: make(map[string]EffectFunc),
	}
}

// Register adds an effect to the registry. If an effect with the same name
// exists, it is overwritten.
func (r *Registry) Register(name string, fn EffectFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.effects[name] = fn
}

// Dispatch looks up the requested effect by name and executes it.
//
// An unknown name or a failing effect yields an IsError result rather than
// a Go error, so the paused Update step gets to decide how the pipeline
// reacts. The error return is always nil here; it exists to satisfy
// ports.EffectDispatcher.
func (r *Registry) Dispatch(ctx context.Context, req domain.EffectRequest) (domain.EffectResult, error) {
	r.mu.RLock()
	fn, ok := r.effects[req.Name]
	r.mu.RUnlock()

	if !ok {
		return domain.EffectResult{
			ID:      req.ID,
			IsError: true,
			Error:   "effect not found: " + req.Name,
		}, nil
	}

	out, err := fn(ctx, req.Args)
	if err != nil {
		return domain.EffectResult{
			ID:      req.ID,
			IsError: true,
			Error:   err.Error(),
		}, nil
	}
	return domain.EffectResult{ID: req.ID, Result: out}, nil
}
