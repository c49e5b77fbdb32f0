package ports

import (
	"context"

	"github.com/aretw0/conduit/pkg/domain"
)

// EffectDispatcher defines how side-effects are executed. The engine emits
// requests, and the host implements this interface to fulfil them.
//
// A failed effect should normally be reported as an EffectResult with
// IsError set, so the paused Update step can react to it; a non-nil error
// return is reserved for host-level failures (the traversal is then
// abandoned by the caller, not resumed).
type EffectDispatcher interface {
	Dispatch(ctx context.Context, req domain.EffectRequest) (domain.EffectResult, error)
}
