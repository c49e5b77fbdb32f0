package pipeline

import (
	"github.com/aretw0/conduit/pkg/domain"
)

// Pipeline is an ordered, append-only sequence of steps. Insertion order is
// traversal order. The zero value is a valid empty pipeline.
//
// Every combinator copies the backing slice, so the receiver is never
// mutated and partially built pipelines can be reused as branch points.
type Pipeline struct {
	steps []Step
}

// New returns an empty pipeline.
func New() Pipeline {
	return Pipeline{}
}

// FromSteps builds a pipeline from an existing step sequence. The slice is
// copied.
func FromSteps(steps []Step) Pipeline {
	out := make([]Step, len(steps))
	copy(out, steps)
	return Pipeline{steps: out}
}

// Plug returns a new pipeline with a Transform step appended.
func (p Pipeline) Plug(fn Transform) Pipeline {
	return p.append(TransformStep{Fn: fn})
}

// Loop returns a new pipeline with an Update step appended.
func (p Pipeline) Loop(fn Update) Pipeline {
	return p.append(UpdateStep{Fn: fn})
}

// Fork returns a new pipeline with a Router step appended.
func (p Pipeline) Fork(fn Router) Pipeline {
	return p.append(RouterStep{Fn: fn})
}

// Nest returns a new pipeline with every step of child appended after the
// receiver's steps.
func (p Pipeline) Nest(child Pipeline) Pipeline {
	steps := make([]Step, 0, len(p.steps)+len(child.steps))
	steps = append(steps, p.steps...)
	steps = append(steps, child.steps...)
	return Pipeline{steps: steps}
}

// Len returns the number of steps.
func (p Pipeline) Len() int {
	return len(p.steps)
}

// Steps returns a copy of the step sequence, in traversal order.
func (p Pipeline) Steps() []Step {
	out := make([]Step, len(p.steps))
	copy(out, p.steps)
	return out
}

func (p Pipeline) append(s Step) Pipeline {
	steps := make([]Step, len(p.steps), len(p.steps)+1)
	copy(steps, p.steps)
	return Pipeline{steps: append(steps, s)}
}

// Responder wraps a simple "conn in, conn plus effects out" function as a
// one-step pipeline, for call sites that need a pipeline-shaped value from
// a plain handler. The incoming message is ignored.
func Responder(fn func(*domain.Conn) (*domain.Conn, []domain.EffectRequest)) Pipeline {
	return New().Loop(func(_ domain.EffectResult, conn *domain.Conn) (*domain.Conn, []domain.EffectRequest) {
		return fn(conn)
	})
}
