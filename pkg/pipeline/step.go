package pipeline

import (
	"github.com/aretw0/conduit/pkg/domain"
)

// Transform is a pure function from conn to conn. It cannot request side
// effects and cannot fail; anything it needs must already be on the Conn.
type Transform func(*domain.Conn) *domain.Conn

// Update is an effectful step. On first entry it receives the synthetic
// initial message (msg.Init() == true); after a pause it receives the real
// effect result. Returning no effect requests means "done, proceed to the
// next step"; returning any means "pause here until a result arrives".
type Update func(msg domain.EffectResult, conn *domain.Conn) (*domain.Conn, []domain.EffectRequest)

// Router inspects the conn (typically its parsed route) and returns the
// sub-pipeline that should run in its place.
type Router func(*domain.Conn) Pipeline

// Step is one unit of pipeline work. It is a closed variant: exactly
// TransformStep, UpdateStep and RouterStep implement it.
type Step interface {
	// Kind identifies the variant for dispatch and events.
	Kind() domain.StepKind
}

// TransformStep wraps a Transform as a Step.
type TransformStep struct {
	Fn Transform
}

// UpdateStep wraps an Update as a Step.
type UpdateStep struct {
	Fn Update
}

// RouterStep wraps a Router as a Step.
type RouterStep struct {
	Fn Router
}

func (TransformStep) Kind() domain.StepKind { return domain.KindTransform }
func (UpdateStep) Kind() domain.StepKind    { return domain.KindUpdate }
func (RouterStep) Kind() domain.StepKind    { return domain.KindRouter }
