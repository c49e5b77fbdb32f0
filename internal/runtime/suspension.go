package runtime

import (
	"github.com/aretw0/conduit/pkg/pipeline"
)

// Suspension is the resumption token of a paused traversal: the
// router-expanded step sequence as of the pause, plus the index of the
// Update step waiting for its effect result.
//
// It is an explicit state machine value rather than a captured
// continuation: the host event loop persists it while the effect is in
// flight and hands it back to Resume together with the result message.
type Suspension struct {
	// Position is the index of the paused Update step within the flattened
	// traversal. It matches the Position stamped on the pending effects.
	Position int

	steps []pipeline.Step
}

// NewSuspension rebuilds a token from a pipeline and position, for hosts
// that persist the two parts separately.
func NewSuspension(p pipeline.Pipeline, position int) *Suspension {
	return &Suspension{steps: p.Steps(), Position: position}
}

// Pipeline returns the flattened step sequence the token belongs to.
func (s *Suspension) Pipeline() pipeline.Pipeline {
	return pipeline.FromSteps(s.steps)
}
