package domain

import (
	"context"
)

// StepKind identifies the variant of a pipeline step in events.
type StepKind string

const (
	KindTransform StepKind = "transform"
	KindUpdate    StepKind = "update"
	KindRouter    StepKind = "router"
)

// StepEvent is emitted when the executor enters a step.
type StepEvent struct {
	ConnID   string   `json:"conn_id"`
	Kind     StepKind `json:"kind"`
	Position int      `json:"position"`
}

// PauseEvent is emitted when a traversal pauses at an Update step, and
// again (via OnResume) when the matching result message re-enters it.
type PauseEvent struct {
	ConnID   string `json:"conn_id"`
	Position int    `json:"position"`
	Effects  int    `json:"effects,omitempty"` // Pending effects at pause time
}

// CompleteEvent is emitted when a traversal terminates, either by reaching
// the end of the pipeline or because the conn was sent.
type CompleteEvent struct {
	ConnID string `json:"conn_id"`
	Sent   bool   `json:"sent"`
}

// LifecycleHooks defines callbacks for executor observability. All fields
// are optional; nil hooks are skipped.
type LifecycleHooks struct {
	OnStepEnter func(context.Context, *StepEvent)
	OnPause     func(context.Context, *PauseEvent)
	OnResume    func(context.Context, *PauseEvent)
	OnComplete  func(context.Context, *CompleteEvent)
}
