package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/conduit/pkg/domain"
	"github.com/aretw0/conduit/pkg/pipeline"
)

func noop(conn *domain.Conn) *domain.Conn { return conn }

func TestNew_IsEmpty(t *testing.T) {
	assert.Equal(t, 0, pipeline.New().Len())
	assert.Empty(t, pipeline.New().Steps())
}

func TestZeroValue_IsUsable(t *testing.T) {
	var p pipeline.Pipeline
	p = p.Plug(noop)
	assert.Equal(t, 1, p.Len())
}

func TestPlug_DoesNotMutateReceiver(t *testing.T) {
	base := pipeline.New().Plug(noop)

	a := base.Plug(noop).Plug(noop)
	b := base.Plug(noop)

	assert.Equal(t, 1, base.Len(), "receiver grew")
	assert.Equal(t, 3, a.Len())
	assert.Equal(t, 2, b.Len())
}

func TestBranchingFromSharedPrefix(t *testing.T) {
	// Two pipelines built from the same prefix must not see each other's
	// appended steps, even though append could reuse backing capacity.
	prefix := pipeline.New().Plug(noop).Plug(noop)

	left := prefix.Plug(noop)
	right := prefix.Loop(func(_ domain.EffectResult, conn *domain.Conn) (*domain.Conn, []domain.EffectRequest) {
		return conn, nil
	})

	require.Equal(t, 3, left.Len())
	require.Equal(t, 3, right.Len())
	assert.Equal(t, domain.KindTransform, left.Steps()[2].Kind())
	assert.Equal(t, domain.KindUpdate, right.Steps()[2].Kind())
}

func TestStepKinds(t *testing.T) {
	p := pipeline.New().
		Plug(noop).
		Loop(func(_ domain.EffectResult, conn *domain.Conn) (*domain.Conn, []domain.EffectRequest) {
			return conn, nil
		}).
		Fork(func(*domain.Conn) pipeline.Pipeline { return pipeline.New() })

	steps := p.Steps()
	require.Len(t, steps, 3)
	assert.Equal(t, domain.KindTransform, steps[0].Kind())
	assert.Equal(t, domain.KindUpdate, steps[1].Kind())
	assert.Equal(t, domain.KindRouter, steps[2].Kind())
}

func TestNest_PreservesOrder(t *testing.T) {
	parent := pipeline.New().Plug(noop)
	child := pipeline.New().Plug(noop).Plug(noop)

	nested := parent.Nest(child)

	assert.Equal(t, 3, nested.Len())
	assert.Equal(t, 1, parent.Len())
	assert.Equal(t, 2, child.Len())
}

func TestSteps_ReturnsACopy(t *testing.T) {
	p := pipeline.New().Plug(noop).Plug(noop)

	steps := p.Steps()
	steps[0] = pipeline.RouterStep{Fn: func(*domain.Conn) pipeline.Pipeline { return pipeline.New() }}

	assert.Equal(t, domain.KindTransform, p.Steps()[0].Kind(), "caller mutation leaked into the pipeline")
}

func TestFromSteps_CopiesTheSlice(t *testing.T) {
	steps := []pipeline.Step{pipeline.TransformStep{Fn: noop}}
	p := pipeline.FromSteps(steps)

	steps[0] = pipeline.RouterStep{Fn: func(*domain.Conn) pipeline.Pipeline { return pipeline.New() }}

	assert.Equal(t, domain.KindTransform, p.Steps()[0].Kind())
}

func TestResponder_IsASingleUpdateStep(t *testing.T) {
	p := pipeline.Responder(func(conn *domain.Conn) (*domain.Conn, []domain.EffectRequest) {
		return conn, nil
	})

	require.Equal(t, 1, p.Len())
	assert.Equal(t, domain.KindUpdate, p.Steps()[0].Kind())
}
