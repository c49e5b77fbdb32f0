package registry_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/conduit/pkg/domain"
	"github.com/aretw0/conduit/pkg/registry"
)

func TestDispatch_KnownEffect(t *testing.T) {
	reg := registry.New()
	reg.Register("math.add", func(_ context.Context, args map[string]any) (any, error) {
		return args["a"].(int) + args["b"].(int), nil
	})

	res, err := reg.Dispatch(context.Background(), domain.EffectRequest{
		ID:   "req-1",
		Name: "math.add",
		Args: map[string]any{"a": 2, "b": 3},
	})

	require.NoError(t, err)
	assert.Equal(t, "req-1", res.ID)
	assert.False(t, res.IsError)
	assert.Equal(t, 5, res.Result)
}

func TestDispatch_UnknownEffectYieldsErrorResult(t *testing.T) {
	reg := registry.New()

	res, err := reg.Dispatch(context.Background(), domain.EffectRequest{ID: "req-2", Name: "no.such"})

	require.NoError(t, err, "lookup misses are reported inside the result")
	assert.True(t, res.IsError)
	assert.Equal(t, "req-2", res.ID)
	assert.Contains(t, res.Error, "no.such")
}

func TestDispatch_FailingEffectYieldsErrorResult(t *testing.T) {
	reg := registry.New()
	reg.Register("flaky", func(context.Context, map[string]any) (any, error) {
		return nil, errors.New("upstream unavailable")
	})

	res, err := reg.Dispatch(context.Background(), domain.EffectRequest{ID: "req-3", Name: "flaky"})

	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, "upstream unavailable", res.Error)
}

func TestRegister_Overwrites(t *testing.T) {
	reg := registry.New()
	reg.Register("greet", func(context.Context, map[string]any) (any, error) { return "old", nil })
	reg.Register("greet", func(context.Context, map[string]any) (any, error) { return "new", nil })

	res, _ := reg.Dispatch(context.Background(), domain.EffectRequest{Name: "greet"})
	assert.Equal(t, "new", res.Result)
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	reg := registry.New()
	reg.Register("echo", func(_ context.Context, args map[string]any) (any, error) {
		return args["v"], nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			reg.Register("echo", func(_ context.Context, args map[string]any) (any, error) {
				return args["v"], nil
			})
		}()
		go func() {
			defer wg.Done()
			res, err := reg.Dispatch(context.Background(), domain.EffectRequest{Name: "echo", Args: map[string]any{"v": 1}})
			assert.NoError(t, err)
			assert.Equal(t, 1, res.Result)
		}()
	}
	wg.Wait()
}
