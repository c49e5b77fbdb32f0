package conduit_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/conduit"
	"github.com/aretw0/conduit/pkg/domain"
	"github.com/aretw0/conduit/pkg/pipeline"
)

func request(path string) *domain.Conn {
	return domain.NewConn(domain.Request{
		Method:  "GET",
		Path:    path,
		Headers: make(map[string]string),
		Query:   make(map[string]string),
	})
}

// End-to-end traversal: routing, an effectful step, and a trailing
// transform, resumed through the public API.
func TestEngine_EndToEnd(t *testing.T) {
	eng := conduit.New()

	greet := pipeline.New().
		Loop(func(msg domain.EffectResult, conn *domain.Conn) (*domain.Conn, []domain.EffectRequest) {
			if msg.Init() {
				return conn, []domain.EffectRequest{{ID: "who", Name: "identity.lookup"}}
			}
			return conn.TextBody("hello " + msg.Result.(string)), nil
		}).
		Plug(func(conn *domain.Conn) *domain.Conn {
			return conn.Status(http.StatusOK).Send()
		})

	health := pipeline.New().Plug(func(conn *domain.Conn) *domain.Conn {
		return conn.SendText(http.StatusOK, "up")
	})

	app := pipeline.New().
		Plug(func(conn *domain.Conn) *domain.Conn {
			return conn.SetHeader("x-request-id", conn.ID)
		}).
		Fork(func(conn *domain.Conn) pipeline.Pipeline {
			if conn.Req.Path == "/health" {
				return health
			}
			return greet
		})

	t.Run("health route completes without pausing", func(t *testing.T) {
		conn, effects, susp := eng.Apply(context.Background(), app, request("/health"))
		require.Nil(t, susp)
		require.Empty(t, effects)
		assert.Equal(t, "up", string(conn.Resp.Body))
	})

	t.Run("greet route pauses and resumes", func(t *testing.T) {
		conn, effects, susp := eng.Apply(context.Background(), app, request("/greet"))
		require.NotNil(t, susp)
		require.Len(t, effects, 1)
		assert.Equal(t, "identity.lookup", effects[0].Name)
		assert.Equal(t, conn.ID, conn.ResponseHeader("x-request-id"))

		conn, effects, susp = eng.Resume(context.Background(), susp, domain.EffectResult{ID: "who", Result: "ada"}, conn)
		require.Nil(t, susp)
		require.Empty(t, effects)
		assert.True(t, conn.Sent())
		assert.Equal(t, "hello ada", string(conn.Resp.Body))
	})
}

func TestEngine_HooksThroughFacade(t *testing.T) {
	var completed int
	eng := conduit.New(conduit.WithLifecycleHooks(domain.LifecycleHooks{
		OnComplete: func(context.Context, *domain.CompleteEvent) { completed++ },
	}))

	eng.Apply(context.Background(), pipeline.New(), request("/"))
	assert.Equal(t, 1, completed)
}
