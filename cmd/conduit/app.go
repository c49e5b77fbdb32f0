package main

import (
	"context"
	"math/rand"
	"net/http"

	"github.com/google/uuid"

	"github.com/aretw0/conduit/pkg/domain"
	httpadapter "github.com/aretw0/conduit/pkg/adapters/http"
	"github.com/aretw0/conduit/pkg/pipeline"
	"github.com/aretw0/conduit/pkg/registry"
)

var quotes = []string{
	"Simplicity is prerequisite for reliability.",
	"A little copying is better than a little dependency.",
	"Don't communicate by sharing memory, share memory by communicating.",
}

// demoEffects registers the side effects used by the demo routes.
func demoEffects() *registry.Registry {
	reg := registry.New()
	reg.Register("quote.pick", func(ctx context.Context, args map[string]any) (any, error) {
		return quotes[rand.Intn(len(quotes))], nil
	})
	return reg
}

// registerDemoRoutes mounts the bundled demo pipelines.
func registerDemoRoutes(srv *httpadapter.Server) {
	// Plugs shared across routes.
	tagged := pipeline.New().Plug(func(conn *domain.Conn) *domain.Conn {
		return conn.SetHeader("x-request-id", uuid.NewString())
	})

	srv.Handle(http.MethodGet, "/hello", tagged.Plug(func(conn *domain.Conn) *domain.Conn {
		return conn.SendText(http.StatusOK, "hello from conduit")
	}))

	srv.Handle(http.MethodGet, "/greet/{name}", tagged.Plug(func(conn *domain.Conn) *domain.Conn {
		name := conn.Param("name")
		if name == "" {
			name = "stranger"
		}
		return conn.SendJSON(http.StatusOK, map[string]string{"greeting": "hello, " + name})
	}))

	// Session counter: one bump per request, persisted by the store.
	srv.Handle(http.MethodGet, "/count", tagged.Plug(func(conn *domain.Conn) *domain.Conn {
		count, _ := conn.Session["count"].(float64)
		count++
		conn.Session["count"] = count
		return conn.SendJSON(http.StatusOK, map[string]any{"count": count})
	}))

	// Effectful route: pauses at the Update step until the quote arrives.
	srv.Handle(http.MethodGet, "/quote", tagged.Nest(
		pipeline.New().Loop(func(msg domain.EffectResult, conn *domain.Conn) (*domain.Conn, []domain.EffectRequest) {
			if msg.Init() {
				return conn, []domain.EffectRequest{{
					ID:   uuid.NewString(),
					Name: "quote.pick",
				}}
			}
			if msg.IsError {
				return conn.SendText(http.StatusBadGateway, msg.Error), nil
			}
			return conn.SendJSON(http.StatusOK, map[string]any{"quote": msg.Result}), nil
		}),
	))

	// Fork on a query flag, the in-pipeline counterpart of chi routing.
	srv.Handle(http.MethodGet, "/mode", tagged.Fork(func(conn *domain.Conn) pipeline.Pipeline {
		if conn.Query("verbose") == "1" {
			return pipeline.New().Plug(func(conn *domain.Conn) *domain.Conn {
				return conn.SendJSON(http.StatusOK, map[string]any{
					"mode":   "verbose",
					"method": conn.Req.Method,
					"path":   conn.Req.Path,
					"ip":     conn.Req.RemoteIP,
				})
			})
		}
		return pipeline.New().Plug(func(conn *domain.Conn) *domain.Conn {
			return conn.SendText(http.StatusOK, "quiet")
		})
	}))
}
