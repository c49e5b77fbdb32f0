/*
Package conduit is a plug-pipeline engine for building small serverless
HTTP applications.

It composes ordered sequences of steps ("plugs") that transform a single
request/response exchange ("conn"), with support for pure transforms,
effectful update steps that pause the pipeline until a side-effect result
arrives, and routers that branch into dynamically chosen sub-pipelines.

# Concept

A pipeline is built once and frozen; the engine then traverses it per
request. Any step can finalize the response by sending the conn, after
which every remaining step is silently skipped. Side effects (database
calls, outbound requests, timers) never run inside the engine: an Update
step describes them as opaque effect requests, the host executes them, and
the traversal resumes where it paused once the result message comes back.
This Hexagonal Architecture keeps the core deterministic and lets it run
under any transport: net/http, a Lambda-style bridge, or plain tests.

# Key Features

  - Deterministic traversal: strict pipeline order, explicit pause/resume
    tokens instead of captured continuations.
  - Sent-conn short circuit: no step ever executes after the response has
    been finalized, even when the send happened mid-pipeline.
  - Concurrency-safe sharing: pipelines are immutable after construction and
    may serve arbitrarily many conns at once.
  - Hexagonal Architecture: effect dispatch, session persistence and HTTP
    serving live in adapters, decoupled from the core.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/conduit"
		"github.com/aretw0/conduit/pkg/domain"
		"github.com/aretw0/conduit/pkg/pipeline"
	)

	func main() {
		p := pipeline.New().
			Plug(func(conn *domain.Conn) *domain.Conn {
				return conn.SetHeader("x-powered-by", "conduit")
			}).
			Plug(func(conn *domain.Conn) *domain.Conn {
				return conn.SendText(200, "hello")
			})

		eng := conduit.New()
		conn := domain.NewConn(domain.Request{Method: "GET", Path: "/"})

		conn, effects, susp := eng.Apply(context.Background(), p, conn)
		if susp != nil {
			// Execute effects, then eng.Resume with the result message.
			_ = effects
		}
		log.Printf("%d %s", conn.Resp.StatusCode, conn.Resp.Body)
	}

For serving pipelines over HTTP, see pkg/adapters/http.
*/
package conduit
