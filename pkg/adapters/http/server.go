// Package http serves Conduit pipelines over net/http. It translates
// requests into conns, drives the engine's apply/resume loop (dispatching
// pending effects through the configured dispatcher), and renders the
// resulting conn back onto the response writer.
package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/aretw0/conduit"
	"github.com/aretw0/conduit/internal/logging"
	"github.com/aretw0/conduit/pkg/domain"
	"github.com/aretw0/conduit/pkg/pipeline"
	"github.com/aretw0/conduit/pkg/ports"
	"github.com/aretw0/conduit/pkg/session"
)

// SessionCookie is the cookie carrying the session ID. The X-Session-Id
// header is honored as a fallback for non-browser clients.
const SessionCookie = "conduit_session"

// defaultMaxResumes bounds the effect loop of a single request, so an
// Update step that keeps requesting effects cannot hang the handler
// forever.
const defaultMaxResumes = 100

// Server mounts pipelines on method+pattern routes and serves them.
type Server struct {
	engine     *conduit.Engine
	router     chi.Router
	dispatcher ports.EffectDispatcher
	sessions   ports.SessionStore
	logger     *slog.Logger
	metrics    http.Handler
	stage      string
	maxResumes int
}

// Option configures the Server.
type Option func(*Server)

// WithDispatcher sets the effect dispatcher used to fulfil pending
// effects. Without one, a pipeline that pauses gets a 500.
func WithDispatcher(d ports.EffectDispatcher) Option {
	return func(s *Server) {
		s.dispatcher = d
	}
}

// WithSessionStore enables session persistence around each request.
func WithSessionStore(store ports.SessionStore) Option {
	return func(s *Server) {
		s.sessions = store
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetricsHandler mounts h at /metrics (see pkg/observability).
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithStage tags every conn with a deployment stage label (e.g. "dev").
func WithStage(stage string) Option {
	return func(s *Server) {
		s.stage = stage
	}
}

// WithMaxResumes overrides the per-request effect loop bound.
func WithMaxResumes(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxResumes = n
		}
	}
}

// NewServer creates a server around an engine.
func NewServer(engine *conduit.Engine, opts ...Option) *Server {
	s := &Server{
		engine:     engine,
		router:     chi.NewRouter(),
		logger:     logging.NewNop(),
		maxResumes: defaultMaxResumes,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.router.Use(enableCORS)
	s.router.Use(requestLogger(s.logger))
	if s.metrics != nil {
		s.router.Method(http.MethodGet, "/metrics", s.metrics)
	}
	return s
}

// Handle mounts a pipeline on a method and chi route pattern
// (e.g. "GET", "/users/{id}").
func (s *Server) Handle(method, pattern string, p pipeline.Pipeline) {
	s.router.MethodFunc(method, pattern, s.serve(p))
}

// Handler returns the fully wired http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// serve runs one pipeline traversal per request, resuming through the
// dispatcher whenever the traversal pauses.
func (s *Server) serve(p pipeline.Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn := FromRequest(r, s.stage)

		if s.sessions == nil {
			if conn, ok := s.runPipeline(w, r, p, conn); ok {
				WriteResponse(w, conn)
			}
			return
		}

		id := sessionID(r)
		fresh := id == ""
		if fresh {
			id = uuid.NewString()
		}
		conn.SessionID = id

		if mgr, ok := s.sessions.(*session.Manager); ok {
			// Hold the session lock across the whole load-run-save cycle, so
			// concurrent requests for one session cannot interleave.
			err := mgr.WithLock(r.Context(), id, func(ctx context.Context) error {
				s.serveSession(w, r.WithContext(ctx), p, conn, mgr.Store(), fresh)
				return nil
			})
			if err != nil {
				s.logger.Error("session lock failed", "session", id, "err", err)
				http.Error(w, "session unavailable", http.StatusServiceUnavailable)
			}
			return
		}
		s.serveSession(w, r, p, conn, s.sessions, fresh)
	}
}

// serveSession wraps the pipeline run with session load and save.
func (s *Server) serveSession(w http.ResponseWriter, r *http.Request, p pipeline.Pipeline, conn *domain.Conn, store ports.SessionStore, fresh bool) {
	if !fresh {
		data, err := store.Load(r.Context(), conn.SessionID)
		switch {
		case err == nil:
			conn.Session = data
		case errors.Is(err, domain.ErrSessionNotFound):
			// Stale cookie, start over with an empty session.
		default:
			s.logger.Warn("session load failed", "session", conn.SessionID, "err", err)
		}
	}

	conn, ok := s.runPipeline(w, r, p, conn)
	if !ok {
		return
	}

	if err := store.Save(r.Context(), conn.SessionID, conn.Session); err != nil {
		s.logger.Warn("session save failed", "session", conn.SessionID, "err", err)
	} else if fresh {
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    conn.SessionID,
			Path:     "/",
			HttpOnly: true,
		})
	}

	WriteResponse(w, conn)
}

// runPipeline drives the apply/resume loop. It reports false when an error
// response was already written.
func (s *Server) runPipeline(w http.ResponseWriter, r *http.Request, p pipeline.Pipeline, conn *domain.Conn) (*domain.Conn, bool) {
	ctx := r.Context()
	conn, effects, susp := s.engine.Apply(ctx, p, conn)

	for resumes := 0; susp != nil; resumes++ {
		if s.dispatcher == nil {
			s.logger.Error("pipeline paused but no dispatcher configured", "conn", conn.ID, "position", susp.Position)
			http.Error(w, "no effect dispatcher configured", http.StatusInternalServerError)
			return conn, false
		}
		if resumes >= s.maxResumes {
			s.logger.Error("effect loop exceeded resume bound", "conn", conn.ID, "position", susp.Position)
			http.Error(w, "effect loop did not terminate", http.StatusInternalServerError)
			return conn, false
		}

		msg, err := s.resolveEffects(r, conn, effects)
		if err != nil {
			s.logger.Error("effect dispatch failed", "conn", conn.ID, "err", err)
			http.Error(w, "effect dispatch failed", http.StatusInternalServerError)
			return conn, false
		}

		conn, effects, susp = s.engine.Resume(ctx, susp, msg, conn)
	}
	return conn, true
}

// resolveEffects dispatches the pending effects of one pause, in order.
// The first result becomes the resumption message; the pause point is
// resumed exactly once, so further effects of the same pause are executed
// for their side effects only.
func (s *Server) resolveEffects(r *http.Request, conn *domain.Conn, effects []domain.EffectRequest) (domain.EffectResult, error) {
	var msg domain.EffectResult
	for i, eff := range effects {
		res, err := s.dispatcher.Dispatch(r.Context(), eff)
		if err != nil {
			return domain.EffectResult{}, err
		}
		if i == 0 {
			msg = res
		}
	}
	return msg, nil
}

func sessionID(r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	return r.Header.Get("X-Session-Id")
}
