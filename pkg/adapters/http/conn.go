package http

import (
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/aretw0/conduit/pkg/domain"
)

// FromRequest translates an incoming *http.Request into a fresh Conn.
// Header and query keys are normalized to lower case; multi-valued headers
// are joined with ", " and only the first value of repeated query
// parameters is kept.
func FromRequest(r *http.Request, stage string) *domain.Conn {
	headers := make(map[string]string, len(r.Header))
	for k, vals := range r.Header {
		headers[strings.ToLower(k)] = strings.Join(vals, ", ")
	}

	query := make(map[string]string)
	for k, vals := range r.URL.Query() {
		if len(vals) > 0 {
			query[k] = vals[0]
		}
	}

	params := make(map[string]string)
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		for i, key := range rctx.URLParams.Keys {
			params[key] = rctx.URLParams.Values[i]
		}
	}

	var body []byte
	if r.Body != nil {
		body, _ = io.ReadAll(r.Body)
	}

	return domain.NewConn(domain.Request{
		Method:   r.Method,
		Path:     r.URL.Path,
		Host:     r.Host,
		RemoteIP: clientIP(r),
		Stage:    stage,
		Headers:  headers,
		Query:    query,
		Params:   params,
		Body:     body,
	})
}

// WriteResponse renders the conn's response onto w. A conn that finished
// its pipeline without sending gets a 204, the framework's "nothing to
// say" default.
func WriteResponse(w http.ResponseWriter, conn *domain.Conn) {
	if !conn.Sent() {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	for k, v := range conn.Resp.Headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(conn.Resp.StatusCode)
	w.Write(conn.Resp.Body)
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		// First hop is the original client.
		if idx := strings.IndexByte(fwd, ','); idx >= 0 {
			return strings.TrimSpace(fwd[:idx])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
