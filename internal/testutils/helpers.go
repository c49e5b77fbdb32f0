package testutils

import (
	"testing"

	"github.com/aretw0/conduit/pkg/domain"
)

// NewConn builds an unsent test conn for the given method and path.
func NewConn(t *testing.T, method, path string) *domain.Conn {
	t.Helper()
	return domain.NewConn(domain.Request{
		Method:  method,
		Path:    path,
		Headers: make(map[string]string),
		Query:   make(map[string]string),
		Params:  make(map[string]string),
	})
}

// NewConnWithHeaders builds a test conn carrying the given request headers.
// Keys must already be lower case, as the transport adapter would deliver
// them.
func NewConnWithHeaders(t *testing.T, method, path string, headers map[string]string) *domain.Conn {
	t.Helper()
	conn := NewConn(t, method, path)
	for k, v := range headers {
		conn.Req.Headers[k] = v
	}
	return conn
}
