package domain

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
)

// ConnStatus defines whether a response has been finalized yet.
type ConnStatus string

const (
	StatusUnsent ConnStatus = "unsent" // Response still under construction
	StatusSent   ConnStatus = "sent"   // Response finalized, conn is read-only
)

// Request holds the decoded incoming request. Header and query keys are
// normalized to lower case by the transport adapter before the Conn is built.
type Request struct {
	Method   string            `json:"method"`
	Path     string            `json:"path"`
	Host     string            `json:"host,omitempty"`
	RemoteIP string            `json:"remote_ip,omitempty"`
	Stage    string            `json:"stage,omitempty"`
	Headers  map[string]string `json:"headers,omitempty"`
	Query    map[string]string `json:"query,omitempty"`
	Params   map[string]string `json:"params,omitempty"`
	Body     []byte            `json:"body,omitempty"`
}

// Response is the outgoing response under construction.
type Response struct {
	StatusCode int               `json:"status_code"`
	Headers    map[string]string `json:"headers,omitempty"`
	Body       []byte            `json:"body,omitempty"`
}

// Conn represents a single request/response exchange. It is created per
// incoming request, threaded through the pipeline by every step, and
// discarded after the final response is delivered.
//
// A Conn is exclusively owned by the traversal of a single request; it is
// never shared between goroutines and needs no locking.
type Conn struct {
	// ID is a unique correlation ID for this exchange.
	ID string

	Req  Request
	Resp Response

	// SessionID identifies the session this exchange belongs to (if a
	// session store is configured by the host).
	SessionID string

	// Session holds per-session application data. Plugs may read and write
	// it freely; the host persists it between invocations.
	Session map[string]any

	status ConnStatus
}

// NewConn creates an unsent Conn for the given request.
func NewConn(req Request) *Conn {
	return &Conn{
		ID:      uuid.NewString(),
		Req:     req,
		Resp:    Response{StatusCode: 200, Headers: make(map[string]string)},
		Session: make(map[string]any),
		status:  StatusUnsent,
	}
}

// Sent reports whether the response has been finalized.
func (c *Conn) Sent() bool {
	return c.status == StatusSent
}

// Send finalizes the response. The transition is irreversible: every
// response mutator becomes a no-op afterwards, and the executor skips all
// remaining pipeline steps.
func (c *Conn) Send() *Conn {
	c.status = StatusSent
	return c
}

// Status sets the response status code. No-op once sent.
func (c *Conn) Status(code int) *Conn {
	if c.Sent() {
		return c
	}
	c.Resp.StatusCode = code
	return c
}

// SetHeader sets a response header. No-op once sent.
func (c *Conn) SetHeader(key, value string) *Conn {
	if c.Sent() {
		return c
	}
	if c.Resp.Headers == nil {
		c.Resp.Headers = make(map[string]string)
	}
	c.Resp.Headers[strings.ToLower(key)] = value
	return c
}

// TextBody sets a plain-text response body. No-op once sent.
func (c *Conn) TextBody(body string) *Conn {
	if c.Sent() {
		return c
	}
	c.Resp.Body = []byte(body)
	c.SetHeader("content-type", "text/plain; charset=utf-8")
	return c
}

// JSONBody sets a JSON response body. No-op once sent. Marshal failures are
// swallowed deliberately: a plug cannot fail, so an unmarshalable value
// leaves the body untouched.
func (c *Conn) JSONBody(v any) *Conn {
	if c.Sent() {
		return c
	}
	data, err := json.Marshal(v)
	if err != nil {
		return c
	}
	c.Resp.Body = data
	c.SetHeader("content-type", "application/json")
	return c
}

// SendText sets status and text body, then finalizes the response.
func (c *Conn) SendText(code int, body string) *Conn {
	return c.Status(code).TextBody(body).Send()
}

// SendJSON sets status and JSON body, then finalizes the response.
func (c *Conn) SendJSON(code int, v any) *Conn {
	return c.Status(code).JSONBody(v).Send()
}

// Header returns the value of a request header (case-insensitive), or ""
// when absent.
func (c *Conn) Header(key string) string {
	return c.Req.Headers[strings.ToLower(key)]
}

// ResponseHeader returns the value of a response header set so far.
func (c *Conn) ResponseHeader(key string) string {
	return c.Resp.Headers[strings.ToLower(key)]
}

// Query returns the value of a query string parameter, or "" when absent.
func (c *Conn) Query(key string) string {
	return c.Req.Query[key]
}

// Param returns the value of a route parameter, or "" when absent.
func (c *Conn) Param(key string) string {
	return c.Req.Params[key]
}

// DecodeBody unmarshals the JSON request body into v.
func (c *Conn) DecodeBody(v any) error {
	return json.Unmarshal(c.Req.Body, v)
}

// DecodeParams decodes the merged route and query parameters into a struct
// via mapstructure tags. Route parameters win on key collision.
func (c *Conn) DecodeParams(v any) error {
	merged := make(map[string]string, len(c.Req.Query)+len(c.Req.Params))
	for k, val := range c.Req.Query {
		merged[k] = val
	}
	for k, val := range c.Req.Params {
		merged[k] = val
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           v,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(merged)
}
