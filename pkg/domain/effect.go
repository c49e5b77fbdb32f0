package domain

// EffectRequest represents a side-effect an Update step asks the host to
// perform. The engine never interprets Name or Args; it only stamps
// Position so the host knows where to resume once the result arrives.
type EffectRequest struct {
	ID   string         `json:"id"`             // Unique ID for this specific request
	Name string         `json:"name"`           // Effect name, resolved by the host dispatcher
	Args map[string]any `json:"args,omitempty"` // Arguments for the effect

	// Position is the index of the requesting Update step within the
	// flattened traversal. Filled in by the executor.
	Position int `json:"position"`
}

// EffectResult is the message that resumes a paused traversal.
//
// The zero value is the synthetic initial message handed to an Update step
// the first time it runs, before any effect has been requested.
type EffectResult struct {
	ID      string `json:"id"` // Must match the EffectRequest.ID
	Result  any    `json:"result,omitempty"`
	IsError bool   `json:"is_error,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Init reports whether this is the synthetic initial message rather than a
// real effect result.
func (r EffectResult) Init() bool {
	return r.ID == ""
}
