package dtos

// Envelope is the uniform result shape every operation returns, success or
// failure. Code is a dot-separated status string; ActionID points at the
// audit record when one was opened.
type Envelope struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Data     any    `json:"data,omitempty"`
	ActionID string `json:"action_id,omitempty"`
}
