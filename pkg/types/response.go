package types

import "time"

// Envelope is the uniform response body for every endpoint. Data endpoints
// return Success=true with the page payload; failures carry Error/Details.
type Envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Message   string `json:"message,omitempty"`
	Timestamp string `json:"timestamp"`
	Error     string `json:"error,omitempty"`
	Details   any    `json:"details,omitempty"`
}

// Timestamp formats t the way every envelope and lastUpdated field expects.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
