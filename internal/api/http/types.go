package http

import "github.com/GriffinCanCode/sadhak/backend/internal/infrastructure/monitoring"

// GenerateRequest is the body of POST /generate.
type GenerateRequest struct {
	Prompt *string `json:"prompt"`
}

// ContinueRequest is the body of POST /continue.
type ContinueRequest struct {
	Seed   *string `json:"seed"`
	Length *int    `json:"length,omitempty"`
}

// TextResponse carries generated text.
type TextResponse struct {
	Response string `json:"response"`
}

// ErrorResponse carries a request error.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status        string              `json:"status"`
	Service       string              `json:"service"`
	InstanceID    string              `json:"instance_id"`
	UptimeSeconds float64             `json:"uptime_seconds"`
	Vocabulary    int                 `json:"vocabulary"`
	Requests      monitoring.Snapshot `json:"requests"`
}
