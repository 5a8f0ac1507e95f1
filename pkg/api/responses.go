package api

// MessageResponse is the body of 201 creations and of 4xx answers.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of 5xx answers; Error carries the raw failure detail.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
	Time    string `json:"time"`
	Error   string `json:"error,omitempty"`
}
