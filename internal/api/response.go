// Package api defines the JSON envelopes shared by every HTTP handler.
package api

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the body of responses that only carry a human-readable message.
type MessageResponse struct {
	Message string `json:"message"`
}
