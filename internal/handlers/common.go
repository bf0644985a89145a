package handlers

import (
	"time"
)

// ErrorResponse is the {error} envelope used by read endpoints and validation failures
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse reports the status of each dependency
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}
