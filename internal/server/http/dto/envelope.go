package dto

import "time"

// Envelope is the uniform body of every API response.
type Envelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Count   *int     `json:"count,omitempty"`
	Data    any      `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func OK(message string, data any) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}

// List wraps a collection and reports its size.
func List(key string, items any, count int) Envelope {
	return Envelope{Success: true, Count: &count, Data: map[string]any{key: items}}
}

func Fail(message string, errs ...string) Envelope {
	return Envelope{Success: false, Message: message, Errors: errs}
}

// HealthResponse is served by the liveness probe.
type HealthResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
