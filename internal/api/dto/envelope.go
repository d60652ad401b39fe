package dto

import "time"

// Envelope is the wire wrapper for every directory API response: a success
// flag, at most one of payload or error message, and the envelope creation
// timestamp.
type Envelope[T any] struct {
	Success   bool      `json:"success"`
	Data      *T        `json:"data,omitempty"`
	Error     *string   `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewSuccessEnvelope wraps a payload in a success envelope.
func NewSuccessEnvelope[T any](data T) Envelope[T] {
	return Envelope[T]{
		Success:   true,
		Data:      &data,
		Timestamp: time.Now().UTC(),
	}
}

// NewErrorEnvelope builds a failure envelope carrying a message.
func NewErrorEnvelope[T any](message string) Envelope[T] {
	return Envelope[T]{
		Success:   false,
		Error:     &message,
		Timestamp: time.Now().UTC(),
	}
}
