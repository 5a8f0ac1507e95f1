package domain

import (
	"fmt"
	"net/http"
)

// MsgNameRequired is returned whenever a zoo body lacks a usable name.
const MsgNameRequired = "Please include name inside the body of the request"

// Error defines a standard error shape for the API
type Error struct {
	// HTTP Status Code (e.g., 400, 404, 500)
	Code int
	// Message sent to the client
	Message string
	// Original error for internal logging
	Log error
}

// Error implements standard error interface
func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Log
}

// ValidationError creates a 400 for a request the store must never see.
func ValidationError(msg string) *Error {
	return &Error{Code: http.StatusBadRequest, Message: msg}
}

// NotFoundError creates a standard 404 error
func NotFoundError(msg string) *Error {
	return &Error{Code: http.StatusNotFound, Message: msg}
}

// ZooNotFound creates the 404 for an identifier with no matching row.
func ZooNotFound(id string) *Error {
	return NotFoundError(fmt.Sprintf("Zoo with ID %s does not exist.", id))
}

// StoreError creates a 500 carrying the raw persistence failure.
func StoreError(err error) *Error {
	msg := "unknown store failure"
	if err != nil {
		msg = err.Error()
	}
	return &Error{Code: http.StatusInternalServerError, Message: msg, Log: err}
}

// RateLimitError creates standard 429 rate limit error
func RateLimitError(msg string) *Error {
	return &Error{Code: http.StatusTooManyRequests, Message: msg}
}
