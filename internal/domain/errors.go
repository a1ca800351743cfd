package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed quiz load.
type ErrorKind int

const (
	// KindTransport means the request never completed (network failure, timeout).
	KindTransport ErrorKind = iota
	// KindResponse means the server replied with a non-success HTTP status.
	KindResponse
	// KindSemantic means the payload's application-level result code indicated
	// failure even though the HTTP exchange succeeded.
	KindSemantic
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindResponse:
		return "response"
	case KindSemantic:
		return "semantic"
	default:
		return "unknown"
	}
}

// Error is the single error type for quiz loading failures. Kind is the
// discriminator; Status is only meaningful for KindResponse.
type Error struct {
	Kind    ErrorKind
	Message string
	Status  int
}

func (e *Error) Error() string {
	if e.Kind == KindResponse {
		return fmt.Sprintf("%s error (status %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

// Retryable reports whether the failure is transient. Transport failures are
// always transient; response failures only for 5xx; semantic failures never.
func (e *Error) Retryable() bool {
	switch e.Kind {
	case KindTransport:
		return true
	case KindResponse:
		return e.Status >= 500
	default:
		return false
	}
}

// NewTransportError builds a transport-level failure.
func NewTransportError(message string) *Error {
	return &Error{Kind: KindTransport, Message: message}
}

// NewResponseError builds a non-success HTTP status failure.
func NewResponseError(status int, message string) *Error {
	return &Error{Kind: KindResponse, Status: status, Message: message}
}

// NewSemanticError builds an application-level validation failure.
func NewSemanticError(message string) *Error {
	return &Error{Kind: KindSemantic, Message: message}
}

// IsRetryable reports whether err is a transient quiz-loading failure.
// Errors outside this taxonomy are never retried.
func IsRetryable(err error) bool {
	var qerr *Error
	if errors.As(err, &qerr) {
		return qerr.Retryable()
	}
	return false
}
