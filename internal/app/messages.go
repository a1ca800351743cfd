package app

import (
	"errors"
	"net/http"

	"quizzical-service/internal/domain"
)

// User-facing failure messages. Technical details are logged at the
// controller boundary, never shown.
const (
	MsgNetworkError = "Connection problem. Please check your internet connection and try again."
	MsgServerError  = "The server is experiencing difficulties. Please try again later."
	MsgNotFound     = "The requested resource was not found."
	MsgRateLimit    = "Too many requests. Please wait a moment and try again."
	MsgUnexpected   = "An unexpected error occurred"
)

// FriendlyMessage translates an escalated failure into the string stored in
// the controller's error field.
func FriendlyMessage(err error) string {
	var qerr *domain.Error
	if errors.As(err, &qerr) {
		switch qerr.Kind {
		case domain.KindTransport:
			return MsgNetworkError
		case domain.KindResponse:
			switch {
			case qerr.Status >= 500:
				return MsgServerError
			case qerr.Status == http.StatusNotFound:
				return MsgNotFound
			case qerr.Status == http.StatusTooManyRequests:
				return MsgRateLimit
			default:
				return "An error occurred " + qerr.Message
			}
		case domain.KindSemantic:
			return qerr.Message
		}
	}
	if err != nil {
		return "An error occurred " + err.Error()
	}
	return MsgUnexpected
}
