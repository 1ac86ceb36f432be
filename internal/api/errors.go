package api

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a client failure for retry and presentation decisions.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindSessionExpired
	KindNotAuthenticated
	KindNetwork
	KindAPI
	KindParse
	KindPlayback
)

var kindNames = map[ErrorKind]string{
	KindUnknown:          "unknown",
	KindSessionExpired:   "session expired",
	KindNotAuthenticated: "not authenticated",
	KindNetwork:          "network",
	KindAPI:              "api",
	KindParse:            "parse",
	KindPlayback:         "playback",
}

// Error is the typed failure every client operation reports. Status carries
// the HTTP status for server-side failures, Message an optional
// server-supplied or descriptive text, and Err the wrapped cause.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Status != 0:
		return fmt.Sprintf("%s error (HTTP %d): %s", kindNames[e.Kind], e.Status, e.Message)
	case e.Message != "":
		return fmt.Sprintf("%s error: %s", kindNames[e.Kind], e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s error: %v", kindNames[e.Kind], e.Err)
	case e.Status != 0:
		return fmt.Sprintf("%s error (HTTP %d)", kindNames[e.Kind], e.Status)
	default:
		return kindNames[e.Kind] + " error"
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Retryable reports whether the retry policy may re-attempt the operation.
// Only transient network failures and non-auth server errors qualify.
func (e *Error) Retryable() bool {
	return e.Kind == KindNetwork || e.Kind == KindAPI
}

// RequiresReauth reports whether the host application should trigger a
// re-login flow. True only for an expired session, never for a user who was
// never logged in.
func (e *Error) RequiresReauth() bool {
	return e.Kind == KindSessionExpired
}

// Description returns a one-line user-presentable summary.
func (e *Error) Description() string {
	switch e.Kind {
	case KindSessionExpired:
		return "Your session has expired."
	case KindNotAuthenticated:
		return "You are not signed in."
	case KindNetwork:
		return "Could not reach the service."
	case KindAPI:
		if e.Message != "" {
			return fmt.Sprintf("The service returned an error: %s", e.Message)
		}
		return fmt.Sprintf("The service returned an error (HTTP %d).", e.Status)
	case KindParse:
		return "The service sent an unexpected response."
	case KindPlayback:
		return "Playback failed for this track."
	default:
		return "Something went wrong."
	}
}

// Recovery returns a one-line actionable suggestion.
func (e *Error) Recovery() string {
	switch e.Kind {
	case KindSessionExpired:
		return "Sign in again to continue."
	case KindNotAuthenticated:
		return "Sign in to use this feature."
	case KindNetwork:
		return "Check your connection and try again."
	case KindAPI:
		return "Try again in a moment."
	case KindParse:
		return "Try again; if this keeps happening, update the application."
	case KindPlayback:
		return "Try a different track."
	default:
		return "Try again."
	}
}

func sessionExpiredError(status int) *Error {
	return &Error{Kind: KindSessionExpired, Status: status}
}

func notAuthenticatedError(operation string) *Error {
	return &Error{Kind: KindNotAuthenticated, Message: operation + " requires a signed-in session"}
}

func networkError(err error) *Error {
	return &Error{Kind: KindNetwork, Err: err}
}

func apiError(status int, message string) *Error {
	return &Error{Kind: KindAPI, Status: status, Message: message}
}

func parseError(format string, args ...any) *Error {
	return &Error{Kind: KindParse, Message: fmt.Sprintf(format, args...)}
}

// IsRetryable reports whether the retry policy may re-attempt after err.
// Anything that is not a typed retryable client error is terminal.
func IsRetryable(err error) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Retryable()
	}

	return false
}

// RequiresReauth reports whether err should trigger the re-login flow.
func RequiresReauth(err error) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.RequiresReauth()
	}

	return false
}
