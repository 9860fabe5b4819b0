package linkcheck

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// The transport codes (ETIMEOUT, ECONNREFUSED, ETLS, EREDIRECT) classify
// per-resource fetch failures; they are recorded in outcomes and never
// abort a crawl. EINVALID covers malformed URLs and bad configuration,
// including an invalid seed, which is the only failure that prevents a
// crawl from starting.
const (
	ECONNREFUSED = "connection_refused"
	EINTERNAL    = "internal"
	EINVALID     = "invalid"
	ENOTFOUND    = "not_found"
	EREDIRECT    = "too_many_redirects"
	ETIMEOUT     = "timeout"
	ETLS         = "tls"
)

// Error represents an application-specific error. Errors are identified by
// a machine-readable code and carry a human-readable message.
type Error struct {
	// Code is one of the constants above.
	Code string

	// Message is a human-readable description of the error.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("linkcheck error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL. A nil error returns
// an empty string.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error." A nil error
// returns an empty string.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
