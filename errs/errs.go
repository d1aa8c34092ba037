// Package errs defines the error kinds shared by the service layer and the
// HTTP handlers.
//
// Services return an *Error carrying a Kind and a client-safe message.
// Handlers turn the Kind into a status code with HTTPStatus; anything that is
// not an *Error is an internal failure.
package errs

import (
	"errors"
	"net/http"
)

// Kind classifies a failure the client is responsible for.
type Kind int

const (
	KindUnknown Kind = iota
	// KindNotFound means a referenced entity id does not exist.
	KindNotFound
	// KindValidation means the request references something invalid,
	// such as an unknown activity code.
	KindValidation
	// KindConflict means a unique registry identifier is already used.
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// Error is a classified error with a message that can be shown to clients.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same Kind, so errors.Is(err, errs.NotFound("", nil))
// style checks work without comparing messages.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func NotFound(message string, cause error) *Error {
	return &Error{Kind: KindNotFound, Message: message, Err: cause}
}

func Validation(message string, cause error) *Error {
	return &Error{Kind: KindValidation, Message: message, Err: cause}
}

func Conflict(message string, cause error) *Error {
	return &Error{Kind: KindConflict, Message: message, Err: cause}
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// HTTPStatus maps err to the status code returned to clients.
// Conflicts are reported as 400 rather than 409 to keep the existing API contract.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
