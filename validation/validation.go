// Package validation decodes JSON request bodies and validates them.
//
// Payload types implement Validatable, usually by running a shared
// validator.Validate over their `validate` struct tags. Checks that tags cannot
// express return CustomValidationErrors. Both are turned into field errors the
// client can act on.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// maxBodyBytes bounds request bodies; registry records are small.
const maxBodyBytes = 1 << 20

type Validatable interface {
	Validate() error
}

// FieldError is a problem with a single request field.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// CustomValidationError is a field problem that no validator tag describes.
type CustomValidationError struct {
	Field   string
	Message string
}

type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "validation failed"
}

func MaxLengthError(field string, max int) CustomValidationError {
	return CustomValidationError{Field: field, Message: fmt.Sprintf("must not exceed %d characters", max)}
}

// RequestError is returned for bodies that cannot be decoded or fail validation.
type RequestError struct {
	Message string
	Fields  []FieldError
}

func (e *RequestError) Error() string {
	return e.Message
}

// DecodeAndValidate reads a single JSON object from r into payload, rejecting
// unknown fields and trailing data, then runs payload.Validate.
func DecodeAndValidate(r *http.Request, payload Validatable) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(payload); err != nil {
		return &RequestError{Message: decodeMessage(err)}
	}
	if dec.More() {
		return &RequestError{Message: "Invalid JSON body"}
	}

	if err := payload.Validate(); err != nil {
		return &RequestError{Message: "Validation failed", Fields: fieldErrors(err)}
	}
	return nil
}

func decodeMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		return fmt.Sprintf("Invalid value for field %q: expected %s", typeErr.Field, typeErr.Type)
	case errors.Is(err, io.EOF):
		return "Request body is empty"
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		return "Unknown field " + strings.TrimPrefix(err.Error(), "json: unknown field ")
	default:
		return "Invalid JSON body"
	}
}

func fieldErrors(err error) []FieldError {
	var custom CustomValidationErrors
	if errors.As(err, &custom) {
		out := make([]FieldError, len(custom))
		for i, c := range custom {
			out[i] = FieldError{Field: c.Field, Error: c.Message}
		}
		return out
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []FieldError{{Field: "", Error: err.Error()}}
	}

	out := make([]FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		var msg string
		switch fe.Tag() {
		case "required":
			msg = "is required"
		case "max":
			if fe.Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", fe.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", fe.Param())
			}
		case "min":
			msg = fmt.Sprintf("must be at least %s", fe.Param())
		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", fe.Param())
		default:
			msg = fe.Tag()
		}
		out = append(out, FieldError{Field: fe.Field(), Error: msg})
	}
	return out
}
