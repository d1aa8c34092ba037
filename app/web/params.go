package web

import (
	"net/http"
	"strconv"

	"github.com/kbo-registry/kbo-crud/validation"
)

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// PathID parses the named path value as a positive integer id.
func PathID(r *http.Request, name string) (uint, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, &validation.RequestError{
			Message: "Invalid " + name,
			Fields:  []validation.FieldError{{Field: name, Error: "must be a positive integer"}},
		}
	}
	return uint(id), nil
}

// Page reads skip and limit from the query string. Negative skip becomes 0
// and limit is clamped to [1, MaxLimit]; values that are not integers are rejected.
func Page(r *http.Request) (skip, limit int, err error) {
	skip, limit = 0, DefaultLimit
	q := r.URL.Query()

	if s := q.Get("skip"); s != "" {
		v, convErr := strconv.Atoi(s)
		if convErr != nil {
			return 0, 0, queryError("skip")
		}
		if v > 0 {
			skip = v
		}
	}

	if l := q.Get("limit"); l != "" {
		v, convErr := strconv.Atoi(l)
		if convErr != nil {
			return 0, 0, queryError("limit")
		}
		switch {
		case v < 1:
			limit = 1
		case v > MaxLimit:
			limit = MaxLimit
		default:
			limit = v
		}
	}
	return skip, limit, nil
}

func queryError(name string) error {
	return &validation.RequestError{
		Message: "Invalid query parameter " + name,
		Fields:  []validation.FieldError{{Field: name, Error: "must be an integer"}},
	}
}
