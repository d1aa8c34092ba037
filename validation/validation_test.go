package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type taggedPayload struct {
	Name  string `json:"name" validate:"required,max=5"`
	Count int    `json:"count" validate:"min=1"`
	Kind  string `json:"kind" validate:"omitempty,oneof=a b"`
}

func (p *taggedPayload) Validate() error {
	return validator.New().Struct(p)
}

type customPayload struct {
	Code string `json:"code"`
}

func (p *customPayload) Validate() error {
	if p.Code == "" {
		return CustomValidationErrors{{Field: "code", Message: "is required"}}
	}
	if len(p.Code) > 3 {
		return CustomValidationErrors{MaxLengthError("code", 3)}
	}
	return nil
}

type failingPayload struct{}

func (p *failingPayload) Validate() error { return errors.New("boom") }

func request(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestDecodeAndValidate(t *testing.T) {
	testCases := []struct {
		name            string
		body            string
		expectedMessage string
		expectedFields  []FieldError
	}{
		{
			name: "Valid body",
			body: `{"name":"abc","count":2}`,
		},
		{
			name:            "Empty body",
			body:            ``,
			expectedMessage: "Request body is empty",
		},
		{
			name:            "Malformed JSON",
			body:            `{"name":`,
			expectedMessage: "Invalid JSON body",
		},
		{
			name:            "Trailing data",
			body:            `{"name":"abc","count":2} {}`,
			expectedMessage: "Invalid JSON body",
		},
		{
			name:            "Wrong type",
			body:            `{"name":"abc","count":"two"}`,
			expectedMessage: `Invalid value for field "count": expected int`,
		},
		{
			name:            "Unknown field",
			body:            `{"name":"abc","count":2,"extra":true}`,
			expectedMessage: `Unknown field "extra"`,
		},
		{
			name:            "Tag violations",
			body:            `{"name":"toolong","count":0,"kind":"c"}`,
			expectedMessage: "Validation failed",
			expectedFields: []FieldError{
				{Field: "Name", Error: "must not exceed 5 characters"},
				{Field: "Count", Error: "must be at least 1"},
				{Field: "Kind", Error: "must be one of: a b"},
			},
		},
		{
			name:            "Missing required",
			body:            `{"count":1}`,
			expectedMessage: "Validation failed",
			expectedFields:  []FieldError{{Field: "Name", Error: "is required"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			var payload taggedPayload

			// Act
			err := DecodeAndValidate(request(tc.body), &payload)

			// Assert
			if tc.expectedMessage == "" {
				require.NoError(t, err)
				assert.Equal(t, "abc", payload.Name)
				return
			}
			var reqErr *RequestError
			require.ErrorAs(t, err, &reqErr)
			assert.Equal(t, tc.expectedMessage, reqErr.Message)
			assert.Equal(t, tc.expectedFields, reqErr.Fields)
		})
	}
}

func TestDecodeAndValidateCustomErrors(t *testing.T) {
	var missing customPayload
	err := DecodeAndValidate(request(`{}`), &missing)
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, []FieldError{{Field: "code", Error: "is required"}}, reqErr.Fields)

	var long customPayload
	err = DecodeAndValidate(request(`{"code":"abcd"}`), &long)
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, []FieldError{{Field: "code", Error: "must not exceed 3 characters"}}, reqErr.Fields)
}

func TestDecodeAndValidateUnclassifiedError(t *testing.T) {
	err := DecodeAndValidate(request(`{}`), &failingPayload{})
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, []FieldError{{Field: "", Error: "boom"}}, reqErr.Fields)
}
