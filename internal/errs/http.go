// Package errs defines the error types returned to API clients.
//
// Every handler error ends up as an *HTTPError before it is written,
// so clients always see one of two shapes:
//
//   - the full shape {code, message, status, override, errors, action}
//   - the compact shape {"error": message}, used where the API promises
//     a fixed message and field detail must stay in the logs.
package errs

import "strings"

// FieldError represents a field-level validation error.
//
//	{ "field": "image", "error": "must be a valid URI" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ActionType is a string-based enum describing what the client should do.
type ActionType string

const (
	// ActionTypeRedirect tells the client it should redirect to Action.Value.
	ActionTypeRedirect ActionType = "redirect"
)

// Action is an optional instruction for the client.
type Action struct {
	Type    ActionType `json:"type"`
	Message string     `json:"message"`
	Value   string     `json:"value"`
}

// HTTPError is the custom error type for API responses.
//
// Code is machine-friendly (e.g. "BAD_REQUEST"), Message is for humans.
// Errors holds per-field validation failures. When Compact is set the
// response body is only {"error": Message}; Errors are still logged.
type HTTPError struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Status   int          `json:"status"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors"`
	Action   *Action      `json:"action"`
	Compact  bool         `json:"-"`
}

// CompactBody is the response body of a compact HTTPError.
type CompactBody struct {
	Error string `json:"error"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is an *HTTPError, regardless of its fields.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)

	return ok
}

// Body returns the value to serialize as the response body.
func (e *HTTPError) Body() any {
	if e.Compact {
		return CompactBody{Error: e.Message}
	}

	return e
}

// MakeUpperCaseWithUnderscores converts "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
