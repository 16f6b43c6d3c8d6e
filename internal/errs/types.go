package errs

import (
	"net/http"
)

// InvalidInputMessage is the only detail a client gets when a post payload
// fails validation.
const InvalidInputMessage = "Invalid input data."

// InvalidCountMessage is returned when a requested number of posts is out
// of range.
const InvalidCountMessage = "Invalid number of posts."

// NewBadRequestError creates a 400 HTTPError.
//
// code overrides the default "BAD_REQUEST" when non-nil; errors and
// action are optional.
func NewBadRequestError(message string, override bool, code *string, errors []FieldError, action *Action) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusBadRequest))

	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusBadRequest,
		Override: override,
		Errors:   errors,
		Action:   action,
	}
}

// NewCompactBadRequestError creates a 400 HTTPError rendered as
// {"error": message}. fieldErrors are kept for logging only.
func NewCompactBadRequestError(message string, fieldErrors []FieldError) *HTTPError {
	err := NewBadRequestError(message, false, nil, fieldErrors, nil)
	err.Compact = true

	return err
}

// NewInvalidInputError rejects a post payload that failed binding or
// validation.
func NewInvalidInputError(fieldErrors []FieldError) *HTTPError {
	return NewCompactBadRequestError(InvalidInputMessage, fieldErrors)
}

// NewInvalidCountError rejects a post count outside the accepted range.
func NewInvalidCountError(fieldErrors []FieldError) *HTTPError {
	return NewCompactBadRequestError(InvalidCountMessage, fieldErrors)
}

// NewNotFoundError creates a 404 HTTPError, with an optional custom code.
func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound))

	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusNotFound,
		Override: override,
	}
}

// NewInternalServerError creates a generic 500 HTTPError. The message is
// the status text; the real cause is only logged.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Message:  http.StatusText(http.StatusInternalServerError),
		Status:   http.StatusInternalServerError,
		Override: false,
	}
}
