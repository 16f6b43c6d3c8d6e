// Package validation binds request data into payload structs and
// validates them.
//
// Rules live in `validate` struct tags (go-playground/validator); failures
// are converted into errs.FieldError lists and returned as 400 errors.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/posts-api/internal/errs"
)

// Validatable is implemented by request payloads.
type Validatable interface {
	Validate() error
}

// Concealed is implemented by payloads whose failures must reach the
// client as a single fixed message. The returned error still carries
// fieldErrors so they can be logged.
type Concealed interface {
	ConcealedError(fieldErrors []errs.FieldError) *errs.HTTPError
}

// BindAndValidate binds path params and the body into payload (a pointer)
// and validates it. It returns an *errs.HTTPError with status 400 on failure.
func BindAndValidate(c echo.Context, payload Validatable) error {
	concealed, isConcealed := payload.(Concealed)

	if err := c.Bind(payload); err != nil {
		message := bindErrorMessage(err)
		if isConcealed {
			return concealed.ConcealedError([]errs.FieldError{
				{Field: "body", Error: message},
			})
		}
		return errs.NewBadRequestError(message, false, nil, nil, nil)
	}

	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		if isConcealed {
			return concealed.ConcealedError(fieldErrors)
		}
		return errs.NewBadRequestError(msg, true, nil, fieldErrors, nil)
	}

	return nil
}

// bindErrorMessage pulls the human-readable part out of an echo bind error.
func bindErrorMessage(err error) string {
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if msg, ok := echoErr.Message.(string); ok && msg != "" {
			return msg
		}
	}
	return "Invalid request body"
}

func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}

func extractValidationError(err error) (string, []errs.FieldError) {
	fieldErrors := []errs.FieldError{}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "Validation failed", append(fieldErrors, errs.FieldError{Error: err.Error()})
	}

	for _, fe := range validationErrors {
		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: strings.ToLower(fe.Field()),
			Error: fieldMessage(fe),
		})
	}

	return "Validation failed", fieldErrors
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"

	case "min":
		if fe.Type().Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())

	case "max":
		if fe.Type().Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", fe.Param())
		}
		return fmt.Sprintf("must not exceed %s", fe.Param())

	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())

	case "url", "uri":
		return "must be a valid URI"

	case "uuid":
		return "must be a valid UUID"

	default:
		if fe.Param() != "" {
			return fmt.Sprintf("%s: %s:%s", strings.ToLower(fe.Field()), fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("%s: %s", strings.ToLower(fe.Field()), fe.Tag())
	}
}
