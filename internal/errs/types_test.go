package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvalidInputErrorBody(t *testing.T) {
	err := NewInvalidInputError([]FieldError{{Field: "image", Error: "must be a valid URI"}})

	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Len(t, err.Errors, 1)

	body, mErr := json.Marshal(err.Body())
	require.NoError(t, mErr)
	assert.JSONEq(t, `{"error":"Invalid input data."}`, string(body))
}

func TestFullBody(t *testing.T) {
	err := NewNotFoundError("Post not found", true, nil)

	body, mErr := json.Marshal(err.Body())
	require.NoError(t, mErr)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, "NOT_FOUND", decoded["code"])
	assert.Equal(t, "Post not found", decoded["message"])
	assert.EqualValues(t, http.StatusNotFound, decoded["status"])
}

func TestBadRequestCustomCode(t *testing.T) {
	code := "POST_INVALID"
	err := NewBadRequestError("bad", false, &code, nil, nil)
	assert.Equal(t, "POST_INVALID", err.Code)

	err = NewBadRequestError("bad", false, nil, nil, nil)
	assert.Equal(t, "BAD_REQUEST", err.Code)
}

func TestIsMatchesAnyHTTPError(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NewInternalServerError())

	assert.True(t, errors.Is(wrapped, &HTTPError{}))

	var httpErr *HTTPError
	require.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
}

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "INTERNAL_SERVER_ERROR", MakeUpperCaseWithUnderscores("Internal Server Error"))
}
