package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/posts-api/internal/errs"
)

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestHandleErrorNoRows(t *testing.T) {
	err := HandleError(fmt.Errorf("table:posts: %w", pgx.ErrNoRows))

	httpErr := asHTTPError(t, err)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Post not found", httpErr.Message)

	err = HandleError(pgx.ErrNoRows)
	httpErr = asHTTPError(t, err)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Resource not found", httpErr.Message)
}

func TestHandleErrorPgErrors(t *testing.T) {
	tests := []struct {
		name    string
		pgErr   *pgconn.PgError
		status  int
		code    string
		message string
	}{
		{
			name:    "unique violation",
			pgErr:   &pgconn.PgError{Code: "23505", TableName: "posts", ConstraintName: "posts_title_key"},
			status:  http.StatusBadRequest,
			code:    "POST_ALREADY_EXISTS",
			message: "A Post with this Title already exists",
		},
		{
			name:    "not null violation",
			pgErr:   &pgconn.PgError{Code: "23502", TableName: "posts", ColumnName: "image"},
			status:  http.StatusBadRequest,
			code:    "POST_REQUIRED",
			message: "The Image is required",
		},
		{
			name:    "invalid uuid text",
			pgErr:   &pgconn.PgError{Code: "22P02"},
			status:  http.StatusBadRequest,
			code:    "RECORD_INVALID",
			message: "One or more values have an invalid format",
		},
		{
			name:    "connection failure",
			pgErr:   &pgconn.PgError{Code: "08006"},
			status:  http.StatusInternalServerError,
			code:    "INTERNAL_SERVER_ERROR",
			message: "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := asHTTPError(t, HandleError(fmt.Errorf("insert post: %w", tt.pgErr)))
			assert.Equal(t, tt.status, httpErr.Status)
			assert.Equal(t, tt.code, httpErr.Code)
			assert.Equal(t, tt.message, httpErr.Message)
		})
	}
}

func TestHandleErrorPassesHTTPErrorThrough(t *testing.T) {
	original := errs.NewInvalidInputError(nil)
	assert.Same(t, original, HandleError(original))
}

func TestHandleErrorUnknown(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(errors.New("dial tcp: connection refused")))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.Equal(t, "Internal Server Error", httpErr.Message)
}

func TestMapCode(t *testing.T) {
	assert.Equal(t, UniqueViolation, MapCode("23505"))
	assert.Equal(t, ConnectionFailure, MapCode("08001"))
	assert.Equal(t, Other, MapCode("42P01"))
}

func TestErrCode(t *testing.T) {
	converted := ConvertPgError(&pgconn.PgError{Code: "23503", Severity: "ERROR"})
	assert.Equal(t, ForeignKeyViolation, ErrCode(fmt.Errorf("wrap: %w", converted)))
	assert.Equal(t, SeverityError, converted.Severity)
	assert.Equal(t, Other, ErrCode(errors.New("plain")))
}
