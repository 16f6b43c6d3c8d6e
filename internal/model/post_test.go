package model

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/posts-api/internal/errs"
	"github.com/deppfellow/posts-api/internal/validation"
)

func TestCreatePostPayloadValidate(t *testing.T) {
	tests := []struct {
		name    string
		payload CreatePostPayload
		field   string
	}{
		{name: "valid", payload: CreatePostPayload{Title: "t", Text: "body", Image: "http://example.com/a.png"}},
		{name: "valid non-http scheme", payload: CreatePostPayload{Title: "t", Text: "body", Image: "ftp://files.example.com/a.png"}},
		{name: "missing title", payload: CreatePostPayload{Text: "body", Image: "http://example.com/a.png"}, field: "Title"},
		{name: "missing text", payload: CreatePostPayload{Title: "t", Image: "http://example.com/a.png"}, field: "Text"},
		{name: "missing image", payload: CreatePostPayload{Title: "t", Text: "body"}, field: "Image"},
		{name: "image not a uri", payload: CreatePostPayload{Title: "t", Text: "body", Image: "not-a-uri"}, field: "Image"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}

			var validationErrors validator.ValidationErrors
			require.ErrorAs(t, err, &validationErrors)
			require.Len(t, validationErrors, 1)
			assert.Equal(t, tt.field, validationErrors[0].Field())
		})
	}
}

func TestIDPayloadsRequireUUID(t *testing.T) {
	assert.NoError(t, (&GetPostByIDPayload{ID: "6f1c1c3e-8a43-4a38-9b5e-0a4c2b3f1d2e"}).Validate())
	assert.Error(t, (&GetPostByIDPayload{ID: "42"}).Validate())
	assert.Error(t, (&DeletePostByIDPayload{}).Validate())
}

func TestGetNumPostsPayloadValidate(t *testing.T) {
	assert.NoError(t, (&GetNumPostsPayload{Num: 3}).Validate())
	assert.Error(t, (&GetNumPostsPayload{Num: 0}).Validate())
	assert.Error(t, (&GetNumPostsPayload{Num: -1}).Validate())
}

func TestCreatePostPayloadConcealsDetail(t *testing.T) {
	var payload validation.Validatable = &CreatePostPayload{}
	concealed, ok := payload.(validation.Concealed)
	require.True(t, ok)

	fieldErrors := []errs.FieldError{{Field: "image", Error: "must be a valid URI"}}
	err := concealed.ConcealedError(fieldErrors)

	assert.True(t, err.Compact)
	assert.Equal(t, errs.InvalidInputMessage, err.Message)
	assert.Equal(t, fieldErrors, err.Errors)
}
