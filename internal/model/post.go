// Package model holds the Post entity and the request payloads of the
// posts API, together with their validation rules.
package model

import (
	"github.com/go-playground/validator/v10"

	"github.com/deppfellow/posts-api/internal/errs"
)

// validate is shared by every payload; validator instances are safe for
// concurrent use and cache struct metadata.
var validate = validator.New()

// Post is the only persisted entity. ID is assigned by the store.
type Post struct {
	ID    string `json:"id" db:"id"`
	Title string `json:"title" db:"title"`
	Text  string `json:"text" db:"body"`
	Image string `json:"image" db:"image"`
}

// CreatePostPayload is the body of POST /api/post.
type CreatePostPayload struct {
	Title string `json:"title" validate:"required"`
	Text  string `json:"text" validate:"required"`
	Image string `json:"image" validate:"required,url"`
}

func (p *CreatePostPayload) Validate() error {
	return validate.Struct(p)
}

// ConcealedError hides field-level detail from clients; the details are
// logged instead.
func (p *CreatePostPayload) ConcealedError(fieldErrors []errs.FieldError) *errs.HTTPError {
	return errs.NewInvalidInputError(fieldErrors)
}

// GetNumPostsPayload carries the :num of POST /api/post/:num.
type GetNumPostsPayload struct {
	Num int `param:"num" json:"-" validate:"required,min=1"`
}

func (p *GetNumPostsPayload) Validate() error {
	return validate.Struct(p)
}

// GetPostByIDPayload carries the :id of GET /api/post/:id.
type GetPostByIDPayload struct {
	ID string `param:"id" json:"-" validate:"required,uuid"`
}

func (p *GetPostByIDPayload) Validate() error {
	return validate.Struct(p)
}

// DeletePostByIDPayload carries the :id of DELETE /api/post/:id.
type DeletePostByIDPayload struct {
	ID string `param:"id" json:"-" validate:"required,uuid"`
}

func (p *DeletePostByIDPayload) Validate() error {
	return validate.Struct(p)
}

// EmptyPayload is used by routes that take no input.
type EmptyPayload struct{}

func (p *EmptyPayload) Validate() error {
	return nil
}
