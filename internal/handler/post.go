package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/posts-api/internal/model"
	"github.com/deppfellow/posts-api/internal/server"
	"github.com/deppfellow/posts-api/internal/service"
)

// PostHandler serves the /api/post and /api/posts routes. Every method
// builds a fresh payload so concurrent requests never share one.
type PostHandler struct {
	Handler
	postService *service.PostService
}

func NewPostHandler(s *server.Server, postService *service.PostService) *PostHandler {
	return &PostHandler{
		Handler:     NewHandler(s),
		postService: postService,
	}
}

// AddPost stores a new post and returns it with its id.
func (h *PostHandler) AddPost(c echo.Context) error {
	return Handle(
		h.Handler,
		func(c echo.Context, payload *model.CreatePostPayload) (*model.Post, error) {
			return h.postService.AddPost(c.Request().Context(), payload)
		},
		http.StatusOK,
		&model.CreatePostPayload{},
	)(c)
}

// GetNumPosts returns the first :num posts. The count gate has already
// checked :num against the configured maximum.
func (h *PostHandler) GetNumPosts(c echo.Context) error {
	return Handle(
		h.Handler,
		func(c echo.Context, payload *model.GetNumPostsPayload) ([]model.Post, error) {
			return h.postService.GetNumPosts(c.Request().Context(), payload.Num)
		},
		http.StatusOK,
		&model.GetNumPostsPayload{},
	)(c)
}

// GetPostByID returns one post, or 404 when no post has that id.
func (h *PostHandler) GetPostByID(c echo.Context) error {
	return Handle(
		h.Handler,
		func(c echo.Context, payload *model.GetPostByIDPayload) (*model.Post, error) {
			return h.postService.GetPostByID(c.Request().Context(), payload.ID)
		},
		http.StatusOK,
		&model.GetPostByIDPayload{},
	)(c)
}

// GetAllPosts returns every post in insertion order, [] when there are none.
func (h *PostHandler) GetAllPosts(c echo.Context) error {
	return Handle(
		h.Handler,
		func(c echo.Context, _ *model.EmptyPayload) ([]model.Post, error) {
			return h.postService.GetAllPosts(c.Request().Context())
		},
		http.StatusOK,
		&model.EmptyPayload{},
	)(c)
}

// DeletePostByID answers 200 with no body, whether or not the post existed.
func (h *PostHandler) DeletePostByID(c echo.Context) error {
	return HandleNoContent(
		h.Handler,
		func(c echo.Context, payload *model.DeletePostByIDPayload) error {
			return h.postService.DeletePostByID(c.Request().Context(), payload.ID)
		},
		http.StatusOK,
		&model.DeletePostByIDPayload{},
	)(c)
}

// DeleteAllPosts empties the store and answers 200 with no body.
func (h *PostHandler) DeleteAllPosts(c echo.Context) error {
	return HandleNoContent(
		h.Handler,
		func(c echo.Context, _ *model.EmptyPayload) error {
			return h.postService.DeleteAllPosts(c.Request().Context())
		},
		http.StatusOK,
		&model.EmptyPayload{},
	)(c)
}
