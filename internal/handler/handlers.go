// Package handler is the HTTP layer of the posts API.
//
// Handlers bind and validate requests through the validation package,
// call the service layer and write the response. Errors are returned to
// the global error handler.
package handler

import (
	"github.com/deppfellow/posts-api/internal/server"
	"github.com/deppfellow/posts-api/internal/service"
)

// Handlers groups every HTTP handler for the router.
type Handlers struct {
	Post    *PostHandler
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Post:    NewPostHandler(s, services.Post),
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
	}
}
