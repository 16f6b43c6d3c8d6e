package handler

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/posts-api/internal/server"
)

// StaticDir holds openapi.html and openapi.json.
const StaticDir = "static"

// OpenAPIHandler serves the API documentation UI.
type OpenAPIHandler struct {
	Handler
	dir string
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
		dir:     StaticDir,
	}
}

// ServeOpenAPIUI serves openapi.html uncached so edits show up at once.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	page, err := os.ReadFile(filepath.Join(h.dir, "openapi.html"))
	if err != nil {
		return fmt.Errorf("failed to read OpenAPI UI template: %w", err)
	}

	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.HTMLBlob(http.StatusOK, page)
}
