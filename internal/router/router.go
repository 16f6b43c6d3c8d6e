// Package router builds the echo instance: global middlewares, the
// posts API routes and the system routes.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/posts-api/internal/handler"
	"github.com/deppfellow/posts-api/internal/middleware"
	"github.com/deppfellow/posts-api/internal/server"
)

// NewRouter wires every route. Middleware order matters: the request id
// and the New Relic transaction must exist before the request logger is
// built, and the access log needs that logger.
func NewRouter(s *server.Server, h *handler.Handlers, m *middleware.Middlewares) *echo.Echo {
	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = m.Global.GlobalErrorHandler

	router.Use(
		m.Global.Recover(),
		middleware.RequestID(),
		m.Tracing.NewRelicMiddleware(),
		m.Tracing.EnhanceTracing(),
		m.ContextEnhancer.EnhanceContext(),
		m.Global.AccessLog(),
		m.Global.CORS(),
		m.Global.Secure(),
		m.Global.RequestLogger(),
	)

	registerSystemRoutes(router, h)
	registerPostRoutes(router, h, m)

	s.Logger.Debug().Int("routes", len(router.Routes())).Msg("router initialized")

	return router
}

func registerPostRoutes(r *echo.Echo, h *handler.Handlers, m *middleware.Middlewares) {
	api := r.Group("/api")

	api.POST("/post", h.Post.AddPost)
	api.POST("/post/:"+middleware.CountParam, h.Post.GetNumPosts, m.PostCount.Gate())
	api.GET("/post/:id", h.Post.GetPostByID)
	api.GET("/posts", h.Post.GetAllPosts)
	api.DELETE("/post/:id", h.Post.DeletePostByID)
	// Older clients send the id glued to the path.
	api.DELETE("/post:id", h.Post.DeletePostByID)
	api.DELETE("/posts", h.Post.DeleteAllPosts)
}
