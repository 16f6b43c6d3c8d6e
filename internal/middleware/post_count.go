package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/posts-api/internal/errs"
	"github.com/deppfellow/posts-api/internal/server"
)

// CountParam is the path parameter checked by the count gate.
const CountParam = "num"

// PostCountMiddleware guards routes that return a caller-chosen number
// of posts.
type PostCountMiddleware struct {
	server *server.Server
}

func NewPostCountMiddleware(s *server.Server) *PostCountMiddleware {
	return &PostCountMiddleware{server: s}
}

// Gate lets the request through only when :num is a base-10 integer in
// [1, posts.max_batch_size]. Rejected requests never reach the handler.
func (p *PostCountMiddleware) Gate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Param(CountParam)

			if _, ok := p.parseCount(raw); !ok {
				GetLogger(c).Warn().
					Str("num", raw).
					Int("max", p.server.Config.Posts.MaxBatchSize).
					Msg("rejected post count")
				p.recordRejection(c.Path(), raw)

				return errs.NewInvalidCountError([]errs.FieldError{
					{Field: CountParam, Error: "must be an integer between 1 and " + strconv.Itoa(p.server.Config.Posts.MaxBatchSize)},
				})
			}

			return next(c)
		}
	}
}

func (p *PostCountMiddleware) parseCount(raw string) (int, bool) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, n >= 1 && n <= p.server.Config.Posts.MaxBatchSize
}

func (p *PostCountMiddleware) recordRejection(route, raw string) {
	if p.server.LoggerService == nil {
		return
	}
	if app := p.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("PostCountRejected", map[string]any{
			"route": route,
			"num":   raw,
		})
	}
}
