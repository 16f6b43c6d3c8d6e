package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/deppfellow/posts-api/internal/errs"
	"github.com/deppfellow/posts-api/internal/server"
	"github.com/deppfellow/posts-api/internal/sqlerr"
)

// AccessLogTimeFormat is ISO-8601 with millisecond precision.
const AccessLogTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// GlobalMiddlewares are installed on every route, together with the
// global error handler.
type GlobalMiddlewares struct {
	server *server.Server
	now    func() time.Time
}

func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
		now:    time.Now,
	}
}

func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
	})
}

// AccessLog writes one line per request before it is dispatched. It never
// fails the request.
func (global *GlobalMiddlewares) AccessLog() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			GetLogger(c).Info().
				Str("method", c.Request().Method).
				Str("url", c.Request().URL.RequestURI()).
				Int("status", c.Response().Status).
				Str("timestamp", global.now().UTC().Format(AccessLogTimeFormat)).
				Msg("request received")

			return next(c)
		}
	}
}

// RequestLogger writes the completion line of each request. When the
// handler returned an error the response is not written yet, so the
// status is taken from the error.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			statusCode := v.Status
			if v.Error != nil {
				statusCode = toHTTPError(v.Error).Status
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.Recover()
}

func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// GlobalErrorHandler turns every error returned by a handler or
// middleware into a response. Unknown errors go through sqlerr and end
// up as a generic 500; the original error is only logged.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	originalErr := err
	httpErr := toHTTPError(err)

	logger := GetLogger(c)
	var e *zerolog.Event
	if httpErr.Status >= 500 {
		e = logger.Error().Stack()
	} else {
		e = logger.Warn()
	}
	if len(httpErr.Errors) > 0 {
		fields := zerolog.Dict()
		for _, fe := range httpErr.Errors {
			fields = fields.Str(fe.Field, fe.Error)
		}
		e = e.Dict("field_errors", fields)
	}
	e.Err(originalErr).
		Int("status", httpErr.Status).
		Str("error_code", httpErr.Code).
		Msg(httpErr.Message)

	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(httpErr.Status)
	} else {
		err = c.JSON(httpErr.Status, httpErr.Body())
	}
	if err != nil {
		logger.Error().Err(err).Msg("failed to write error response")
	}
}

func toHTTPError(err error) *errs.HTTPError {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if echoErr.Code == http.StatusNotFound {
			return errs.NewNotFoundError("Route not found", false, nil)
		}

		message, ok := echoErr.Message.(string)
		if !ok {
			message = http.StatusText(echoErr.Code)
		}
		return &errs.HTTPError{
			Code:    errs.MakeUpperCaseWithUnderscores(http.StatusText(echoErr.Code)),
			Message: message,
			Status:  echoErr.Code,
		}
	}

	if errors.As(sqlerr.HandleError(err), &httpErr) {
		return httpErr
	}
	return errs.NewInternalServerError()
}
