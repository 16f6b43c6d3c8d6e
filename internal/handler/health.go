package handler

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/posts-api/internal/config"
	"github.com/deppfellow/posts-api/internal/middleware"
	"github.com/deppfellow/posts-api/internal/server"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
)

var errNotConfigured = errors.New("not configured")

// probe checks one dependency.
type probe func(ctx context.Context) error

// CheckResult is the outcome of one dependency probe.
type CheckResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

// HealthReport is the body of GET /status.
type HealthReport struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]CheckResult `json:"checks"`
}

// HealthHandler probes the dependencies named in
// observability.health_checks. A report is reused for the configured
// interval.
type HealthHandler struct {
	Handler
	probes map[string]probe

	mu       sync.Mutex
	last     *HealthReport
	lastCode int
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	h := &HealthHandler{Handler: NewHandler(s)}
	h.probes = map[string]probe{
		"database": func(ctx context.Context) error {
			if s.DB == nil || s.DB.Pool == nil {
				return errNotConfigured
			}
			return s.DB.Pool.Ping(ctx)
		},
		"redis": func(ctx context.Context) error {
			if s.Redis == nil {
				return errNotConfigured
			}
			return s.Redis.Ping(ctx).Err()
		},
	}
	return h
}

// CheckHealth answers 200 when every configured check passes and 503
// otherwise. A report with a cancelled probe is never reused.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	var cfg config.HealthChecksConfig
	if o := h.server.Config.Observability; o != nil {
		cfg = o.HealthChecks
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.last != nil && cfg.Interval > 0 && time.Since(h.last.Timestamp) < cfg.Interval {
		return c.JSON(h.lastCode, h.last)
	}

	logger := middleware.GetLogger(c).With().Str("operation", "health_check").Logger()
	start := time.Now()

	report := &HealthReport{
		Status:      statusHealthy,
		Timestamp:   start.UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      map[string]CheckResult{},
	}

	// The report is shared, so probes ignore the caller's cancellation.
	probeCtx := context.WithoutCancel(c.Request().Context())
	cacheable := true

	if cfg.Enabled {
		for _, name := range cfg.Checks {
			result, err := h.runCheck(probeCtx, name, cfg.Timeout)
			report.Checks[name] = result
			if errors.Is(err, context.Canceled) {
				cacheable = false
			}

			if result.Status != statusHealthy {
				report.Status = statusUnhealthy
				logger.Error().Str("check", name).Str("error", result.Error).Msg("health check failed")
				h.recordFailure(name, result.Error)
			}
		}
	}

	code := http.StatusOK
	if report.Status != statusHealthy {
		code = http.StatusServiceUnavailable
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Str("status", report.Status).
		Msg("health check completed")

	if cacheable {
		h.last, h.lastCode = report, code
	}
	return c.JSON(code, report)
}

func (h *HealthHandler) runCheck(parent context.Context, name string, timeout time.Duration) (CheckResult, error) {
	p, ok := h.probes[name]
	if !ok {
		return CheckResult{Status: statusUnhealthy, ResponseTime: "0s", Error: "unknown check"}, nil
	}

	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	start := time.Now()
	err := p(ctx)
	result := CheckResult{Status: statusHealthy, ResponseTime: time.Since(start).String()}
	if err != nil {
		result.Status = statusUnhealthy
		result.Error = err.Error()
	}
	return result, err
}

func (h *HealthHandler) recordFailure(check, message string) {
	if h.server.LoggerService == nil {
		return
	}
	if app := h.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("HealthCheckError", map[string]any{
			"check_type":    check,
			"operation":     "health_check",
			"error_message": message,
		})
	}
}
