package middleware

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/posts-api/internal/config"
	"github.com/deppfellow/posts-api/internal/server"
)

type testEnv struct {
	echo    *echo.Echo
	logs    *bytes.Buffer
	handled int
}

func newTestServer(logs *bytes.Buffer, maxBatch int) *server.Server {
	logger := zerolog.New(logs)
	return &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test"},
			Posts:   config.PostsConfig{MaxBatchSize: maxBatch},
		},
		Logger: &logger,
	}
}

func newTestEnv(t *testing.T, maxBatch int, fixed time.Time) *testEnv {
	t.Helper()

	env := &testEnv{echo: echo.New(), logs: &bytes.Buffer{}}
	s := newTestServer(env.logs, maxBatch)
	m := NewMiddlewares(s)
	m.Global.now = func() time.Time { return fixed }

	env.echo.HTTPErrorHandler = m.Global.GlobalErrorHandler
	env.echo.Use(RequestID(), m.ContextEnhancer.EnhanceContext(), m.Global.AccessLog())

	env.echo.POST("/api/post/:num", func(c echo.Context) error {
		env.handled++
		return c.String(http.StatusOK, "ok")
	}, m.PostCount.Gate())
	env.echo.GET("/boom", func(c echo.Context) error {
		return errors.New("connection reset by peer")
	})
	env.echo.GET("/missing", func(c echo.Context) error {
		return fmt.Errorf("table:posts: %w", pgx.ErrNoRows)
	})

	return env
}

func (env *testEnv) do(method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	env.echo.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func (env *testEnv) logLines(t *testing.T) []map[string]any {
	t.Helper()

	var lines []map[string]any
	sc := bufio.NewScanner(bytes.NewReader(env.logs.Bytes()))
	for sc.Scan() {
		var line map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &line))
		lines = append(lines, line)
	}
	return lines
}

func TestAccessLogBeforeDispatch(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 13, 4, 5, 123_456_789, time.FixedZone("CET", 3600))
	env := newTestEnv(t, config.DefaultMaxBatchSize, fixed)

	rec := env.do(http.MethodPost, "/api/post/5?page=2")
	require.Equal(t, http.StatusOK, rec.Code)

	lines := env.logLines(t)
	require.NotEmpty(t, lines)

	first := lines[0]
	assert.Equal(t, "request received", first["message"])
	assert.Equal(t, "POST", first["method"])
	assert.Equal(t, "/api/post/5?page=2", first["url"])
	assert.EqualValues(t, http.StatusOK, first["status"])
	assert.Equal(t, "2026-03-01T12:04:05.123Z", first["timestamp"])
	assert.NotEmpty(t, first["request_id"])
}

func TestAccessLogRunsForRejectedRequests(t *testing.T) {
	env := newTestEnv(t, config.DefaultMaxBatchSize, time.Now())

	rec := env.do(http.MethodPost, "/api/post/0")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	lines := env.logLines(t)
	require.NotEmpty(t, lines)
	assert.Equal(t, "request received", lines[0]["message"])
}

func TestPostCountGate(t *testing.T) {
	tests := []struct {
		num      string
		maxBatch int
		allowed  bool
	}{
		{num: "1", maxBatch: 100, allowed: true},
		{num: "100", maxBatch: 100, allowed: true},
		{num: "5", maxBatch: 5, allowed: true},
		{num: "0", maxBatch: 100},
		{num: "-1", maxBatch: 100},
		{num: "101", maxBatch: 100},
		{num: "6", maxBatch: 5},
		{num: "abc", maxBatch: 100},
		{num: "1.5", maxBatch: 100},
		{num: "99999999999999999999", maxBatch: 100},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s of %d", tt.num, tt.maxBatch), func(t *testing.T) {
			env := newTestEnv(t, tt.maxBatch, time.Now())

			rec := env.do(http.MethodPost, "/api/post/"+tt.num)

			if tt.allowed {
				assert.Equal(t, http.StatusOK, rec.Code)
				assert.Equal(t, 1, env.handled)
				return
			}

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"error":"Invalid number of posts."}`, rec.Body.String())
			assert.Zero(t, env.handled)
		})
	}
}

func TestGlobalErrorHandler(t *testing.T) {
	env := newTestEnv(t, config.DefaultMaxBatchSize, time.Now())

	t.Run("unknown error is a generic 500", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/boom")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "connection reset")

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Internal Server Error", body["message"])
		assert.Equal(t, "INTERNAL_SERVER_ERROR", body["code"])
	})

	t.Run("no rows names the entity", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/missing")

		assert.Equal(t, http.StatusNotFound, rec.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Post not found", body["message"])
	})

	t.Run("unknown route", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/nope")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Route not found")
	})

	t.Run("original error is logged", func(t *testing.T) {
		assert.True(t, strings.Contains(env.logs.String(), "connection reset by peer"))
	})
}

func TestRequestIDPropagation(t *testing.T) {
	env := newTestEnv(t, config.DefaultMaxBatchSize, time.Now())

	req := httptest.NewRequest(http.MethodPost, "/api/post/1", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	env.echo.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))

	long := strings.Repeat("x", maxRequestIDLength+1)
	req = httptest.NewRequest(http.MethodPost, "/api/post/1", nil)
	req.Header.Set(RequestIDHeader, long)
	rec = httptest.NewRecorder()
	env.echo.ServeHTTP(rec, req)

	got := rec.Header().Get(RequestIDHeader)
	assert.NotEqual(t, long, got)
	assert.Len(t, got, 36)
}
