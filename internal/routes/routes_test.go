package routes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/xyz-asif/todoapp/internal/config"
	"github.com/xyz-asif/todoapp/internal/features/todos"
	"github.com/xyz-asif/todoapp/internal/pkg/ratelimit"
)

func testConfig() *config.Config {
	return &config.Config{
		APIBasePath:  "/api",
		StoreDriver:  config.StoreMemory,
		FrontendURLs: []string{"http://localhost:5173"},
	}
}

func newTestRouter(deps Deps) *gin.Engine {
	gin.SetMode(gin.TestMode)
	if deps.Todos == nil {
		deps.Todos = todos.NewService(todos.NewMemoryRepository())
	}
	return NewRouter(testConfig(), deps)
}

type downRepository struct {
	*todos.MemoryRepository
}

func (downRepository) Ping(context.Context) error { return errors.New("connection refused") }

func TestRouter_Health(t *testing.T) {
	r := newTestRouter(Deps{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "ok", body.Status)
	require.Equal(t, "memory", body.Store)
}

func TestRouter_HealthStoreDown(t *testing.T) {
	r := newTestRouter(Deps{Todos: todos.NewService(downRepository{todos.NewMemoryRepository()})})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
}

func TestRouter_TodoLifecycle(t *testing.T) {
	r := newTestRouter(Deps{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/todos", strings.NewReader(`{"title":"Write report"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)
	location := w.Header().Get("Location")
	require.True(t, strings.HasPrefix(location, "/api/todos/"))
	require.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/todos", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var list todos.TodoListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Equal(t, 1, list.TotalCount)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, location, nil))
	require.Equal(t, http.StatusNoContent, w.Code)
}

func TestRouter_UnknownRouteIsProblem(t *testing.T) {
	r := newTestRouter(Deps{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/nothing", nil))

	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
}

func TestRouter_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := newTestRouter(Deps{Registry: reg})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/todos", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `todoapp_http_requests_total{method="GET",route="/api/todos",status="200"} 1`)
}

func TestRouter_RateLimitsAPIOnly(t *testing.T) {
	r := newTestRouter(Deps{Limiter: ratelimit.New(1, time.Hour)})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/todos", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/todos", nil))
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.NotEmpty(t, w.Header().Get("Retry-After"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
}
