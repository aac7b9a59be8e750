package todos_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xyz-asif/todoapp/internal/features/todos"
	"github.com/xyz-asif/todoapp/internal/features/todos/todostest"
	"github.com/xyz-asif/todoapp/internal/pkg/response"
)

func newTestRouter(t *testing.T) (*gin.Engine, []todos.Todo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := todos.NewMemoryRepository()
	items, err := todostest.Seed(context.Background(), repo)
	require.NoError(t, err)

	r := gin.New()
	todos.RegisterRoutes(r.Group("/api"), todos.NewService(repo))
	return r, items
}

func do(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestHandler_List(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, http.MethodGet, "/api/todos?status=active&sortBy=priority&sortDirection=desc", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[todos.TodoListResponse](t, w)
	require.Equal(t, 4, body.TotalCount)
	require.Equal(t, []string{"Beta", "Alpha", "delta", "Gamma"}, todostest.DTOTitles(body.Data))
}

func TestHandler_ListPaged(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, http.MethodGet, "/api/todos?page=2&pageSize=4", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[todos.TodoListResponse](t, w)
	require.Equal(t, 6, body.TotalCount)
	require.Equal(t, []string{"Alpha", "Beta"}, todostest.DTOTitles(body.Data))
	require.NotNil(t, body.Pagination)
	assert.Equal(t, 2, body.Pagination.Page)
	assert.Equal(t, 4, body.Pagination.Limit)
	assert.Equal(t, 2, body.Pagination.Pages)
	assert.False(t, body.Pagination.HasNext)
	assert.True(t, body.Pagination.HasPrev)
}

func TestHandler_ListHugePage(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, http.MethodGet, "/api/todos?page=9223372036854775807&pageSize=20", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[todos.TodoListResponse](t, w)
	assert.Equal(t, 6, body.TotalCount)
	assert.Empty(t, body.Data)
	require.NotNil(t, body.Pagination)
	assert.False(t, body.Pagination.HasNext)
}

func TestHandler_ListUnpagedHasNoPageInfo(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, http.MethodGet, "/api/todos", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `"pagination"`)
}

func TestHandler_ListIgnoresUnknownTokens(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, http.MethodGet, "/api/todos?status=all&priority=bogus&dueDate=overdue&sortBy=nope", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 6, decode[todos.TodoListResponse](t, w).TotalCount)
}

func TestHandler_Get(t *testing.T) {
	r, items := newTestRouter(t)

	w := do(r, http.MethodGet, "/api/todos/"+items[0].ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[todos.TodoDTO](t, w)
	require.Equal(t, items[0].ToDTO(), got)
}

func TestHandler_GetNotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, id := range []string{"7d1c8a52-1111-4a2b-9c3d-000000000000", "not-a-uuid"} {
		w := do(r, http.MethodGet, "/api/todos/"+id, "")
		require.Equal(t, http.StatusNotFound, w.Code)
		require.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))

		body := decode[response.ProblemDetails](t, w)
		require.Equal(t, response.ProblemType, body.Type)
		require.Equal(t, "Not Found", body.Title)
		require.Equal(t, "Todo with ID '"+id+"' was not found", body.Detail)
		require.Equal(t, "/api/todos/"+id, body.Instance)
	}
}

func TestHandler_Create(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/todos", `{"title":"Buy milk","priority":"high","dueDate":"2099-01-01"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	got := decode[todos.TodoDTO](t, w)
	require.Equal(t, "Buy milk", got.Title)
	require.Equal(t, todos.PriorityHigh, got.Priority)
	require.Equal(t, todos.StatusActive, got.Status)
	require.NotNil(t, got.DueDate)
	require.Equal(t, "/api/todos/"+got.ID, w.Header().Get("Location"))

	w = do(r, http.MethodGet, w.Header().Get("Location"), "")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_CreateValidation(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/todos", `{"title":"  ","priority":"urgent","dueDate":"2001-01-01"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decode[response.ProblemDetails](t, w)
	require.Equal(t, "Validation Error", body.Title)
	require.Equal(t, http.StatusBadRequest, body.Status)
	require.Equal(t, []string{"Title is required"}, body.Errors["title"])
	require.Equal(t, []string{"Priority must be one of: low, medium, high"}, body.Errors["priority"])
	require.Equal(t, []string{"Due date must be in the future"}, body.Errors["dueDate"])

	w = do(r, http.MethodGet, "/api/todos", "")
	require.Equal(t, 6, decode[todos.TodoListResponse](t, w).TotalCount)
}

func TestHandler_CreateMalformedBody(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/todos", `{"title":`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[response.ProblemDetails](t, w)
	require.Len(t, body.Errors["body"], 1)
}

func TestHandler_Update(t *testing.T) {
	r, items := newTestRouter(t)

	w := do(r, http.MethodPut, "/api/todos/"+items[4].ID, `{"title":"delta","description":"now described","status":"completed"}`)
	require.Equal(t, http.StatusOK, w.Code)

	got := decode[todos.TodoDTO](t, w)
	require.Equal(t, todos.StatusCompleted, got.Status)
	require.Equal(t, "now described", got.Description)
	require.Equal(t, todos.PriorityMedium, got.Priority)
	require.True(t, got.UpdatedAt.After(items[4].UpdatedAt))
}

func TestHandler_UpdateErrors(t *testing.T) {
	r, items := newTestRouter(t)

	w := do(r, http.MethodPut, "/api/todos/"+items[0].ID, `{"title":"ok","status":"done"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, decode[response.ProblemDetails](t, w).Errors, "status")

	w = do(r, http.MethodPut, "/api/todos/7d1c8a52-1111-4a2b-9c3d-000000000000", `{"title":"ok"}`)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_Delete(t *testing.T) {
	r, items := newTestRouter(t)

	w := do(r, http.MethodDelete, "/api/todos/"+items[2].ID, "")
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Empty(t, w.Body.String())

	w = do(r, http.MethodDelete, "/api/todos/"+items[2].ID, "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_DeleteCompleted(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, http.MethodDelete, "/api/todos/completed", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, int64(2), decode[todos.BulkDeleteResponse](t, w).DeletedCount)

	w = do(r, http.MethodDelete, "/api/todos/completed", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, int64(0), decode[todos.BulkDeleteResponse](t, w).DeletedCount)
}
