package response

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newContext(path string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", path, nil)
	return c, w
}

func TestSuccessAndCreated(t *testing.T) {
	c, w := newContext("/api/todos")
	Success(c, map[string]string{"foo": "bar"})
	require.Equal(t, 200, w.Code)
	require.JSONEq(t, `{"foo":"bar"}`, w.Body.String())

	c, w = newContext("/api/todos")
	Created(c, "/api/todos/42", map[string]string{"id": "42"})
	require.Equal(t, 201, w.Code)
	require.Equal(t, "/api/todos/42", w.Header().Get("Location"))
	require.JSONEq(t, `{"id":"42"}`, w.Body.String())
}

func TestNotFoundProblem(t *testing.T) {
	c, w := newContext("/api/todos/abc")
	NotFound(c, "Todo with ID 'abc' was not found")

	require.Equal(t, 404, w.Code)
	require.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
	require.True(t, c.IsAborted())

	var body ProblemDetails
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, ProblemType, body.Type)
	require.Equal(t, "Not Found", body.Title)
	require.Equal(t, 404, body.Status)
	require.Equal(t, "/api/todos/abc", body.Instance)
	require.Empty(t, body.Errors)
}

func TestInternalServerErrorHidesCause(t *testing.T) {
	c, w := newContext("/api/todos")
	InternalServerError(c)

	require.Equal(t, 500, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "Internal Server Error", body["title"])
	require.Equal(t, "An unexpected error occurred", body["detail"])
	require.Equal(t, float64(500), body["status"])
	require.Equal(t, ProblemType, body["type"])
}

func TestValidationProblem(t *testing.T) {
	c, w := newContext("/api/todos")
	ValidationProblem(c, map[string][]string{
		"title":    {"Title is required"},
		"priority": {"Priority must be one of: low, medium, high"},
	})

	require.Equal(t, 400, w.Code)
	var body ProblemDetails
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "Validation Error", body.Title)
	require.Equal(t, "One or more validation errors occurred", body.Detail)
	require.Equal(t, []string{"Title is required"}, body.Errors["title"])
	require.Len(t, body.Errors, 2)
}

func TestBindJSONError(t *testing.T) {
	c, w := newContext("/api/todos")
	BindJSONError(c, errors.New("unexpected EOF"))

	require.Equal(t, 400, w.Code)
	var body ProblemDetails
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Contains(t, body.Errors, "body")
	require.Contains(t, body.Errors["body"][0], "unexpected EOF")
}
