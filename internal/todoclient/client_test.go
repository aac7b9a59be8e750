package todoclient_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xyz-asif/todoapp/internal/config"
	"github.com/xyz-asif/todoapp/internal/features/todos"
	"github.com/xyz-asif/todoapp/internal/features/todos/todostest"
	"github.com/xyz-asif/todoapp/internal/routes"
	"github.com/xyz-asif/todoapp/internal/todoclient"
)

type apiServer struct {
	*httptest.Server
	hits atomic.Int32
}

// newAPIServer serves the full router over the seeded fixtures.
func newAPIServer(t *testing.T) *apiServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := todos.NewMemoryRepository()
	_, err := todostest.Seed(context.Background(), repo)
	require.NoError(t, err)

	router := routes.NewRouter(&config.Config{
		APIBasePath: "/api",
		StoreDriver: config.StoreMemory,
	}, routes.Deps{Todos: todos.NewService(repo)})

	s := &apiServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.hits.Add(1)
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(s.Close)
	return s
}

func newClient(t *testing.T, baseURL string, opts todoclient.Options) *todoclient.Client {
	t.Helper()
	if opts.RetryBackoff == 0 {
		opts.RetryBackoff = time.Millisecond
	}
	c, err := todoclient.New(baseURL, opts)
	require.NoError(t, err)
	return c
}

func TestNew_RejectsBadBaseURL(t *testing.T) {
	_, err := todoclient.New("localhost:8080", todoclient.Options{})
	require.Error(t, err)

	_, err = todoclient.New("ftp://example.com", todoclient.Options{})
	require.Error(t, err)
}

func TestClient_ListMatchesServerAndBuckets(t *testing.T) {
	srv := newAPIServer(t)
	c := newClient(t, srv.URL+"/api", todoclient.Options{StaleAfter: -1, Now: func() time.Time { return todostest.Now }})

	for _, tc := range todostest.Cases {
		t.Run(tc.Name, func(t *testing.T) {
			list, err := c.List(context.Background(), tc.Params)
			require.NoError(t, err)
			assert.Equal(t, tc.Want, todostest.DTOTitles(list.Data))
			assert.Equal(t, len(tc.Want), list.TotalCount)
		})
	}
}

func TestClient_Lifecycle(t *testing.T) {
	srv := newAPIServer(t)
	c := newClient(t, srv.URL+"/api/", todoclient.Options{})
	ctx := context.Background()

	created, err := c.Create(ctx, todos.CreateTodoRequest{Title: "Water plants", Priority: "high"})
	require.NoError(t, err)
	assert.Equal(t, todos.StatusActive, created.Status)
	assert.Equal(t, todos.PriorityHigh, created.Priority)

	got, err := c.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	updated, err := c.Update(ctx, created.ID, todos.UpdateTodoRequest{Title: "Water all plants", Description: "Balcony too"})
	require.NoError(t, err)
	assert.Equal(t, "Water all plants", updated.Title)
	assert.Equal(t, todos.PriorityHigh, updated.Priority)

	toggled, err := c.Toggle(ctx, *updated)
	require.NoError(t, err)
	assert.Equal(t, todos.StatusCompleted, toggled.Status)
	assert.Equal(t, "Balcony too", toggled.Description)

	require.NoError(t, c.Delete(ctx, created.ID))

	_, err = c.Get(ctx, created.ID)
	require.Error(t, err)
	assert.True(t, todoclient.IsNotFound(err))

	err = c.Delete(ctx, created.ID)
	assert.True(t, todoclient.IsNotFound(err))
}

func TestClient_ToggleKeepsPastDueDate(t *testing.T) {
	srv := newAPIServer(t)
	c := newClient(t, srv.URL+"/api", todoclient.Options{})
	ctx := context.Background()

	epsilon, err := c.Get(ctx, todostest.Fixtures()[5].ID)
	require.NoError(t, err)
	require.NotNil(t, epsilon.DueDate)

	reopened, err := c.Toggle(ctx, *epsilon)
	require.NoError(t, err)
	assert.Equal(t, todos.StatusActive, reopened.Status)
	require.NotNil(t, reopened.DueDate)
	assert.True(t, epsilon.DueDate.Equal(*reopened.DueDate))
}

func TestClient_ValidationError(t *testing.T) {
	srv := newAPIServer(t)
	c := newClient(t, srv.URL+"/api", todoclient.Options{})

	_, err := c.Create(context.Background(), todos.CreateTodoRequest{Title: "   "})
	require.Error(t, err)

	var apiErr *todoclient.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Errors, "title")
	assert.Equal(t, int32(1), srv.hits.Load())
}

func TestClient_DeleteCompleted(t *testing.T) {
	srv := newAPIServer(t)
	c := newClient(t, srv.URL+"/api", todoclient.Options{})
	ctx := context.Background()

	_, err := c.List(ctx, todos.QueryParams{})
	require.NoError(t, err)

	n, err := c.DeleteCompleted(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	list, err := c.List(ctx, todos.QueryParams{})
	require.NoError(t, err)
	assert.Equal(t, 4, list.TotalCount)
}

func TestClient_CachesReadsUntilMutation(t *testing.T) {
	srv := newAPIServer(t)
	c := newClient(t, srv.URL+"/api", todoclient.Options{})
	ctx := context.Background()

	for range 3 {
		_, err := c.List(ctx, todos.QueryParams{Status: "active"})
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), srv.hits.Load())

	_, err := c.Create(ctx, todos.CreateTodoRequest{Title: "Fresh"})
	require.NoError(t, err)

	list, err := c.List(ctx, todos.QueryParams{Status: "active"})
	require.NoError(t, err)
	assert.Equal(t, 5, list.TotalCount)
	assert.Equal(t, int32(3), srv.hits.Load())
}

func TestClient_UpdateRefreshesCachedItem(t *testing.T) {
	srv := newAPIServer(t)
	c := newClient(t, srv.URL+"/api", todoclient.Options{})
	ctx := context.Background()
	id := todostest.Fixtures()[0].ID

	_, err := c.Get(ctx, id)
	require.NoError(t, err)

	_, err = c.Update(ctx, id, todos.UpdateTodoRequest{Title: "Beta v2"})
	require.NoError(t, err)

	got, err := c.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Beta v2", got.Title)
	assert.Equal(t, int32(2), srv.hits.Load())
}

func TestClient_CacheExpires(t *testing.T) {
	srv := newAPIServer(t)
	now := time.Date(2025, 1, 12, 12, 0, 0, 0, time.UTC)
	c := newClient(t, srv.URL+"/api", todoclient.Options{
		StaleAfter: 30 * time.Second,
		Now:        func() time.Time { return now },
	})
	ctx := context.Background()

	_, err := c.List(ctx, todos.QueryParams{})
	require.NoError(t, err)
	now = now.Add(29 * time.Second)
	_, err = c.List(ctx, todos.QueryParams{})
	require.NoError(t, err)
	assert.Equal(t, int32(1), srv.hits.Load())

	now = now.Add(time.Second)
	_, err = c.List(ctx, todos.QueryParams{})
	require.NoError(t, err)
	assert.Equal(t, int32(2), srv.hits.Load())
}

// flaky answers with status for the first failures requests and then
// with an empty list.
func flaky(t *testing.T, status, failures int) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if int(hits.Add(1)) <= failures {
			w.Header().Set("Content-Type", "application/problem+json")
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"title":"Upstream trouble","status":` + strconv.Itoa(status) + `}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[],"totalCount":0}`))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestClient_RetriesServerErrors(t *testing.T) {
	srv, hits := flaky(t, http.StatusServiceUnavailable, 2)
	c := newClient(t, srv.URL, todoclient.Options{StaleAfter: -1})

	list, err := c.List(context.Background(), todos.QueryParams{})
	require.NoError(t, err)
	assert.Empty(t, list.Data)
	assert.Equal(t, int32(3), hits.Load())
}

func TestClient_GivesUpAfterMaxRetries(t *testing.T) {
	srv, hits := flaky(t, http.StatusInternalServerError, 100)
	c := newClient(t, srv.URL, todoclient.Options{StaleAfter: -1, MaxRetries: 1})

	_, err := c.List(context.Background(), todos.QueryParams{})
	var apiErr *todoclient.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "Upstream trouble", apiErr.Title)
	assert.Equal(t, int32(2), hits.Load())
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	srv, hits := flaky(t, http.StatusNotFound, 100)
	c := newClient(t, srv.URL, todoclient.Options{})

	_, err := c.Get(context.Background(), "missing")
	assert.True(t, todoclient.IsNotFound(err))
	assert.Equal(t, int32(1), hits.Load())
}

func TestClient_DoesNotRetryCreate(t *testing.T) {
	srv, hits := flaky(t, http.StatusServiceUnavailable, 100)
	c := newClient(t, srv.URL, todoclient.Options{})

	_, err := c.Create(context.Background(), todos.CreateTodoRequest{Title: "Once"})
	require.Error(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestClient_NegativeMaxRetriesDisablesRetry(t *testing.T) {
	srv, hits := flaky(t, http.StatusBadGateway, 100)
	c := newClient(t, srv.URL, todoclient.Options{MaxRetries: -1, StaleAfter: -1})

	_, err := c.List(context.Background(), todos.QueryParams{})
	require.Error(t, err)
	assert.Equal(t, int32(1), hits.Load())
}
