// Package todoclient is a Go client for the todo HTTP API. Reads are
// cached briefly and mutations invalidate what they change.
package todoclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/xyz-asif/todoapp/internal/features/todos"
	"github.com/xyz-asif/todoapp/internal/pkg/response"
)

const (
	DefaultMaxRetries   = 2
	DefaultRetryBackoff = 200 * time.Millisecond
	DefaultStaleAfter   = 30 * time.Second
	DefaultTimeout      = 10 * time.Second
)

const (
	listKeyPrefix = "todos/list"
	itemKeyPrefix = "todos/item/"
)

type Options struct {
	// HTTPClient defaults to a traced client with DefaultTimeout.
	HTTPClient *http.Client
	// MaxRetries is the number of extra attempts for idempotent requests
	// that fail in transport or with a 5xx. Zero means DefaultMaxRetries;
	// negative disables retries.
	MaxRetries int
	// RetryBackoff is the first retry delay; later delays double.
	RetryBackoff time.Duration
	// StaleAfter is how long reads are served from cache. Zero means
	// DefaultStaleAfter; negative disables caching.
	StaleAfter time.Duration
	// Now is the clock used for cache ages and due-date buckets.
	Now func() time.Time
}

type Client struct {
	baseURL    string
	http       *http.Client
	maxRetries int
	backoff    time.Duration
	cache      *Cache
	now        func() time.Time
}

// New returns a client for the API rooted at baseURL, for example
// http://localhost:8080/api.
func New(baseURL string, opts Options) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q must be http or https", baseURL)
	}

	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{
			Timeout:   DefaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	switch {
	case opts.MaxRetries == 0:
		opts.MaxRetries = DefaultMaxRetries
	case opts.MaxRetries < 0:
		opts.MaxRetries = 0
	}
	if opts.RetryBackoff <= 0 {
		opts.RetryBackoff = DefaultRetryBackoff
	}
	if opts.StaleAfter == 0 {
		opts.StaleAfter = DefaultStaleAfter
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Client{
		baseURL:    strings.TrimSuffix(u.String(), "/"),
		http:       opts.HTTPClient,
		maxRetries: opts.MaxRetries,
		backoff:    opts.RetryBackoff,
		cache:      NewCache(opts.StaleAfter, opts.Now),
		now:        opts.Now,
	}, nil
}

// List fetches the list from the server and applies the due-date bucket
// locally. TotalCount reflects the bucket.
func (c *Client) List(ctx context.Context, params todos.QueryParams) (*todos.TodoListResponse, error) {
	query := url.Values{}
	for key, value := range map[string]string{
		"status":        params.Status,
		"priority":      params.Priority,
		"search":        params.Search,
		"sortBy":        params.SortBy,
		"sortDirection": params.SortDirection,
	} {
		if value != "" {
			query.Set(key, value)
		}
	}

	key := listKeyPrefix + "?" + query.Encode()
	list, err := fetch(c.cache, key, func() (todos.TodoListResponse, error) {
		var out todos.TodoListResponse
		_, err := c.do(ctx, http.MethodGet, "/todos", query, nil, &out)
		return out, err
	})
	if err != nil {
		return nil, err
	}

	data := slices.Clone(list.Data)
	total := list.TotalCount
	if bucket := todos.ParseDueBucket(params.DueDate); bucket != todos.DueAny {
		data = narrow(data, bucket, c.now())
		total = len(data)
	}
	return &todos.TodoListResponse{Data: data, TotalCount: total}, nil
}

func (c *Client) Get(ctx context.Context, id string) (*todos.TodoDTO, error) {
	todo, err := fetch(c.cache, itemKeyPrefix+id, func() (todos.TodoDTO, error) {
		var out todos.TodoDTO
		_, err := c.do(ctx, http.MethodGet, "/todos/"+url.PathEscape(id), nil, nil, &out)
		return out, err
	})
	if err != nil {
		return nil, err
	}
	return &todo, nil
}

func (c *Client) Create(ctx context.Context, req todos.CreateTodoRequest) (*todos.TodoDTO, error) {
	var out todos.TodoDTO
	if _, err := c.do(ctx, http.MethodPost, "/todos", nil, req, &out); err != nil {
		return nil, err
	}
	c.cache.Invalidate(listKeyPrefix)
	return &out, nil
}

func (c *Client) Update(ctx context.Context, id string, req todos.UpdateTodoRequest) (*todos.TodoDTO, error) {
	var out todos.TodoDTO
	if _, err := c.do(ctx, http.MethodPut, "/todos/"+url.PathEscape(id), nil, req, &out); err != nil {
		return nil, err
	}
	c.cache.Set(itemKeyPrefix+out.ID, out)
	c.cache.Invalidate(listKeyPrefix)
	return &out, nil
}

// Toggle flips a todo between active and completed and keeps its other
// fields. The due date is left untouched on the server.
func (c *Client) Toggle(ctx context.Context, todo todos.TodoDTO) (*todos.TodoDTO, error) {
	status := todos.StatusCompleted
	if todo.Status == todos.StatusCompleted {
		status = todos.StatusActive
	}
	return c.Update(ctx, todo.ID, todos.UpdateTodoRequest{
		Title:       todo.Title,
		Description: todo.Description,
		Status:      string(status),
		Priority:    string(todo.Priority),
	})
}

func (c *Client) Delete(ctx context.Context, id string) error {
	if _, err := c.do(ctx, http.MethodDelete, "/todos/"+url.PathEscape(id), nil, nil, nil); err != nil {
		return err
	}
	c.cache.Invalidate(itemKeyPrefix + id)
	c.cache.Invalidate(listKeyPrefix)
	return nil
}

// DeleteCompleted removes every completed todo and reports how many went.
func (c *Client) DeleteCompleted(ctx context.Context) (int64, error) {
	var out todos.BulkDeleteResponse
	if _, err := c.do(ctx, http.MethodDelete, "/todos/completed", nil, nil, &out); err != nil {
		return 0, err
	}
	c.cache.Invalidate("todos/")
	return out.DeletedCount, nil
}

func idempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPut, http.MethodDelete:
		return true
	default:
		return false
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) (http.Header, error) {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	attempt := func() (http.Header, error) {
		var reader io.Reader = http.NoBody
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, target, reader)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, backoff.Permanent(ctx.Err())
			}
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusBadRequest {
			apiErr := decodeProblem(resp)
			if resp.StatusCode >= http.StatusInternalServerError {
				return nil, apiErr
			}
			return nil, backoff.Permanent(apiErr)
		}

		if out != nil && resp.StatusCode != http.StatusNoContent {
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return nil, backoff.Permanent(fmt.Errorf("decode %s %s: %w", method, path, err))
			}
		}
		return resp.Header, nil
	}

	tries := uint(1)
	if idempotent(method) {
		tries += uint(c.maxRetries)
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.backoff
	policy.Multiplier = 2
	policy.RandomizationFactor = 0
	policy.MaxInterval = 30 * time.Second

	return backoff.Retry(ctx, attempt,
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(tries),
	)
}

func decodeProblem(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode, Title: http.StatusText(resp.StatusCode)}

	var problem response.ProblemDetails
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if json.Unmarshal(raw, &problem) == nil {
		if problem.Title != "" {
			apiErr.Title = problem.Title
		}
		apiErr.Detail = problem.Detail
		apiErr.Errors = problem.Errors
	}
	return apiErr
}
