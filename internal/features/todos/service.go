package todos

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/xyz-asif/todoapp/internal/pkg/pagination"
	apperrors "github.com/xyz-asif/todoapp/pkg/errors"
)

var tracer = otel.Tracer("github.com/xyz-asif/todoapp/internal/features/todos")

// ListParams are the list query plus an optional page window.
type ListParams struct {
	QueryParams
	Page *pagination.Request
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithClock replaces the service clock.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// List returns the filtered, sorted todos and the size of the filtered set.
// Page metadata is included only when a page was requested.
func (s *Service) List(ctx context.Context, params ListParams) (resp *TodoListResponse, err error) {
	ctx, span := tracer.Start(ctx, "todos.List")
	defer func() { endSpan(span, err) }()

	q := ParseQuery(params.QueryParams)
	q.Due = DueAny
	span.SetAttributes(
		attribute.String("todos.sort_by", string(q.Field())),
		attribute.Bool("todos.sort_desc", q.Descending()),
	)

	todos, err := s.repo.ListFiltered(ctx, q)
	if err != nil {
		return nil, err
	}

	total := len(todos)
	page, meta := pagination.Window(todos, params.Page)

	data := make([]TodoDTO, 0, len(page))
	for i := range page {
		data = append(data, page[i].ToDTO())
	}
	return &TodoListResponse{Data: data, TotalCount: total, Pagination: meta}, nil
}

// GetByID returns errors.ErrNotFound when id is unknown.
func (s *Service) GetByID(ctx context.Context, id string) (dto *TodoDTO, err error) {
	ctx, span := tracer.Start(ctx, "todos.GetByID", trace.WithAttributes(attribute.String("todo.id", id)))
	defer func() { endSpan(span, err) }()

	todo, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := todo.ToDTO()
	return &out, nil
}

// Create stores a new active todo. A missing or unknown priority becomes
// medium.
func (s *Service) Create(ctx context.Context, req CreateTodoRequest) (dto *TodoDTO, err error) {
	ctx, span := tracer.Start(ctx, "todos.Create")
	defer func() { endSpan(span, err) }()

	priority, ok := ParsePriority(req.Priority)
	if !ok {
		priority = PriorityMedium
	}

	todo := NewTodo(req.Title, req.Description, priority, req.DueDate.Ptr(), s.now())
	if err := s.repo.Create(ctx, todo); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("todo.id", todo.ID))

	out := todo.ToDTO()
	return &out, nil
}

// Update overwrites title and description, and applies status, priority
// and due date only when the request carries a usable value.
func (s *Service) Update(ctx context.Context, id string, req UpdateTodoRequest) (dto *TodoDTO, err error) {
	ctx, span := tracer.Start(ctx, "todos.Update", trace.WithAttributes(attribute.String("todo.id", id)))
	defer func() { endSpan(span, err) }()

	todo, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	todo.Rename(req.Title, now)
	todo.Redescribe(req.Description, now)

	if status, ok := ParseStatus(req.Status); ok {
		switch status {
		case StatusCompleted:
			todo.Complete(now)
		case StatusActive:
			todo.Reactivate(now)
		}
	}
	if priority, ok := ParsePriority(req.Priority); ok {
		todo.Reprioritize(priority, now)
	}
	if req.DueDate != nil {
		todo.Reschedule(req.DueDate.Ptr(), now)
	}

	if err := s.repo.Update(ctx, todo); err != nil {
		return nil, err
	}

	out := todo.ToDTO()
	return &out, nil
}

// Delete removes a todo, or returns errors.ErrNotFound without touching the
// store when it does not exist.
func (s *Service) Delete(ctx context.Context, id string) (err error) {
	ctx, span := tracer.Start(ctx, "todos.Delete", trace.WithAttributes(attribute.String("todo.id", id)))
	defer func() { endSpan(span, err) }()

	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

// DeleteCompleted removes every completed todo.
func (s *Service) DeleteCompleted(ctx context.Context) (resp *BulkDeleteResponse, err error) {
	ctx, span := tracer.Start(ctx, "todos.DeleteCompleted")
	defer func() { endSpan(span, err) }()

	n, err := s.repo.DeleteCompleted(ctx)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int64("todos.deleted", n))
	return &BulkDeleteResponse{DeletedCount: n}, nil
}

// Ping checks the backing store.
func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
