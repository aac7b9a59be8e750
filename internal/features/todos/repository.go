package todos

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/xyz-asif/todoapp/pkg/errors"
)

//go:generate mockgen -source=repository.go -destination=mocks/mock_repository.go -package=mocks

// Repository persists todos. GetByID and Update report a missing id with
// errors.ErrNotFound; Delete of a missing id is a no-op.
type Repository interface {
	GetByID(ctx context.Context, id string) (*Todo, error)
	// List returns every todo, newest first.
	List(ctx context.Context) ([]Todo, error)
	// ListFiltered applies q in the store. The due bucket is ignored.
	ListFiltered(ctx context.Context, q Query) ([]Todo, error)
	Create(ctx context.Context, todo *Todo) error
	Update(ctx context.Context, todo *Todo) error
	Delete(ctx context.Context, id string) error
	DeleteCompleted(ctx context.Context) (int64, error)
	Exists(ctx context.Context, id string) (bool, error)
	Ping(ctx context.Context) error
}

// newestFirst is the order of Repository.List.
var newestFirst = Query{SortBy: SortByCreatedAt, Direction: Descending}

// prepareForInsert fills identity and timestamps the caller left empty.
func prepareForInsert(todo *Todo, now time.Time) {
	if todo.ID == "" {
		todo.ID = uuid.NewString()
	}
	if todo.CreatedAt.IsZero() {
		todo.CreatedAt = normalizeTime(now)
	}
	if todo.UpdatedAt.IsZero() {
		todo.UpdatedAt = todo.CreatedAt
	}
	if todo.Status == "" {
		todo.Status = StatusActive
	}
	if todo.Priority.Rank() == 0 {
		todo.Priority = PriorityMedium
	}
}

// MemoryRepository keeps todos in process memory in insertion order.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]Todo
	order []string
	now   func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		items: make(map[string]Todo),
		now:   time.Now,
	}
}

func (r *MemoryRepository) snapshot() []Todo {
	out := make([]Todo, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	todo, ok := r.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &todo, nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]Todo, error) {
	return r.ListFiltered(ctx, newestFirst)
}

func (r *MemoryRepository) ListFiltered(_ context.Context, q Query) ([]Todo, error) {
	r.mu.RLock()
	todos := r.snapshot()
	r.mu.RUnlock()

	q.Due = DueAny
	return Apply(todos, q, r.now()), nil
}

func (r *MemoryRepository) Create(_ context.Context, todo *Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prepareForInsert(todo, r.now())
	if _, exists := r.items[todo.ID]; !exists {
		r.order = append(r.order, todo.ID)
	}
	r.items[todo.ID] = *todo
	return nil
}

func (r *MemoryRepository) Update(_ context.Context, todo *Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[todo.ID]; !ok {
		return apperrors.ErrNotFound
	}
	r.items[todo.ID] = *todo
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return nil
	}
	delete(r.items, id)
	r.order = slices.DeleteFunc(r.order, func(v string) bool { return v == id })
	return nil
}

func (r *MemoryRepository) DeleteCompleted(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int64
	r.order = slices.DeleteFunc(r.order, func(id string) bool {
		if r.items[id].Status != StatusCompleted {
			return false
		}
		delete(r.items, id)
		removed++
		return true
	})
	return removed, nil
}

func (r *MemoryRepository) Exists(_ context.Context, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.items[id]
	return ok, nil
}

func (r *MemoryRepository) Ping(context.Context) error {
	return nil
}
