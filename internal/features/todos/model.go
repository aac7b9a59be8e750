package todos

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/xyz-asif/todoapp/internal/pkg/pagination"
)

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 1000
)

// Status is the completion state of a todo.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// ParseStatus reads a status token case-insensitively. Blank, "all" and
// unknown tokens report ok=false, which callers treat as "no status".
func ParseStatus(s string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(StatusActive):
		return StatusActive, true
	case string(StatusCompleted):
		return StatusCompleted, true
	default:
		return "", false
	}
}

// Priority orders todos Low < Medium < High.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority reads a priority token case-insensitively. Blank, "all"
// and unknown tokens report ok=false.
func ParsePriority(s string) (Priority, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(PriorityLow):
		return PriorityLow, true
	case string(PriorityMedium):
		return PriorityMedium, true
	case string(PriorityHigh):
		return PriorityHigh, true
	default:
		return "", false
	}
}

// Rank is the ordinal used for sorting. Unknown priorities rank lowest.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	default:
		return 0
	}
}

// Todo represents a todo item
type Todo struct {
	ID          string
	Title       string
	Description string
	Status      Status
	Priority    Priority
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// normalizeTime keeps timestamps in UTC at the millisecond precision every
// backing store can round-trip.
func normalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

func normalizeDue(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	n := normalizeTime(*t)
	return &n
}

// NewTodo builds an active todo with a fresh identity. Unknown priorities
// fall back to medium.
func NewTodo(title, description string, priority Priority, dueDate *time.Time, now time.Time) *Todo {
	if priority.Rank() == 0 {
		priority = PriorityMedium
	}
	now = normalizeTime(now)
	return &Todo{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Status:      StatusActive,
		Priority:    priority,
		DueDate:     normalizeDue(dueDate),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (t *Todo) touch(now time.Time) {
	now = normalizeTime(now)
	if now.Before(t.CreatedAt) {
		now = t.CreatedAt
	}
	t.UpdatedAt = now
}

func (t *Todo) Rename(title string, now time.Time) {
	t.Title = title
	t.touch(now)
}

func (t *Todo) Redescribe(description string, now time.Time) {
	t.Description = description
	t.touch(now)
}

func (t *Todo) Reprioritize(priority Priority, now time.Time) {
	t.Priority = priority
	t.touch(now)
}

// Reschedule sets or clears the due date.
func (t *Todo) Reschedule(dueDate *time.Time, now time.Time) {
	t.DueDate = normalizeDue(dueDate)
	t.touch(now)
}

func (t *Todo) Complete(now time.Time) {
	t.Status = StatusCompleted
	t.touch(now)
}

func (t *Todo) Reactivate(now time.Time) {
	t.Status = StatusActive
	t.touch(now)
}

// IsOverdue reports a due date strictly in the past on an unfinished todo.
func (t *Todo) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Status != StatusCompleted
}

// IsDueToday reports whether the due date falls on now's calendar day in
// now's location.
func (t *Todo) IsDueToday(now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	return startOfDay(t.DueDate.In(now.Location())).Equal(startOfDay(now))
}

// IsDueThisWeek reports whether the due date falls in now's Sunday-based
// calendar week.
func (t *Todo) IsDueThisWeek(now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	return startOfWeek(t.DueDate.In(now.Location())).Equal(startOfWeek(now))
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func startOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// ToDTO maps the entity to its transfer shape.
func (t *Todo) ToDTO() TodoDTO {
	return TodoDTO{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// TodoDTO is the wire representation of a todo
// @Description Todo item with all its properties
type TodoDTO struct {
	ID          string     `json:"id" yaml:"id" example:"3f2b8c1e-7d4a-4a8e-9a51-2f0c6d1e9b7a"`
	Title       string     `json:"title" yaml:"title" example:"Buy groceries"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty" example:"Get milk, bread, and eggs"`
	Status      Status     `json:"status" yaml:"status" example:"active" enums:"active,completed"`
	Priority    Priority   `json:"priority" yaml:"priority" example:"medium" enums:"low,medium,high"`
	DueDate     *time.Time `json:"dueDate,omitempty" yaml:"dueDate,omitempty" example:"2030-12-31T23:59:59Z"`
	CreatedAt   time.Time  `json:"createdAt" yaml:"createdAt" example:"2025-01-01T00:00:00Z"`
	UpdatedAt   time.Time  `json:"updatedAt" yaml:"updatedAt" example:"2025-01-01T00:00:00Z"`
}

// Entity converts a transfer shape back into an entity value.
func (d TodoDTO) Entity() Todo {
	return Todo{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Status:      d.Status,
		Priority:    d.Priority,
		DueDate:     d.DueDate,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// TodoListResponse wraps a list result with the size of the filtered set
type TodoListResponse struct {
	Data       []TodoDTO              `json:"data"`
	TotalCount int                    `json:"totalCount" example:"3"`
	Pagination *pagination.Pagination `json:"pagination,omitempty"`
}

// BulkDeleteResponse reports how many completed todos were removed
type BulkDeleteResponse struct {
	DeletedCount int64 `json:"deletedCount" example:"2"`
}

// DateTime accepts RFC 3339 timestamps or bare YYYY-MM-DD dates (read as
// midnight UTC).
type DateTime struct {
	time.Time
}

const dateOnly = "2006-01-02"

func (d *DateTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		d.Time = t
		return nil
	}
	if t, err := time.Parse(dateOnly, s); err == nil {
		d.Time = t
		return nil
	}
	return fmt.Errorf("invalid date %q: use RFC 3339 or YYYY-MM-DD", s)
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time)
}

// Ptr returns the wrapped time, or nil for a nil DateTime.
func (d *DateTime) Ptr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

// CreateTodoRequest represents todo creation data
// @Description Data required to create a new todo
type CreateTodoRequest struct {
	Title       string    `json:"title" validate:"notblank,max=200" example:"Buy groceries"`
	Description string    `json:"description" validate:"max=1000" example:"Get milk, bread, and eggs"`
	Priority    string    `json:"priority" validate:"omitempty,todopriority" example:"medium" enums:"low,medium,high"`
	DueDate     *DateTime `json:"dueDate" validate:"omitempty,future" swaggertype:"string" example:"2030-12-31T23:59:59Z"`
}

// UpdateTodoRequest represents todo update data. Title and description are
// always replaced; status, priority and dueDate only when supplied.
// @Description Data for updating an existing todo
type UpdateTodoRequest struct {
	Title       string    `json:"title" validate:"notblank,max=200" example:"Buy groceries"`
	Description string    `json:"description" validate:"max=1000" example:"Get milk, bread, and eggs"`
	Status      string    `json:"status" validate:"omitempty,todostatus" example:"completed" enums:"active,completed"`
	Priority    string    `json:"priority" example:"high" enums:"low,medium,high"`
	DueDate     *DateTime `json:"dueDate" validate:"omitempty,future" swaggertype:"string" example:"2030-12-31T23:59:59Z"`
}
