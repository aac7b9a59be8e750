// Package todostest holds a shared todo data set and the list orderings
// every store and the client-side engine must agree on.
package todostest

import (
	"context"
	"time"

	"github.com/xyz-asif/todoapp/internal/features/todos"
)

// Now is a Sunday, so the calendar week of Now starts on Now's date.
var Now = time.Date(2025, time.January, 12, 12, 0, 0, 0, time.UTC)

var base = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

func due(day, hour int) *time.Time {
	t := time.Date(2025, time.January, day, hour, 0, 0, 0, time.UTC)
	return &t
}

// Fixtures returns six todos in creation order. Each call returns fresh
// values.
func Fixtures() []todos.Todo {
	items := []todos.Todo{
		{ID: "0a5c1d2e-0000-4000-8000-000000000000", Title: "Beta", Description: "Quarterly numbers", Status: todos.StatusActive, Priority: todos.PriorityHigh, DueDate: due(15, 9)},
		{ID: "0a5c1d2e-0000-4000-8000-000000000001", Title: "Alpha", Description: "Draft the PROJECT plan", Status: todos.StatusActive, Priority: todos.PriorityMedium, DueDate: due(20, 9)},
		{ID: "0a5c1d2e-0000-4000-8000-000000000002", Title: "Gamma", Status: todos.StatusActive, Priority: todos.PriorityLow, DueDate: due(10, 9)},
		{ID: "0a5c1d2e-0000-4000-8000-000000000003", Title: "Complete project report", Description: "For the board", Status: todos.StatusCompleted, Priority: todos.PriorityHigh},
		{ID: "0a5c1d2e-0000-4000-8000-000000000004", Title: "delta", Status: todos.StatusActive, Priority: todos.PriorityMedium},
		{ID: "0a5c1d2e-0000-4000-8000-000000000005", Title: "Epsilon", Status: todos.StatusCompleted, Priority: todos.PriorityLow, DueDate: due(12, 18)},
	}
	for i := range items {
		items[i].CreatedAt = base.Add(time.Duration(i) * time.Hour)
		items[i].UpdatedAt = items[i].CreatedAt
	}
	items[2].UpdatedAt = base.Add(10 * time.Hour)
	return items
}

// Seed stores the fixtures in creation order.
func Seed(ctx context.Context, repo todos.Repository) ([]todos.Todo, error) {
	items := Fixtures()
	for i := range items {
		t := items[i]
		if err := repo.Create(ctx, &t); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// Titles lists the titles of items in order.
func Titles(items []todos.Todo) []string {
	out := make([]string, 0, len(items))
	for _, t := range items {
		out = append(out, t.Title)
	}
	return out
}

// DTOTitles lists the titles of transfer values in order.
func DTOTitles(items []todos.TodoDTO) []string {
	out := make([]string, 0, len(items))
	for _, t := range items {
		out = append(out, t.Title)
	}
	return out
}
