package todoclient

import (
	"time"

	"github.com/xyz-asif/todoapp/internal/features/todos"
)

// Refine filters and sorts items locally with the same rules the server
// uses, plus the due-date bucket that only clients apply.
func Refine(items []todos.TodoDTO, q todos.Query, now time.Time) []todos.TodoDTO {
	entities := make([]todos.Todo, 0, len(items))
	for _, d := range items {
		entities = append(entities, d.Entity())
	}

	refined := todos.Apply(entities, q, now)

	out := make([]todos.TodoDTO, 0, len(refined))
	for i := range refined {
		out = append(out, refined[i].ToDTO())
	}
	return out
}

// narrow keeps the items in bucket without changing their order.
func narrow(items []todos.TodoDTO, bucket todos.DueBucket, now time.Time) []todos.TodoDTO {
	q := todos.Query{Due: bucket}
	out := make([]todos.TodoDTO, 0, len(items))
	for _, d := range items {
		t := d.Entity()
		if q.Matches(&t, now) {
			out = append(out, d)
		}
	}
	return out
}
