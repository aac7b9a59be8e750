package todos_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/xyz-asif/todoapp/internal/features/todos"
	"github.com/xyz-asif/todoapp/internal/features/todos/todostest"
)

func TestApply_Cases(t *testing.T) {
	for _, tc := range todostest.Cases {
		t.Run(tc.Name, func(t *testing.T) {
			got := todos.Apply(todostest.Fixtures(), todos.ParseQuery(tc.Params), todostest.Now)
			require.Equal(t, tc.Want, todostest.Titles(got))
		})
	}
}

func TestApply_Idempotent(t *testing.T) {
	for _, tc := range todostest.Cases {
		t.Run(tc.Name, func(t *testing.T) {
			q := todos.ParseQuery(tc.Params)

			first := todos.Apply(todostest.Fixtures(), q, todostest.Now)
			again := todos.Apply(todostest.Fixtures(), q, todostest.Now)
			require.Equal(t, first, again)

			require.Equal(t, first, todos.Apply(first, q, todostest.Now))
		})
	}
}

func TestApply_ZeroQueryKeepsCreationOrder(t *testing.T) {
	got := todos.Apply(todostest.Fixtures(), todos.Query{}, todostest.Now)
	require.Equal(t, todostest.Everything, todostest.Titles(got))
}

func TestApply_EmptyInput(t *testing.T) {
	got := todos.Apply(nil, todos.Query{SortBy: todos.SortByTitle}, todostest.Now)
	require.Empty(t, got)
}

func TestSort_DueDateAscending(t *testing.T) {
	day := func(d int) *time.Time {
		v := time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC)
		return &v
	}
	items := []todos.Todo{
		{Title: "A", DueDate: day(5), Priority: todos.PriorityLow},
		{Title: "B", DueDate: day(1), Priority: todos.PriorityHigh},
		{Title: "C", Priority: todos.PriorityMedium},
	}

	got := todos.Sort(items, todos.Query{SortBy: todos.SortByDueDate, Direction: todos.Ascending})
	require.Equal(t, []string{"B", "A", "C"}, todostest.Titles(got))

	got = todos.Sort(items, todos.Query{SortBy: todos.SortByPriority, Direction: todos.Descending})
	require.Equal(t, []string{"B", "C", "A"}, todostest.Titles(got))
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	items := todostest.Fixtures()

	_ = todos.Sort(items, todos.Query{SortBy: todos.SortByTitle, Direction: todos.Descending})
	require.Equal(t, todostest.Everything, todostest.Titles(items))
}

func TestFilter_KeepsInputOrder(t *testing.T) {
	high := todos.PriorityHigh
	items := todostest.Fixtures()

	got := todos.Filter(items, todos.Query{Priority: &high, SortBy: todos.SortByTitle}, todostest.Now)
	require.Equal(t, []string{"Beta", "Complete project report"}, todostest.Titles(got))
}

func TestParseQuery_SortDefaults(t *testing.T) {
	tests := []struct {
		name  string
		by    string
		dir   string
		field todos.SortField
		want  todos.SortDirection
	}{
		{"nothing", "", "", todos.SortByCreatedAt, todos.Descending},
		{"unknown both", "size", "up", todos.SortByCreatedAt, todos.Descending},
		{"field only", "title", "", todos.SortByTitle, todos.Ascending},
		{"direction only", "", "asc", todos.SortByCreatedAt, todos.Ascending},
		{"unknown field", "size", "desc", todos.SortByCreatedAt, todos.Descending},
		{"case insensitive", "DUEDATE", "DESC", todos.SortByDueDate, todos.Descending},
		{"both", "updatedAt", "asc", todos.SortByUpdatedAt, todos.Ascending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := todos.ParseQuery(todos.QueryParams{SortBy: tt.by, SortDirection: tt.dir})
			require.Equal(t, tt.field, q.SortBy)
			require.Equal(t, tt.want, q.Direction)
		})
	}
}

func TestParseQuery_Filters(t *testing.T) {
	q := todos.ParseQuery(todos.QueryParams{
		Status:   "ACTIVE",
		Priority: "all",
		Search:   "milk",
		DueDate:  "ThisWeek",
	})

	require.NotNil(t, q.Status)
	require.Equal(t, todos.StatusActive, *q.Status)
	require.Nil(t, q.Priority)
	require.Equal(t, "milk", q.Search)
	require.Equal(t, todos.DueThisWeek, q.Due)

	q = todos.ParseQuery(todos.QueryParams{Status: "done", DueDate: "someday"})
	require.Nil(t, q.Status)
	require.Equal(t, todos.DueAny, q.Due)
	require.False(t, q.HasSearch())
}

func TestQuery_ZeroValueIsCreatedAscending(t *testing.T) {
	var q todos.Query
	require.Equal(t, todos.SortByCreatedAt, q.Field())
	require.False(t, q.Descending())
}
