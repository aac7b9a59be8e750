package todostest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/xyz-asif/todoapp/internal/features/todos"
	apperrors "github.com/xyz-asif/todoapp/pkg/errors"
)

// RunRepositoryContract checks a Repository implementation against the
// behaviour every store shares. newRepo must return an empty store.
func RunRepositoryContract(t *testing.T, newRepo func(t *testing.T) todos.Repository) {
	t.Helper()
	ctx := context.Background()

	t.Run("cases", func(t *testing.T) {
		repo := newRepo(t)
		_, err := Seed(ctx, repo)
		require.NoError(t, err)

		for _, tc := range Cases {
			t.Run(tc.Name, func(t *testing.T) {
				got, err := repo.ListFiltered(ctx, todos.ParseQuery(tc.Params))
				require.NoError(t, err)
				if tc.DueOnly {
					require.Len(t, got, len(Everything))
					return
				}
				require.Equal(t, tc.Want, Titles(got))
			})
		}
	})

	t.Run("list is newest first", func(t *testing.T) {
		repo := newRepo(t)
		_, err := Seed(ctx, repo)
		require.NoError(t, err)

		got, err := repo.List(ctx)
		require.NoError(t, err)
		require.Equal(t, Cases[0].Want, Titles(got))
	})

	t.Run("empty store lists nothing", func(t *testing.T) {
		repo := newRepo(t)

		got, err := repo.List(ctx)
		require.NoError(t, err)
		require.Empty(t, got)
	})

	t.Run("create then get round trips", func(t *testing.T) {
		repo := newRepo(t)
		items, err := Seed(ctx, repo)
		require.NoError(t, err)

		for _, want := range items {
			got, err := repo.GetByID(ctx, want.ID)
			require.NoError(t, err)
			require.Equal(t, want, *got)
		}
	})

	t.Run("create fills identity and timestamps", func(t *testing.T) {
		repo := newRepo(t)
		todo := &todos.Todo{Title: "Fresh"}

		require.NoError(t, repo.Create(ctx, todo))
		require.NotEmpty(t, todo.ID)
		require.False(t, todo.CreatedAt.IsZero())
		require.Equal(t, todo.CreatedAt, todo.UpdatedAt)
		require.Equal(t, todos.StatusActive, todo.Status)
		require.Equal(t, todos.PriorityMedium, todo.Priority)

		exists, err := repo.Exists(ctx, todo.ID)
		require.NoError(t, err)
		require.True(t, exists)
	})

	t.Run("get missing is not found", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.GetByID(ctx, "7d1c8a52-1111-4a2b-9c3d-000000000000")
		require.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("update persists every field", func(t *testing.T) {
		repo := newRepo(t)
		items, err := Seed(ctx, repo)
		require.NoError(t, err)

		todo := items[4]
		todo.Rename("delta renamed", Now)
		todo.Redescribe("", Now)
		todo.Complete(Now)
		todo.Reprioritize(todos.PriorityHigh, Now)
		due := Now.Add(48 * time.Hour)
		todo.Reschedule(&due, Now)
		require.NoError(t, repo.Update(ctx, &todo))

		got, err := repo.GetByID(ctx, todo.ID)
		require.NoError(t, err)
		require.Equal(t, todo, *got)
	})

	t.Run("update missing is not found", func(t *testing.T) {
		repo := newRepo(t)
		todo := Fixtures()[0]

		require.ErrorIs(t, repo.Update(ctx, &todo), apperrors.ErrNotFound)
	})

	t.Run("delete removes and tolerates missing ids", func(t *testing.T) {
		repo := newRepo(t)
		items, err := Seed(ctx, repo)
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, items[0].ID))
		require.NoError(t, repo.Delete(ctx, items[0].ID))

		exists, err := repo.Exists(ctx, items[0].ID)
		require.NoError(t, err)
		require.False(t, exists)

		got, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, got, len(items)-1)
	})

	t.Run("delete completed", func(t *testing.T) {
		repo := newRepo(t)
		_, err := Seed(ctx, repo)
		require.NoError(t, err)

		n, err := repo.DeleteCompleted(ctx)
		require.NoError(t, err)
		require.Equal(t, int64(2), n)

		n, err = repo.DeleteCompleted(ctx)
		require.NoError(t, err)
		require.Zero(t, n)

		active := todos.StatusActive
		got, err := repo.ListFiltered(ctx, todos.Query{Status: &active})
		require.NoError(t, err)
		require.Len(t, got, 4)
	})

	t.Run("accents are significant", func(t *testing.T) {
		repo := newRepo(t)
		for _, title := range []string{"Café run", "Cafe run"} {
			require.NoError(t, repo.Create(ctx, &todos.Todo{Title: title}))
		}

		got, err := repo.ListFiltered(ctx, todos.Query{Search: "café"})
		require.NoError(t, err)
		require.Equal(t, []string{"Café run"}, Titles(got))

		got, err = repo.ListFiltered(ctx, todos.Query{Search: "CAFE"})
		require.NoError(t, err)
		require.Equal(t, []string{"Cafe run"}, Titles(got))

		got, err = repo.ListFiltered(ctx, todos.Query{SortBy: todos.SortByTitle, Direction: todos.Ascending})
		require.NoError(t, err)
		require.Equal(t, []string{"Cafe run", "Café run"}, Titles(got))
	})

	t.Run("ping", func(t *testing.T) {
		require.NoError(t, newRepo(t).Ping(ctx))
	})
}
