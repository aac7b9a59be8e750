package todos_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xyz-asif/todoapp/internal/features/todos"
	"github.com/xyz-asif/todoapp/internal/features/todos/todostest"
)

func TestMemoryRepository_Contract(t *testing.T) {
	todostest.RunRepositoryContract(t, func(t *testing.T) todos.Repository {
		return todos.NewMemoryRepository()
	})
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := todos.NewMemoryRepository()
	items, err := todostest.Seed(ctx, repo)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, items[0].ID)
	require.NoError(t, err)
	got.Title = "changed"

	again, err := repo.GetByID(ctx, items[0].ID)
	require.NoError(t, err)
	require.Equal(t, "Beta", again.Title)
}
