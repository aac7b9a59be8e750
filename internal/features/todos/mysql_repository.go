package todos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/xyz-asif/todoapp/pkg/errors"
)

const todoColumns = "id, title, description, status, priority, due_date, created_at, updated_at"

// MySQLRepository stores todos in the todos table created by the MySQL
// migrations. The auto-increment seq column breaks sort ties in insertion
// order.
type MySQLRepository struct {
	DB  *sql.DB
	now func() time.Time
}

func NewMySQLRepository(db *sql.DB) *MySQLRepository {
	return &MySQLRepository{DB: db, now: time.Now}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(row rowScanner) (*Todo, error) {
	var (
		t        Todo
		status   string
		priority string
		due      sql.NullTime
	)
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &status, &priority, &due, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.Status = Status(status)
	t.Priority = Priority(priority)
	if due.Valid {
		d := due.Time.UTC()
		t.DueDate = &d
	}
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	return &t, nil
}

func nullableTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func (r *MySQLRepository) GetByID(ctx context.Context, id string) (*Todo, error) {
	query := "SELECT " + todoColumns + " FROM todos WHERE id = ?"

	todo, err := scanTodo(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("could not query todo: %w", err)
	}
	return todo, nil
}

func (r *MySQLRepository) List(ctx context.Context) ([]Todo, error) {
	return r.ListFiltered(ctx, newestFirst)
}

func (r *MySQLRepository) ListFiltered(ctx context.Context, q Query) ([]Todo, error) {
	where, args := mysqlWhere(q)

	query := "SELECT " + todoColumns + " FROM todos"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY " + mysqlOrderBy(q)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("could not query todos: %w", err)
	}
	defer rows.Close()

	todos := []Todo{}
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan todo: %w", err)
		}
		todos = append(todos, *todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating todos: %w", err)
	}
	return todos, nil
}

func mysqlWhere(q Query) ([]string, []any) {
	var (
		where []string
		args  []any
	)
	if q.Status != nil {
		where = append(where, "status = ?")
		args = append(args, string(*q.Status))
	}
	if q.Priority != nil {
		where = append(where, "priority = ?")
		args = append(args, string(*q.Priority))
	}
	if q.HasSearch() {
		pattern := "%" + escapeLike(strings.ToLower(q.Search)) + "%"
		where = append(where, "(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)")
		args = append(args, pattern, pattern)
	}
	return where, args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func mysqlOrderBy(q Query) string {
	dir := "ASC"
	if q.Descending() {
		dir = "DESC"
	}

	var key string
	switch q.Field() {
	case SortByTitle:
		key = "title " + dir
	case SortByPriority:
		key = "CASE priority WHEN 'low' THEN 1 WHEN 'medium' THEN 2 WHEN 'high' THEN 3 ELSE 0 END " + dir
	case SortByDueDate:
		key = "due_date IS NULL ASC, due_date " + dir
	case SortByUpdatedAt:
		key = "updated_at " + dir
	default:
		key = "created_at " + dir
	}
	return key + ", seq ASC"
}

func (r *MySQLRepository) Create(ctx context.Context, todo *Todo) error {
	prepareForInsert(todo, r.now())

	query := "INSERT INTO todos (" + todoColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?)"
	_, err := r.DB.ExecContext(ctx, query,
		todo.ID, todo.Title, todo.Description, string(todo.Status), string(todo.Priority),
		nullableTime(todo.DueDate), todo.CreatedAt.UTC(), todo.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("could not insert todo: %w", err)
	}
	return nil
}

func (r *MySQLRepository) Update(ctx context.Context, todo *Todo) error {
	query := `UPDATE todos
		SET title = ?, description = ?, status = ?, priority = ?, due_date = ?, updated_at = ?
		WHERE id = ?`

	result, err := r.DB.ExecContext(ctx, query,
		todo.Title, todo.Description, string(todo.Status), string(todo.Priority),
		nullableTime(todo.DueDate), todo.UpdatedAt.UTC(), todo.ID,
	)
	if err != nil {
		return fmt.Errorf("could not update todo: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		// MySQL reports changed rows, so an identical write also yields 0.
		exists, err := r.Exists(ctx, todo.ID)
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.ErrNotFound
		}
	}
	return nil
}

func (r *MySQLRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.DB.ExecContext(ctx, "DELETE FROM todos WHERE id = ?", id); err != nil {
		return fmt.Errorf("could not delete todo: %w", err)
	}
	return nil
}

func (r *MySQLRepository) DeleteCompleted(ctx context.Context) (int64, error) {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM todos WHERE status = ?", string(StatusCompleted))
	if err != nil {
		return 0, fmt.Errorf("could not delete completed todos: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("could not get rows affected: %w", err)
	}
	return n, nil
}

func (r *MySQLRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM todos WHERE id = ?)", id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("could not check todo: %w", err)
	}
	return exists, nil
}

func (r *MySQLRepository) Ping(ctx context.Context) error {
	return r.DB.PingContext(ctx)
}
