package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/xyz-asif/todoapp/internal/features/todos"
)

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle      = lipgloss.NewStyle().Padding(0, 1)
	completedStyle = cellStyle.Foreground(lipgloss.Color("#2C4A54"))
	overdueStyle   = cellStyle.Foreground(lipgloss.Color("#E74C3C"))
	borderStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#16858E"))
)

func (a *app) renderList(list *todos.TodoListResponse) error {
	switch a.output {
	case "json":
		return a.writeJSON(list)
	case "yaml":
		return a.writeYAML(list.Data)
	}

	if len(list.Data) == 0 {
		fmt.Fprintln(a.out, "No todos.")
		return nil
	}
	fmt.Fprintln(a.out, a.todoTable(list.Data).Render())
	fmt.Fprintf(a.out, "%d of %d shown\n", len(list.Data), list.TotalCount)
	return nil
}

func (a *app) renderTodo(todo *todos.TodoDTO) error {
	switch a.output {
	case "json":
		return a.writeJSON(todo)
	case "yaml":
		return a.writeYAML(todo)
	}
	fmt.Fprintln(a.out, a.todoTable([]todos.TodoDTO{*todo}).Render())
	return nil
}

func (a *app) todoTable(items []todos.TodoDTO) *table.Table {
	now := a.now()
	rows := make([][]string, 0, len(items))
	overdue := make([]bool, len(items))
	for i, t := range items {
		e := t.Entity()
		overdue[i] = e.IsOverdue(now)
		rows = append(rows, []string{
			t.ID,
			mark(t.Status),
			t.Title,
			string(t.Priority),
			a.due(t.DueDate),
			humanize.RelTime(t.UpdatedAt, now, "ago", "from now"),
		})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("ID", "", "TITLE", "PRIORITY", "DUE", "UPDATED").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row < 0 || row >= len(items):
				return cellStyle
			case items[row].Status == todos.StatusCompleted:
				return completedStyle
			case col == 4 && overdue[row]:
				return overdueStyle
			default:
				return cellStyle
			}
		})
}

func mark(s todos.Status) string {
	if s == todos.StatusCompleted {
		return "✓"
	}
	return "○"
}

func (a *app) due(d *time.Time) string {
	if d == nil {
		return "-"
	}
	return d.Format("2006-01-02") + " (" + humanize.RelTime(*d, a.now(), "ago", "from now") + ")"
}

func (a *app) writeJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) writeYAML(v any) error {
	enc := yaml.NewEncoder(a.out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
