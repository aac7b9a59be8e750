package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/xyz-asif/todoapp/internal/features/todos"
	"github.com/xyz-asif/todoapp/internal/todoclient"
)

const defaultAPI = "http://localhost:8080/api"

type app struct {
	out     io.Writer
	now     func() time.Time
	api     string
	output  string
	timeout time.Duration
	client  *todoclient.Client
}

func newRootCmd(out io.Writer, now func() time.Time) *cobra.Command {
	a := &app{out: out, now: now}

	api := os.Getenv("TODO_API_URL")
	if api == "" {
		api = defaultAPI
	}

	root := &cobra.Command{
		Use:           "todoctl",
		Short:         "Manage todos from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch a.output {
			case "table", "json", "yaml":
			default:
				return fmt.Errorf("unknown output format %q: use table, json or yaml", a.output)
			}
			c, err := todoclient.New(a.api, todoclient.Options{Now: a.now})
			if err != nil {
				return err
			}
			a.client = c
			return nil
		},
	}
	root.SetOut(out)

	root.PersistentFlags().StringVar(&a.api, "api", api, "API base URL (env TODO_API_URL)")
	root.PersistentFlags().StringVarP(&a.output, "output", "o", "table", "Output format: table, json or yaml")
	root.PersistentFlags().DurationVar(&a.timeout, "timeout", 15*time.Second, "Overall request timeout")

	root.AddCommand(
		a.listCmd(),
		a.getCmd(),
		a.addCmd(),
		a.editCmd(),
		a.statusCmd("done", "Mark a todo completed", todos.StatusCompleted),
		a.statusCmd("undo", "Mark a todo active again", todos.StatusActive),
		a.rmCmd(),
		a.purgeCmd(),
	)
	return root
}

func (a *app) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), a.timeout)
}

func (a *app) listCmd() *cobra.Command {
	var params todos.QueryParams
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List todos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.context(cmd)
			defer cancel()

			list, err := a.client.List(ctx, params)
			if err != nil {
				return err
			}
			return a.renderList(list)
		},
	}
	f := cmd.Flags()
	f.StringVar(&params.Status, "status", "", "all, active or completed")
	f.StringVar(&params.Priority, "priority", "", "all, low, medium or high")
	f.StringVar(&params.Search, "search", "", "Match title or description")
	f.StringVar(&params.DueDate, "due", "", "all, today, thisWeek or overdue")
	f.StringVar(&params.SortBy, "sort", "", "title, priority, dueDate, createdAt or updatedAt")
	f.StringVar(&params.SortDirection, "dir", "", "asc or desc")
	return cmd
}

func (a *app) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.context(cmd)
			defer cancel()

			todo, err := a.client.Get(ctx, args[0])
			if err != nil {
				return err
			}
			return a.renderTodo(todo)
		},
	}
}

func (a *app) addCmd() *cobra.Command {
	var description, priority, due string
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a todo",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := todos.CreateTodoRequest{
				Title:       strings.Join(args, " "),
				Description: description,
				Priority:    priority,
			}
			if due != "" {
				d, err := parseDue(due)
				if err != nil {
					return err
				}
				req.DueDate = d
			}

			ctx, cancel := a.context(cmd)
			defer cancel()

			todo, err := a.client.Create(ctx, req)
			if err != nil {
				return err
			}
			return a.renderTodo(todo)
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "Longer description")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "low, medium or high")
	cmd.Flags().StringVar(&due, "due", "", "Due date, YYYY-MM-DD or RFC 3339")
	return cmd
}

// editCmd replaces only the fields whose flags were given.
func (a *app) editCmd() *cobra.Command {
	var title, description, status, priority, due string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.context(cmd)
			defer cancel()

			current, err := a.client.Get(ctx, args[0])
			if err != nil {
				return err
			}

			req := todos.UpdateTodoRequest{
				Title:       current.Title,
				Description: current.Description,
				Status:      status,
				Priority:    priority,
			}
			flags := cmd.Flags()
			if flags.Changed("title") {
				req.Title = title
			}
			if flags.Changed("description") {
				req.Description = description
			}
			if due != "" {
				d, err := parseDue(due)
				if err != nil {
					return err
				}
				req.DueDate = d
			}

			todo, err := a.client.Update(ctx, current.ID, req)
			if err != nil {
				return err
			}
			return a.renderTodo(todo)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&title, "title", "t", "", "New title")
	f.StringVarP(&description, "description", "d", "", "New description")
	f.StringVar(&status, "status", "", "active or completed")
	f.StringVarP(&priority, "priority", "p", "", "low, medium or high")
	f.StringVar(&due, "due", "", "New due date, YYYY-MM-DD or RFC 3339")
	return cmd
}

func (a *app) statusCmd(use, short string, want todos.Status) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.context(cmd)
			defer cancel()

			todo, err := a.client.Get(ctx, args[0])
			if err != nil {
				return err
			}
			if todo.Status != want {
				if todo, err = a.client.Toggle(ctx, *todo); err != nil {
					return err
				}
			}
			return a.renderTodo(todo)
		},
	}
}

func (a *app) rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.context(cmd)
			defer cancel()

			if err := a.client.Delete(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Deleted %s\n", args[0])
			return nil
		},
	}
}

func (a *app) purgeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "Delete every completed todo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.context(cmd)
			defer cancel()

			n, err := a.client.DeleteCompleted(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Deleted %d completed %s\n", n, plural(n, "todo", "todos"))
			return nil
		},
	}
}

func plural(n int64, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func parseDue(s string) (*todos.DateTime, error) {
	var d todos.DateTime
	if err := d.UnmarshalJSON([]byte(strconv.Quote(s))); err != nil {
		return nil, err
	}
	return &d, nil
}
