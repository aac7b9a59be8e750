package todostest

import "github.com/xyz-asif/todoapp/internal/features/todos"

const (
	beta    = "Beta"
	alpha   = "Alpha"
	gamma   = "Gamma"
	report  = "Complete project report"
	delta   = "delta"
	epsilon = "Epsilon"
)

// Case is a list request against the fixtures and the titles it yields.
type Case struct {
	Name   string
	Params todos.QueryParams
	Want   []string
	// DueOnly cases narrow by due bucket, which only clients apply. A
	// server answers them as if the bucket were absent.
	DueOnly bool
}

func oldestFirst(p todos.QueryParams) todos.QueryParams {
	p.SortBy, p.SortDirection = "createdAt", "asc"
	return p
}

// Everything is the fixtures in creation order.
var Everything = []string{beta, alpha, gamma, report, delta, epsilon}

// Cases covers every filter and sort field against the fixtures at Now.
var Cases = []Case{
	{
		Name: "default order is newest first",
		Want: []string{epsilon, delta, report, gamma, alpha, beta},
	},
	{
		Name:   "status active",
		Params: oldestFirst(todos.QueryParams{Status: "active"}),
		Want:   []string{beta, alpha, gamma, delta},
	},
	{
		Name:   "status completed",
		Params: oldestFirst(todos.QueryParams{Status: "Completed"}),
		Want:   []string{report, epsilon},
	},
	{
		Name:   "status all",
		Params: oldestFirst(todos.QueryParams{Status: "all"}),
		Want:   Everything,
	},
	{
		Name:   "priority high",
		Params: oldestFirst(todos.QueryParams{Priority: "high"}),
		Want:   []string{beta, report},
	},
	{
		Name:   "unknown priority is ignored",
		Params: oldestFirst(todos.QueryParams{Priority: "urgent"}),
		Want:   Everything,
	},
	{
		Name:   "search matches title or description ignoring case",
		Params: oldestFirst(todos.QueryParams{Search: "PROJECT"}),
		Want:   []string{alpha, report},
	},
	{
		Name:   "blank search is ignored",
		Params: oldestFirst(todos.QueryParams{Search: "   "}),
		Want:   Everything,
	},
	{
		Name:   "title ascending",
		Params: todos.QueryParams{SortBy: "title", SortDirection: "asc"},
		Want:   []string{alpha, beta, report, delta, epsilon, gamma},
	},
	{
		Name:   "title descending",
		Params: todos.QueryParams{SortBy: "title", SortDirection: "desc"},
		Want:   []string{gamma, epsilon, delta, report, beta, alpha},
	},
	{
		Name:   "sort field without direction is ascending",
		Params: todos.QueryParams{SortBy: "title"},
		Want:   []string{alpha, beta, report, delta, epsilon, gamma},
	},
	{
		Name:   "priority ascending keeps creation order within a rank",
		Params: todos.QueryParams{SortBy: "priority", SortDirection: "asc"},
		Want:   []string{gamma, epsilon, alpha, delta, beta, report},
	},
	{
		Name:   "priority descending keeps creation order within a rank",
		Params: todos.QueryParams{SortBy: "priority", SortDirection: "desc"},
		Want:   []string{beta, report, alpha, delta, gamma, epsilon},
	},
	{
		Name:   "due date ascending puts undated last",
		Params: todos.QueryParams{SortBy: "dueDate", SortDirection: "asc"},
		Want:   []string{gamma, epsilon, beta, alpha, report, delta},
	},
	{
		Name:   "due date descending puts undated last",
		Params: todos.QueryParams{SortBy: "dueDate", SortDirection: "desc"},
		Want:   []string{alpha, beta, epsilon, gamma, report, delta},
	},
	{
		Name:   "updated descending",
		Params: todos.QueryParams{SortBy: "updatedAt", SortDirection: "desc"},
		Want:   []string{gamma, epsilon, delta, report, alpha, beta},
	},
	{
		Name:   "unknown sort field with direction sorts by creation",
		Params: todos.QueryParams{SortBy: "colour", SortDirection: "asc"},
		Want:   Everything,
	},
	{
		Name:   "filters combine with sort",
		Params: todos.QueryParams{Status: "active", SortBy: "priority", SortDirection: "desc"},
		Want:   []string{beta, alpha, delta, gamma},
	},
	{
		Name:    "overdue",
		Params:  oldestFirst(todos.QueryParams{DueDate: "overdue"}),
		Want:    []string{gamma},
		DueOnly: true,
	},
	{
		Name:    "due today",
		Params:  oldestFirst(todos.QueryParams{DueDate: "today"}),
		Want:    []string{epsilon},
		DueOnly: true,
	},
	{
		Name:    "due this week",
		Params:  oldestFirst(todos.QueryParams{DueDate: "thisWeek"}),
		Want:    []string{beta, epsilon},
		DueOnly: true,
	},
}
