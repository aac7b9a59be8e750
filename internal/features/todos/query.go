package todos

import (
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortField names the attribute a list is ordered by.
type SortField string

const (
	SortByTitle     SortField = "title"
	SortByPriority  SortField = "priority"
	SortByDueDate   SortField = "dueDate"
	SortByCreatedAt SortField = "createdAt"
	SortByUpdatedAt SortField = "updatedAt"
)

// ParseSortField matches a field name case-insensitively.
func ParseSortField(s string) (SortField, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "title":
		return SortByTitle, true
	case "priority":
		return SortByPriority, true
	case "duedate":
		return SortByDueDate, true
	case "createdat":
		return SortByCreatedAt, true
	case "updatedat":
		return SortByUpdatedAt, true
	default:
		return "", false
	}
}

type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

func ParseSortDirection(s string) (SortDirection, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc":
		return Ascending, true
	case "desc":
		return Descending, true
	default:
		return "", false
	}
}

// DueBucket narrows a list by due date relative to the evaluation time.
// Only clients apply it; the server ignores it.
type DueBucket string

const (
	DueAny      DueBucket = ""
	DueToday    DueBucket = "today"
	DueThisWeek DueBucket = "thisWeek"
	DueOverdue  DueBucket = "overdue"
)

// ParseDueBucket returns DueAny for "all" and unknown tokens.
func ParseDueBucket(s string) DueBucket {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "today":
		return DueToday
	case "thisweek":
		return DueThisWeek
	case "overdue":
		return DueOverdue
	default:
		return DueAny
	}
}

// Query selects and orders todos. The zero value matches everything and
// orders by createdAt ascending. Filters combine with AND.
type Query struct {
	Status    *Status
	Priority  *Priority
	Search    string
	Due       DueBucket
	SortBy    SortField
	Direction SortDirection
}

// QueryParams are the raw list parameters as they arrive on the wire.
type QueryParams struct {
	Status        string `form:"status"`
	Priority      string `form:"priority"`
	Search        string `form:"search"`
	DueDate       string `form:"dueDate"`
	SortBy        string `form:"sortBy"`
	SortDirection string `form:"sortDirection"`
}

// ParseQuery turns raw parameters into a Query without ever failing.
// Unknown tokens degrade to "no filter". When no usable sort field and no
// usable direction are given the order is newest first; otherwise the
// direction defaults to ascending and the field to createdAt.
func ParseQuery(p QueryParams) Query {
	q := Query{
		Search: p.Search,
		Due:    ParseDueBucket(p.DueDate),
	}
	if s, ok := ParseStatus(p.Status); ok {
		q.Status = &s
	}
	if pr, ok := ParsePriority(p.Priority); ok {
		q.Priority = &pr
	}

	field, fieldOK := ParseSortField(p.SortBy)
	dir, dirOK := ParseSortDirection(p.SortDirection)
	switch {
	case !fieldOK && !dirOK:
		q.SortBy, q.Direction = SortByCreatedAt, Descending
	case !fieldOK:
		q.SortBy, q.Direction = SortByCreatedAt, dir
	case !dirOK:
		q.SortBy, q.Direction = field, Ascending
	default:
		q.SortBy, q.Direction = field, dir
	}
	return q
}

// Field returns the effective sort field.
func (q Query) Field() SortField {
	if f, ok := ParseSortField(string(q.SortBy)); ok {
		return f
	}
	return SortByCreatedAt
}

// Descending reports whether the effective direction is descending.
func (q Query) Descending() bool {
	return q.Direction == Descending
}

// HasSearch reports whether the search term filters anything.
func (q Query) HasSearch() bool {
	return strings.TrimSpace(q.Search) != ""
}

// Matches reports whether t passes every filter in q.
func (q Query) Matches(t *Todo, now time.Time) bool {
	if q.Status != nil && t.Status != *q.Status {
		return false
	}
	if q.Priority != nil && t.Priority != *q.Priority {
		return false
	}
	if q.HasSearch() {
		term := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(t.Title), term) &&
			!strings.Contains(strings.ToLower(t.Description), term) {
			return false
		}
	}
	switch q.Due {
	case DueToday:
		return t.IsDueToday(now)
	case DueThisWeek:
		return t.IsDueThisWeek(now)
	case DueOverdue:
		return t.IsOverdue(now)
	}
	return true
}

// Filter returns the todos matching q in their input order.
func Filter(todos []Todo, q Query, now time.Time) []Todo {
	out := make([]Todo, 0, len(todos))
	for i := range todos {
		if q.Matches(&todos[i], now) {
			out = append(out, todos[i])
		}
	}
	return out
}

// Sort returns a stably ordered copy of todos. Todos without a due date
// trail the rest under a dueDate sort in either direction.
func Sort(todos []Todo, q Query) []Todo {
	out := slices.Clone(todos)
	field := q.Field()
	desc := q.Descending()
	coll := collate.New(language.English, collate.IgnoreCase)

	slices.SortStableFunc(out, func(a, b Todo) int {
		if field == SortByDueDate {
			switch {
			case a.DueDate == nil && b.DueDate == nil:
				return 0
			case a.DueDate == nil:
				return 1
			case b.DueDate == nil:
				return -1
			}
		}
		c := compareBy(&a, &b, field, coll)
		if desc {
			return -c
		}
		return c
	})
	return out
}

// Apply filters then sorts.
func Apply(todos []Todo, q Query, now time.Time) []Todo {
	return Sort(Filter(todos, q, now), q)
}

func compareBy(a, b *Todo, field SortField, coll *collate.Collator) int {
	switch field {
	case SortByTitle:
		return coll.CompareString(a.Title, b.Title)
	case SortByPriority:
		return a.Priority.Rank() - b.Priority.Rank()
	case SortByDueDate:
		return a.DueDate.Compare(*b.DueDate)
	case SortByUpdatedAt:
		return a.UpdatedAt.Compare(b.UpdatedAt)
	default:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}
