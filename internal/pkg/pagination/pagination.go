package pagination

import (
	"math"
	"strconv"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Pagination represents pagination metadata
type Pagination struct {
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
	HasNext bool  `json:"hasNext"`
	HasPrev bool  `json:"hasPrev"`
	Offset  int   `json:"-"`
}

// Request is a page request parsed from query parameters
type Request struct {
	Page  int
	Limit int
}

// New creates a new pagination instance
func New(page, limit int, total int64) *Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	pages := int(math.Ceil(float64(total) / float64(limit)))
	if pages < 1 {
		pages = 1
	}
	// Anything past the last page is the same empty page.
	if page > pages+1 {
		page = pages + 1
	}

	return &Pagination{
		Page:    page,
		Limit:   limit,
		Total:   total,
		Pages:   pages,
		HasNext: page < pages,
		HasPrev: page > 1,
		Offset:  (page - 1) * limit,
	}
}

// FromQuery parses page and page size strings. It returns nil when neither
// is supplied, meaning the caller wants the whole result. Malformed values
// fall back to the defaults instead of failing.
func FromQuery(pageStr, limitStr string) *Request {
	if pageStr == "" && limitStr == "" {
		return nil
	}

	page, _ := strconv.Atoi(pageStr)
	limit, _ := strconv.Atoi(limitStr)

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return &Request{Page: page, Limit: limit}
}

// Bounds returns the half-open index range of the current page within a
// result of p.Total items. Pages past the end yield an empty range.
func (p *Pagination) Bounds() (start, end int) {
	total := int(p.Total)
	start = p.Offset
	if start < 0 {
		start = 0
	}
	if start > total {
		start = total
	}
	end = start + p.Limit
	if end > total {
		end = total
	}
	return start, end
}

// Window returns the slice of items on the requested page.
func Window[T any](items []T, req *Request) ([]T, *Pagination) {
	if req == nil {
		return items, nil
	}
	p := New(req.Page, req.Limit, int64(len(items)))
	start, end := p.Bounds()
	return items[start:end], p
}
