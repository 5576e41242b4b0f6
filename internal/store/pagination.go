package store

import (
	"fmt"

	domainerrors "github.com/tagdesk/tagdesk-server/internal/errors"
)

// Pagination defaults and limits.
const (
	DefaultPage        = 1
	DefaultRowsPerPage = 10
	MaxRowsPerPage     = 1000
)

// PaginationParams contains page-number pagination request parameters.
type PaginationParams struct {
	Page        int // 1-based page number
	RowsPerPage int // Page size (defaults to 10 with a maximum of 1000)
}

// DefaultPaginationParams returns the first page at the default size.
func DefaultPaginationParams() PaginationParams {
	return PaginationParams{
		Page:        DefaultPage,
		RowsPerPage: DefaultRowsPerPage,
	}
}

// Validate rejects non-positive values and oversized pages.
func (p PaginationParams) Validate() error {
	if p.Page < 1 {
		return domainerrors.ValidationWithDetails("page must be at least 1", map[string]string{"page": fmt.Sprint(p.Page)})
	}
	if p.RowsPerPage < 1 {
		return domainerrors.ValidationWithDetails("rowsPerPage must be at least 1", map[string]string{"rowsPerPage": fmt.Sprint(p.RowsPerPage)})
	}
	if p.RowsPerPage > MaxRowsPerPage {
		return domainerrors.ValidationWithDetails(
			fmt.Sprintf("rowsPerPage must be at most %d", MaxRowsPerPage),
			map[string]string{"rowsPerPage": fmt.Sprint(p.RowsPerPage)},
		)
	}
	return nil
}

// Window is one page cut from an ordered slice.
type Window[T any] struct {
	Items []T // The rows of the selected page
	Page  int // Selected page after clamping
	Pages int // Total page count, never below 1
	Total int // Row count before slicing
	Prev  *int
	Next  *int
}

// Paginate cuts the requested page out of items.
// rowsPerPage must be positive. A page outside [1, Pages] is clamped into range.
func Paginate[T any](items []T, page, rowsPerPage int) Window[T] {
	total := len(items)

	pages := (total + rowsPerPage - 1) / rowsPerPage
	if pages < 1 {
		pages = 1
	}

	page = min(max(page, 1), pages)

	start := min((page-1)*rowsPerPage, total)
	end := min(start+rowsPerPage, total)

	w := Window[T]{
		Items: make([]T, end-start),
		Page:  page,
		Pages: pages,
		Total: total,
	}
	copy(w.Items, items[start:end])

	if page > 1 {
		prev := page - 1
		w.Prev = &prev
	}
	if page < pages {
		next := page + 1
		w.Next = &next
	}
	return w
}
