package listing

import "fmt"

// DefaultPageSize is the number of rows per admin table page.
const DefaultPageSize = 5

// Page is one window of a filtered list.
type Page[T any] struct {
	Items    []T    `json:"items"`
	Page     int    `json:"page"`
	Pages    int    `json:"pages"`
	PageSize int    `json:"pageSize"`
	Total    int    `json:"total"`
	Showing  string `json:"showing"`
}

// Paginate returns page of items. Pages is ceil(len/size) and page is clamped to [1, max(pages, 1)].
func Paginate[T any](items []T, page, size int) Page[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := len(items)
	pages := (total + size - 1) / size
	if page > pages {
		page = pages
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	window := make([]T, end-start)
	copy(window, items[start:end])

	return Page[T]{
		Items:    window,
		Page:     page,
		Pages:    pages,
		PageSize: size,
		Total:    total,
		Showing:  fmt.Sprintf("Showing %d of %d", len(window), total),
	}
}
