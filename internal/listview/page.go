package listview

import (
	"strings"

	"github.com/tims-dev/tims-admin-bff/internal/models"
)

// Fields extracts the display fields a search query matches against.
type Fields[T any] func(item T) []string

// Filter keeps items whose display fields contain the query, matched
// case-insensitively. An empty query keeps everything.
func Filter[T any](items []T, query string, fields Fields[T]) []T {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return items
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		for _, field := range fields(item) {
			if strings.Contains(strings.ToLower(field), query) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// Paginate slices the filtered collection by page index and page size, both
// user-adjustable. Out-of-range pages yield an empty slice, never an error.
func Paginate[T any](items []T, page, size int) ([]T, *models.Pagination) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = 10
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: len(items)}

	start := (page - 1) * size
	if start >= len(items) {
		return []T{}, pagination
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], pagination
}
