package viewmodel

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/noah-isme/cemetery-console/internal/models"
)

// DefaultPageSize matches the tables of the console.
const DefaultPageSize = 6

// Normalize folds case and strips diacritics so "José" and "jose" compare equal.
func Normalize(s string) string {
	// transformers keep state, build one per call
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// Matches reports whether the normalized query is a substring of any field.
// An empty query matches everything.
func Matches(query string, fields ...string) bool {
	q := Normalize(query)
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(Normalize(f), q) {
			return true
		}
	}
	return false
}

// Filter keeps the items accepted by keep, preserving order.
func Filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// Page is one window of a list.
type Page[T any] struct {
	Items      []T
	Page       int
	PageSize   int
	Total      int
	TotalPages int
}

// HasPrev reports whether a previous page exists.
func (p Page[T]) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a next page exists.
func (p Page[T]) HasNext() bool { return p.Page < p.TotalPages }

// PrevPage returns the previous page number.
func (p Page[T]) PrevPage() int { return p.Page - 1 }

// NextPage returns the next page number.
func (p Page[T]) NextPage() int { return p.Page + 1 }

// Pagination converts the page into the JSON API metadata.
func (p Page[T]) Pagination() *models.Pagination {
	return &models.Pagination{
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalCount: p.Total,
		TotalPages: p.TotalPages,
	}
}

// Paginate slices items for the requested page, clamping page into range.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := len(items)
	totalPages := (total + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * size
	end := start + size
	if end > total {
		end = total
	}

	return Page[T]{
		Items:      items[start:end],
		Page:       page,
		PageSize:   size,
		Total:      total,
		TotalPages: totalPages,
	}
}
