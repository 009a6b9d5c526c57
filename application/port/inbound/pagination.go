package inbound

import "math"

// DefaultPageSize is the page size of every listing endpoint.
const DefaultPageSize = 15

// Paginated is the offset pagination envelope returned by list operations.
type Paginated[T any] struct {
	CurrentPage int `json:"current_page"`
	Data        []T `json:"data"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
	LastPage    int `json:"last_page"`
}

// NormalizePage clamps a 1-indexed page number and returns it with its row offset.
// Pages whose offset would overflow get math.MaxInt, which selects no rows.
func NormalizePage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage > 0 && page-1 > math.MaxInt/perPage {
		return page, math.MaxInt
	}
	return page, (page - 1) * perPage
}

func NewPaginated[T any](items []T, page, perPage, total int) *Paginated[T] {
	if items == nil {
		items = []T{}
	}
	lastPage := 1
	if total > 0 {
		lastPage = (total + perPage - 1) / perPage
	}
	return &Paginated[T]{
		CurrentPage: page,
		Data:        items,
		PerPage:     perPage,
		Total:       total,
		LastPage:    lastPage,
	}
}
