package pagination

import "travelhub/apperr"

// Page is one 1-based slice of a larger result set.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// TotalPages is ceil(n/pageSize).
func TotalPages(n, pageSize int) int {
	if pageSize < 1 {
		return 0
	}
	return (n + pageSize - 1) / pageSize
}

// Paginate returns items[(page-1)*pageSize : page*pageSize]. A page outside
// 1..TotalPages is an InvalidPage error, never an empty page. The caller owns
// the ordering of items.
func Paginate[T any](items []T, page, pageSize int) (Page[T], error) {
	total := TotalPages(len(items), pageSize)
	if pageSize < 1 || page < 1 || page > total {
		return Page[T]{}, apperr.InvalidPage(page, total)
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}

	return Page[T]{
		Items:      items[start:end],
		Page:       page,
		PageSize:   pageSize,
		TotalItems: len(items),
		TotalPages: total,
	}, nil
}

// PaginateResults is Paginate for read endpoints: page 1 of an empty set is
// an empty page. Any other page of an empty set is still InvalidPage.
func PaginateResults[T any](items []T, page, pageSize int) (Page[T], error) {
	if len(items) == 0 && page == 1 && pageSize >= 1 {
		return Page[T]{Items: []T{}, Page: 1, PageSize: pageSize}, nil
	}
	return Paginate(items, page, pageSize)
}
