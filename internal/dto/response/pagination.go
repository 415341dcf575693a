package response

import "library-seats/pkg/utils"

type PaginatedResponse[T any] struct {
	Items      []T            `json:"items"`
	Pagination PaginationMeta `json:"pagination"`
}

// PaginationMeta
type PaginationMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalPages int   `json:"total_pages"`
}

func NewPaginatedResponse[T any](items []T, page, perPage int, total int64) *PaginatedResponse[T] {
	if items == nil {
		items = []T{}
	}

	return &PaginatedResponse[T]{
		Items: items,
		Pagination: PaginationMeta{
			Page:       page,
			PerPage:    perPage,
			Total:      total,
			TotalPages: utils.CalculateTotalPages(total, perPage),
		},
	}
}

// Paginate cuts one page out of an already ordered slice. Pages past the
// end are empty.
func Paginate[T any](all []T, page, perPage int) *PaginatedResponse[T] {
	page = max(page, 1)
	perPage = max(perPage, 1)

	// compare before multiplying so a huge page number cannot overflow
	offset := len(all)
	if page-1 < len(all)/perPage+1 {
		offset = (page - 1) * perPage
	}

	start, end := utils.PageBounds(len(all), offset, perPage)
	return NewPaginatedResponse(all[start:end], page, perPage, int64(len(all)))
}
