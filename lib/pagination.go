package lib

import "maroon_shop/structs"

// PageLink builds the URL of another page of the same listing.
type PageLink func(pageNumber, pageSize int) string

// TotalPages is ceil(totalRecords / pageSize).
func TotalPages(totalRecords, pageSize int) (int, error) {
	if pageSize < 1 {
		return 0, ErrInvalidPageSize
	}
	return (totalRecords + pageSize - 1) / pageSize, nil
}

// NewPage wraps one page of data in the listing envelope. Links are only set when
// the neighbouring page exists and link is non-nil.
func NewPage[T any](data []T, pageNumber, pageSize, totalRecords int, link PageLink) (*structs.PagedResponse[T], error) {
	totalPages, err := TotalPages(totalRecords, pageSize)
	if err != nil {
		return nil, err
	}
	if pageNumber < 1 {
		return nil, ErrInvalidPageNumber
	}
	if data == nil {
		data = []T{}
	}

	page := &structs.PagedResponse[T]{
		Data:         data,
		PageNumber:   pageNumber,
		PageSize:     pageSize,
		TotalRecords: totalRecords,
		TotalPages:   totalPages,
	}

	if link != nil {
		if pageNumber < totalPages {
			page.NextPageURL = link(pageNumber+1, pageSize)
		}
		if pageNumber > 1 {
			page.PreviousPageURL = link(pageNumber-1, pageSize)
		}
	}

	return page, nil
}

// MapPage converts the rows of a page with fn, keeping the envelope.
func MapPage[T, R any](rows []T, fn func(*T) R) []R {
	out := make([]R, 0, len(rows))
	for i := range rows {
		out = append(out, fn(&rows[i]))
	}
	return out
}
