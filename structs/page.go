package structs

// PagedResponse is the page envelope returned by every listing endpoint.
type PagedResponse[T any] struct {
	Data            []T    `json:"data"`
	PageNumber      int    `json:"pageNumber"`
	PageSize        int    `json:"pageSize"`
	TotalRecords    int    `json:"totalRecords"`
	TotalPages      int    `json:"totalPages"`
	NextPageURL     string `json:"nextPageUrl,omitempty"`
	PreviousPageURL string `json:"previousPageUrl,omitempty"`
}

type PageQuery struct {
	PageNumber int
	PageSize   int
}

const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
	MaxPageSize       = 100
)
