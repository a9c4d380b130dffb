package types

// Page is the pagination envelope shared by every list endpoint in the
// backend (a serialized Spring Data page).
type Page[T any] struct {
	// Content holds the records for the current page.
	Content []T `json:"content"`

	// TotalPages is the number of pages available.
	TotalPages int `json:"totalPages"`

	// TotalElements is the number of records across all pages.
	TotalElements int64 `json:"totalElements"`

	// Size is the requested page size.
	Size int `json:"size"`

	// Number is the current page index, 0-based.
	Number int `json:"number"`

	First bool `json:"first"`
	Last  bool `json:"last"`
	Empty bool `json:"empty"`
}

// Pageable carries the common paging parameters for list requests.
type Pageable struct {
	Page int
	Size int
	Sort string
}
