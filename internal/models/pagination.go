package models

// Pagination describes a page of a list response.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}

// EntityFilter narrows entity listings. Zero values mean "no constraint".
type EntityFilter struct {
	Search     string
	DistrictID string
	SchoolID   string
	Status     string
	Grade      int
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}
