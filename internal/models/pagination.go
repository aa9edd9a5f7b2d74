package models

// Pagination describes the slice of a filtered collection returned to the UI.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
