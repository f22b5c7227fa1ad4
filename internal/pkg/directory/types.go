package directory

import "github.com/nowopenyyc/nowopen/app/models"

// Sort keys accepted by the query service.
const (
	SortByFirstIssued = "first_issued_date"
	SortByName        = "name"
	SortByViewCount   = "view_count"
)

// Sort directions accepted by the query service.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

const (
	// DefaultLimit is the page size used when the caller does not choose one.
	DefaultLimit = 24
	// MaxLimit caps the page size server-side to bound response size.
	MaxLimit = 500
)

// QueryOptions describes one directory query. The zero value is valid and
// means: public consumer-facing listings, newest licenses first, first page.
type QueryOptions struct {
	// Query is a case-insensitive substring match against name and address.
	Query string
	// Community, Category and LicenseType are exact-match filters.
	Community   string
	Category    string
	LicenseType string
	// IncludeNonConsumer widens results beyond consumer-facing businesses.
	IncludeNonConsumer bool
	Limit              int
	Offset             int
	SortBy             string
	SortOrder          string
}

// Result is one page of matches plus the total match count.
type Result struct {
	Items      []models.Business `json:"items"`
	TotalCount int64             `json:"total_count"`
	HasMore    bool              `json:"has_more"`
}
