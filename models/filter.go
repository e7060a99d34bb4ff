package models

import (
	"net/url"
	"strconv"
	"strings"
)

// Pagination bounds for list queries. A limit outside [MinPageSize,
// MaxPageSize] falls back to DefaultPageSize.
const (
	DefaultPageSize = 20
	MinPageSize     = 20
	MaxPageSize     = 50
)

// Sort keys accepted by the listing endpoint. Anything else behaves like
// SortDateAdded.
const (
	SortTitle         = "title"
	SortYear          = "year"
	SortRating        = "rating"
	SortPeers         = "peers"
	SortSeeds         = "seeds"
	SortDownloadCount = "download_count"
	SortLikeCount     = "like_count"
	SortDateAdded     = "date_added"
)

var sortSafelist = map[string]bool{
	SortTitle:         true,
	SortYear:          true,
	SortRating:        true,
	SortPeers:         true,
	SortSeeds:         true,
	SortDownloadCount: true,
	SortLikeCount:     true,
	SortDateAdded:     true,
}

// QueryFilter holds the normalized filter and pagination fields of one list
// request. It is built per request and discarded after use.
type QueryFilter struct {
	Page          int
	Limit         int
	MinimumRating int
	QueryTerm     string
	Genre         string
	SortBy        string
}

// ParseQueryFilter normalizes raw query parameters into a QueryFilter.
// Malformed or out-of-range values fall back to safe defaults instead of
// being rejected: page defaults to 1, limit is clamped to the page-size
// bounds, a minimum rating outside (0, 10) disables the rating filter, and
// an unknown sort key becomes date_added.
func ParseQueryFilter(values url.Values) QueryFilter {
	f := QueryFilter{
		Page:   1,
		Limit:  DefaultPageSize,
		SortBy: SortDateAdded,
	}

	if page, err := strconv.Atoi(values.Get("page")); err == nil && page >= 1 {
		f.Page = page
	}

	if limit, err := strconv.Atoi(values.Get("limit")); err == nil && limit >= MinPageSize && limit <= MaxPageSize {
		f.Limit = limit
	}

	if rating, err := strconv.Atoi(values.Get("minimum_rating")); err == nil && rating > 0 && rating < 10 {
		f.MinimumRating = rating
	}

	f.QueryTerm = strings.TrimSpace(values.Get("query_term"))
	f.Genre = strings.TrimSpace(values.Get("genre"))

	if sort := values.Get("sort_by"); sortSafelist[sort] {
		f.SortBy = sort
	}

	return f
}

// Offset returns the number of rows to skip for the current page.
func (f QueryFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}
