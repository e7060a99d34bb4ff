package models

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQueryFilter_Defaults(t *testing.T) {
	f := ParseQueryFilter(url.Values{})

	assert.Equal(t, 1, f.Page)
	assert.Equal(t, DefaultPageSize, f.Limit)
	assert.Equal(t, 0, f.MinimumRating)
	assert.Empty(t, f.QueryTerm)
	assert.Empty(t, f.Genre)
	assert.Equal(t, SortDateAdded, f.SortBy)
}

func TestParseQueryFilter_Limit(t *testing.T) {
	tests := []struct {
		name  string
		limit string
		want  int
	}{
		{"below minimum", "10", DefaultPageSize},
		{"at minimum", "20", 20},
		{"in range", "35", 35},
		{"at maximum", "50", 50},
		{"above maximum", "100", DefaultPageSize},
		{"not a number", "abc", DefaultPageSize},
		{"missing", "", DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := ParseQueryFilter(url.Values{"limit": {tt.limit}})
			assert.Equal(t, tt.want, f.Limit)
		})
	}
}

func TestParseQueryFilter_MinimumRating(t *testing.T) {
	tests := []struct {
		name   string
		rating string
		want   int
	}{
		{"zero disables", "0", 0},
		{"ten disables", "10", 0},
		{"negative disables", "-3", 0},
		{"in range", "7", 7},
		{"leading zero normalizes", "07", 7},
		{"not a number", "high", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := ParseQueryFilter(url.Values{"minimum_rating": {tt.rating}})
			assert.Equal(t, tt.want, f.MinimumRating)
		})
	}
}

func TestParseQueryFilter_SortSafelist(t *testing.T) {
	for _, sort := range []string{
		SortTitle, SortYear, SortRating, SortPeers, SortSeeds,
		SortDownloadCount, SortLikeCount, SortDateAdded,
	} {
		f := ParseQueryFilter(url.Values{"sort_by": {sort}})
		assert.Equal(t, sort, f.SortBy)
	}

	f := ParseQueryFilter(url.Values{"sort_by": {"popularity"}})
	assert.Equal(t, SortDateAdded, f.SortBy)
}

func TestParseQueryFilter_TrimsTerms(t *testing.T) {
	f := ParseQueryFilter(url.Values{
		"query_term": {"  inception  "},
		"genre":      {" \t "},
	})

	assert.Equal(t, "inception", f.QueryTerm)
	assert.Empty(t, f.Genre)
}

func TestQueryFilter_Offset(t *testing.T) {
	tests := []struct {
		page, limit, want int
	}{
		{1, 20, 0},
		{2, 20, 20},
		{3, 50, 100},
		{10, 35, 315},
	}

	for _, tt := range tests {
		f := QueryFilter{Page: tt.page, Limit: tt.limit}
		assert.Equal(t, tt.want, f.Offset())
	}
}

func TestParseQueryFilter_InvalidPageDefaultsToFirst(t *testing.T) {
	for _, page := range []string{"0", "-1", "first", ""} {
		f := ParseQueryFilter(url.Values{"page": {page}})
		assert.Equal(t, 1, f.Page)
	}
}
