package repository

import (
	"fmt"
	"strings"
	"testing"

	"popcorn/models"

	"github.com/stretchr/testify/assert"
)

func listFilter() models.QueryFilter {
	return models.QueryFilter{
		Page:   1,
		Limit:  20,
		SortBy: models.SortDateAdded,
	}
}

// placeholdersMatchArgs checks that the highest placeholder referenced in
// the statement equals the number of bound arguments.
func placeholdersMatchArgs(t *testing.T, query string, args []any) {
	t.Helper()
	for i := range args {
		assert.Contains(t, query, fmt.Sprintf("$%d", i+1))
	}
	assert.NotContains(t, query, fmt.Sprintf("$%d", len(args)+1))
}

func TestBuildListQuery_Defaults(t *testing.T) {
	query, args := buildListQuery(listFilter())

	assert.Contains(t, query, "COUNT(*) OVER ()")
	assert.Contains(t, query, "CROSS JOIN LATERAL")
	assert.Contains(t, query, "GROUP BY movie.id")
	assert.Contains(t, query, "ORDER BY movie.date_uploaded_unix DESC")
	assert.Contains(t, query, "OFFSET $1 ROWS FETCH NEXT $2 ROWS ONLY")

	assert.NotContains(t, query, "movie.rating >=")
	assert.NotContains(t, query, "websearch_to_tsquery")

	assert.Equal(t, []any{0, 20}, args)
	placeholdersMatchArgs(t, query, args)
}

func TestBuildListQuery_Pagination(t *testing.T) {
	f := listFilter()
	f.Page = 3
	f.Limit = 50

	_, args := buildListQuery(f)

	// OFFSET = (page-1)*limit, FETCH = limit, both bound as parameters.
	assert.Equal(t, []any{100, 50}, args)
}

func TestBuildListQuery_RatingPredicate(t *testing.T) {
	tests := []struct {
		rating  int
		applied bool
	}{
		{0, false},
		{1, true},
		{7, true},
		{9, true},
		{10, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("rating=%d", tt.rating), func(t *testing.T) {
			f := listFilter()
			f.MinimumRating = tt.rating

			query, args := buildListQuery(f)

			if tt.applied {
				assert.Contains(t, query, "movie.rating >= $1")
				assert.Equal(t, []any{tt.rating, 0, 20}, args)
			} else {
				assert.NotContains(t, query, "movie.rating >=")
				assert.Equal(t, []any{0, 20}, args)
			}
			placeholdersMatchArgs(t, query, args)
		})
	}
}

func TestBuildListQuery_QueryTermPredicate(t *testing.T) {
	f := listFilter()
	f.QueryTerm = "dark knight"

	query, args := buildListQuery(f)

	// One bound phrase parameter referenced by all four full-text targets.
	assert.Contains(t, query, "to_tsvector('simple', movie.title) @@ websearch_to_tsquery('simple', $1)")
	assert.Contains(t, query, "to_tsvector('simple', actor.name) @@ websearch_to_tsquery('simple', $1)")
	assert.Contains(t, query, "to_tsvector('simple', movie.imdb_code) @@ websearch_to_tsquery('simple', $1)")
	assert.Contains(t, query, "to_tsvector('simple', actor.imdb_code) @@ websearch_to_tsquery('simple', $1)")

	// The term is quoted for an exact-phrase match and never appears in the
	// SQL text itself.
	assert.Equal(t, []any{`"dark knight"`, 0, 20}, args)
	assert.NotContains(t, query, "dark knight")
}

func TestBuildListQuery_GenrePredicate(t *testing.T) {
	f := listFilter()
	f.Genre = "sci-fi"

	query, args := buildListQuery(f)

	assert.Contains(t, query, "to_tsvector('simple', movie.genre_names) @@ websearch_to_tsquery('simple', $1)")
	assert.Equal(t, []any{"sci-fi", 0, 20}, args)
	assert.NotContains(t, query, "sci-fi")
}

func TestBuildListQuery_AllPredicates(t *testing.T) {
	f := listFilter()
	f.MinimumRating = 7
	f.QueryTerm = "nolan"
	f.Genre = "thriller"
	f.Page = 2
	f.SortBy = models.SortRating

	query, args := buildListQuery(f)

	assert.Contains(t, query, "ORDER BY movie.rating DESC")
	assert.Equal(t, []any{7, `"nolan"`, "thriller", 20, 20}, args)
	placeholdersMatchArgs(t, query, args)
}

func TestSortClause(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{models.SortTitle, "movie.title ASC"},
		{models.SortYear, "movie.year DESC"},
		{models.SortRating, "movie.rating DESC"},
		{models.SortPeers, "torrent.peers DESC"},
		{models.SortSeeds, "torrent.seeds DESC"},
		{models.SortDownloadCount, "movie.download_count DESC"},
		{models.SortLikeCount, "movie.like_count DESC"},
		{models.SortDateAdded, "movie.date_uploaded_unix DESC"},
		{"", "movie.date_uploaded_unix DESC"},
		{"popularity", "movie.date_uploaded_unix DESC"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, sortClause(tt.key))
	}
}

func TestBuildByIDsQuery(t *testing.T) {
	query, args := buildByIDsQuery([]string{"tt1", "tt2", "tt3"})

	// One placeholder per id, never a joined literal.
	assert.Contains(t, query, "movie.imdb_code IN ($1, $2, $3)")
	assert.Contains(t, query, "ORDER BY movie.rating DESC")
	assert.NotContains(t, query, "OFFSET")
	assert.Equal(t, []any{"tt1", "tt2", "tt3"}, args)
}

func TestBuildSimilarQuery(t *testing.T) {
	f := listFilter()
	f.MinimumRating = 6
	f.QueryTerm = "space"

	query, args := buildSimilarQuery([]string{"tt0816692", "tt0062622"}, f)

	assert.Contains(t, query, "SELECT similar.tmdb_id")
	assert.Contains(t, query, "m.imdb_code IN ($1, $2)")
	assert.Contains(t, query, "ON similar.movie_id = source.id")
	assert.Contains(t, query, "ORDER BY movie.rating DESC")
	assert.Contains(t, query, "OFFSET $5 ROWS FETCH NEXT $6 ROWS ONLY")

	// The similarity text search covers title and movie imdb code only.
	assert.NotContains(t, query, "actor.name")

	assert.Equal(t, []any{"tt0816692", "tt0062622", 6, `"space"`, 0, 20}, args)
	placeholdersMatchArgs(t, query, args)
}

func TestBuilder_BindNeverInlinesValues(t *testing.T) {
	f := listFilter()
	f.QueryTerm = "'; DROP TABLE movies; --"
	f.Genre = "horror'--"

	query, _ := buildListQuery(f)

	assert.NotContains(t, query, "DROP TABLE")
	assert.NotContains(t, query, "horror'--")
	assert.False(t, strings.Contains(query, f.QueryTerm))
}
