package repository

import (
	"strconv"
	"strings"

	"popcorn/models"
)

// builder assembles one parameterized SQL statement from a base template
// plus conditionally appended fragments. Caller-supplied values are bound as
// typed parameters through bind; they are never concatenated into the SQL
// text.
type builder struct {
	sql  strings.Builder
	args []any
}

func newBuilder(base string) *builder {
	b := &builder{}
	b.sql.WriteString(base)
	return b
}

func (b *builder) write(fragment string) {
	b.sql.WriteString(fragment)
}

// bind appends value to the argument list and returns its positional
// placeholder. The returned placeholder may be referenced more than once.
func (b *builder) bind(value any) string {
	b.args = append(b.args, value)
	return "$" + strconv.Itoa(len(b.args))
}

// bindList binds each value separately and returns the comma-joined
// placeholders, one per value.
func (b *builder) bindList(values []string) string {
	placeholders := make([]string, len(values))
	for i, v := range values {
		placeholders[i] = b.bind(v)
	}
	return strings.Join(placeholders, ", ")
}

func (b *builder) statement() (string, []any) {
	return b.sql.String(), b.args
}

// ftsMatch renders a phrase full-text predicate over column against an
// already-bound parameter. websearch_to_tsquery treats a double-quoted term
// as an exact phrase, which is why query terms are quoted before binding.
func ftsMatch(column, placeholder string) string {
	return "to_tsvector('simple', " + column + ") @@ websearch_to_tsquery('simple', " + placeholder + ")"
}

// quotePhrase wraps a search term in double quotes so the full-text engine
// matches it as an exact phrase rather than independent words.
func quotePhrase(term string) string {
	return `"` + term + `"`
}

var sortClauses = map[string]string{
	models.SortTitle:         "movie.title ASC",
	models.SortYear:          "movie.year DESC",
	models.SortRating:        "movie.rating DESC",
	models.SortPeers:         "torrent.peers DESC",
	models.SortSeeds:         "torrent.seeds DESC",
	models.SortDownloadCount: "movie.download_count DESC",
	models.SortLikeCount:     "movie.like_count DESC",
	models.SortDateAdded:     "movie.date_uploaded_unix DESC",
}

// sortClause maps a sort key to its ORDER BY clause. Keys outside the
// safelist sort by upload date, newest first.
func sortClause(key string) string {
	if clause, ok := sortClauses[key]; ok {
		return clause
	}
	return sortClauses[models.SortDateAdded]
}

const listBase = `
SELECT DISTINCT
    movie.title, movie.year, movie.rating, movie.poster_image, movie.imdb_code,
    movie.genre_names, torrent.peers, torrent.seeds, COUNT(*) OVER () AS total_count,
    movie.date_uploaded_unix, movie.id, movie.download_count, movie.like_count
FROM movies AS movie
CROSS JOIN LATERAL (
    SELECT t.peers, t.seeds
    FROM movie_torrents AS t
    WHERE t.movie_id = movie.id AND t.url IS NOT NULL AND t.url <> ''
    LIMIT 1
) AS torrent
INNER JOIN movie_cast AS actor ON actor.movie_id = movie.id
WHERE 1 = 1`

const listGroupBy = `
GROUP BY movie.id, movie.title, movie.year, movie.rating, movie.poster_image,
    movie.imdb_code, movie.genre_names, torrent.peers, torrent.seeds,
    movie.date_uploaded_unix, movie.download_count, movie.like_count`

// buildListQuery assembles the paged, filterable listing statement. Each
// predicate is appended only when its trigger holds: the rating filter for
// ratings strictly between 0 and 10, the phrase search over title, cast
// name and both imdb codes for a non-blank query term, and the genre
// full-text match for a non-blank genre.
func buildListQuery(f models.QueryFilter) (string, []any) {
	b := newBuilder(listBase)

	if f.MinimumRating > 0 && f.MinimumRating < 10 {
		b.write(" AND movie.rating >= " + b.bind(f.MinimumRating))
	}

	if f.QueryTerm != "" {
		phrase := b.bind(quotePhrase(f.QueryTerm))
		b.write(" AND (" + ftsMatch("movie.title", phrase) +
			" OR " + ftsMatch("actor.name", phrase) +
			" OR " + ftsMatch("movie.imdb_code", phrase) +
			" OR " + ftsMatch("actor.imdb_code", phrase) + ")")
	}

	if f.Genre != "" {
		b.write(" AND " + ftsMatch("movie.genre_names", b.bind(f.Genre)))
	}

	b.write(listGroupBy)
	b.write(" ORDER BY " + sortClause(f.SortBy))
	b.write(" OFFSET " + b.bind(f.Offset()) + " ROWS FETCH NEXT " + b.bind(f.Limit) + " ROWS ONLY")

	return b.statement()
}

const idsBase = `
SELECT DISTINCT
    movie.title, movie.year, movie.rating, movie.poster_image, movie.imdb_code,
    movie.genre_names, COUNT(*) OVER () AS total_count
FROM movies AS movie
WHERE movie.imdb_code IN (`

// buildByIDsQuery assembles the batch lookup for a non-empty id set, one
// placeholder per id, best-rated first, unpaginated.
func buildByIDsQuery(imdbIDs []string) (string, []any) {
	b := newBuilder(idsBase)
	b.write(b.bindList(imdbIDs))
	b.write(")")
	b.write(" ORDER BY movie.rating DESC")
	return b.statement()
}

const similarBase = `
SELECT DISTINCT
    movie.title, movie.year, movie.rating, movie.poster_image, movie.imdb_code,
    movie.genre_names, COUNT(*) OVER () AS total_count
FROM movies AS movie
WHERE movie.imdb_code IN (
    SELECT similar.tmdb_id
    FROM movie_similars AS similar
    INNER JOIN (
        SELECT m.id
        FROM movies AS m
        WHERE m.imdb_code IN (`

const similarBaseTail = `)
    ) AS source ON similar.movie_id = source.id
)
AND 1 = 1`

// buildSimilarQuery assembles the similarity listing: the membership clause
// resolves the input imdb codes to internal ids, joins the similarity table
// and filters the outer listing by the resulting external ids. The text
// search here deliberately covers only title and movie imdb code, not cast.
func buildSimilarQuery(imdbIDs []string, f models.QueryFilter) (string, []any) {
	b := newBuilder(similarBase)
	b.write(b.bindList(imdbIDs))
	b.write(similarBaseTail)

	if f.MinimumRating > 0 && f.MinimumRating < 10 {
		b.write(" AND movie.rating >= " + b.bind(f.MinimumRating))
	}

	if f.QueryTerm != "" {
		phrase := b.bind(quotePhrase(f.QueryTerm))
		b.write(" AND (" + ftsMatch("movie.title", phrase) +
			" OR " + ftsMatch("movie.imdb_code", phrase) + ")")
	}

	if f.Genre != "" {
		b.write(" AND " + ftsMatch("movie.genre_names", b.bind(f.Genre)))
	}

	b.write(" ORDER BY movie.rating DESC")
	b.write(" OFFSET " + b.bind(f.Offset()) + " ROWS FETCH NEXT " + b.bind(f.Limit) + " ROWS ONLY")

	return b.statement()
}

const lightQuery = `
SELECT movie.title, movie.year, movie.rating, movie.poster_image, movie.imdb_code, movie.genre_names
FROM movies AS movie
WHERE movie.imdb_code = $1`

const castQuery = `
SELECT movie.title, movie.year, movie.rating, movie.poster_image, movie.imdb_code, movie.genre_names
FROM movies AS movie
INNER JOIN movie_cast AS actor ON actor.movie_id = movie.id
WHERE actor.imdb_code = $1`
