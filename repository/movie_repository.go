// Package repository provides the data access layer for the movie catalog.
// Statements are assembled by the query builder and executed against the
// relational store; rows are mapped null-safely into the response shapes.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"popcorn/database"
	"popcorn/models"
)

// ErrNotFound reports a single-record lookup with no matching row. It is a
// normal client-visible outcome, not a store failure.
var ErrNotFound = errors.New("movie not found")

// MovieRepository handles read queries against the movie catalog.
type MovieRepository struct {
	db     *database.DB
	logger *slog.Logger
}

// NewMovieRepository creates a new movie repository.
func NewMovieRepository(db *database.DB, logger *slog.Logger) *MovieRepository {
	return &MovieRepository{db: db, logger: logger}
}

// List returns one page of movies matching the filter, annotated with the
// total match count of the whole query.
func (r *MovieRepository) List(ctx context.Context, f models.QueryFilter) (*models.MovieListResponse, error) {
	query, args := buildListQuery(f)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query movies: %w", err)
	}
	defer r.closeRows(rows)

	return collectListRows(rows)
}

// ByIDs returns the movies whose imdb code is in the given set, best-rated
// first. An empty set short-circuits to an empty envelope without querying.
func (r *MovieRepository) ByIDs(ctx context.Context, imdbIDs []string) (*models.MovieListResponse, error) {
	if len(imdbIDs) == 0 {
		return models.EmptyMovieListResponse(), nil
	}

	query, args := buildByIDsQuery(imdbIDs)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query movies by ids: %w", err)
	}
	defer r.closeRows(rows)

	return collectCountedRows(rows)
}

// Similar returns one page of movies similar to any of the given imdb
// codes, filtered like a listing.
func (r *MovieRepository) Similar(ctx context.Context, imdbIDs []string, f models.QueryFilter) (*models.MovieListResponse, error) {
	if len(imdbIDs) == 0 {
		return models.EmptyMovieListResponse(), nil
	}

	query, args := buildSimilarQuery(imdbIDs, f)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query similar movies: %w", err)
	}
	defer r.closeRows(rows)

	return collectCountedRows(rows)
}

// Light returns the summary of a single movie, or ErrNotFound.
func (r *MovieRepository) Light(ctx context.Context, imdbCode string) (*models.MovieSummary, error) {
	var row summaryRow
	err := r.db.QueryRowContext(ctx, lightQuery, imdbCode).Scan(
		&row.title, &row.year, &row.rating, &row.posterImage, &row.imdbCode, &row.genreNames)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get movie %s: %w", imdbCode, err)
	}

	summary := row.summary()
	return &summary, nil
}

// ByCast returns every movie featuring the cast member with the given imdb
// code. A cast member may appear in many movies; an unknown id yields an
// empty envelope, not an error.
func (r *MovieRepository) ByCast(ctx context.Context, castID string) (*models.MovieListResponse, error) {
	rows, err := r.db.QueryContext(ctx, castQuery, castID)
	if err != nil {
		return nil, fmt.Errorf("failed to query movies by cast %s: %w", castID, err)
	}
	defer r.closeRows(rows)

	return collectSummaryRows(rows)
}

const detailMovieQuery = `
SELECT movie.id, movie.url, movie.imdb_code, movie.title, movie.title_long, movie.slug,
    movie.year, movie.rating, movie.runtime, movie.language, movie.mpa_rating,
    movie.download_count, movie.like_count, movie.description_intro, movie.description_full,
    movie.yt_trailer_code, movie.date_uploaded, movie.date_uploaded_unix,
    movie.poster_image, movie.background_image
FROM movies AS movie
WHERE movie.imdb_code = $1`

const detailTorrentsQuery = `
SELECT url, hash, quality, seeds, peers, size, size_bytes, date_uploaded, date_uploaded_unix
FROM movie_torrents
WHERE movie_id = $1`

const detailCastQuery = `
SELECT name, character_name, small_image, imdb_code
FROM movie_cast
WHERE movie_id = $1`

const detailGenresQuery = `
SELECT name
FROM movie_genres
WHERE movie_id = $1`

const detailSimilarQuery = `
SELECT tmdb_id
FROM movie_similars
WHERE movie_id = $1`

// Detail returns the full record of a single movie with its torrents, cast,
// genres and similar-title ids, or ErrNotFound. The object graph is loaded
// with scoped queries combined by the movie's internal id.
func (r *MovieRepository) Detail(ctx context.Context, imdbCode string) (*models.MovieDetail, error) {
	var row detailRow
	err := r.db.QueryRowContext(ctx, detailMovieQuery, imdbCode).Scan(
		&row.movieID, &row.url, &row.imdbCode, &row.title, &row.titleLong, &row.slug,
		&row.year, &row.rating, &row.runtime, &row.language, &row.mpaRating,
		&row.downloadCount, &row.likeCount, &row.descriptionIntro, &row.descriptionFull,
		&row.ytTrailerCode, &row.dateUploaded, &row.dateUploadedUnix,
		&row.posterImage, &row.backgroundImage)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get movie %s: %w", imdbCode, err)
	}

	detail := row.detail()

	if detail.Torrents, err = r.movieTorrents(ctx, row.movieID); err != nil {
		return nil, err
	}
	if detail.Cast, err = r.movieCast(ctx, row.movieID); err != nil {
		return nil, err
	}
	if detail.Genres, err = r.movieStrings(ctx, detailGenresQuery, row.movieID); err != nil {
		return nil, err
	}
	if detail.Similar, err = r.movieStrings(ctx, detailSimilarQuery, row.movieID); err != nil {
		return nil, err
	}

	return &detail, nil
}

func (r *MovieRepository) movieTorrents(ctx context.Context, movieID int64) ([]models.TorrentRecord, error) {
	rows, err := r.db.QueryContext(ctx, detailTorrentsQuery, movieID)
	if err != nil {
		return nil, fmt.Errorf("failed to query torrents: %w", err)
	}
	defer r.closeRows(rows)

	torrents := []models.TorrentRecord{}
	for rows.Next() {
		var t torrentRow
		err := rows.Scan(&t.url, &t.hash, &t.quality, &t.seeds, &t.peers,
			&t.size, &t.sizeBytes, &t.dateUploaded, &t.dateUploadedUnix)
		if err != nil {
			return nil, fmt.Errorf("failed to scan torrent row: %w", err)
		}
		torrents = append(torrents, t.torrent())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over rows: %w", err)
	}
	return torrents, nil
}

func (r *MovieRepository) movieCast(ctx context.Context, movieID int64) ([]models.CastRecord, error) {
	rows, err := r.db.QueryContext(ctx, detailCastQuery, movieID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cast: %w", err)
	}
	defer r.closeRows(rows)

	cast := []models.CastRecord{}
	for rows.Next() {
		var c castRow
		if err := rows.Scan(&c.name, &c.characterName, &c.smallImage, &c.imdbCode); err != nil {
			return nil, fmt.Errorf("failed to scan cast row: %w", err)
		}
		cast = append(cast, c.castMember())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over rows: %w", err)
	}
	return cast, nil
}

// movieStrings runs a single-column query scoped to a movie and collects
// the non-null values.
func (r *MovieRepository) movieStrings(ctx context.Context, query string, movieID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, movieID)
	if err != nil {
		return nil, fmt.Errorf("failed to query movie %d: %w", movieID, err)
	}
	defer r.closeRows(rows)

	values := []string{}
	for rows.Next() {
		var value sql.NullString
		if err := rows.Scan(&value); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		if value.Valid {
			values = append(values, value.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over rows: %w", err)
	}
	return values, nil
}

func (r *MovieRepository) closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		r.logger.Warn("failed to close rows", "error", err)
	}
}
