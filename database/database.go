// Package database provides database connectivity and schema management for
// the movie catalog.
package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // Import pgx stdlib driver
)

// DB wraps the SQL database connection
type DB struct {
	*sql.DB
}

// NewDB opens a pooled connection to the catalog store. Each request runs on
// its own pooled connection; the pool limits keep the server well below the
// store's client cap.
func NewDB(dsn string) (*DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &DB{db}, nil
}

// InitSchema creates the catalog tables and the indexes backing the query
// paths: btree on the external identifiers and GIN expression indexes for
// the full-text predicates.
func (db *DB) InitSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS movies (
		id BIGSERIAL PRIMARY KEY,
		imdb_code TEXT NOT NULL,
		url TEXT,
		title TEXT,
		title_long TEXT,
		slug TEXT,
		year INTEGER,
		rating DOUBLE PRECISION,
		runtime INTEGER,
		genre_names TEXT,
		language TEXT,
		mpa_rating TEXT,
		download_count INTEGER,
		like_count INTEGER,
		description_intro TEXT,
		description_full TEXT,
		yt_trailer_code TEXT,
		poster_image TEXT,
		background_image TEXT,
		date_uploaded TEXT,
		date_uploaded_unix BIGINT
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_movies_imdb_code ON movies(imdb_code);
	CREATE INDEX IF NOT EXISTS idx_movies_rating ON movies(rating);
	CREATE INDEX IF NOT EXISTS idx_movies_date_uploaded_unix ON movies(date_uploaded_unix);
	CREATE INDEX IF NOT EXISTS idx_movies_title_fts
		ON movies USING GIN (to_tsvector('simple', title));
	CREATE INDEX IF NOT EXISTS idx_movies_genre_names_fts
		ON movies USING GIN (to_tsvector('simple', genre_names));

	CREATE TABLE IF NOT EXISTS movie_torrents (
		id BIGSERIAL PRIMARY KEY,
		movie_id BIGINT NOT NULL REFERENCES movies (id) ON DELETE CASCADE,
		url TEXT,
		hash TEXT,
		quality TEXT,
		seeds INTEGER,
		peers INTEGER,
		size TEXT,
		size_bytes BIGINT,
		date_uploaded TEXT,
		date_uploaded_unix BIGINT
	);

	CREATE INDEX IF NOT EXISTS idx_movie_torrents_movie_id ON movie_torrents(movie_id);

	CREATE TABLE IF NOT EXISTS movie_cast (
		id BIGSERIAL PRIMARY KEY,
		movie_id BIGINT NOT NULL REFERENCES movies (id) ON DELETE CASCADE,
		name TEXT,
		character_name TEXT,
		small_image TEXT,
		imdb_code TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_movie_cast_movie_id ON movie_cast(movie_id);
	CREATE INDEX IF NOT EXISTS idx_movie_cast_imdb_code ON movie_cast(imdb_code);
	CREATE INDEX IF NOT EXISTS idx_movie_cast_name_fts
		ON movie_cast USING GIN (to_tsvector('simple', name));

	CREATE TABLE IF NOT EXISTS movie_genres (
		id BIGSERIAL PRIMARY KEY,
		movie_id BIGINT NOT NULL REFERENCES movies (id) ON DELETE CASCADE,
		name TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_movie_genres_movie_id ON movie_genres(movie_id);

	CREATE TABLE IF NOT EXISTS movie_similars (
		id BIGSERIAL PRIMARY KEY,
		movie_id BIGINT NOT NULL REFERENCES movies (id) ON DELETE CASCADE,
		tmdb_id TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_movie_similars_movie_id ON movie_similars(movie_id);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
