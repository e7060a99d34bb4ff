package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"popcorn/models"
)

// summaryRow receives one scanned listing row. Every column is wrapped in a
// sql.Null* type so an absent value independently maps to its zero value;
// nulls never reach the response shape.
type summaryRow struct {
	title       sql.NullString
	year        sql.NullInt64
	rating      sql.NullFloat64
	posterImage sql.NullString
	imdbCode    sql.NullString
	genreNames  sql.NullString
	peers       sql.NullInt64
	seeds       sql.NullInt64
	totalCount  sql.NullInt64

	// Selected only so DISTINCT and the sort keys are well-defined.
	dateUploadedUnix sql.NullInt64
	movieID          sql.NullInt64
	downloadCount    sql.NullInt64
	likeCount        sql.NullInt64
}

func (r summaryRow) summary() models.MovieSummary {
	return models.MovieSummary{
		Title:       r.title.String,
		Year:        int(r.year.Int64),
		Rating:      r.rating.Float64,
		PosterImage: r.posterImage.String,
		ImdbCode:    r.imdbCode.String,
		Genres:      splitGenres(r.genreNames.String),
		Peers:       int(r.peers.Int64),
		Seeds:       int(r.seeds.Int64),
	}
}

// splitGenres expands the denormalized genre_names column into a name list.
func splitGenres(names string) []string {
	genres := []string{}
	for _, name := range strings.Split(names, ",") {
		if name = strings.TrimSpace(name); name != "" {
			genres = append(genres, name)
		}
	}
	return genres
}

// collectListRows maps the 13-column listing result. The window count
// repeats on every row; the last-seen value is kept as the authoritative
// total for the whole filtered query.
func collectListRows(rows *sql.Rows) (*models.MovieListResponse, error) {
	resp := models.EmptyMovieListResponse()
	for rows.Next() {
		var r summaryRow
		err := rows.Scan(&r.title, &r.year, &r.rating, &r.posterImage, &r.imdbCode,
			&r.genreNames, &r.peers, &r.seeds, &r.totalCount,
			&r.dateUploadedUnix, &r.movieID, &r.downloadCount, &r.likeCount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movie row: %w", err)
		}
		resp.Movies = append(resp.Movies, r.summary())
		resp.TotalMovies = int(r.totalCount.Int64)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over rows: %w", err)
	}
	return resp, nil
}

// collectCountedRows maps the 7-column batch and similarity results, which
// carry the window count but no torrent columns.
func collectCountedRows(rows *sql.Rows) (*models.MovieListResponse, error) {
	resp := models.EmptyMovieListResponse()
	for rows.Next() {
		var r summaryRow
		err := rows.Scan(&r.title, &r.year, &r.rating, &r.posterImage, &r.imdbCode,
			&r.genreNames, &r.totalCount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movie row: %w", err)
		}
		resp.Movies = append(resp.Movies, r.summary())
		resp.TotalMovies = int(r.totalCount.Int64)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over rows: %w", err)
	}
	return resp, nil
}

// collectSummaryRows maps the 6-column single-record results; the total is
// simply the number of rows returned.
func collectSummaryRows(rows *sql.Rows) (*models.MovieListResponse, error) {
	resp := models.EmptyMovieListResponse()
	for rows.Next() {
		var r summaryRow
		err := rows.Scan(&r.title, &r.year, &r.rating, &r.posterImage, &r.imdbCode, &r.genreNames)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movie row: %w", err)
		}
		resp.Movies = append(resp.Movies, r.summary())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over rows: %w", err)
	}
	resp.TotalMovies = len(resp.Movies)
	return resp, nil
}

// detailRow receives the scanned movie row of the full lookup.
type detailRow struct {
	movieID          int64
	url              sql.NullString
	imdbCode         sql.NullString
	title            sql.NullString
	titleLong        sql.NullString
	slug             sql.NullString
	year             sql.NullInt64
	rating           sql.NullFloat64
	runtime          sql.NullInt64
	language         sql.NullString
	mpaRating        sql.NullString
	downloadCount    sql.NullInt64
	likeCount        sql.NullInt64
	descriptionIntro sql.NullString
	descriptionFull  sql.NullString
	ytTrailerCode    sql.NullString
	dateUploaded     sql.NullString
	dateUploadedUnix sql.NullInt64
	posterImage      sql.NullString
	backgroundImage  sql.NullString
}

func (r detailRow) detail() models.MovieDetail {
	return models.MovieDetail{
		URL:              r.url.String,
		ImdbCode:         r.imdbCode.String,
		Title:            r.title.String,
		TitleLong:        r.titleLong.String,
		Slug:             r.slug.String,
		Year:             int(r.year.Int64),
		Rating:           r.rating.Float64,
		Runtime:          int(r.runtime.Int64),
		Genres:           []string{},
		Language:         r.language.String,
		MpaRating:        r.mpaRating.String,
		DownloadCount:    int(r.downloadCount.Int64),
		LikeCount:        int(r.likeCount.Int64),
		DescriptionIntro: r.descriptionIntro.String,
		DescriptionFull:  r.descriptionFull.String,
		YtTrailerCode:    r.ytTrailerCode.String,
		Cast:             []models.CastRecord{},
		Torrents:         []models.TorrentRecord{},
		DateUploaded:     r.dateUploaded.String,
		DateUploadedUnix: r.dateUploadedUnix.Int64,
		PosterImage:      r.posterImage.String,
		BackgroundImage:  r.backgroundImage.String,
		Similar:          []string{},
	}
}

// torrentRow receives one scanned torrent row of the full lookup.
type torrentRow struct {
	url              sql.NullString
	hash             sql.NullString
	quality          sql.NullString
	seeds            sql.NullInt64
	peers            sql.NullInt64
	size             sql.NullString
	sizeBytes        sql.NullInt64
	dateUploaded     sql.NullString
	dateUploadedUnix sql.NullInt64
}

func (r torrentRow) torrent() models.TorrentRecord {
	return models.TorrentRecord{
		URL:              r.url.String,
		Hash:             r.hash.String,
		Quality:          r.quality.String,
		Seeds:            int(r.seeds.Int64),
		Peers:            int(r.peers.Int64),
		Size:             r.size.String,
		SizeBytes:        r.sizeBytes.Int64,
		DateUploaded:     r.dateUploaded.String,
		DateUploadedUnix: r.dateUploadedUnix.Int64,
	}
}

// castRow receives one scanned cast row of the full lookup.
type castRow struct {
	name          sql.NullString
	characterName sql.NullString
	smallImage    sql.NullString
	imdbCode      sql.NullString
}

func (r castRow) castMember() models.CastRecord {
	return models.CastRecord{
		Name:          r.name.String,
		CharacterName: r.characterName.String,
		SmallImage:    r.smallImage.String,
		ImdbCode:      r.imdbCode.String,
	}
}
