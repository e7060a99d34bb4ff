package repository

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummaryRow_AllNullsMapToZeroValues(t *testing.T) {
	s := summaryRow{}.summary()

	assert.Equal(t, "", s.Title)
	assert.Equal(t, 0, s.Year)
	assert.Equal(t, 0.0, s.Rating)
	assert.Equal(t, "", s.PosterImage)
	assert.Equal(t, "", s.ImdbCode)
	assert.Equal(t, []string{}, s.Genres)
	assert.Equal(t, 0, s.Peers)
	assert.Equal(t, 0, s.Seeds)
}

func TestSummaryRow_PopulatedColumns(t *testing.T) {
	r := summaryRow{
		title:       sql.NullString{String: "Interstellar", Valid: true},
		year:        sql.NullInt64{Int64: 2014, Valid: true},
		rating:      sql.NullFloat64{Float64: 8.6, Valid: true},
		posterImage: sql.NullString{String: "https://img.example/tt0816692.jpg", Valid: true},
		imdbCode:    sql.NullString{String: "tt0816692", Valid: true},
		genreNames:  sql.NullString{String: "Adventure, Drama, Sci-Fi", Valid: true},
		peers:       sql.NullInt64{Int64: 12, Valid: true},
		seeds:       sql.NullInt64{Int64: 34, Valid: true},
	}

	s := r.summary()

	assert.Equal(t, "Interstellar", s.Title)
	assert.Equal(t, 2014, s.Year)
	assert.Equal(t, 8.6, s.Rating)
	assert.Equal(t, []string{"Adventure", "Drama", "Sci-Fi"}, s.Genres)
	assert.Equal(t, 12, s.Peers)
	assert.Equal(t, 34, s.Seeds)
}

func TestSplitGenres(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", []string{}},
		{"single", "Drama", []string{"Drama"}},
		{"comma separated", "Action,Drama", []string{"Action", "Drama"}},
		{"with spaces", "Action, Drama , Sci-Fi", []string{"Action", "Drama", "Sci-Fi"}},
		{"stray commas", ",Action,,", []string{"Action"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitGenres(tt.input))
		})
	}
}

func TestDetailRow_AllNullsMapToZeroValues(t *testing.T) {
	d := detailRow{}.detail()

	assert.Equal(t, "", d.Title)
	assert.Equal(t, "", d.ImdbCode)
	assert.Equal(t, 0, d.Year)
	assert.Equal(t, 0.0, d.Rating)
	assert.Equal(t, 0, d.Runtime)
	assert.Equal(t, int64(0), d.DateUploadedUnix)
	assert.Equal(t, []string{}, d.Genres)
	assert.Equal(t, []string{}, d.Similar)

	// Nested collections serialize as empty arrays, never null.
	assert.NotNil(t, d.Cast)
	assert.NotNil(t, d.Torrents)
}

func TestTorrentRow_NullSafety(t *testing.T) {
	tr := torrentRow{
		quality:   sql.NullString{String: "1080p", Valid: true},
		seeds:     sql.NullInt64{Int64: 57, Valid: true},
		sizeBytes: sql.NullInt64{Int64: 2147483648, Valid: true},
	}.torrent()

	assert.Equal(t, "1080p", tr.Quality)
	assert.Equal(t, 57, tr.Seeds)
	assert.Equal(t, int64(2147483648), tr.SizeBytes)
	assert.Equal(t, "", tr.Hash)
	assert.Equal(t, 0, tr.Peers)
}

func TestCastRow_NullSafety(t *testing.T) {
	c := castRow{
		name:     sql.NullString{String: "Matthew McConaughey", Valid: true},
		imdbCode: sql.NullString{String: "nm0000190", Valid: true},
	}.castMember()

	assert.Equal(t, "Matthew McConaughey", c.Name)
	assert.Equal(t, "nm0000190", c.ImdbCode)
	assert.Equal(t, "", c.CharacterName)
	assert.Equal(t, "", c.SmallImage)
}
