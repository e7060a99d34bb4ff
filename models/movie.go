// Package models defines the external response shapes of the catalog API.
// All JSON output uses snake_case field names.
package models

// MovieSummary is the light projection returned by the listing, batch and
// cast queries. Peers and seeds come from one qualifying torrent of the
// movie and are omitted when no torrent columns were selected.
type MovieSummary struct {
	Title       string   `json:"title"`
	Year        int      `json:"year"`
	Rating      float64  `json:"rating"`
	PosterImage string   `json:"poster_image"`
	ImdbCode    string   `json:"imdb_code"`
	Genres      []string `json:"genres"`
	Peers       int      `json:"peers,omitempty"`
	Seeds       int      `json:"seeds,omitempty"`
}

// MovieListResponse wraps a page of summaries together with the total match
// count of the whole filtered query, independent of pagination.
type MovieListResponse struct {
	TotalMovies int            `json:"total_movies"`
	Movies      []MovieSummary `json:"movies"`
}

// EmptyMovieListResponse returns an envelope that serializes with an empty
// array rather than null.
func EmptyMovieListResponse() *MovieListResponse {
	return &MovieListResponse{Movies: []MovieSummary{}}
}

// MovieDetail is the full record returned by the single-movie lookup,
// including its nested torrent, cast, genre and similar-title graphs.
type MovieDetail struct {
	URL              string          `json:"url"`
	ImdbCode         string          `json:"imdb_code"`
	Title            string          `json:"title"`
	TitleLong        string          `json:"title_long"`
	Slug             string          `json:"slug"`
	Year             int             `json:"year"`
	Rating           float64         `json:"rating"`
	Runtime          int             `json:"runtime"`
	Genres           []string        `json:"genres"`
	Language         string          `json:"language"`
	MpaRating        string          `json:"mpa_rating"`
	DownloadCount    int             `json:"download_count"`
	LikeCount        int             `json:"like_count"`
	DescriptionIntro string          `json:"description_intro"`
	DescriptionFull  string          `json:"description_full"`
	YtTrailerCode    string          `json:"yt_trailer_code"`
	Cast             []CastRecord    `json:"cast"`
	Torrents         []TorrentRecord `json:"torrents"`
	DateUploaded     string          `json:"date_uploaded"`
	DateUploadedUnix int64           `json:"date_uploaded_unix"`
	PosterImage      string          `json:"poster_image"`
	BackgroundImage  string          `json:"background_image"`
	Similar          []string        `json:"similar"`
}

// TorrentRecord is one downloadable release of a movie.
type TorrentRecord struct {
	URL              string `json:"url"`
	Hash             string `json:"hash"`
	Quality          string `json:"quality"`
	Seeds            int    `json:"seeds"`
	Peers            int    `json:"peers"`
	Size             string `json:"size"`
	SizeBytes        int64  `json:"size_bytes"`
	DateUploaded     string `json:"date_uploaded"`
	DateUploadedUnix int64  `json:"date_uploaded_unix"`
}

// CastRecord is one cast member of a movie.
type CastRecord struct {
	Name          string `json:"name"`
	CharacterName string `json:"character_name"`
	SmallImage    string `json:"small_image"`
	ImdbCode      string `json:"imdb_code"`
}
