package cache

import (
	"encoding/base64"
	"fmt"
	"strings"

	"popcorn/models"
)

// Cache keys encode the semantic inputs of a request in a fixed field order
// and are then base64-encoded so they are safe as opaque cache identifiers.
// Keys are built from the normalized filter, so two requests that only
// differ in incidental formatting share an entry, while any differing
// semantic field produces a distinct key.

// ListKey derives the cache key for the paged listing query.
func ListKey(f models.QueryFilter) string {
	return encode(fmt.Sprintf("type=movies&page=%d&limit=%d&minimum_rating=%d&query_term=%s&genre=%s&sort_by=%s",
		f.Page, f.Limit, f.MinimumRating, f.QueryTerm, f.Genre, f.SortBy))
}

// IDsKey derives the cache key for a batch-by-id lookup. The ids are joined
// in caller-supplied order: the same set of ids in a different order yields
// a different key. That is accepted behavior, not a defect — both entries
// hold byte-identical payloads.
func IDsKey(imdbIDs []string) string {
	return encode("type=movies&imdbIds=" + strings.Join(imdbIDs, ","))
}

// SimilarKey derives the cache key for a similarity listing, combining the
// input ids with the same filter fields as the plain listing.
func SimilarKey(imdbIDs []string, f models.QueryFilter) string {
	return encode(fmt.Sprintf("type=movies&similar&imdbIds=%s&page=%d&limit=%d&minimum_rating=%d&query_term=%s&genre=%s&sort_by=%s",
		strings.Join(imdbIDs, ","), f.Page, f.Limit, f.MinimumRating, f.QueryTerm, f.Genre, f.SortBy))
}

// LightKey derives the cache key for a single-movie summary lookup.
func LightKey(imdbCode string) string {
	return encode("light:" + imdbCode)
}

// CastKey derives the cache key for a movies-by-cast-member lookup.
func CastKey(castID string) string {
	return encode("cast:" + castID)
}

// DetailKey derives the cache key for a full-movie lookup.
func DetailKey(imdbCode string) string {
	return encode("full:" + imdbCode)
}

func encode(key string) string {
	return base64.StdEncoding.EncodeToString([]byte(key))
}
