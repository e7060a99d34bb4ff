package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"popcorn/cache"
	"popcorn/models"
	"popcorn/repository"

	"github.com/gorilla/mux"
)

// GET /api/v1/movies
func (app *App) listMoviesHandler(w http.ResponseWriter, r *http.Request) {
	f := models.ParseQueryFilter(r.URL.Query())

	app.serveCached(w, r, cache.ListKey(f), func(ctx context.Context) (any, error) {
		return app.store.List(ctx, f)
	})
}

// POST /api/v1/movies/ids
func (app *App) moviesByIDsHandler(w http.ResponseWriter, r *http.Request) {
	ids, ok := app.decodeIDs(w, r)
	if !ok {
		return
	}

	// An empty id set yields an empty envelope without touching the cache
	// or the store.
	if len(ids) == 0 {
		app.writeJSON(w, models.EmptyMovieListResponse())
		return
	}

	app.serveCached(w, r, cache.IDsKey(ids), func(ctx context.Context) (any, error) {
		return app.store.ByIDs(ctx, ids)
	})
}

// POST /api/v1/movies/similar
func (app *App) similarMoviesHandler(w http.ResponseWriter, r *http.Request) {
	ids, ok := app.decodeIDs(w, r)
	if !ok {
		return
	}

	if len(ids) == 0 {
		app.writeJSON(w, models.EmptyMovieListResponse())
		return
	}

	f := models.ParseQueryFilter(r.URL.Query())

	app.serveCached(w, r, cache.SimilarKey(ids, f), func(ctx context.Context) (any, error) {
		return app.store.Similar(ctx, ids, f)
	})
}

// GET /api/v1/movies/light/{id}
func (app *App) lightMovieHandler(w http.ResponseWriter, r *http.Request) {
	imdbCode := mux.Vars(r)["id"]

	app.serveCached(w, r, cache.LightKey(imdbCode), func(ctx context.Context) (any, error) {
		return app.store.Light(ctx, imdbCode)
	})
}

// GET /api/v1/movies/cast/{castId}
func (app *App) moviesByCastHandler(w http.ResponseWriter, r *http.Request) {
	castID := mux.Vars(r)["castId"]

	app.serveCached(w, r, cache.CastKey(castID), func(ctx context.Context) (any, error) {
		return app.store.ByCast(ctx, castID)
	})
}

// GET /api/v1/movies/{id}
func (app *App) movieDetailHandler(w http.ResponseWriter, r *http.Request) {
	imdbCode := mux.Vars(r)["id"]

	app.serveCached(w, r, cache.DetailKey(imdbCode), func(ctx context.Context) (any, error) {
		return app.store.Detail(ctx, imdbCode)
	})
}

// serveCached runs the shared read path: check the response cache under key,
// fall back to the store on a miss, then write the serialized body back with
// the fixed retention window. A cache read failure is treated as a miss and
// a cache write failure is swallowed; both are logged and neither ever fails
// the request. A store failure surfaces as a server error, a single-record
// miss as a client error with no cache entry written.
func (app *App) serveCached(w http.ResponseWriter, r *http.Request, key string, fetch func(ctx context.Context) (any, error)) {
	payload, err := app.cache.Get(r.Context(), key)
	if err == nil {
		app.writeBody(w, []byte(payload))
		return
	}
	if !errors.Is(err, cache.ErrNotFound) {
		app.logger.Warn("cache read failed, treating as miss", "key", key, "error", err)
	}

	result, err := fetch(r.Context())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "movie not found", http.StatusBadRequest)
			return
		}
		app.logger.Error("store query failed", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	body, err := json.Marshal(result)
	if err != nil {
		app.logger.Error("failed to encode response", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if err := app.cache.Set(r.Context(), key, string(body), cache.ResponseTTL); err != nil {
		app.logger.Warn("cache write failed", "key", key, "error", err)
	}

	app.writeBody(w, body)
}

func (app *App) decodeIDs(w http.ResponseWriter, r *http.Request) ([]string, bool) {
	var ids []string
	if err := json.NewDecoder(r.Body).Decode(&ids); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return nil, false
	}
	return ids, true
}

func (app *App) writeJSON(w http.ResponseWriter, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		app.logger.Error("failed to encode response", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	app.writeBody(w, body)
}

func (app *App) writeBody(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(body); err != nil {
		app.logger.Warn("failed to write response", "error", err)
	}
}
