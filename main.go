// Package main provides the entry point for the movie catalog API.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"popcorn/cache"
	"popcorn/database"
	"popcorn/models"
	"popcorn/repository"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

// movieStore is the slice of the catalog repository the handlers depend on.
type movieStore interface {
	List(ctx context.Context, f models.QueryFilter) (*models.MovieListResponse, error)
	ByIDs(ctx context.Context, imdbIDs []string) (*models.MovieListResponse, error)
	Similar(ctx context.Context, imdbIDs []string, f models.QueryFilter) (*models.MovieListResponse, error)
	Light(ctx context.Context, imdbCode string) (*models.MovieSummary, error)
	ByCast(ctx context.Context, castID string) (*models.MovieListResponse, error)
	Detail(ctx context.Context, imdbCode string) (*models.MovieDetail, error)
}

// App represents the application with its dependencies
type App struct {
	store  movieStore
	cache  cache.Store
	logger *slog.Logger
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Warn("could not load .env file", "error", err)
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Error("DATABASE_URL environment variable is required")
		os.Exit(1)
	}

	db, err := database.NewDB(dsn)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := db.InitSchema(); err != nil {
		logger.Error("failed to initialize schema", "error", err)
		os.Exit(1)
	}

	capacity := 10000
	if v, err := strconv.Atoi(os.Getenv("CACHE_CAPACITY")); err == nil && v > 0 {
		capacity = v
	}

	app := &App{
		store:  repository.NewMovieRepository(db, logger),
		cache:  cache.NewMemoryStore(capacity),
		logger: logger,
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      app.routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-shutdown
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("failed to shut down server", "error", err)
	}
	if err := db.Close(); err != nil {
		logger.Error("failed to close database", "error", err)
	}
}

// routes wires the read endpoints. The literal subpaths (ids, similar,
// light, cast) are registered before the catch-all {id} route.
func (app *App) routes() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", app.healthHandler).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/movies", app.listMoviesHandler).Methods("GET")
	api.HandleFunc("/movies/ids", app.moviesByIDsHandler).Methods("POST")
	api.HandleFunc("/movies/similar", app.similarMoviesHandler).Methods("POST")
	api.HandleFunc("/movies/light/{id}", app.lightMovieHandler).Methods("GET")
	api.HandleFunc("/movies/cast/{castId}", app.moviesByCastHandler).Methods("GET")
	api.HandleFunc("/movies/{id}", app.movieDetailHandler).Methods("GET")

	return r
}

func (app *App) healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		app.logger.Warn("failed to write response", "error", err)
	}
}
