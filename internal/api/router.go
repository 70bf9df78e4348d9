package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/wordtiles/internal/api/handler"
	"github.com/mcoot/wordtiles/internal/api/middleware"
	"github.com/mcoot/wordtiles/internal/services/game"
	"github.com/mcoot/wordtiles/internal/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	GameController game.ControllerInterface
	Stats          handler.StatsReader
	HubManager     *sse.HubManager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.HubManager, cfg.Logger)
	userHandler := handler.NewUserHandler(cfg.GameController, cfg.Stats)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	// Health check endpoint (no identity)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Game routes
	games := api.PathPrefix("/games").Subrouter()
	games.Use(middleware.Identity())
	games.HandleFunc("", gameHandler.Create).Methods(http.MethodPost)
	games.HandleFunc("/{id}", gameHandler.Get).Methods(http.MethodGet)
	games.HandleFunc("/{id}/join", gameHandler.Join).Methods(http.MethodPost)
	games.HandleFunc("/{id}/play", gameHandler.Play).Methods(http.MethodPost)
	games.HandleFunc("/{id}/validate", gameHandler.Validate).Methods(http.MethodPost)
	games.HandleFunc("/{id}/pass", gameHandler.Pass).Methods(http.MethodPost)
	games.HandleFunc("/{id}/swap", gameHandler.Swap).Methods(http.MethodPost)
	games.HandleFunc("/{id}/resign", gameHandler.Resign).Methods(http.MethodPost)
	games.HandleFunc("/{id}/moves", gameHandler.Moves).Methods(http.MethodGet)
	games.HandleFunc("/{id}/events", gameHandler.Events).Methods(http.MethodGet)

	// User routes
	users := api.PathPrefix("/users").Subrouter()
	users.Use(middleware.Identity())
	users.HandleFunc("/{id}/stats", userHandler.Stats).Methods(http.MethodGet)
	users.HandleFunc("/{id}/games", userHandler.Games).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
