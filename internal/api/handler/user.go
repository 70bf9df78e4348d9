package handler

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/wordtiles/internal/api/response"
	"github.com/mcoot/wordtiles/internal/model"
	"github.com/mcoot/wordtiles/internal/services/game"
)

// StatsReader reads a user's cumulative record
type StatsReader interface {
	Get(ctx context.Context, userID model.UserID) (*model.UserStats, error)
}

// UserHandler handles per-user endpoints
type UserHandler struct {
	gameController game.ControllerInterface
	stats          StatsReader
}

// NewUserHandler creates a new user handler
func NewUserHandler(gameController game.ControllerInterface, stats StatsReader) *UserHandler {
	return &UserHandler{gameController: gameController, stats: stats}
}

// Stats handles GET /api/v1/users/{id}/stats
func (h *UserHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID := model.UserID(mux.Vars(r)["id"])

	stats, err := h.stats.Get(r.Context(), userID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, stats)
}

// Games handles GET /api/v1/users/{id}/games
func (h *UserHandler) Games(w http.ResponseWriter, r *http.Request) {
	userID := model.UserID(mux.Vars(r)["id"])

	ids, err := h.gameController.GamesForUser(r.Context(), userID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GamesResponseFromIDs(ids))
}
