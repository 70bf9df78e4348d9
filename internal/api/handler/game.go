package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/wordtiles/internal/api/middleware"
	"github.com/mcoot/wordtiles/internal/api/request"
	"github.com/mcoot/wordtiles/internal/api/response"
	"github.com/mcoot/wordtiles/internal/model"
	"github.com/mcoot/wordtiles/internal/services/board"
	"github.com/mcoot/wordtiles/internal/services/game"
	"github.com/mcoot/wordtiles/internal/sse"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	gameController game.ControllerInterface
	hubManager     *sse.HubManager
	logger         *slog.Logger
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameController game.ControllerInterface, hubManager *sse.HubManager, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		gameController: gameController,
		hubManager:     hubManager,
		logger:         logger.With(slog.String("component", "api-game")),
	}
}

func gameID(r *http.Request) model.GameID {
	return model.GameID(mux.Vars(r)["id"])
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.MustGetUser(r.Context())

	var req request.CreateGameRequest
	if err := request.Decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	var tmpl model.Template
	if len(req.Template) > 0 {
		parsed, err := board.ParseTemplate(req.Template)
		if err != nil {
			WriteError(w, err)
			return
		}
		tmpl = parsed
	}

	state, err := h.gameController.CreateGame(r.Context(), game.CreateGameInput{
		Creator:  userID,
		Opponent: model.UserID(req.Opponent),
		Language: req.Language,
		Template: tmpl,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameStateFromModel(state, userID))
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.MustGetUser(r.Context())

	state, err := h.gameController.GetGame(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameStateFromModel(state, userID))
}

// Join handles POST /api/v1/games/{id}/join
func (h *GameHandler) Join(w http.ResponseWriter, r *http.Request) {
	userID := middleware.MustGetUser(r.Context())

	state, err := h.gameController.JoinGame(r.Context(), gameID(r), userID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameStateFromModel(state, userID))
}

// Play handles POST /api/v1/games/{id}/play
func (h *GameHandler) Play(w http.ResponseWriter, r *http.Request) {
	userID := middleware.MustGetUser(r.Context())

	var req request.PlayRequest
	if err := request.Decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	res, err := h.gameController.PlayMove(r.Context(), gameID(r), userID, req.ToModel())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ActionResponseFromResult(res, userID))
}

// Validate handles POST /api/v1/games/{id}/validate
func (h *GameHandler) Validate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.MustGetUser(r.Context())

	var req request.PlayRequest
	if err := request.Decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	preview, err := h.gameController.ValidateMove(r.Context(), gameID(r), userID, req.ToModel())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PreviewResponseFromModel(preview))
}

// Pass handles POST /api/v1/games/{id}/pass
func (h *GameHandler) Pass(w http.ResponseWriter, r *http.Request) {
	userID := middleware.MustGetUser(r.Context())

	res, err := h.gameController.Pass(r.Context(), gameID(r), userID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ActionResponseFromResult(res, userID))
}

// Swap handles POST /api/v1/games/{id}/swap
func (h *GameHandler) Swap(w http.ResponseWriter, r *http.Request) {
	userID := middleware.MustGetUser(r.Context())

	var req request.SwapRequest
	if err := request.Decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	res, err := h.gameController.Swap(r.Context(), gameID(r), userID, req.ToModel())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ActionResponseFromResult(res, userID))
}

// Resign handles POST /api/v1/games/{id}/resign
func (h *GameHandler) Resign(w http.ResponseWriter, r *http.Request) {
	userID := middleware.MustGetUser(r.Context())

	res, err := h.gameController.Resign(r.Context(), gameID(r), userID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ActionResponseFromResult(res, userID))
}

// Moves handles GET /api/v1/games/{id}/moves
func (h *GameHandler) Moves(w http.ResponseWriter, r *http.Request) {
	moves, err := h.gameController.Moves(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	if moves == nil {
		moves = []*model.Move{}
	}

	response.JSON(w, http.StatusOK, response.MovesResponse{Moves: moves})
}

// Events handles GET /api/v1/games/{id}/events as a server-sent event stream
func (h *GameHandler) Events(w http.ResponseWriter, r *http.Request) {
	userID := middleware.MustGetUser(r.Context())
	id := gameID(r)

	if _, err := h.gameController.GetGame(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	h.logger.Info("sse stream opened",
		slog.String("game_id", string(id)),
		slog.String("user_id", string(userID)),
	)
	sse.ServeSSE(w, r, h.hubManager.GetOrCreateHub(id), userID)
}
