package game

import (
	"context"
	"log/slog"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/mcoot/wordtiles/internal/dependencies/clock"
	"github.com/mcoot/wordtiles/internal/model"
	"github.com/mcoot/wordtiles/internal/services/board"
	"github.com/mcoot/wordtiles/internal/services/rules"
	"github.com/mcoot/wordtiles/internal/services/scoring"
	"github.com/mcoot/wordtiles/internal/services/tilebag"
	"github.com/mcoot/wordtiles/internal/storage"
)

// DefaultTurnTimeout is how long a player has to act before being auto-passed
const DefaultTurnTimeout = 72 * time.Hour

// Config tunes the controller
type Config struct {
	TurnTimeout time.Duration
}

// Controller sequences validation, scoring and state changes for every
// game action. Mutating actions on one game are serialized.
type Controller struct {
	storage storage.Storage
	rules   *rules.Engine
	scoring *scoring.Engine
	tiles   *tilebag.Service
	clock   clock.Clock
	hooks   Hooks
	cfg     Config
	logger  *slog.Logger

	locks *gameLocks
}

// NewController creates a new game Controller
func NewController(
	storage storage.Storage,
	rulesEngine *rules.Engine,
	scoringEngine *scoring.Engine,
	tiles *tilebag.Service,
	clock clock.Clock,
	hooks Hooks,
	cfg Config,
	logger *slog.Logger,
) *Controller {
	if cfg.TurnTimeout <= 0 {
		cfg.TurnTimeout = DefaultTurnTimeout
	}
	return &Controller{
		storage: storage,
		rules:   rulesEngine,
		scoring: scoringEngine,
		tiles:   tiles,
		clock:   clock,
		hooks:   hooks,
		cfg:     cfg,
		logger:  logger.With(slog.String("component", "game")),
		locks:   newGameLocks(),
	}
}

// CreateGameInput describes a new game
type CreateGameInput struct {
	Creator  model.UserID
	Opponent model.UserID // Optional; without one the game waits in Pending
	Language string       // Defaults to DefaultLanguage
	Template model.Template
}

// CreateGame creates a game. With an opponent the game starts immediately.
func (c *Controller) CreateGame(ctx context.Context, in CreateGameInput) (*model.GameState, error) {
	if in.Creator == "" || in.Creator == in.Opponent {
		return nil, model.ErrInsufficientPlayers
	}
	if in.Language == "" {
		in.Language = model.DefaultLanguage
	}
	if !tilebag.Supports(in.Language) {
		return nil, errors.Wrapf(model.ErrUnsupportedLanguage, "language %q", in.Language)
	}
	if err := board.ValidateTemplate(in.Template, model.BoardSize); err != nil {
		return nil, err
	}

	bag, err := c.tiles.NewBag(in.Language)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	gameID := model.GameID(uuid.NewString())
	state := &model.GameState{
		Game: &model.Game{
			ID:        gameID,
			Language:  in.Language,
			Board:     board.New(),
			Template:  in.Template,
			TileBag:   bag,
			Status:    model.GameStatusPending,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Players: []*model.GamePlayer{newPlayer(gameID, in.Creator, 0)},
	}
	if in.Opponent != "" {
		state.Players = append(state.Players, newPlayer(gameID, in.Opponent, 1))
		c.start(state, now)
	}

	if err := c.storage.CreateGame(ctx, state); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(gameID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("game created",
		slog.String("game_id", string(gameID)),
		slog.String("language", in.Language),
		slog.Int("player_count", len(state.Players)),
		slog.String("status", string(state.Game.Status)),
	)

	if state.Game.IsActive() {
		c.afterCommit(ctx, &ActionResult{State: state}, model.EventGameStarted)
	}
	return state, nil
}

// JoinGame seats a second player in a pending game and starts it
func (c *Controller) JoinGame(ctx context.Context, gameID model.GameID, userID model.UserID) (*model.GameState, error) {
	unlock := c.locks.Lock(gameID)
	defer unlock()

	state, err := c.storage.LoadGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if state.Player(userID) != nil {
		return nil, model.ErrAlreadyInGame
	}
	if state.Game.Status != model.GameStatusPending {
		return nil, model.ErrGameNotPending
	}
	if len(state.Players) >= 2 {
		return nil, model.ErrGameFull
	}

	now := c.clock.Now()
	state.Players = append(state.Players, newPlayer(gameID, userID, len(state.Players)))
	c.start(state, now)

	if err := c.storage.CommitGame(ctx, state, nil); err != nil {
		return nil, err
	}

	c.logger.Info("game started",
		slog.String("game_id", string(gameID)),
		slog.String("joined", string(userID)),
	)

	c.afterCommit(ctx, &ActionResult{State: state}, model.EventGameStarted)
	return state, nil
}

// GetGame retrieves a game with its players and moves
func (c *Controller) GetGame(ctx context.Context, gameID model.GameID) (*model.GameState, error) {
	return c.storage.LoadGame(ctx, gameID)
}

// Moves returns the audit log of a game, oldest first
func (c *Controller) Moves(ctx context.Context, gameID model.GameID) ([]*model.Move, error) {
	state, err := c.storage.LoadGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return state.Moves, nil
}

// GamesForUser lists the games a user plays in
func (c *Controller) GamesForUser(ctx context.Context, userID model.UserID) ([]model.GameID, error) {
	return c.storage.GamesForUser(ctx, userID)
}

func newPlayer(gameID model.GameID, userID model.UserID, order int) *model.GamePlayer {
	return &model.GamePlayer{
		GameID:      gameID,
		UserID:      userID,
		TurnOrder:   order,
		HasFreeSwap: true,
	}
}

// start deals racks and hands the first turn to turn order 0
func (c *Controller) start(state *model.GameState, now time.Time) {
	g := state.Game
	for _, p := range state.Players {
		g.TileBag = c.tiles.Refill(p, g.TileBag)
	}
	g.Status = model.GameStatusActive
	g.CurrentTurn = state.Players[0].UserID
	expires := now.Add(c.cfg.TurnTimeout)
	g.TurnExpiresAt = &expires
	g.UpdatedAt = now
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateGame(ctx context.Context, in CreateGameInput) (*model.GameState, error)
	JoinGame(ctx context.Context, gameID model.GameID, userID model.UserID) (*model.GameState, error)
	GetGame(ctx context.Context, gameID model.GameID) (*model.GameState, error)
	Moves(ctx context.Context, gameID model.GameID) ([]*model.Move, error)
	GamesForUser(ctx context.Context, userID model.UserID) ([]model.GameID, error)
	PlayMove(ctx context.Context, gameID model.GameID, userID model.UserID, tiles []model.PlacedTile) (*ActionResult, error)
	ValidateMove(ctx context.Context, gameID model.GameID, userID model.UserID, tiles []model.PlacedTile) (*Preview, error)
	Pass(ctx context.Context, gameID model.GameID, userID model.UserID) (*ActionResult, error)
	Swap(ctx context.Context, gameID model.GameID, userID model.UserID, tiles []model.Tile) (*ActionResult, error)
	Resign(ctx context.Context, gameID model.GameID, userID model.UserID) (*ActionResult, error)
	AutoPass(ctx context.Context, gameID model.GameID) (*ActionResult, error)
}

var _ ControllerInterface = (*Controller)(nil)
