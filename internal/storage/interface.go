package storage

import (
	"context"
	"time"

	"github.com/mcoot/wordtiles/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Game operations

	// CreateGame stores a brand new game. It fails with ErrConcurrentUpdate if
	// the ID is taken. The stored version starts at the state's version.
	CreateGame(ctx context.Context, state *model.GameState) error
	// LoadGame returns the game, its players and the full move history
	LoadGame(ctx context.Context, id model.GameID) (*model.GameState, error)
	// CommitGame atomically replaces the game and players and appends move,
	// which must already be the last entry of state.Moves. A nil move commits
	// no history. The commit only succeeds if the stored version still equals
	// state.Game.Version, which is then incremented; otherwise nothing is
	// written and ErrConcurrentUpdate is returned.
	CommitGame(ctx context.Context, state *model.GameState, move *model.Move) error
	// ExpiredGames lists active games whose turn deadline is at or before now,
	// oldest deadline first
	ExpiredGames(ctx context.Context, now time.Time, limit int) ([]model.GameID, error)
	// GamesForUser lists the games a user has a seat in
	GamesForUser(ctx context.Context, userID model.UserID) ([]model.GameID, error)

	// Dictionary operations
	GetDictionaryWords(ctx context.Context, language string) ([]string, error)
	SaveDictionaryWords(ctx context.Context, language string, words []string) error

	// Stats operations
	GetUserStats(ctx context.Context, userID model.UserID) (*model.UserStats, error)
	SaveUserStats(ctx context.Context, stats *model.UserStats) error
}
