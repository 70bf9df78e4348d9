package model

import "github.com/cockroachdb/errors"

// Common errors used across the application
var (
	// Game errors
	ErrGameNotFound        = errors.New("game not found")
	ErrPlayerNotFound      = errors.New("player not found")
	ErrGameFull            = errors.New("game already has two players")
	ErrAlreadyInGame       = errors.New("user is already in this game")
	ErrGameNotPending      = errors.New("game is not waiting for players")
	ErrInsufficientPlayers = errors.New("a game needs one or two distinct players")
	ErrTurnNotExpired      = errors.New("turn has not expired")
	ErrConcurrentUpdate    = errors.New("game was modified concurrently")

	// Configuration errors
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrInvalidTemplate     = errors.New("invalid board template")

	// Dictionary errors
	ErrDictionaryNotLoaded = errors.New("dictionary not loaded")

	// Stats errors
	ErrStatsNotFound = errors.New("stats not found")
)
