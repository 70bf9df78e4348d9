package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/mcoot/wordtiles/internal/model"
	"github.com/mcoot/wordtiles/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Values are cloned on the way in and out so callers never share state.
type Storage struct {
	mu sync.RWMutex

	games      map[model.GameID]*model.GameState
	dictionary map[string][]string
	stats      map[model.UserID]*model.UserStats
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		games:      make(map[model.GameID]*model.GameState),
		dictionary: make(map[string][]string),
		stats:      make(map[model.UserID]*model.UserStats),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Game operations

func (s *Storage) CreateGame(ctx context.Context, state *model.GameState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[state.Game.ID]; ok {
		return errors.Wrapf(model.ErrConcurrentUpdate, "game %s already exists", state.Game.ID)
	}
	s.games[state.Game.ID] = state.Clone()
	return nil
}

func (s *Storage) LoadGame(ctx context.Context, id model.GameID) (*model.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return state.Clone(), nil
}

func (s *Storage) CommitGame(ctx context.Context, state *model.GameState, move *model.Move) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.games[state.Game.ID]
	if !ok {
		return model.ErrGameNotFound
	}
	if current.Game.Version != state.Game.Version {
		return errors.Wrapf(model.ErrConcurrentUpdate, "game %s is at version %d, not %d",
			state.Game.ID, current.Game.Version, state.Game.Version)
	}
	if move != nil && (len(state.Moves) == 0 || state.Moves[len(state.Moves)-1] != move) {
		return errors.AssertionFailedf("committed move %s is not the last move of game %s", move.ID, state.Game.ID)
	}

	state.Game.Version++
	s.games[state.Game.ID] = state.Clone()
	return nil
}

func (s *Storage) ExpiredGames(ctx context.Context, now time.Time, limit int) ([]model.GameID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var expired []*model.Game
	for _, state := range s.games {
		if state.Game.IsTurnExpired(now) {
			expired = append(expired, state.Game)
		}
	}
	sort.Slice(expired, func(i, j int) bool {
		return expired[i].TurnExpiresAt.Before(*expired[j].TurnExpiresAt)
	})

	ids := make([]model.GameID, 0, len(expired))
	for _, g := range expired {
		if limit > 0 && len(ids) == limit {
			break
		}
		ids = append(ids, g.ID)
	}
	return ids, nil
}

func (s *Storage) GamesForUser(ctx context.Context, userID model.UserID) ([]model.GameID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var games []*model.Game
	for _, state := range s.games {
		if state.Player(userID) != nil {
			games = append(games, state.Game)
		}
	}
	sort.Slice(games, func(i, j int) bool {
		return games[i].CreatedAt.Before(games[j].CreatedAt)
	})

	ids := make([]model.GameID, 0, len(games))
	for _, g := range games {
		ids = append(ids, g.ID)
	}
	return ids, nil
}

// Dictionary operations

func (s *Storage) GetDictionaryWords(ctx context.Context, language string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	words, ok := s.dictionary[language]
	if !ok {
		return nil, model.ErrDictionaryNotLoaded
	}
	result := make([]string, len(words))
	copy(result, words)
	return result, nil
}

func (s *Storage) SaveDictionaryWords(ctx context.Context, language string, words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dictionary[language] = append([]string{}, words...)
	return nil
}

// Stats operations

func (s *Storage) GetUserStats(ctx context.Context, userID model.UserID) (*model.UserStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats, ok := s.stats[userID]
	if !ok {
		return nil, model.ErrStatsNotFound
	}
	out := *stats
	return &out, nil
}

func (s *Storage) SaveUserStats(ctx context.Context, stats *model.UserStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *stats
	s.stats[stats.UserID] = &stored
	return nil
}
