package stats

import (
	"context"
	"log/slog"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/mcoot/wordtiles/internal/dependencies/clock"
	"github.com/mcoot/wordtiles/internal/model"
	"github.com/mcoot/wordtiles/internal/services/game"
	"github.com/mcoot/wordtiles/internal/services/scoring"
)

// Store persists per-user stats
type Store interface {
	GetUserStats(ctx context.Context, userID model.UserID) (*model.UserStats, error)
	SaveUserStats(ctx context.Context, stats *model.UserStats) error
}

// Service keeps cumulative win/loss records and per-move highlights
type Service struct {
	store  Store
	clock  clock.Clock
	logger *slog.Logger

	// Serializes read-modify-write of records; hooks for one game run concurrently
	mu sync.Mutex
}

// New creates a new stats Service
func New(store Store, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		clock:  clock,
		logger: logger.With(slog.String("component", "stats")),
	}
}

var (
	_ game.StatsHook       = (*Service)(nil)
	_ game.AchievementHook = (*Service)(nil)
)

// Get returns a user's stats; users without finished games get a zero record
func (s *Service) Get(ctx context.Context, userID model.UserID) (*model.UserStats, error) {
	stats, err := s.store.GetUserStats(ctx, userID)
	if errors.Is(err, model.ErrStatsNotFound) {
		return &model.UserStats{UserID: userID}, nil
	}
	return stats, err
}

// OnGameFinished records the result for every player of a finished game
func (s *Service) OnGameFinished(ctx context.Context, state *model.GameState) error {
	if state.Game.Status != model.GameStatusFinished {
		return errors.AssertionFailedf("game %s is not finished", state.Game.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	for _, p := range state.Players {
		stats, err := s.Get(ctx, p.UserID)
		if err != nil {
			return errors.Wrapf(err, "load stats for %s", p.UserID)
		}

		stats.GamesPlayed++
		if p.UserID == state.Game.WinnerID {
			stats.GamesWon++
			stats.CurrentStreak++
			stats.BestStreak = max(stats.BestStreak, stats.CurrentStreak)
		} else {
			stats.GamesLost++
			stats.CurrentStreak = 0
		}
		stats.UpdatedAt = now

		if err := s.store.SaveUserStats(ctx, stats); err != nil {
			return errors.Wrapf(err, "save stats for %s", p.UserID)
		}
	}

	s.logger.Info("stats updated",
		slog.String("game_id", string(state.Game.ID)),
		slog.String("winner_id", string(state.Game.WinnerID)),
	)
	return nil
}

// OnPlay records the player's best move score and bingo count
func (s *Service) OnPlay(ctx context.Context, g *model.Game, move *model.Move, score *scoring.Result) error {
	if move.Type != model.MoveTypePlay {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stats, err := s.Get(ctx, move.UserID)
	if err != nil {
		return errors.Wrapf(err, "load stats for %s", move.UserID)
	}

	bingo := score != nil && score.HasBonus(scoring.RuleBingo)
	if move.Score <= stats.BestMoveScore && !bingo {
		return nil
	}
	stats.BestMoveScore = max(stats.BestMoveScore, move.Score)
	if bingo {
		stats.Bingos++
	}
	stats.UpdatedAt = s.clock.Now()

	if err := s.store.SaveUserStats(ctx, stats); err != nil {
		return errors.Wrapf(err, "save stats for %s", move.UserID)
	}

	s.logger.Debug("move highlight recorded",
		slog.String("game_id", string(g.ID)),
		slog.String("user_id", string(move.UserID)),
		slog.Int("score", move.Score),
		slog.Bool("bingo", bingo),
	)
	return nil
}
