package timeout

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"

	"github.com/mcoot/wordtiles/internal/dependencies/clock"
	"github.com/mcoot/wordtiles/internal/model"
	"github.com/mcoot/wordtiles/internal/services/game"
	"github.com/mcoot/wordtiles/internal/services/rules"
)

// GameSource lists games whose turn deadline has passed
type GameSource interface {
	ExpiredGames(ctx context.Context, now time.Time, limit int) ([]model.GameID, error)
}

// AutoPasser passes on behalf of a timed-out player
type AutoPasser interface {
	AutoPass(ctx context.Context, gameID model.GameID) (*game.ActionResult, error)
}

// Config tunes a sweep
type Config struct {
	Workers   int // Concurrent auto-passes across games
	BatchSize int // Maximum games handled per sweep
}

// DefaultConfig returns sensible sweep defaults
func DefaultConfig() Config {
	return Config{Workers: 4, BatchSize: 500}
}

// SweepResult summarizes one sweep
type SweepResult struct {
	Found   int
	Passed  int
	Skipped int // Raced by a live move or already finished
	Failed  int
}

// Sweeper auto-passes every game whose turn has expired. Games are handled
// in parallel; each auto-pass is serialized with other actions by the controller.
type Sweeper struct {
	games  GameSource
	passer AutoPasser
	clock  clock.Clock
	cfg    Config
	logger *slog.Logger
}

// New creates a new Sweeper
func New(games GameSource, passer AutoPasser, clock clock.Clock, cfg Config, logger *slog.Logger) *Sweeper {
	defaults := DefaultConfig()
	if cfg.Workers <= 0 {
		cfg.Workers = defaults.Workers
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaults.BatchSize
	}
	return &Sweeper{
		games:  games,
		passer: passer,
		clock:  clock,
		cfg:    cfg,
		logger: logger.With(slog.String("component", "timeout")),
	}
}

// Sweep runs one pass over the expired games
func (s *Sweeper) Sweep(ctx context.Context) (SweepResult, error) {
	ids, err := s.games.ExpiredGames(ctx, s.clock.Now(), s.cfg.BatchSize)
	if err != nil {
		return SweepResult{}, errors.Wrap(err, "list expired games")
	}
	result := SweepResult{Found: len(ids)}
	if len(ids) == 0 {
		return result, nil
	}

	pool, err := ants.NewPool(s.cfg.Workers)
	if err != nil {
		return result, errors.Wrap(err, "create worker pool")
	}
	defer pool.Release()

	var passed, skipped, failed atomic.Int32
	var workers sync.WaitGroup
	for _, id := range ids {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			_, err := s.passer.AutoPass(ctx, id)
			switch {
			case err == nil:
				passed.Add(1)
			case isSkippable(err):
				skipped.Add(1)
			default:
				failed.Add(1)
				s.logger.Error("auto-pass failed",
					slog.String("game_id", string(id)),
					slog.String("error", err.Error()),
				)
			}
		}); err != nil {
			workers.Done()
			workers.Wait()
			return result, errors.Wrap(err, "submit auto-pass")
		}
	}
	workers.Wait()

	result.Passed = int(passed.Load())
	result.Skipped = int(skipped.Load())
	result.Failed = int(failed.Load())

	s.logger.Info("timeout sweep finished",
		slog.Int("found", result.Found),
		slog.Int("passed", result.Passed),
		slog.Int("skipped", result.Skipped),
		slog.Int("failed", result.Failed),
	)
	return result, nil
}

// Run sweeps on every tick until the context is cancelled
func (s *Sweeper) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Sweep(ctx); err != nil {
				s.logger.Error("timeout sweep failed", slog.String("error", err.Error()))
			}
		}
	}
}

// isSkippable reports errors caused by the game moving on since it was listed
func isSkippable(err error) bool {
	if errors.Is(err, model.ErrTurnNotExpired) || errors.Is(err, model.ErrConcurrentUpdate) {
		return true
	}
	_, rejected := rules.AsRejection(err)
	return rejected
}
