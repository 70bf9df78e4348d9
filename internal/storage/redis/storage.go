package redis

import (
	"context"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"

	"github.com/mcoot/wordtiles/internal/model"
	"github.com/mcoot/wordtiles/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// A game and its players live in one JSON blob; moves are appended to a list.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// gameRecord is the stored form of a game without its move history
type gameRecord struct {
	Game    *model.Game         `json:"game"`
	Players []*model.GamePlayer `json:"players"`
}

// versionProbe decodes only the version of a stored game
type versionProbe struct {
	Game struct {
		Version int64 `json:"version"`
	} `json:"game"`
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, errors.Wrap(err, "parse redis url")
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(err, "ping redis")
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Game operations

func (s *Storage) CreateGame(ctx context.Context, state *model.GameState) error {
	key := gameKey(state.Game.ID)
	data, err := sonic.Marshal(gameRecord{Game: state.Game, Players: state.Players})
	if err != nil {
		return errors.Wrap(err, "encode game")
	}
	moves, err := encodeMoves(state.Moves)
	if err != nil {
		return err
	}

	return s.client.Watch(ctx, func(tx *redis.Tx) error {
		exists, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		if exists > 0 {
			return errors.Wrapf(model.ErrConcurrentUpdate, "game %s already exists", state.Game.ID)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			if len(moves) > 0 {
				pipe.RPush(ctx, movesKey(state.Game.ID), moves...)
			}
			s.index(ctx, pipe, state)
			return nil
		})
		return err
	}, key)
}

func (s *Storage) LoadGame(ctx context.Context, id model.GameID) (*model.GameState, error) {
	pipe := s.client.Pipeline()
	gameCmd := pipe.Get(ctx, gameKey(id))
	movesCmd := pipe.LRange(ctx, movesKey(id), 0, -1)
	_, err := pipe.Exec(ctx)
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}

	data, err := gameCmd.Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	var record gameRecord
	if err := sonic.Unmarshal(data, &record); err != nil {
		return nil, errors.Wrapf(err, "decode game %s", id)
	}

	rawMoves, err := movesCmd.Result()
	if err != nil {
		return nil, err
	}
	moves := make([]*model.Move, 0, len(rawMoves))
	for _, raw := range rawMoves {
		var move model.Move
		if err := sonic.UnmarshalString(raw, &move); err != nil {
			return nil, errors.Wrapf(err, "decode move of game %s", id)
		}
		moves = append(moves, &move)
	}

	return &model.GameState{Game: record.Game, Players: record.Players, Moves: moves}, nil
}

func (s *Storage) CommitGame(ctx context.Context, state *model.GameState, move *model.Move) error {
	key := gameKey(state.Game.ID)
	expected := state.Game.Version

	next := *state.Game
	next.Version = expected + 1
	data, err := sonic.Marshal(gameRecord{Game: &next, Players: state.Players})
	if err != nil {
		return errors.Wrap(err, "encode game")
	}
	var encodedMove []byte
	if move != nil {
		if encodedMove, err = sonic.Marshal(move); err != nil {
			return errors.Wrap(err, "encode move")
		}
	}

	var ttl time.Duration
	if next.Status == model.GameStatusFinished {
		ttl = s.cfg.FinishedGameTTL
	}

	commit := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return model.ErrGameNotFound
			}
			return err
		}
		var stored versionProbe
		if err := sonic.Unmarshal(raw, &stored); err != nil {
			return errors.Wrapf(err, "decode game %s", state.Game.ID)
		}
		if stored.Game.Version != expected {
			return errors.Wrapf(model.ErrConcurrentUpdate, "game %s is at version %d, not %d",
				state.Game.ID, stored.Game.Version, expected)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, ttl)
			if encodedMove != nil {
				pipe.RPush(ctx, movesKey(state.Game.ID), encodedMove)
			}
			if ttl > 0 {
				pipe.Expire(ctx, movesKey(state.Game.ID), ttl)
			}
			s.index(ctx, pipe, &model.GameState{Game: &next, Players: state.Players})
			return nil
		})
		return err
	}

	retries := max(s.cfg.CommitRetries, 1)
	for i := 0; i < retries; i++ {
		err := s.client.Watch(ctx, commit, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return err
		}
		state.Game.Version = next.Version
		return nil
	}
	return errors.Wrapf(model.ErrConcurrentUpdate, "game %s kept changing during commit", state.Game.ID)
}

// index keeps the expiry and per-user indexes in step with a game
func (s *Storage) index(ctx context.Context, pipe redis.Pipeliner, state *model.GameState) {
	g := state.Game
	id := string(g.ID)
	if g.IsActive() && g.TurnExpiresAt != nil {
		pipe.ZAdd(ctx, expiryIndexKey(), redis.Z{Score: float64(g.TurnExpiresAt.UnixMilli()), Member: id})
	} else {
		pipe.ZRem(ctx, expiryIndexKey(), id)
	}
	for _, p := range state.Players {
		pipe.ZAdd(ctx, userGamesIndexKey(p.UserID), redis.Z{Score: float64(g.CreatedAt.UnixMilli()), Member: id})
	}
}

func (s *Storage) ExpiredGames(ctx context.Context, now time.Time, limit int) ([]model.GameID, error) {
	members, err := s.client.ZRangeByScore(ctx, expiryIndexKey(), &redis.ZRangeBy{
		Min:   "-inf",
		Max:   strconv.FormatInt(now.UnixMilli(), 10),
		Count: int64(max(limit, 0)),
	}).Result()
	if err != nil {
		return nil, err
	}
	return toGameIDs(members), nil
}

func (s *Storage) GamesForUser(ctx context.Context, userID model.UserID) ([]model.GameID, error) {
	members, err := s.client.ZRange(ctx, userGamesIndexKey(userID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	return toGameIDs(members), nil
}

// Dictionary operations

func (s *Storage) GetDictionaryWords(ctx context.Context, language string) ([]string, error) {
	key := dictionaryKey(language)

	// Check if dictionary exists
	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, model.ErrDictionaryNotLoaded
	}

	return s.client.SMembers(ctx, key).Result()
}

func (s *Storage) SaveDictionaryWords(ctx context.Context, language string, words []string) error {
	key := dictionaryKey(language)

	// Delete existing dictionary and add new words atomically
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)

	if len(words) > 0 {
		members := make([]interface{}, len(words))
		for i, w := range words {
			members[i] = w
		}
		pipe.SAdd(ctx, key, members...)
	}

	_, err := pipe.Exec(ctx)
	return err
}

// Stats operations

func (s *Storage) GetUserStats(ctx context.Context, userID model.UserID) (*model.UserStats, error) {
	data, err := s.client.Get(ctx, statsKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrStatsNotFound
		}
		return nil, err
	}

	var stats model.UserStats
	if err := sonic.Unmarshal(data, &stats); err != nil {
		return nil, errors.Wrapf(err, "decode stats for %s", userID)
	}
	return &stats, nil
}

func (s *Storage) SaveUserStats(ctx context.Context, stats *model.UserStats) error {
	data, err := sonic.Marshal(stats)
	if err != nil {
		return errors.Wrap(err, "encode stats")
	}
	return s.client.Set(ctx, statsKey(stats.UserID), data, 0).Err()
}

func encodeMoves(moves []*model.Move) ([]interface{}, error) {
	out := make([]interface{}, 0, len(moves))
	for _, m := range moves {
		data, err := sonic.Marshal(m)
		if err != nil {
			return nil, errors.Wrap(err, "encode move")
		}
		out = append(out, data)
	}
	return out, nil
}

func toGameIDs(members []string) []model.GameID {
	ids := make([]model.GameID, 0, len(members))
	for _, m := range members {
		ids = append(ids, model.GameID(m))
	}
	return ids
}
