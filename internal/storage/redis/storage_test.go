package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wordtiles/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
	now     time.Time
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.FinishedGameTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
	s.now = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) newState(id model.GameID, expiresIn time.Duration) *model.GameState {
	expires := s.now.Add(expiresIn)
	b := model.NewBoard(model.BoardSize)
	b.Set(model.Position{X: 7, Y: 7}, model.Tile{Letter: "Q", Points: 10})
	return &model.GameState{
		Game: &model.Game{
			ID:            id,
			Language:      "en",
			Board:         b,
			TileBag:       []model.Tile{{Letter: "A", Points: 1}, {IsBlank: true}},
			Status:        model.GameStatusActive,
			CurrentTurn:   "alice",
			TurnExpiresAt: &expires,
			CreatedAt:     s.now,
			UpdatedAt:     s.now,
		},
		Players: []*model.GamePlayer{
			{GameID: id, UserID: "alice", TurnOrder: 0, Rack: []model.Tile{{Letter: "E", Points: 1}}},
			{GameID: id, UserID: "bob", TurnOrder: 1, Score: 12},
		},
	}
}

// Game tests

func (s *StorageSuite) TestCreateAndLoadGame() {
	state := s.newState("game-1", time.Hour)
	s.Require().NoError(s.storage.CreateGame(s.ctx, state))

	loaded, err := s.storage.LoadGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(state.Game.ID, loaded.Game.ID)
	s.Equal("Q", loaded.Game.Board.Get(model.Position{X: 7, Y: 7}).Letter)
	s.Equal(state.Game.TileBag, loaded.Game.TileBag)
	s.True(state.Game.TurnExpiresAt.Equal(*loaded.Game.TurnExpiresAt))
	s.Require().Len(loaded.Players, 2)
	s.Equal(12, loaded.Players[1].Score)
	s.Empty(loaded.Moves)
}

func (s *StorageSuite) TestCreateGameTwiceFails() {
	s.Require().NoError(s.storage.CreateGame(s.ctx, s.newState("game-1", time.Hour)))
	s.ErrorIs(s.storage.CreateGame(s.ctx, s.newState("game-1", time.Hour)), model.ErrConcurrentUpdate)
}

func (s *StorageSuite) TestLoadGameNotFound() {
	_, err := s.storage.LoadGame(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestCommitAppendsMovesAndBumpsVersion() {
	s.Require().NoError(s.storage.CreateGame(s.ctx, s.newState("game-1", time.Hour)))

	for i, id := range []model.MoveID{"m1", "m2"} {
		state, err := s.storage.LoadGame(s.ctx, "game-1")
		s.Require().NoError(err)
		move := &model.Move{ID: id, GameID: "game-1", UserID: "alice", Type: model.MoveTypePass, CreatedAt: s.now}
		state.Moves = append(state.Moves, move)
		s.Require().NoError(s.storage.CommitGame(s.ctx, state, move))
		s.Equal(int64(i+1), state.Game.Version)
	}

	loaded, err := s.storage.LoadGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(int64(2), loaded.Game.Version)
	s.Require().Len(loaded.Moves, 2)
	s.Equal(model.MoveID("m1"), loaded.Moves[0].ID)
	s.Equal(model.MoveID("m2"), loaded.Moves[1].ID)
}

func (s *StorageSuite) TestStaleCommitIsRejected() {
	s.Require().NoError(s.storage.CreateGame(s.ctx, s.newState("game-1", time.Hour)))
	first, _ := s.storage.LoadGame(s.ctx, "game-1")
	second, _ := s.storage.LoadGame(s.ctx, "game-1")

	s.Require().NoError(s.storage.CommitGame(s.ctx, first, nil))

	move := &model.Move{ID: "late", GameID: "game-1", Type: model.MoveTypePass}
	second.Moves = append(second.Moves, move)
	s.ErrorIs(s.storage.CommitGame(s.ctx, second, move), model.ErrConcurrentUpdate)
	s.Equal(int64(0), second.Game.Version)

	loaded, _ := s.storage.LoadGame(s.ctx, "game-1")
	s.Empty(loaded.Moves, "nothing from the stale commit may be written")
}

func (s *StorageSuite) TestCommitMissingGame() {
	s.ErrorIs(s.storage.CommitGame(s.ctx, s.newState("ghost", time.Hour), nil), model.ErrGameNotFound)
}

func (s *StorageSuite) TestExpiryIndexFollowsStatus() {
	s.Require().NoError(s.storage.CreateGame(s.ctx, s.newState("late", -time.Minute)))
	s.Require().NoError(s.storage.CreateGame(s.ctx, s.newState("early", -time.Hour)))
	s.Require().NoError(s.storage.CreateGame(s.ctx, s.newState("future", time.Hour)))

	ids, err := s.storage.ExpiredGames(s.ctx, s.now, 10)
	s.Require().NoError(err)
	s.Equal([]model.GameID{"early", "late"}, ids)

	ids, err = s.storage.ExpiredGames(s.ctx, s.now, 1)
	s.Require().NoError(err)
	s.Equal([]model.GameID{"early"}, ids)

	// Finishing a game drops it from the index and sets retention
	state, _ := s.storage.LoadGame(s.ctx, "early")
	state.Game.Status = model.GameStatusFinished
	state.Game.TurnExpiresAt = nil
	s.Require().NoError(s.storage.CommitGame(s.ctx, state, nil))

	ids, err = s.storage.ExpiredGames(s.ctx, s.now, 10)
	s.Require().NoError(err)
	s.Equal([]model.GameID{"late"}, ids)
	s.Equal(time.Hour, s.mini.TTL(gameKey("early")))
}

func (s *StorageSuite) TestGamesForUser() {
	s.Require().NoError(s.storage.CreateGame(s.ctx, s.newState("game-1", time.Hour)))

	ids, err := s.storage.GamesForUser(s.ctx, "bob")
	s.Require().NoError(err)
	s.Equal([]model.GameID{"game-1"}, ids)

	ids, err = s.storage.GamesForUser(s.ctx, "carol")
	s.Require().NoError(err)
	s.Empty(ids)
}

// Dictionary tests

func (s *StorageSuite) TestDictionaryPerLanguage() {
	_, err := s.storage.GetDictionaryWords(s.ctx, "en")
	s.ErrorIs(err, model.ErrDictionaryNotLoaded)

	s.Require().NoError(s.storage.SaveDictionaryWords(s.ctx, "en", []string{"CAT", "DOG"}))
	s.Require().NoError(s.storage.SaveDictionaryWords(s.ctx, "en", []string{"CAT", "EMU"}))

	words, err := s.storage.GetDictionaryWords(s.ctx, "en")
	s.Require().NoError(err)
	s.ElementsMatch([]string{"CAT", "EMU"}, words)

	_, err = s.storage.GetDictionaryWords(s.ctx, "fr")
	s.ErrorIs(err, model.ErrDictionaryNotLoaded)
}

// Stats tests

func (s *StorageSuite) TestUserStats() {
	_, err := s.storage.GetUserStats(s.ctx, "alice")
	s.ErrorIs(err, model.ErrStatsNotFound)

	s.Require().NoError(s.storage.SaveUserStats(s.ctx, &model.UserStats{UserID: "alice", GamesPlayed: 3, BestStreak: 2}))

	stats, err := s.storage.GetUserStats(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(3, stats.GamesPlayed)
	s.Equal(2, stats.BestStreak)
}
