package game

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/mcoot/wordtiles/internal/model"
	"github.com/mcoot/wordtiles/internal/services/board"
	"github.com/mcoot/wordtiles/internal/services/rules"
	"github.com/mcoot/wordtiles/internal/services/scoring"
)

// ResignReason is recorded as the end reason of a resigned game
const ResignReason = "A player resigned"

// ActionResult is the committed outcome of an action
type ActionResult struct {
	State    *model.GameState
	Move     *model.Move
	Score    *scoring.Result // Set for plays
	Finished bool
}

// Preview is the outcome of a dry-run validation
type Preview struct {
	Valid     bool
	Rejection *rules.RuleResult
	Words     []string
	Score     *scoring.Result
}

// act runs one mutating action under the game's lock: load, guard, apply,
// commit, then fire hooks. Nothing is written unless apply succeeds.
func (c *Controller) act(
	ctx context.Context,
	gameID model.GameID,
	actor func(*model.GameState) (model.UserID, error),
	action rules.ActionType,
	eventType model.EventType,
	apply func(state *model.GameState, player *model.GamePlayer, now time.Time) (*ActionResult, error),
) (*ActionResult, error) {
	unlock := c.locks.Lock(gameID)
	defer unlock()

	state, err := c.storage.LoadGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	now := c.clock.Now()

	userID, err := actor(state)
	if err != nil {
		return nil, err
	}
	if result := c.rules.ValidateAction(&rules.ActionInput{State: state, Actor: userID, Action: action}); !result.Passed {
		return nil, rules.Reject(result)
	}
	player := state.Player(userID)
	if player == nil {
		return nil, errors.Wrapf(model.ErrPlayerNotFound, "user %s in game %s", userID, gameID)
	}

	res, err := apply(state, player, now)
	if err != nil {
		return nil, err
	}
	res.State = state

	state.Game.UpdatedAt = now
	if err := c.storage.CommitGame(ctx, state, res.Move); err != nil {
		c.logger.Error("failed to commit action",
			slog.String("game_id", string(gameID)),
			slog.String("action", string(action)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("action committed",
		slog.String("game_id", string(gameID)),
		slog.String("user_id", string(userID)),
		slog.String("action", string(action)),
		slog.Int("score", res.Move.Score),
		slog.Bool("finished", res.Finished),
	)

	c.afterCommit(ctx, res, eventType)
	return res, nil
}

// byUser attributes an action to the calling user
func byUser(userID model.UserID) func(*model.GameState) (model.UserID, error) {
	return func(*model.GameState) (model.UserID, error) { return userID, nil }
}

// PlayMove validates, scores and commits a tile placement
func (c *Controller) PlayMove(ctx context.Context, gameID model.GameID, userID model.UserID, tiles []model.PlacedTile) (*ActionResult, error) {
	tiles = normalizeTiles(tiles)
	return c.act(ctx, gameID, byUser(userID), rules.ActionPlay, model.EventMovePlayed,
		func(state *model.GameState, player *model.GamePlayer, now time.Time) (*ActionResult, error) {
			result, err := c.rules.ValidateTurn(ctx, &rules.TurnInput{
				Game:   state.Game,
				Board:  state.Game.Board,
				Player: player,
				Tiles:  tiles,
			})
			if err != nil {
				return nil, err
			}
			if !result.Passed {
				return nil, rules.Reject(result)
			}

			after, remaining, score, err := c.score(state, player, tiles)
			if err != nil {
				return nil, err
			}

			g := state.Game
			g.Board = after
			player.Rack = remaining
			g.TileBag = c.tiles.Refill(player, g.TileBag)
			player.Score += score.Total()
			if score.HasBonus(scoring.RuleEndGame) {
				player.ReceivedEmptyRackBonus = true
			}
			g.ConsecutivePasses = 0

			move := c.newMove(state, player.UserID, model.MoveTypePlay, now)
			move.Tiles = tiles
			move.Words = score.Words
			move.Score = score.Total()
			move.ScoreBreakdown = score.Breakdown()

			return &ActionResult{Move: move, Score: score, Finished: c.advance(state, move, now)}, nil
		})
}

// score overlays the tiles and runs the scoring engine against the post-move rack and bag
func (c *Controller) score(state *model.GameState, player *model.GamePlayer, tiles []model.PlacedTile) (*model.Board, []model.Tile, *scoring.Result, error) {
	wanted := make([]model.Tile, 0, len(tiles))
	for _, t := range tiles {
		wanted = append(wanted, t.Tile())
	}
	remaining, missing := rules.ConsumeTiles(player.Rack, wanted)
	if missing != nil {
		return nil, nil, nil, errors.AssertionFailedf("validated tile %s missing from rack", missing.Letter)
	}

	after := board.PlaceTiles(state.Game.Board, tiles)
	sc := scoring.NewContext(state.Game, player, after, tiles, len(remaining) == 0, len(state.Game.TileBag) == 0)
	for _, p := range state.Players {
		if p.ReceivedEmptyRackBonus {
			sc.BonusClaimed = true
		}
	}
	result, err := c.scoring.Score(sc)
	if err != nil {
		return nil, nil, nil, err
	}
	return after, remaining, result, nil
}

// Pass records a voluntary pass
func (c *Controller) Pass(ctx context.Context, gameID model.GameID, userID model.UserID) (*ActionResult, error) {
	return c.act(ctx, gameID, byUser(userID), rules.ActionPass, model.EventPassed, c.pass(false))
}

// AutoPass passes on behalf of a player whose turn has expired
func (c *Controller) AutoPass(ctx context.Context, gameID model.GameID) (*ActionResult, error) {
	current := func(state *model.GameState) (model.UserID, error) {
		if !state.Game.IsTurnExpired(c.clock.Now()) {
			return "", errors.Wrapf(model.ErrTurnNotExpired, "game %s", gameID)
		}
		return state.Game.CurrentTurn, nil
	}
	return c.act(ctx, gameID, current, rules.ActionPass, model.EventTurnTimeout, c.pass(true))
}

func (c *Controller) pass(auto bool) func(*model.GameState, *model.GamePlayer, time.Time) (*ActionResult, error) {
	return func(state *model.GameState, player *model.GamePlayer, now time.Time) (*ActionResult, error) {
		state.Game.ConsecutivePasses++

		move := c.newMove(state, player.UserID, model.MoveTypePass, now)
		move.Auto = auto

		return &ActionResult{Move: move, Finished: c.advance(state, move, now)}, nil
	}
}

// Swap exchanges rack tiles for fresh ones from the bag
func (c *Controller) Swap(ctx context.Context, gameID model.GameID, userID model.UserID, tiles []model.Tile) (*ActionResult, error) {
	return c.act(ctx, gameID, byUser(userID), rules.ActionSwap, model.EventSwapped,
		func(state *model.GameState, player *model.GamePlayer, now time.Time) (*ActionResult, error) {
			if result := c.rules.ValidateSwap(player, tiles); !result.Passed {
				return nil, rules.Reject(result)
			}
			remaining, _ := rules.ConsumeTiles(player.Rack, tiles)
			swapped := takeFromRack(player.Rack, remaining)

			g := state.Game
			player.Rack = remaining
			bag := c.tiles.Refill(player, g.TileBag)
			g.TileBag = c.tiles.Return(bag, swapped)
			player.HasFreeSwap = false
			g.ConsecutivePasses = 0

			move := c.newMove(state, player.UserID, model.MoveTypeSwap, now)

			return &ActionResult{Move: move, Finished: c.advance(state, move, now)}, nil
		})
}

// Resign ends the game immediately in the opponent's favour
func (c *Controller) Resign(ctx context.Context, gameID model.GameID, userID model.UserID) (*ActionResult, error) {
	return c.act(ctx, gameID, byUser(userID), rules.ActionResign, model.EventResigned,
		func(state *model.GameState, player *model.GamePlayer, now time.Time) (*ActionResult, error) {
			move := c.newMove(state, player.UserID, model.MoveTypeResign, now)
			state.Moves = append(state.Moves, move)

			var winner model.UserID
			if opp := state.Opponent(player.UserID); opp != nil {
				winner = opp.UserID
			}
			c.finish(state, winner, ResignReason, now)
			return &ActionResult{Move: move, Finished: true}, nil
		})
}

// ValidateMove previews a placement without taking the game lock or writing anything
func (c *Controller) ValidateMove(ctx context.Context, gameID model.GameID, userID model.UserID, tiles []model.PlacedTile) (*Preview, error) {
	state, err := c.storage.LoadGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	tiles = normalizeTiles(tiles)

	if result := c.rules.ValidateAction(&rules.ActionInput{State: state, Actor: userID, Action: rules.ActionPlay}); !result.Passed {
		return &Preview{Rejection: &result}, nil
	}
	player := state.Player(userID)
	result, err := c.rules.ValidateTurn(ctx, &rules.TurnInput{
		Game:   state.Game,
		Board:  state.Game.Board,
		Player: player,
		Tiles:  tiles,
	})
	if err != nil {
		return nil, err
	}
	if !result.Passed {
		return &Preview{Rejection: &result}, nil
	}

	_, _, score, err := c.score(state, player, tiles)
	if err != nil {
		return nil, err
	}
	return &Preview{Valid: true, Words: score.WordList(), Score: score}, nil
}

// advance appends the move, switches the turn and finalizes the game if an
// end-game rule fires. It reports whether the game finished.
func (c *Controller) advance(state *model.GameState, move *model.Move, now time.Time) bool {
	state.Moves = append(state.Moves, move)

	g := state.Game
	next := state.NextPlayer(move.UserID)
	g.CurrentTurn = next.UserID
	expires := now.Add(c.cfg.TurnTimeout)
	g.TurnExpiresAt = &expires

	check := c.rules.CheckEndGame(state)
	if !check.Ended {
		return false
	}

	scoring.ApplyRackPenalties(state.Players)
	c.finish(state, scoring.DetermineWinner(state.Players), check.Reason, now)
	return true
}

// finish moves the game to its terminal state
func (c *Controller) finish(state *model.GameState, winner model.UserID, reason string, now time.Time) {
	g := state.Game
	g.Status = model.GameStatusFinished
	g.WinnerID = winner
	g.EndReason = reason
	g.CurrentTurn = ""
	g.TurnExpiresAt = nil
	g.FinishedAt = &now

	c.logger.Info("game finished",
		slog.String("game_id", string(g.ID)),
		slog.String("winner_id", string(winner)),
		slog.String("reason", reason),
	)
}

func (c *Controller) newMove(state *model.GameState, userID model.UserID, moveType model.MoveType, now time.Time) *model.Move {
	return &model.Move{
		ID:        model.MoveID(uuid.NewString()),
		GameID:    state.Game.ID,
		UserID:    userID,
		Type:      moveType,
		CreatedAt: now,
	}
}

// normalizeTiles upper-cases letters and zeroes blank points
func normalizeTiles(tiles []model.PlacedTile) []model.PlacedTile {
	out := make([]model.PlacedTile, len(tiles))
	for i, t := range tiles {
		t.Letter = strings.ToUpper(t.Letter)
		if t.IsBlank {
			t.Points = 0
		}
		out[i] = t
	}
	return out
}

// takeFromRack returns the rack tiles that are not in remaining, as they
// were on the rack, so blanks go back to the bag unassigned
func takeFromRack(rack, remaining []model.Tile) []model.Tile {
	left := make(map[model.Tile]int, len(remaining))
	for _, t := range remaining {
		left[t]++
	}
	var taken []model.Tile
	for _, t := range rack {
		if left[t] > 0 {
			left[t]--
			continue
		}
		taken = append(taken, t)
	}
	return taken
}
