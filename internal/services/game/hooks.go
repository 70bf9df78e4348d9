package game

import (
	"context"
	"log/slog"

	"github.com/sourcegraph/conc"

	"github.com/mcoot/wordtiles/internal/model"
	"github.com/mcoot/wordtiles/internal/services/scoring"
)

// Notifier receives an event after every committed action
type Notifier interface {
	Notify(ctx context.Context, event model.Event) error
}

// AchievementHook is invoked once after every committed Play
type AchievementHook interface {
	OnPlay(ctx context.Context, game *model.Game, move *model.Move, score *scoring.Result) error
}

// StatsHook is invoked once after a game is finalized
type StatsHook interface {
	OnGameFinished(ctx context.Context, state *model.GameState) error
}

// Hooks are the post-commit collaborators. Any of them may be nil.
type Hooks struct {
	Notifier     Notifier
	Achievements AchievementHook
	Stats        StatsHook
}

// dispatch runs post-commit work concurrently and waits for it.
// Errors and panics are logged; the move is already committed.
func (c *Controller) dispatch(ctx context.Context, gameID model.GameID, calls map[string]func(context.Context) error) {
	ctx = context.WithoutCancel(ctx)
	logger := c.logger.With(slog.String("game_id", string(gameID)))

	var wg conc.WaitGroup
	for name, call := range calls {
		wg.Go(func() {
			if err := call(ctx); err != nil {
				logger.Error("post-commit hook failed",
					slog.String("hook", name),
					slog.String("error", err.Error()),
				)
			}
		})
	}
	if recovered := wg.WaitAndRecover(); recovered != nil {
		logger.Error("post-commit hook panicked",
			slog.String("panic", recovered.String()),
		)
	}
}

// afterCommit fires the hooks that apply to a committed action
func (c *Controller) afterCommit(ctx context.Context, res *ActionResult, eventType model.EventType) {
	game := res.State.Game
	calls := make(map[string]func(context.Context) error)

	if n := c.hooks.Notifier; n != nil {
		events := []model.Event{c.actionEvent(res, eventType)}
		if res.Finished {
			events = append(events, c.finishedEvent(res.State))
		}
		calls["notifier"] = func(ctx context.Context) error {
			for _, e := range events {
				if err := n.Notify(ctx, e); err != nil {
					return err
				}
			}
			return nil
		}
	}

	if a := c.hooks.Achievements; a != nil && res.Move != nil && res.Move.Type == model.MoveTypePlay {
		calls["achievements"] = func(ctx context.Context) error {
			return a.OnPlay(ctx, game, res.Move, res.Score)
		}
	}

	if st := c.hooks.Stats; st != nil && res.Finished {
		calls["stats"] = func(ctx context.Context) error {
			return st.OnGameFinished(ctx, res.State)
		}
	}

	if len(calls) > 0 {
		c.dispatch(ctx, game.ID, calls)
	}
}

func (c *Controller) actionEvent(res *ActionResult, eventType model.EventType) model.Event {
	g := res.State.Game
	event := model.Event{
		Type:      eventType,
		Timestamp: g.UpdatedAt,
		GameID:    g.ID,
		Move:      res.Move,
	}
	if res.Move != nil {
		event.ActorID = res.Move.UserID
	}
	if !res.Finished {
		event.Payload = model.TurnPayload{NextTurn: g.CurrentTurn, TurnExpiresAt: g.TurnExpiresAt}
	}
	return event
}

func (c *Controller) finishedEvent(state *model.GameState) model.Event {
	scores := make(map[model.UserID]int, len(state.Players))
	for _, p := range state.Players {
		scores[p.UserID] = p.Score
	}
	return model.Event{
		Type:      model.EventGameFinished,
		Timestamp: state.Game.UpdatedAt,
		GameID:    state.Game.ID,
		Payload: model.GameFinishedPayload{
			WinnerID:    state.Game.WinnerID,
			EndReason:   state.Game.EndReason,
			FinalScores: scores,
		},
	}
}
