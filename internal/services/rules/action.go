package rules

import (
	"fmt"

	"github.com/mcoot/wordtiles/internal/model"
)

// Game action rule identifiers, in evaluation order
const (
	RuleGameActive  = "game_active"
	RuleParticipant = "participant"
	RuleTurnOrder   = "turn_order"
	RuleSwapLimit   = "swap_limit"
	RuleSwapTiles   = "swap_tiles"
)

// MinBagForSwap is the number of tiles the bag must hold for a swap
const MinBagForSwap = 7

// ActionType is the kind of action a player attempts
type ActionType string

const (
	ActionPlay   ActionType = "play"
	ActionPass   ActionType = "pass"
	ActionSwap   ActionType = "swap"
	ActionResign ActionType = "resign"
)

// ActionInput is an attempted action independent of its content
type ActionInput struct {
	State  *model.GameState
	Actor  model.UserID
	Action ActionType
}

// ActionRule guards whether an action may be attempted at all
type ActionRule interface {
	ID() string
	Validate(in *ActionInput) RuleResult
}

// GameActiveRule rejects actions on pending or finished games
type GameActiveRule struct{}

func (GameActiveRule) ID() string { return RuleGameActive }

func (r GameActiveRule) Validate(in *ActionInput) RuleResult {
	switch in.State.Game.Status {
	case model.GameStatusActive:
		return Pass(r.ID())
	case model.GameStatusFinished:
		return Fail(r.ID(), "The game has already finished")
	default:
		return Fail(r.ID(), "The game has not started yet")
	}
}

// ParticipantRule rejects users who have no seat in the game
type ParticipantRule struct{}

func (ParticipantRule) ID() string { return RuleParticipant }

func (r ParticipantRule) Validate(in *ActionInput) RuleResult {
	if in.State.Player(in.Actor) == nil {
		return Deny(r.ID(), "You are not a player in this game")
	}
	return Pass(r.ID())
}

// TurnOrderRule rejects actions out of turn. Resigning is always allowed.
type TurnOrderRule struct{}

func (TurnOrderRule) ID() string { return RuleTurnOrder }

func (r TurnOrderRule) Validate(in *ActionInput) RuleResult {
	if in.Action == ActionResign {
		return Pass(r.ID())
	}
	if in.State.Game.CurrentTurn != in.Actor {
		return Deny(r.ID(), "It is not your turn")
	}
	return Pass(r.ID())
}

// SwapLimitRule only allows swaps while the bag holds enough tiles
type SwapLimitRule struct{}

func (SwapLimitRule) ID() string { return RuleSwapLimit }

func (r SwapLimitRule) Validate(in *ActionInput) RuleResult {
	if in.Action != ActionSwap {
		return Pass(r.ID())
	}
	if len(in.State.Game.TileBag) < MinBagForSwap {
		return Fail(r.ID(), fmt.Sprintf("Swapping needs at least %d tiles in the bag", MinBagForSwap))
	}
	return Pass(r.ID())
}
