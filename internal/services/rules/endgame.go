package rules

import "github.com/mcoot/wordtiles/internal/model"

// End-game rule identifiers, in evaluation order
const (
	RuleEmptyRack         = "empty_rack"
	RuleConsecutivePasses = "consecutive_passes"
)

// PassesToEnd is the number of trailing passes that ends a game
const PassesToEnd = 4

// EndGameRule is a predicate evaluated after every committed move
type EndGameRule interface {
	ID() string
	ShouldEndGame(state *model.GameState) bool
	EndReason() string
}

// EmptyRackRule ends the game once the bag is empty and racks run out.
// With one empty rack the opponent gets one final move, so the game ends
// when the turn comes back around to the player who went out.
type EmptyRackRule struct{}

func (EmptyRackRule) ID() string { return RuleEmptyRack }

func (EmptyRackRule) EndReason() string {
	return "A player used all their tiles and the bag is empty"
}

func (EmptyRackRule) ShouldEndGame(state *model.GameState) bool {
	if len(state.Game.TileBag) > 0 || len(state.Players) == 0 {
		return false
	}

	var empty []*model.GamePlayer
	for _, p := range state.Players {
		if len(p.Rack) == 0 {
			empty = append(empty, p)
		}
	}

	switch {
	case len(empty) == len(state.Players):
		return true
	case len(empty) == 1:
		return state.Game.CurrentTurn == empty[0].UserID
	default:
		return false
	}
}

// ConsecutivePassRule ends the game after four passes in a row by anyone
type ConsecutivePassRule struct{}

func (ConsecutivePassRule) ID() string { return RuleConsecutivePasses }

func (ConsecutivePassRule) EndReason() string {
	return "Four consecutive passes"
}

func (ConsecutivePassRule) ShouldEndGame(state *model.GameState) bool {
	recent := state.RecentMoves(PassesToEnd)
	if len(recent) < PassesToEnd {
		return false
	}
	for _, m := range recent {
		if m.Type != model.MoveTypePass {
			return false
		}
	}
	return true
}
