package rules

import (
	"context"

	"github.com/mcoot/wordtiles/internal/model"
)

// Engine holds the fixed, ordered rule chains. It is built once at startup
// and is safe for concurrent use.
type Engine struct {
	turnRules    []TurnRule
	actionRules  []ActionRule
	endGameRules []EndGameRule
}

// NewEngine builds the standard rule chains around a dictionary
func NewEngine(words WordChecker) *Engine {
	return &Engine{
		turnRules: []TurnRule{
			BoardBoundsRule{},
			CellAvailabilityRule{},
			LinePlacementRule{},
			NoGapsRule{},
			FirstMoveCenterRule{},
			ConnectionRule{},
			TilesInRackRule{},
			NewWordValidationRule(words),
		},
		actionRules: []ActionRule{
			GameActiveRule{},
			ParticipantRule{},
			TurnOrderRule{},
			SwapLimitRule{},
		},
		endGameRules: []EndGameRule{
			EmptyRackRule{},
			ConsecutivePassRule{},
		},
	}
}

// TurnRuleIDs lists the turn rules in evaluation order
func (e *Engine) TurnRuleIDs() []string {
	ids := make([]string, 0, len(e.turnRules))
	for _, r := range e.turnRules {
		ids = append(ids, r.ID())
	}
	return ids
}

// ValidateTurn runs the turn chain and stops at the first failure,
// returning it. A passing chain returns a passing result.
func (e *Engine) ValidateTurn(ctx context.Context, in *TurnInput) (RuleResult, error) {
	for _, rule := range e.turnRules {
		result, err := rule.Validate(ctx, in)
		if err != nil {
			return RuleResult{}, err
		}
		if !result.Passed {
			return result, nil
		}
	}
	return Pass(RuleWordValidation), nil
}

// ValidateTurnAll runs every turn rule and returns all failures.
// Later rules may report consequences of earlier failures.
func (e *Engine) ValidateTurnAll(ctx context.Context, in *TurnInput) ([]RuleResult, error) {
	var failures []RuleResult
	for _, rule := range e.turnRules {
		result, err := rule.Validate(ctx, in)
		if err != nil {
			return nil, err
		}
		if !result.Passed {
			failures = append(failures, result)
		}
	}
	return failures, nil
}

// ValidateAction runs the game action chain, failing fast
func (e *Engine) ValidateAction(in *ActionInput) RuleResult {
	for _, rule := range e.actionRules {
		if result := rule.Validate(in); !result.Passed {
			return result
		}
	}
	return Pass(RuleSwapLimit)
}

// ValidateSwap checks the tiles named for a swap are a non-empty subset of the rack
func (e *Engine) ValidateSwap(player *model.GamePlayer, tiles []model.Tile) RuleResult {
	if len(tiles) == 0 {
		return Fail(RuleSwapTiles, "Choose at least one tile to swap")
	}
	if len(tiles) > model.RackSize {
		return Fail(RuleSwapTiles, "You cannot swap more tiles than a rack holds")
	}
	if _, missing := ConsumeTiles(player.Rack, tiles); missing != nil {
		return Fail(RuleSwapTiles, "Tile "+describeTile(*missing)+" is not in your rack")
	}
	return Pass(RuleSwapTiles)
}

// EndCheck reports which end-game rule fired, if any
type EndCheck struct {
	Ended  bool
	Rule   string
	Reason string
}

// CheckEndGame evaluates the end-game chain; the first matching rule wins
func (e *Engine) CheckEndGame(state *model.GameState) EndCheck {
	for _, rule := range e.endGameRules {
		if rule.ShouldEndGame(state) {
			return EndCheck{Ended: true, Rule: rule.ID(), Reason: rule.EndReason()}
		}
	}
	return EndCheck{}
}
