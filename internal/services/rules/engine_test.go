package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wordtiles/internal/model"
)

type EngineSuite struct {
	suite.Suite
	engine *Engine
	in     *TurnInput
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) SetupTest() {
	s.engine = NewEngine(newFakeWords("CAT"))
	game := &model.Game{ID: "g1", Language: "en", Board: model.NewBoard(model.BoardSize), Status: model.GameStatusActive}
	s.in = &TurnInput{
		Game:  game,
		Board: game.Board,
		Player: &model.GamePlayer{
			UserID: "alice",
			Rack:   []model.Tile{{Letter: "C", Points: 3}, {Letter: "A", Points: 1}, {Letter: "T", Points: 1}},
		},
	}
}

func (s *EngineSuite) TestRuleOrder() {
	s.Equal([]string{
		RuleBoardBounds, RuleCellAvailability, RuleLinePlacement, RuleNoGaps,
		RuleFirstMoveCenter, RuleConnection, RuleTilesInRack, RuleWordValidation,
	}, s.engine.TurnRuleIDs())
}

func (s *EngineSuite) TestValidPlacementPasses() {
	s.in.Tiles = []model.PlacedTile{pt(7, 7, "C", 3), pt(8, 7, "A", 1), pt(9, 7, "T", 1)}

	result, err := s.engine.ValidateTurn(context.Background(), s.in)
	s.Require().NoError(err)
	s.True(result.Passed)
}

func (s *EngineSuite) TestShortCircuitsOnFirstFailure() {
	// Diagonal, off center and not in the rack: line placement is reported first
	s.in.Tiles = []model.PlacedTile{pt(0, 0, "X", 8), pt(1, 1, "Y", 4)}

	result, err := s.engine.ValidateTurn(context.Background(), s.in)
	s.Require().NoError(err)
	s.False(result.Passed)
	s.Equal(RuleLinePlacement, result.Rule)
}

func (s *EngineSuite) TestValidateTurnAllCollectsEveryFailure() {
	s.in.Tiles = []model.PlacedTile{pt(0, 0, "X", 8), pt(1, 1, "Y", 4)}

	failures, err := s.engine.ValidateTurnAll(context.Background(), s.in)
	s.Require().NoError(err)

	rules := make([]string, 0, len(failures))
	for _, f := range failures {
		rules = append(rules, f.Rule)
	}
	s.Contains(rules, RuleLinePlacement)
	s.Contains(rules, RuleFirstMoveCenter)
	s.Contains(rules, RuleTilesInRack)
}
