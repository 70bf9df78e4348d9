package rules

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wordtiles/internal/model"
)

type EndGameRulesSuite struct {
	suite.Suite
	state *model.GameState
}

func TestEndGameRulesSuite(t *testing.T) {
	suite.Run(t, new(EndGameRulesSuite))
}

func (s *EndGameRulesSuite) SetupTest() {
	s.state = &model.GameState{
		Game: &model.Game{ID: "g1", Status: model.GameStatusActive, CurrentTurn: "bob"},
		Players: []*model.GamePlayer{
			{UserID: "alice", TurnOrder: 0, Rack: []model.Tile{{Letter: "A", Points: 1}}},
			{UserID: "bob", TurnOrder: 1, Rack: []model.Tile{{Letter: "B", Points: 3}}},
		},
	}
}

func (s *EndGameRulesSuite) moves(types ...model.MoveType) {
	s.state.Moves = nil
	for _, t := range types {
		s.state.Moves = append(s.state.Moves, &model.Move{Type: t})
	}
}

func (s *EndGameRulesSuite) TestEmptyRackNeedsEmptyBag() {
	s.state.Players[0].Rack = nil
	s.state.Game.TileBag = []model.Tile{{Letter: "E", Points: 1}}

	s.False(EmptyRackRule{}.ShouldEndGame(s.state))
}

func (s *EndGameRulesSuite) TestEmptyRackGivesOpponentOneMove() {
	// Alice just went out; it is now Bob's final turn
	s.state.Players[0].Rack = nil
	s.False(EmptyRackRule{}.ShouldEndGame(s.state))

	// Bob has moved and the turn is back with Alice
	s.state.Game.CurrentTurn = "alice"
	s.True(EmptyRackRule{}.ShouldEndGame(s.state))
}

func (s *EndGameRulesSuite) TestBothRacksEmptyEndsImmediately() {
	s.state.Players[0].Rack = nil
	s.state.Players[1].Rack = nil

	s.True(EmptyRackRule{}.ShouldEndGame(s.state))
}

func (s *EndGameRulesSuite) TestFourTrailingPassesEnd() {
	s.moves(model.MoveTypePlay, model.MoveTypePass, model.MoveTypePass, model.MoveTypePass, model.MoveTypePass)
	s.True(ConsecutivePassRule{}.ShouldEndGame(s.state))
}

func (s *EndGameRulesSuite) TestThreePassesThenPlayDoesNotEnd() {
	s.moves(model.MoveTypePass, model.MoveTypePass, model.MoveTypePass, model.MoveTypePlay)
	s.False(ConsecutivePassRule{}.ShouldEndGame(s.state))

	s.moves(model.MoveTypePass, model.MoveTypePass, model.MoveTypePass)
	s.False(ConsecutivePassRule{}.ShouldEndGame(s.state))
}

func (s *EndGameRulesSuite) TestSwapBreaksThePassStreak() {
	s.moves(model.MoveTypePass, model.MoveTypePass, model.MoveTypeSwap, model.MoveTypePass, model.MoveTypePass)
	s.False(ConsecutivePassRule{}.ShouldEndGame(s.state))
}

func (s *EndGameRulesSuite) TestCheckEndGameReportsFirstMatchingRule() {
	engine := NewEngine(newFakeWords())

	s.False(engine.CheckEndGame(s.state).Ended)

	s.state.Players[0].Rack = nil
	s.state.Players[1].Rack = nil
	s.moves(model.MoveTypePass, model.MoveTypePass, model.MoveTypePass, model.MoveTypePass)

	check := engine.CheckEndGame(s.state)
	s.True(check.Ended)
	s.Equal(RuleEmptyRack, check.Rule)
	s.Equal(EmptyRackRule{}.EndReason(), check.Reason)
}
