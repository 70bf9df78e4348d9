package rules

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wordtiles/internal/model"
)

type ActionRulesSuite struct {
	suite.Suite
	state *model.GameState
}

func TestActionRulesSuite(t *testing.T) {
	suite.Run(t, new(ActionRulesSuite))
}

func (s *ActionRulesSuite) SetupTest() {
	s.state = &model.GameState{
		Game: &model.Game{
			ID:          "g1",
			Status:      model.GameStatusActive,
			CurrentTurn: "alice",
			TileBag:     make([]model.Tile, 20),
		},
		Players: []*model.GamePlayer{
			{GameID: "g1", UserID: "alice", TurnOrder: 0},
			{GameID: "g1", UserID: "bob", TurnOrder: 1},
		},
	}
}

func (s *ActionRulesSuite) in(actor model.UserID, action ActionType) *ActionInput {
	return &ActionInput{State: s.state, Actor: actor, Action: action}
}

func (s *ActionRulesSuite) TestGameActive() {
	s.True(GameActiveRule{}.Validate(s.in("alice", ActionPlay)).Passed)

	s.state.Game.Status = model.GameStatusPending
	s.False(GameActiveRule{}.Validate(s.in("alice", ActionPlay)).Passed)

	s.state.Game.Status = model.GameStatusFinished
	result := GameActiveRule{}.Validate(s.in("alice", ActionResign))
	s.False(result.Passed)
	s.Equal(ClassContent, result.Class)
}

func (s *ActionRulesSuite) TestParticipant() {
	s.True(ParticipantRule{}.Validate(s.in("bob", ActionPass)).Passed)

	result := ParticipantRule{}.Validate(s.in("mallory", ActionPass))
	s.False(result.Passed)
	s.Equal(ClassAuthorization, result.Class)
}

func (s *ActionRulesSuite) TestTurnOrder() {
	s.True(TurnOrderRule{}.Validate(s.in("alice", ActionPlay)).Passed)

	for _, action := range []ActionType{ActionPlay, ActionPass, ActionSwap} {
		result := TurnOrderRule{}.Validate(s.in("bob", action))
		s.False(result.Passed, action)
		s.Equal(ClassAuthorization, result.Class)
		s.Equal("It is not your turn", result.Message)
	}

	s.True(TurnOrderRule{}.Validate(s.in("bob", ActionResign)).Passed, "resign ignores turn order")
}

func (s *ActionRulesSuite) TestSwapLimit() {
	s.state.Game.TileBag = make([]model.Tile, MinBagForSwap)
	s.True(SwapLimitRule{}.Validate(s.in("alice", ActionSwap)).Passed)

	s.state.Game.TileBag = make([]model.Tile, MinBagForSwap-1)
	s.False(SwapLimitRule{}.Validate(s.in("alice", ActionSwap)).Passed)
	s.True(SwapLimitRule{}.Validate(s.in("alice", ActionPass)).Passed, "only swaps need tiles in the bag")
}

func (s *ActionRulesSuite) TestEngineFailsFastInOrder() {
	engine := NewEngine(newFakeWords())

	s.state.Game.Status = model.GameStatusFinished
	s.Equal(RuleGameActive, engine.ValidateAction(s.in("mallory", ActionPlay)).Rule)

	s.state.Game.Status = model.GameStatusActive
	s.Equal(RuleParticipant, engine.ValidateAction(s.in("mallory", ActionPlay)).Rule)
	s.Equal(RuleTurnOrder, engine.ValidateAction(s.in("bob", ActionSwap)).Rule)

	s.state.Game.TileBag = nil
	s.Equal(RuleSwapLimit, engine.ValidateAction(s.in("alice", ActionSwap)).Rule)
	s.True(engine.ValidateAction(s.in("alice", ActionPass)).Passed)
}

func (s *ActionRulesSuite) TestValidateSwap() {
	engine := NewEngine(newFakeWords())
	player := &model.GamePlayer{Rack: []model.Tile{{Letter: "Q", Points: 10}, {IsBlank: true}}}

	s.True(engine.ValidateSwap(player, []model.Tile{{Letter: "Q", Points: 10}, {IsBlank: true}}).Passed)
	s.False(engine.ValidateSwap(player, nil).Passed)
	s.False(engine.ValidateSwap(player, []model.Tile{{Letter: "Q", Points: 10}, {Letter: "Q", Points: 10}}).Passed)
}
