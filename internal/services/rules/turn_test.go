package rules

import (
	"context"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wordtiles/internal/model"
)

// fakeWords accepts any word in its set
type fakeWords struct {
	valid map[string]bool
	err   error
}

func newFakeWords(words ...string) *fakeWords {
	f := &fakeWords{valid: make(map[string]bool)}
	for _, w := range words {
		f.valid[strings.ToUpper(w)] = true
	}
	return f
}

func (f *fakeWords) FindInvalidWords(_ context.Context, words []string, _ string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	var invalid []string
	for _, w := range words {
		if !f.valid[strings.ToUpper(w)] {
			invalid = append(invalid, w)
		}
	}
	return invalid, nil
}

type TurnRulesSuite struct {
	suite.Suite
	ctx    context.Context
	game   *model.Game
	player *model.GamePlayer
}

func TestTurnRulesSuite(t *testing.T) {
	suite.Run(t, new(TurnRulesSuite))
}

func (s *TurnRulesSuite) SetupTest() {
	s.ctx = context.Background()
	s.game = &model.Game{ID: "g1", Language: "en", Board: model.NewBoard(model.BoardSize), Status: model.GameStatusActive}
	s.player = &model.GamePlayer{
		GameID: "g1",
		UserID: "alice",
		Rack: []model.Tile{
			{Letter: "C", Points: 3}, {Letter: "A", Points: 1}, {Letter: "T", Points: 1},
			{Letter: "S", Points: 1}, {Letter: "E", Points: 1}, {IsBlank: true}, {Letter: "A", Points: 1},
		},
	}
}

func (s *TurnRulesSuite) input(tiles ...model.PlacedTile) *TurnInput {
	return &TurnInput{Game: s.game, Board: s.game.Board, Player: s.player, Tiles: tiles}
}

func (s *TurnRulesSuite) validate(rule TurnRule, in *TurnInput) RuleResult {
	result, err := rule.Validate(s.ctx, in)
	s.Require().NoError(err)
	s.Equal(rule.ID(), result.Rule)
	return result
}

func pt(x, y int, letter string, points int) model.PlacedTile {
	return model.PlacedTile{X: x, Y: y, Letter: letter, Points: points}
}

func (s *TurnRulesSuite) TestBoardBounds() {
	s.True(s.validate(BoardBoundsRule{}, s.input(pt(0, 0, "A", 1), pt(14, 14, "A", 1))).Passed)

	result := s.validate(BoardBoundsRule{}, s.input(pt(7, 7, "A", 1), pt(15, 7, "T", 1)))
	s.False(result.Passed)
	s.Equal(ClassContent, result.Class)
	s.Contains(result.Message, "(15, 7)")
}

func (s *TurnRulesSuite) TestCellAvailability() {
	s.game.Board.Set(model.Position{X: 7, Y: 7}, model.Tile{Letter: "C", Points: 3})

	s.True(s.validate(CellAvailabilityRule{}, s.input(pt(8, 7, "A", 1))).Passed)
	s.False(s.validate(CellAvailabilityRule{}, s.input(pt(7, 7, "A", 1))).Passed)
	s.False(s.validate(CellAvailabilityRule{}, s.input(pt(3, 3, "A", 1), pt(3, 3, "T", 1))).Passed)
}

func (s *TurnRulesSuite) TestLinePlacement() {
	rule := LinePlacementRule{}

	s.True(s.validate(rule, s.input(pt(7, 7, "A", 1))).Passed)
	s.True(s.validate(rule, s.input(pt(7, 7, "A", 1), pt(9, 7, "T", 1))).Passed)
	s.True(s.validate(rule, s.input(pt(7, 7, "A", 1), pt(7, 3, "T", 1))).Passed)

	result := s.validate(rule, s.input(pt(7, 7, "A", 1), pt(8, 8, "T", 1)))
	s.False(result.Passed)
	s.Equal("Tiles must be placed in a single row or column", result.Message)

	s.False(s.validate(rule, s.input()).Passed)
}

func (s *TurnRulesSuite) TestNoGaps() {
	rule := NoGapsRule{}

	s.True(s.validate(rule, s.input(pt(7, 7, "C", 3), pt(8, 7, "A", 1), pt(9, 7, "T", 1))).Passed)
	s.False(s.validate(rule, s.input(pt(7, 7, "C", 3), pt(9, 7, "T", 1))).Passed)
	s.False(s.validate(rule, s.input(pt(7, 5, "C", 3), pt(7, 7, "T", 1))).Passed)

	// An existing tile may fill the gap
	s.game.Board.Set(model.Position{X: 8, Y: 7}, model.Tile{Letter: "A", Points: 1})
	s.True(s.validate(rule, s.input(pt(7, 7, "C", 3), pt(9, 7, "T", 1))).Passed)
}

func (s *TurnRulesSuite) TestFirstMoveCenter() {
	rule := FirstMoveCenterRule{}

	s.True(s.validate(rule, s.input(pt(6, 7, "A", 1), pt(7, 7, "T", 1))).Passed)
	s.False(s.validate(rule, s.input(pt(0, 0, "A", 1), pt(1, 0, "T", 1))).Passed)

	s.game.Board.Set(model.Position{X: 7, Y: 7}, model.Tile{Letter: "C", Points: 3})
	s.True(s.validate(rule, s.input(pt(0, 0, "A", 1))).Passed, "only the opening move is constrained")
}

func (s *TurnRulesSuite) TestConnection() {
	rule := ConnectionRule{}

	s.True(s.validate(rule, s.input(pt(0, 0, "A", 1))).Passed, "empty board skips the rule")

	s.game.Board.Set(model.Position{X: 7, Y: 7}, model.Tile{Letter: "C", Points: 3})
	s.True(s.validate(rule, s.input(pt(7, 8, "A", 1), pt(7, 9, "T", 1))).Passed)
	s.False(s.validate(rule, s.input(pt(8, 8, "A", 1), pt(9, 8, "T", 1))).Passed)
}

func (s *TurnRulesSuite) TestTilesInRack() {
	rule := TilesInRackRule{}

	s.True(s.validate(rule, s.input(pt(7, 7, "C", 3), pt(8, 7, "A", 1), pt(9, 7, "T", 1))).Passed)

	// Rack holds two As but only one T
	s.True(s.validate(rule, s.input(pt(7, 7, "A", 1), pt(8, 7, "A", 1))).Passed)
	s.False(s.validate(rule, s.input(pt(7, 7, "T", 1), pt(8, 7, "T", 1))).Passed)

	// Points must match too
	s.False(s.validate(rule, s.input(pt(7, 7, "C", 4))).Passed)

	// Blank played as Z
	blank := model.PlacedTile{X: 7, Y: 7, Letter: "Z", IsBlank: true}
	s.True(s.validate(rule, s.input(blank)).Passed)
	s.False(s.validate(rule, s.input(blank, model.PlacedTile{X: 8, Y: 7, Letter: "Q", IsBlank: true})).Passed)

	unassigned := model.PlacedTile{X: 7, Y: 7, IsBlank: true}
	s.Equal("Blank tiles must be assigned a letter", s.validate(rule, s.input(unassigned)).Message)
}

func (s *TurnRulesSuite) TestTilesInRackMissingPlayerIsAnError() {
	in := s.input(pt(7, 7, "C", 3))
	in.Player = nil

	_, err := TilesInRackRule{}.Validate(s.ctx, in)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *TurnRulesSuite) TestWordValidation() {
	rule := NewWordValidationRule(newFakeWords("CAT", "AT"))

	s.True(s.validate(rule, s.input(pt(7, 7, "C", 3), pt(8, 7, "A", 1), pt(9, 7, "T", 1))).Passed)

	result := s.validate(rule, s.input(pt(7, 7, "T", 1), pt(8, 7, "A", 1), pt(9, 7, "C", 3)))
	s.False(result.Passed)
	s.Equal("Not a valid word: TAC", result.Message)

	result = s.validate(rule, s.input(pt(7, 7, "A", 1)))
	s.False(result.Passed, "a lone tile forms no word")
}

func (s *TurnRulesSuite) TestWordValidationPropagatesDictionaryErrors() {
	words := newFakeWords()
	words.err = model.ErrDictionaryNotLoaded
	rule := NewWordValidationRule(words)

	_, err := rule.Validate(s.ctx, s.input(pt(7, 7, "A", 1), pt(8, 7, "T", 1)))
	s.True(errors.Is(err, model.ErrDictionaryNotLoaded))
}

func (s *TurnRulesSuite) TestRulesDoNotMutateBoard() {
	s.game.Board.Set(model.Position{X: 7, Y: 7}, model.Tile{Letter: "C", Points: 3})
	before := s.game.Board.Clone()
	in := s.input(pt(8, 7, "A", 1), pt(9, 7, "T", 1))

	for _, rule := range NewEngine(newFakeWords("CAT")).turnRules {
		_, err := rule.Validate(s.ctx, in)
		s.Require().NoError(err)
	}

	s.Equal(before, s.game.Board)
}

func (s *TurnRulesSuite) TestConsumeTiles() {
	rack := []model.Tile{{Letter: "A", Points: 1}, {IsBlank: true}, {Letter: "A", Points: 1}}

	rest, missing := ConsumeTiles(rack, []model.Tile{{Letter: "a", Points: 1}, {Letter: "E", IsBlank: true}})
	s.Nil(missing)
	s.Equal([]model.Tile{{Letter: "A", Points: 1}}, rest)
	s.Len(rack, 3, "input rack must not change")

	_, missing = ConsumeTiles(rack, []model.Tile{{Letter: "B", Points: 3}})
	s.Require().NotNil(missing)
	s.Equal("B", missing.Letter)
}
