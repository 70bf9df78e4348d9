package rules

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/mcoot/wordtiles/internal/model"
	"github.com/mcoot/wordtiles/internal/services/board"
)

// Turn rule identifiers, in evaluation order
const (
	RuleBoardBounds      = "board_bounds"
	RuleCellAvailability = "cell_availability"
	RuleLinePlacement    = "line_placement"
	RuleNoGaps           = "no_gaps"
	RuleFirstMoveCenter  = "first_move_center"
	RuleConnection       = "connection"
	RuleTilesInRack      = "tiles_in_rack"
	RuleWordValidation   = "word_validation"
)

// WordChecker looks up words in a language's dictionary
type WordChecker interface {
	FindInvalidWords(ctx context.Context, words []string, language string) ([]string, error)
}

// TurnInput is a proposed placement and the read-only state it is judged against
type TurnInput struct {
	Game   *model.Game
	Board  *model.Board
	Player *model.GamePlayer // The acting player; nil is an exceptional condition
	Tiles  []model.PlacedTile
}

// TurnRule decides one aspect of placement legality.
// Rules never mutate their input; errors are reserved for exceptional conditions.
type TurnRule interface {
	ID() string
	Validate(ctx context.Context, in *TurnInput) (RuleResult, error)
}

// BoardBoundsRule requires every tile to land on the board
type BoardBoundsRule struct{}

func (BoardBoundsRule) ID() string { return RuleBoardBounds }

func (r BoardBoundsRule) Validate(_ context.Context, in *TurnInput) (RuleResult, error) {
	for _, t := range in.Tiles {
		if !board.IsWithinBounds(in.Board, t.X, t.Y) {
			return Fail(r.ID(), fmt.Sprintf("Position (%d, %d) is outside the board", t.X, t.Y)), nil
		}
	}
	return Pass(r.ID()), nil
}

// CellAvailabilityRule forbids placing on occupied cells or twice on the same cell
type CellAvailabilityRule struct{}

func (CellAvailabilityRule) ID() string { return RuleCellAvailability }

func (r CellAvailabilityRule) Validate(_ context.Context, in *TurnInput) (RuleResult, error) {
	seen := make(map[model.Position]bool, len(in.Tiles))
	for _, t := range in.Tiles {
		pos := t.Position()
		if seen[pos] {
			return Fail(r.ID(), fmt.Sprintf("Position (%d, %d) is used more than once", t.X, t.Y)), nil
		}
		seen[pos] = true
		if !in.Board.IsEmpty(pos) {
			return Fail(r.ID(), fmt.Sprintf("Position (%d, %d) is already occupied", t.X, t.Y)), nil
		}
	}
	return Pass(r.ID()), nil
}

// LinePlacementRule requires tiles to share a single row or column
type LinePlacementRule struct{}

func (LinePlacementRule) ID() string { return RuleLinePlacement }

func (r LinePlacementRule) Validate(_ context.Context, in *TurnInput) (RuleResult, error) {
	if len(in.Tiles) == 0 {
		return Fail(r.ID(), "At least one tile must be placed"), nil
	}
	if len(in.Tiles) > model.RackSize {
		return Fail(r.ID(), fmt.Sprintf("At most %d tiles can be placed", model.RackSize)), nil
	}
	if len(in.Tiles) == 1 {
		return Pass(r.ID()), nil
	}
	if !isHorizontal(in.Tiles) && !isVertical(in.Tiles) {
		return Fail(r.ID(), "Tiles must be placed in a single row or column"), nil
	}
	return Pass(r.ID()), nil
}

// NoGapsRule requires every cell between the outermost placed tiles to be filled
type NoGapsRule struct{}

func (NoGapsRule) ID() string { return RuleNoGaps }

func (r NoGapsRule) Validate(_ context.Context, in *TurnInput) (RuleResult, error) {
	if len(in.Tiles) < 2 {
		return Pass(r.ID()), nil
	}

	horizontal := isHorizontal(in.Tiles)
	axis := make([]int, 0, len(in.Tiles))
	placed := make(map[model.Position]bool, len(in.Tiles))
	for _, t := range in.Tiles {
		placed[t.Position()] = true
		if horizontal {
			axis = append(axis, t.X)
		} else {
			axis = append(axis, t.Y)
		}
	}
	sort.Ints(axis)

	fixed := in.Tiles[0].Y
	if !horizontal {
		fixed = in.Tiles[0].X
	}
	for i := axis[0]; i <= axis[len(axis)-1]; i++ {
		pos := model.Position{X: i, Y: fixed}
		if !horizontal {
			pos = model.Position{X: fixed, Y: i}
		}
		if !placed[pos] && in.Board.IsEmpty(pos) {
			return Fail(r.ID(), "Tiles must not leave gaps"), nil
		}
	}
	return Pass(r.ID()), nil
}

// FirstMoveCenterRule requires the opening move to cover the center cell
type FirstMoveCenterRule struct{}

func (FirstMoveCenterRule) ID() string { return RuleFirstMoveCenter }

func (r FirstMoveCenterRule) Validate(_ context.Context, in *TurnInput) (RuleResult, error) {
	if !in.Board.IsBoardEmpty() {
		return Pass(r.ID()), nil
	}
	for _, t := range in.Tiles {
		if board.IsCenter(in.Board, t.X, t.Y) {
			return Pass(r.ID()), nil
		}
	}
	return Fail(r.ID(), "The first move must cover the center square"), nil
}

// ConnectionRule requires later moves to touch an existing tile
type ConnectionRule struct{}

func (ConnectionRule) ID() string { return RuleConnection }

func (r ConnectionRule) Validate(_ context.Context, in *TurnInput) (RuleResult, error) {
	if in.Board.IsBoardEmpty() {
		return Pass(r.ID()), nil
	}
	for _, t := range in.Tiles {
		if board.HasAdjacentTile(in.Board, t.Position()) {
			return Pass(r.ID()), nil
		}
	}
	return Fail(r.ID(), "Tiles must connect to tiles already on the board"), nil
}

// TilesInRackRule requires every placed tile to come from the player's rack
type TilesInRackRule struct{}

func (TilesInRackRule) ID() string { return RuleTilesInRack }

func (r TilesInRackRule) Validate(_ context.Context, in *TurnInput) (RuleResult, error) {
	if in.Player == nil {
		return RuleResult{}, errors.Wrap(model.ErrPlayerNotFound, "validating rack")
	}

	wanted := make([]model.Tile, 0, len(in.Tiles))
	for _, t := range in.Tiles {
		if t.Letter == "" {
			return Fail(r.ID(), "Blank tiles must be assigned a letter"), nil
		}
		wanted = append(wanted, t.Tile())
	}

	if _, missing := ConsumeTiles(in.Player.Rack, wanted); missing != nil {
		return Fail(r.ID(), fmt.Sprintf("Tile %s is not in your rack", describeTile(*missing))), nil
	}
	return Pass(r.ID()), nil
}

// WordValidationRule requires the move to form only dictionary words
type WordValidationRule struct {
	words WordChecker
}

// NewWordValidationRule creates the dictionary-backed rule
func NewWordValidationRule(words WordChecker) *WordValidationRule {
	return &WordValidationRule{words: words}
}

func (*WordValidationRule) ID() string { return RuleWordValidation }

func (r *WordValidationRule) Validate(ctx context.Context, in *TurnInput) (RuleResult, error) {
	after := board.PlaceTiles(in.Board, in.Tiles)
	formed := board.FindFormedWords(after, in.Tiles)
	if len(formed) == 0 {
		return Fail(r.ID(), "The move must form a word of at least two letters"), nil
	}

	words := make([]string, 0, len(formed))
	for _, w := range formed {
		words = append(words, w.Word)
	}
	invalid, err := r.words.FindInvalidWords(ctx, words, in.Game.Language)
	if err != nil {
		return RuleResult{}, errors.Wrap(err, "dictionary lookup")
	}
	if len(invalid) > 0 {
		return Fail(r.ID(), fmt.Sprintf("Not a valid word: %s", strings.Join(invalid, ", "))), nil
	}
	return Pass(r.ID()), nil
}

// ConsumeTiles removes each wanted tile from the rack, letting every rack tile
// satisfy at most one wanted tile. Blanks match any blank; other tiles match
// on letter and points. It returns the remaining rack, or the first tile that
// could not be matched.
func ConsumeTiles(rack, wanted []model.Tile) ([]model.Tile, *model.Tile) {
	remaining := append([]model.Tile(nil), rack...)
	for _, w := range wanted {
		idx := -1
		for i, t := range remaining {
			if matchesRackTile(t, w) {
				idx = i
				break
			}
		}
		if idx == -1 {
			missing := w
			return nil, &missing
		}
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}
	return remaining, nil
}

func matchesRackTile(rackTile, wanted model.Tile) bool {
	if wanted.IsBlank {
		return rackTile.IsBlank
	}
	return !rackTile.IsBlank &&
		strings.EqualFold(rackTile.Letter, wanted.Letter) &&
		rackTile.Points == wanted.Points
}

func describeTile(t model.Tile) string {
	if t.IsBlank {
		return "blank"
	}
	return fmt.Sprintf("%s (%d)", t.Letter, t.Points)
}

func isHorizontal(tiles []model.PlacedTile) bool {
	for _, t := range tiles[1:] {
		if t.Y != tiles[0].Y {
			return false
		}
	}
	return true
}

func isVertical(tiles []model.PlacedTile) bool {
	for _, t := range tiles[1:] {
		if t.X != tiles[0].X {
			return false
		}
	}
	return true
}
