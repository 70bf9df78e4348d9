package scoring

import (
	"github.com/mcoot/wordtiles/internal/model"
	"github.com/mcoot/wordtiles/internal/services/board"
)

// Context is everything one scoring run needs. It is built per move and never persisted.
type Context struct {
	Game     *model.Game
	Player   *model.GamePlayer
	Words    []board.FormedWord
	NewTiles map[model.Position]model.PlacedTile

	// End-game flags, evaluated as if the move had been committed
	RackEmptyAfter bool
	BagEmpty       bool
	// BonusClaimed is set once any player in the game has gone out
	BonusClaimed bool
}

// NewContext builds a context for tiles already overlaid onto after
func NewContext(game *model.Game, player *model.GamePlayer, after *model.Board, tiles []model.PlacedTile, rackEmptyAfter, bagEmpty bool) *Context {
	newTiles := make(map[model.Position]model.PlacedTile, len(tiles))
	for _, t := range tiles {
		newTiles[t.Position()] = t
	}
	return &Context{
		Game:           game,
		Player:         player,
		Words:          board.FindFormedWords(after, tiles),
		NewTiles:       newTiles,
		RackEmptyAfter: rackEmptyAfter,
		BagEmpty:       bagEmpty,
	}
}

// IsNew returns true if the position was filled by this move
func (c *Context) IsNew(pos model.Position) bool {
	_, ok := c.NewTiles[pos]
	return ok
}

// TilesPlaced returns the number of tiles this move placed
func (c *Context) TilesPlaced() int {
	return len(c.NewTiles)
}

func (c *Context) square(pos model.Position) model.SquareType {
	var tmpl model.Template
	if c.Game != nil {
		tmpl = c.Game.Template
	}
	return board.SquareType(tmpl, pos.X, pos.Y)
}
