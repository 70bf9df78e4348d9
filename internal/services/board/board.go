package board

import (
	"strings"

	"github.com/mcoot/wordtiles/internal/model"
)

// FormedWord is a maximal run of two or more tiles created or extended by a move
type FormedWord struct {
	Word       string
	Tiles      []model.PlacedTile // In reading order
	Horizontal bool
}

// Start returns the position of the first tile of the word
func (w FormedWord) Start() model.Position {
	return w.Tiles[0].Position()
}

// New creates an empty board of the standard size
func New() *model.Board {
	return model.NewBoard(model.BoardSize)
}

// IsWithinBounds returns true if (x, y) lies on the board
func IsWithinBounds(b *model.Board, x, y int) bool {
	return b.IsValidPosition(model.Position{X: x, Y: y})
}

// Center returns the center cell of the board
func Center(b *model.Board) model.Position {
	return model.Position{X: b.Size / 2, Y: b.Size / 2}
}

// IsCenter returns true if (x, y) is the center cell
func IsCenter(b *model.Board, x, y int) bool {
	c := Center(b)
	return c.X == x && c.Y == y
}

// PlaceTiles returns a copy of the board with the tiles overlaid.
// The input board is not modified.
func PlaceTiles(b *model.Board, tiles []model.PlacedTile) *model.Board {
	out := b.Clone()
	for _, t := range tiles {
		out.Set(t.Position(), t.Tile())
	}
	return out
}

// FindFormedWords scans outward from each newly placed tile along both axes
// and returns every distinct run of at least two occupied cells.
// The board must already contain the new tiles.
func FindFormedWords(b *model.Board, newTiles []model.PlacedTile) []FormedWord {
	type wordKey struct {
		start      model.Position
		horizontal bool
	}
	seen := make(map[wordKey]bool)

	var words []FormedWord
	for _, t := range newTiles {
		for _, horizontal := range []bool{true, false} {
			w, ok := wordThrough(b, t.Position(), horizontal)
			if !ok {
				continue
			}
			key := wordKey{start: w.Start(), horizontal: horizontal}
			if seen[key] {
				continue
			}
			seen[key] = true
			words = append(words, w)
		}
	}
	return words
}

// wordThrough returns the maximal run through pos along one axis
func wordThrough(b *model.Board, pos model.Position, horizontal bool) (FormedWord, bool) {
	dx, dy := 0, 1
	if horizontal {
		dx, dy = 1, 0
	}

	start := pos
	for {
		prev := model.Position{X: start.X - dx, Y: start.Y - dy}
		if b.IsEmpty(prev) {
			break
		}
		start = prev
	}

	var tiles []model.PlacedTile
	var sb strings.Builder
	for cur := start; !b.IsEmpty(cur); cur = (model.Position{X: cur.X + dx, Y: cur.Y + dy}) {
		tile := b.Get(cur)
		tiles = append(tiles, model.PlacedTile{
			X:       cur.X,
			Y:       cur.Y,
			Letter:  tile.Letter,
			Points:  tile.Points,
			IsBlank: tile.IsBlank,
		})
		sb.WriteString(tile.Letter)
	}

	if len(tiles) < 2 {
		return FormedWord{}, false
	}
	return FormedWord{Word: sb.String(), Tiles: tiles, Horizontal: horizontal}, true
}

// HasAdjacentTile returns true if any orthogonal neighbour of pos holds a tile
func HasAdjacentTile(b *model.Board, pos model.Position) bool {
	neighbours := []model.Position{
		{X: pos.X - 1, Y: pos.Y},
		{X: pos.X + 1, Y: pos.Y},
		{X: pos.X, Y: pos.Y - 1},
		{X: pos.X, Y: pos.Y + 1},
	}
	for _, n := range neighbours {
		if !b.IsEmpty(n) {
			return true
		}
	}
	return false
}
