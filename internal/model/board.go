package model

// BoardSize is the dimension of every game board
const BoardSize = 15

// RackSize is the maximum number of tiles a player holds
const RackSize = 7

// Position identifies a cell on the board
type Position struct {
	X int `json:"x"` // Column, 0-indexed from left
	Y int `json:"y"` // Row, 0-indexed from top
}

// Tile is a letter tile in a rack or the bag.
// A blank tile in a rack has an empty Letter until it is placed.
type Tile struct {
	Letter  string `json:"letter"`
	Points  int    `json:"points"`
	IsBlank bool   `json:"is_blank"`
}

// PlacedTile is a tile positioned on the board, either proposed or committed
type PlacedTile struct {
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Letter  string `json:"letter"`
	Points  int    `json:"points"`
	IsBlank bool   `json:"is_blank"`
}

// Position returns the cell the tile occupies
func (t PlacedTile) Position() Position {
	return Position{X: t.X, Y: t.Y}
}

// Tile returns the tile without its position
func (t PlacedTile) Tile() Tile {
	return Tile{Letter: t.Letter, Points: t.Points, IsBlank: t.IsBlank}
}

// Value is the tile's contribution to a word before multipliers
func (t PlacedTile) Value() int {
	if t.IsBlank {
		return 0
	}
	return t.Points
}

// SquareType labels a board cell in a template
type SquareType string

const (
	SquareNormal       SquareType = ".."
	SquareDoubleLetter SquareType = "DL"
	SquareTripleLetter SquareType = "TL"
	SquareDoubleWord   SquareType = "DW"
	SquareTripleWord   SquareType = "TW"
	SquareCenter       SquareType = "ST"
)

// LetterMultiplier is the factor applied to a tile newly placed on this square
func (s SquareType) LetterMultiplier() int {
	switch s {
	case SquareDoubleLetter:
		return 2
	case SquareTripleLetter:
		return 3
	default:
		return 1
	}
}

// WordMultiplier is the factor applied once per word to a word covering this square
// with a newly placed tile. The center star counts as a double word.
func (s SquareType) WordMultiplier() int {
	switch s {
	case SquareDoubleWord, SquareCenter:
		return 2
	case SquareTripleWord:
		return 3
	default:
		return 1
	}
}

// Template is a square grid of square types, indexed [y][x]
type Template [][]SquareType

// Board is the shared grid of committed tiles, indexed Cells[y][x]; nil means empty
type Board struct {
	Size  int       `json:"size"`
	Cells [][]*Tile `json:"cells"`
}

// NewBoard creates an empty board of the given size
func NewBoard(size int) *Board {
	cells := make([][]*Tile, size)
	for i := range cells {
		cells[i] = make([]*Tile, size)
	}
	return &Board{
		Size:  size,
		Cells: cells,
	}
}

// IsValidPosition returns true if the position is within bounds
func (b *Board) IsValidPosition(pos Position) bool {
	return pos.X >= 0 && pos.X < b.Size && pos.Y >= 0 && pos.Y < b.Size
}

// Get returns the tile at the given position, or nil if empty or out of bounds
func (b *Board) Get(pos Position) *Tile {
	if !b.IsValidPosition(pos) {
		return nil
	}
	return b.Cells[pos.Y][pos.X]
}

// Set places a tile at the given position
func (b *Board) Set(pos Position, tile Tile) {
	if b.IsValidPosition(pos) {
		t := tile
		b.Cells[pos.Y][pos.X] = &t
	}
}

// IsEmpty returns true if the cell at the given position holds no tile
func (b *Board) IsEmpty(pos Position) bool {
	return b.Get(pos) == nil
}

// IsBoardEmpty returns true if no tile has been committed yet
func (b *Board) IsBoardEmpty() bool {
	return b.TileCount() == 0
}

// TileCount returns the number of occupied cells
func (b *Board) TileCount() int {
	count := 0
	for y := 0; y < b.Size; y++ {
		for x := 0; x < b.Size; x++ {
			if b.Cells[y][x] != nil {
				count++
			}
		}
	}
	return count
}

// Clone returns a deep copy of the board
func (b *Board) Clone() *Board {
	if b == nil {
		return nil
	}
	out := NewBoard(b.Size)
	for y := 0; y < b.Size; y++ {
		for x := 0; x < b.Size; x++ {
			if t := b.Cells[y][x]; t != nil {
				c := *t
				out.Cells[y][x] = &c
			}
		}
	}
	return out
}
