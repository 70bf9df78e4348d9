package request

import (
	"fmt"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"

	"github.com/mcoot/wordtiles/internal/api/apierr"
	"github.com/mcoot/wordtiles/internal/model"
)

var validate = validator.New()

// CreateGameRequest is the request body for creating a game
type CreateGameRequest struct {
	Opponent string   `json:"opponent,omitempty" validate:"omitempty,max=128"`
	Language string   `json:"language,omitempty" validate:"omitempty,alpha,max=8"`
	Template []string `json:"template,omitempty" validate:"omitempty,len=15,dive,len=15"`
}

// Tile is a rack tile named in a swap
type Tile struct {
	Letter  string `json:"letter" validate:"omitempty,alpha,max=1"`
	Points  int    `json:"points" validate:"min=0"`
	IsBlank bool   `json:"is_blank"`
}

// PlacedTile is one tile of a proposed play. Blanks carry their assigned letter.
type PlacedTile struct {
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Letter  string `json:"letter" validate:"omitempty,alpha,max=1"`
	Points  int    `json:"points" validate:"min=0"`
	IsBlank bool   `json:"is_blank"`
}

// PlayRequest is the request body for playing or validating a move
type PlayRequest struct {
	Tiles []PlacedTile `json:"tiles" validate:"max=7,dive"`
}

// SwapRequest is the request body for swapping tiles
type SwapRequest struct {
	Tiles []Tile `json:"tiles" validate:"max=7,dive"`
}

// ToModel converts the placement to model tiles
func (r PlayRequest) ToModel() []model.PlacedTile {
	out := make([]model.PlacedTile, len(r.Tiles))
	for i, t := range r.Tiles {
		out[i] = model.PlacedTile{X: t.X, Y: t.Y, Letter: t.Letter, Points: t.Points, IsBlank: t.IsBlank}
	}
	return out
}

// ToModel converts the swapped tiles to model tiles
func (r SwapRequest) ToModel() []model.Tile {
	out := make([]model.Tile, len(r.Tiles))
	for i, t := range r.Tiles {
		out[i] = model.Tile{Letter: t.Letter, Points: t.Points, IsBlank: t.IsBlank}
	}
	return out
}

// Decode reads a JSON body into v and validates it. An empty body leaves v zero.
func Decode(r *http.Request, v any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return apierr.NewInvalidRequestError("invalid request body")
	}
	if err := validate.Struct(v); err != nil {
		return apierr.NewInvalidRequestError(fmt.Sprintf("validation failed: %v", err))
	}
	return nil
}
