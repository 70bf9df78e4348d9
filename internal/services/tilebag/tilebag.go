package tilebag

import (
	"github.com/cockroachdb/errors"

	"github.com/mcoot/wordtiles/internal/dependencies/random"
	"github.com/mcoot/wordtiles/internal/model"
)

// LetterSpec is one row of a letter distribution
type LetterSpec struct {
	Letter string
	Points int
	Count  int
}

// BlankCount is the number of blank tiles in every distribution
const BlankCount = 2

// distributions maps a language to its letter set, excluding blanks
var distributions = map[string][]LetterSpec{
	"en": {
		{"A", 1, 9}, {"B", 3, 2}, {"C", 3, 2}, {"D", 2, 4}, {"E", 1, 12},
		{"F", 4, 2}, {"G", 2, 3}, {"H", 4, 2}, {"I", 1, 9}, {"J", 8, 1},
		{"K", 5, 1}, {"L", 1, 4}, {"M", 3, 2}, {"N", 1, 6}, {"O", 1, 8},
		{"P", 3, 2}, {"Q", 10, 1}, {"R", 1, 6}, {"S", 1, 4}, {"T", 1, 6},
		{"U", 1, 4}, {"V", 4, 2}, {"W", 4, 2}, {"X", 8, 1}, {"Y", 4, 2},
		{"Z", 10, 1},
	},
}

// Service builds, draws from and refills tile bags
type Service struct {
	random random.Random
}

// New creates a new tile bag Service
func New(rnd random.Random) *Service {
	return &Service{random: rnd}
}

// Supports returns true if a distribution exists for the language
func Supports(language string) bool {
	_, ok := distributions[language]
	return ok
}

// LetterValue returns the point value of a letter in a language, and whether it exists
func LetterValue(language, letter string) (int, bool) {
	for _, spec := range distributions[language] {
		if spec.Letter == letter {
			return spec.Points, true
		}
	}
	return 0, false
}

// NewBag returns a shuffled full bag for the language
func (s *Service) NewBag(language string) ([]model.Tile, error) {
	dist, ok := distributions[language]
	if !ok {
		return nil, errors.Wrapf(model.ErrUnsupportedLanguage, "no tile distribution for %q", language)
	}

	var bag []model.Tile
	for _, spec := range dist {
		for i := 0; i < spec.Count; i++ {
			bag = append(bag, model.Tile{Letter: spec.Letter, Points: spec.Points})
		}
	}
	for i := 0; i < BlankCount; i++ {
		bag = append(bag, model.Tile{IsBlank: true})
	}

	s.shuffle(bag)
	return bag, nil
}

// Draw removes up to n uniformly chosen tiles from the bag.
// It returns the drawn tiles and the remaining bag; if the bag holds fewer
// than n tiles, everything left is drawn.
func (s *Service) Draw(bag []model.Tile, n int) (drawn, rest []model.Tile) {
	rest = append([]model.Tile(nil), bag...)
	for i := 0; i < n && len(rest) > 0; i++ {
		idx := s.random.Intn(len(rest))
		drawn = append(drawn, rest[idx])
		rest = append(rest[:idx], rest[idx+1:]...)
	}
	return drawn, rest
}

// Return puts tiles back into the bag and shuffles it.
// Blanks lose any letter they were assigned.
func (s *Service) Return(bag, tiles []model.Tile) []model.Tile {
	out := append([]model.Tile(nil), bag...)
	for _, t := range tiles {
		if t.IsBlank {
			t = model.Tile{IsBlank: true}
		}
		out = append(out, t)
	}
	s.shuffle(out)
	return out
}

// Refill tops a player's rack up to the rack size from the bag and returns the remaining bag
func (s *Service) Refill(player *model.GamePlayer, bag []model.Tile) []model.Tile {
	need := model.RackSize - len(player.Rack)
	if need <= 0 {
		return bag
	}
	drawn, rest := s.Draw(bag, need)
	for _, t := range drawn {
		if t.IsBlank {
			player.HasReceivedBlank = true
		}
	}
	player.Rack = append(player.Rack, drawn...)
	return rest
}

func (s *Service) shuffle(tiles []model.Tile) {
	s.random.Shuffle(len(tiles), func(i, j int) {
		tiles[i], tiles[j] = tiles[j], tiles[i]
	})
}
