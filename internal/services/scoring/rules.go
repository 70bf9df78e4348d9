package scoring

import (
	"github.com/cockroachdb/errors"
)

// Scoring rule identifiers, in application order
const (
	RuleLetterScore   = "letter_score"
	RuleBingo         = "bingo"
	RuleWordLength    = "word_length"
	RuleWordExtension = "word_extension"
	RuleEndGame       = "end_game"
)

const (
	BingoTiles   = 7
	BingoBonus   = 50
	EndGameBonus = 25

	// minExtension is the least number of both existing and new tiles a word
	// needs for the extension bonus
	minExtension = 2
)

// tilesPlayedBonus is keyed by the number of tiles placed this move
var tilesPlayedBonus = map[int]int{2: 3, 3: 6, 4: 12, 5: 25, 6: 50, 7: 100}

// extensionBonus is keyed by the number of existing tiles in the extended word.
// Thirteen or more existing tiles earn the last entry.
var extensionBonus = map[int]int{
	2: 10, 3: 12, 4: 15, 5: 19, 6: 23, 7: 28,
	8: 35, 9: 43, 10: 53, 11: 66, 12: 81, 13: 100,
}

const maxExtensionKey = 13

// Rule adds its contribution to the accumulating result
type Rule interface {
	ID() string
	Apply(c *Context, acc *Result) error
}

// LetterScoreRule scores every formed word. Square multipliers only count
// under tiles placed this move; word multipliers stack.
type LetterScoreRule struct{}

func (LetterScoreRule) ID() string { return RuleLetterScore }

func (LetterScoreRule) Apply(c *Context, acc *Result) error {
	for _, w := range c.Words {
		if len(w.Tiles) == 0 {
			return errors.AssertionFailedf("formed word %q has no tiles", w.Word)
		}

		sum, wordMultiplier := 0, 1
		for _, t := range w.Tiles {
			value := t.Value()
			if c.IsNew(t.Position()) {
				sq := c.square(t.Position())
				value *= sq.LetterMultiplier()
				wordMultiplier *= sq.WordMultiplier()
			}
			sum += value
		}
		acc.AddWord(w.Word, sum*wordMultiplier)
	}
	return nil
}

// BingoRule rewards using the whole rack in one move
type BingoRule struct{}

func (BingoRule) ID() string { return RuleBingo }

func (r BingoRule) Apply(c *Context, acc *Result) error {
	if c.TilesPlaced() >= BingoTiles {
		acc.AddBonus(r.ID(), BingoBonus)
	}
	return nil
}

// WordLengthRule rewards the number of tiles placed, not the word length
type WordLengthRule struct{}

func (WordLengthRule) ID() string { return RuleWordLength }

func (r WordLengthRule) Apply(c *Context, acc *Result) error {
	acc.AddBonus(r.ID(), tilesPlayedBonus[c.TilesPlaced()])
	return nil
}

// WordExtensionRule rewards the best substantial extension of an existing word.
// At most one extension bonus is awarded per move.
type WordExtensionRule struct{}

func (WordExtensionRule) ID() string { return RuleWordExtension }

func (r WordExtensionRule) Apply(c *Context, acc *Result) error {
	best := 0
	for _, w := range c.Words {
		existing, added := 0, 0
		for _, t := range w.Tiles {
			if c.IsNew(t.Position()) {
				added++
			} else {
				existing++
			}
		}
		if existing < minExtension || added < minExtension {
			continue
		}
		if bonus := extensionBonus[min(existing, maxExtensionKey)]; bonus > best {
			best = bonus
		}
	}
	acc.AddBonus(r.ID(), best)
	return nil
}

// EndGameRule rewards the first player to go out with an empty bag.
// Once anyone has claimed it, later racks emptying earn nothing.
type EndGameRule struct{}

func (EndGameRule) ID() string { return RuleEndGame }

func (r EndGameRule) Apply(c *Context, acc *Result) error {
	if c.Player == nil || c.Player.ReceivedEmptyRackBonus || c.BonusClaimed {
		return nil
	}
	if c.RackEmptyAfter && c.BagEmpty {
		acc.AddBonus(r.ID(), EndGameBonus)
	}
	return nil
}
