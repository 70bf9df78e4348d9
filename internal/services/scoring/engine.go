package scoring

import (
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/mcoot/wordtiles/internal/model"
)

// Engine folds the fixed scoring rules over one accumulator.
// It is built once at startup and is safe for concurrent use.
type Engine struct {
	rules []Rule
}

// NewEngine builds the standard scoring pipeline
func NewEngine() *Engine {
	return &Engine{
		rules: []Rule{
			LetterScoreRule{},
			BingoRule{},
			WordLengthRule{},
			WordExtensionRule{},
			EndGameRule{},
		},
	}
}

// RuleIDs lists the scoring rules in application order
func (e *Engine) RuleIDs() []string {
	ids := make([]string, 0, len(e.rules))
	for _, r := range e.rules {
		ids = append(ids, r.ID())
	}
	return ids
}

// Score runs every rule over the context
func (e *Engine) Score(c *Context) (*Result, error) {
	acc := &Result{}
	for _, rule := range e.rules {
		if err := rule.Apply(c, acc); err != nil {
			return nil, errors.Wrapf(err, "scoring rule %s", rule.ID())
		}
	}
	return acc, nil
}

// ApplyRackPenalties subtracts each player's remaining rack value from their
// score, flooring at zero. It returns the points actually deducted per player.
func ApplyRackPenalties(players []*model.GamePlayer) map[model.UserID]int {
	deducted := make(map[model.UserID]int, len(players))
	for _, p := range players {
		penalty := min(p.RackPoints(), p.Score)
		p.Score -= penalty
		deducted[p.UserID] = penalty
	}
	return deducted
}

// DetermineWinner returns the player with the highest score.
// Exact ties go to the lower turn order.
func DetermineWinner(players []*model.GamePlayer) model.UserID {
	if len(players) == 0 {
		return ""
	}
	ranked := append([]*model.GamePlayer(nil), players...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].TurnOrder < ranked[j].TurnOrder
	})
	return ranked[0].UserID
}
