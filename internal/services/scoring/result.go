package scoring

import "github.com/mcoot/wordtiles/internal/model"

// Result accumulates a move's score as the rules are folded over it
type Result struct {
	Words      []model.WordScore
	Bonuses    []model.ScoreBonus
	WordsTotal int
	BonusTotal int
}

// AddWord records a scored word
func (r *Result) AddWord(word string, score int) {
	r.Words = append(r.Words, model.WordScore{Word: word, Score: score})
	r.WordsTotal += score
}

// AddBonus records a bonus; zero-point bonuses are not itemized
func (r *Result) AddBonus(rule string, points int) {
	if points == 0 {
		return
	}
	r.Bonuses = append(r.Bonuses, model.ScoreBonus{Rule: rule, Points: points})
	r.BonusTotal += points
}

// Total returns the full move score
func (r *Result) Total() int {
	return r.WordsTotal + r.BonusTotal
}

// HasBonus returns true if the rule awarded a bonus
func (r *Result) HasBonus(rule string) bool {
	for _, b := range r.Bonuses {
		if b.Rule == rule {
			return true
		}
	}
	return false
}

// WordList returns just the formed words
func (r *Result) WordList() []string {
	words := make([]string, 0, len(r.Words))
	for _, w := range r.Words {
		words = append(words, w.Word)
	}
	return words
}

// Breakdown returns the persisted form of the result
func (r *Result) Breakdown() *model.ScoreBreakdown {
	return &model.ScoreBreakdown{
		Total:      r.Total(),
		WordsTotal: r.WordsTotal,
		BonusTotal: r.BonusTotal,
		Words:      append([]model.WordScore{}, r.Words...),
		Bonuses:    append([]model.ScoreBonus{}, r.Bonuses...),
	}
}

// FromBreakdown rehydrates a result from its persisted form.
// Totals are recomputed from the itemized entries.
func FromBreakdown(b *model.ScoreBreakdown) *Result {
	r := &Result{}
	if b == nil {
		return r
	}
	for _, w := range b.Words {
		r.AddWord(w.Word, w.Score)
	}
	for _, bonus := range b.Bonuses {
		r.AddBonus(bonus.Rule, bonus.Points)
	}
	return r
}
