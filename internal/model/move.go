package model

import "time"

// MoveID uniquely identifies a committed move
type MoveID string

// MoveType is the kind of action a move records
type MoveType string

const (
	MoveTypePlay   MoveType = "play"
	MoveTypePass   MoveType = "pass"
	MoveTypeSwap   MoveType = "swap"
	MoveTypeResign MoveType = "resign"
)

// WordScore is a word formed by a play and the points it earned
type WordScore struct {
	Word  string `json:"word"`
	Score int    `json:"score"`
}

// ScoreBonus is one itemized bonus in a score breakdown
type ScoreBonus struct {
	Rule   string `json:"rule"`
	Points int    `json:"points"`
}

// ScoreBreakdown is the persisted form of a scoring result
type ScoreBreakdown struct {
	Total      int          `json:"total"`
	WordsTotal int          `json:"words_total"`
	BonusTotal int          `json:"bonus_total"`
	Words      []WordScore  `json:"words"`
	Bonuses    []ScoreBonus `json:"bonuses"`
}

// Move is an append-only audit record of a committed action
type Move struct {
	ID             MoveID          `json:"id"`
	GameID         GameID          `json:"game_id"`
	UserID         UserID          `json:"user_id"`
	Type           MoveType        `json:"type"`
	Tiles          []PlacedTile    `json:"tiles,omitempty"`
	Words          []WordScore     `json:"words,omitempty"`
	Score          int             `json:"score"`
	ScoreBreakdown *ScoreBreakdown `json:"score_breakdown,omitempty"`
	Auto           bool            `json:"auto,omitempty"` // Pass made by the turn timeout
	CreatedAt      time.Time       `json:"created_at"`
}
