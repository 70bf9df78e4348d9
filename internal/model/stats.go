package model

import "time"

// UserStats is a user's cumulative record across finished games
type UserStats struct {
	UserID        UserID    `json:"user_id"`
	GamesPlayed   int       `json:"games_played"`
	GamesWon      int       `json:"games_won"`
	GamesLost     int       `json:"games_lost"`
	CurrentStreak int       `json:"current_streak"`
	BestStreak    int       `json:"best_streak"`
	BestMoveScore int       `json:"best_move_score"`
	Bingos        int       `json:"bingos"` // Plays that used all seven tiles
	UpdatedAt     time.Time `json:"updated_at"`
}
