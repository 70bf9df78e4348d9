package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventGameStarted  EventType = "game_started"
	EventMovePlayed   EventType = "move_played"
	EventPassed       EventType = "passed"
	EventTurnTimeout  EventType = "turn_timeout"
	EventSwapped      EventType = "swapped"
	EventResigned     EventType = "resigned"
	EventGameFinished EventType = "game_finished"
)

// Event is emitted after an action has been committed
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	GameID    GameID    `json:"game_id"`
	ActorID   UserID    `json:"actor_id,omitempty"` // The user who acted, or whose turn timed out
	Move      *Move     `json:"move,omitempty"`
	Payload   any       `json:"payload,omitempty"`
}

// TurnPayload accompanies events that hand the turn to the next player
type TurnPayload struct {
	NextTurn      UserID     `json:"next_turn"`
	TurnExpiresAt *time.Time `json:"turn_expires_at,omitempty"`
}

// GameFinishedPayload contains data for game finished events
type GameFinishedPayload struct {
	WinnerID    UserID         `json:"winner_id"`
	EndReason   string         `json:"end_reason"`
	FinalScores map[UserID]int `json:"final_scores"`
}
