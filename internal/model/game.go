package model

import "time"

// GameID uniquely identifies a game
type GameID string

// UserID uniquely identifies a user across the system
type UserID string

// GameStatus represents the lifecycle phase of a game
type GameStatus string

const (
	GameStatusPending  GameStatus = "pending"  // Waiting for the second player
	GameStatusActive   GameStatus = "active"   // Players are taking turns
	GameStatusFinished GameStatus = "finished" // Terminal
)

// DefaultLanguage is used when a game is created without one
const DefaultLanguage = "en"

// Game is the shared state of a single two-player match
type Game struct {
	ID       GameID     `json:"id"`
	Language string     `json:"language"`
	Board    *Board     `json:"board"`
	Template Template   `json:"template,omitempty"` // nil means the standard layout
	TileBag  []Tile     `json:"tile_bag"`
	Status   GameStatus `json:"status"`

	// Turn management
	CurrentTurn       UserID     `json:"current_turn,omitempty"` // Empty unless active
	ConsecutivePasses int        `json:"consecutive_passes"`
	TurnExpiresAt     *time.Time `json:"turn_expires_at,omitempty"`

	// Outcome
	WinnerID  UserID `json:"winner_id,omitempty"`
	EndReason string `json:"end_reason,omitempty"`

	// Version increments on every committed action and backs optimistic locking
	Version int64 `json:"version"`

	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// IsActive returns true if players may still act on the game
func (g *Game) IsActive() bool {
	return g.Status == GameStatusActive
}

// IsTurnExpired returns true if the current turn's deadline has passed
func (g *Game) IsTurnExpired(now time.Time) bool {
	return g.IsActive() && g.TurnExpiresAt != nil && !now.Before(*g.TurnExpiresAt)
}

// Clone returns a deep copy of the game
func (g *Game) Clone() *Game {
	out := *g
	out.Board = g.Board.Clone()
	if g.Template != nil {
		out.Template = make(Template, len(g.Template))
		for i, row := range g.Template {
			out.Template[i] = append([]SquareType(nil), row...)
		}
	}
	out.TileBag = append([]Tile(nil), g.TileBag...)
	if g.TurnExpiresAt != nil {
		t := *g.TurnExpiresAt
		out.TurnExpiresAt = &t
	}
	if g.FinishedAt != nil {
		t := *g.FinishedAt
		out.FinishedAt = &t
	}
	return &out
}

// GamePlayer is a user's seat in one game
type GamePlayer struct {
	GameID    GameID `json:"game_id"`
	UserID    UserID `json:"user_id"`
	Rack      []Tile `json:"rack"`
	Score     int    `json:"score"`
	TurnOrder int    `json:"turn_order"`

	HasFreeSwap            bool `json:"has_free_swap"`
	HasReceivedBlank       bool `json:"has_received_blank"`
	ReceivedEmptyRackBonus bool `json:"received_empty_rack_bonus"`
}

// RackPoints returns the sum of point values left on the rack
func (p *GamePlayer) RackPoints() int {
	total := 0
	for _, t := range p.Rack {
		total += t.Points
	}
	return total
}

// Clone returns a deep copy of the player
func (p *GamePlayer) Clone() *GamePlayer {
	out := *p
	out.Rack = append([]Tile(nil), p.Rack...)
	return &out
}

// GameState is everything loaded for one action: the game, its players
// ordered by turn order, and the move history oldest first
type GameState struct {
	Game    *Game         `json:"game"`
	Players []*GamePlayer `json:"players"`
	Moves   []*Move       `json:"moves"`
}

// Player returns the seat for the given user, or nil
func (s *GameState) Player(userID UserID) *GamePlayer {
	for _, p := range s.Players {
		if p.UserID == userID {
			return p
		}
	}
	return nil
}

// Opponent returns the other seat in a two-player game, or nil
func (s *GameState) Opponent(userID UserID) *GamePlayer {
	for _, p := range s.Players {
		if p.UserID != userID {
			return p
		}
	}
	return nil
}

// NextPlayer returns the seat after the given user in turn order
func (s *GameState) NextPlayer(userID UserID) *GamePlayer {
	for i, p := range s.Players {
		if p.UserID == userID {
			return s.Players[(i+1)%len(s.Players)]
		}
	}
	return nil
}

// RecentMoves returns up to n of the latest moves, oldest first
func (s *GameState) RecentMoves(n int) []*Move {
	if len(s.Moves) <= n {
		return s.Moves
	}
	return s.Moves[len(s.Moves)-n:]
}

// Clone returns a deep copy of the state. Moves are immutable and shared.
func (s *GameState) Clone() *GameState {
	out := &GameState{
		Game:    s.Game.Clone(),
		Players: make([]*GamePlayer, len(s.Players)),
		Moves:   append([]*Move(nil), s.Moves...),
	}
	for i, p := range s.Players {
		out.Players[i] = p.Clone()
	}
	return out
}
