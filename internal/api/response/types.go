package response

import (
	"time"

	"github.com/mcoot/wordtiles/internal/model"
	"github.com/mcoot/wordtiles/internal/services/game"
	"github.com/mcoot/wordtiles/internal/services/rules"
)

// Player represents a seat in API responses.
// The rack is only included for the viewing player.
type Player struct {
	UserID      string       `json:"user_id"`
	Score       int          `json:"score"`
	TurnOrder   int          `json:"turn_order"`
	RackCount   int          `json:"rack_count"`
	Rack        []model.Tile `json:"rack,omitempty"`
	HasFreeSwap bool         `json:"has_free_swap"`
}

// PlayerFromModel converts a model.GamePlayer as seen by viewer
func PlayerFromModel(p *model.GamePlayer, viewer model.UserID) Player {
	out := Player{
		UserID:      string(p.UserID),
		Score:       p.Score,
		TurnOrder:   p.TurnOrder,
		RackCount:   len(p.Rack),
		HasFreeSwap: p.HasFreeSwap,
	}
	if p.UserID == viewer {
		out.Rack = append([]model.Tile{}, p.Rack...)
	}
	return out
}

// Board represents the shared board; empty cells are null
type Board struct {
	Size  int             `json:"size"`
	Cells [][]*model.Tile `json:"cells"`
}

// BoardFromModel converts model.Board to response Board
func BoardFromModel(b *model.Board) Board {
	cells := make([][]*model.Tile, b.Size)
	for y := 0; y < b.Size; y++ {
		cells[y] = make([]*model.Tile, b.Size)
		for x := 0; x < b.Size; x++ {
			if t := b.Cells[y][x]; t != nil {
				tile := *t
				cells[y][x] = &tile
			}
		}
	}
	return Board{Size: b.Size, Cells: cells}
}

// GameState represents a game as seen by one user
type GameState struct {
	ID                string     `json:"id"`
	Language          string     `json:"language"`
	Status            string     `json:"status"`
	Board             Board      `json:"board"`
	BagCount          int        `json:"bag_count"`
	Players           []Player   `json:"players"`
	CurrentTurn       *string    `json:"current_turn"`
	TurnExpiresAt     *time.Time `json:"turn_expires_at,omitempty"`
	ConsecutivePasses int        `json:"consecutive_passes"`
	Winner            *string    `json:"winner,omitempty"`
	EndReason         string     `json:"end_reason,omitempty"`
	MoveCount         int        `json:"move_count"`
	Version           int64      `json:"version"`
	CreatedAt         time.Time  `json:"created_at"`
	FinishedAt        *time.Time `json:"finished_at,omitempty"`
}

// GameStateFromModel converts model.GameState for the viewer
func GameStateFromModel(s *model.GameState, viewer model.UserID) GameState {
	g := s.Game
	players := make([]Player, len(s.Players))
	for i, p := range s.Players {
		players[i] = PlayerFromModel(p, viewer)
	}

	var currentTurn *string
	if g.CurrentTurn != "" {
		t := string(g.CurrentTurn)
		currentTurn = &t
	}

	var winner *string
	if g.WinnerID != "" {
		w := string(g.WinnerID)
		winner = &w
	}

	return GameState{
		ID:                string(g.ID),
		Language:          g.Language,
		Status:            string(g.Status),
		Board:             BoardFromModel(g.Board),
		BagCount:          len(g.TileBag),
		Players:           players,
		CurrentTurn:       currentTurn,
		TurnExpiresAt:     g.TurnExpiresAt,
		ConsecutivePasses: g.ConsecutivePasses,
		Winner:            winner,
		EndReason:         g.EndReason,
		MoveCount:         len(s.Moves),
		Version:           g.Version,
		CreatedAt:         g.CreatedAt,
		FinishedAt:        g.FinishedAt,
	}
}

// ActionResponse is the response after a committed action
type ActionResponse struct {
	Game     GameState             `json:"game"`
	Move     *model.Move           `json:"move"`
	Score    *model.ScoreBreakdown `json:"score,omitempty"`
	Finished bool                  `json:"finished"`
}

// ActionResponseFromResult converts a game.ActionResult for the acting user
func ActionResponseFromResult(res *game.ActionResult, viewer model.UserID) ActionResponse {
	out := ActionResponse{
		Game:     GameStateFromModel(res.State, viewer),
		Move:     res.Move,
		Finished: res.Finished,
	}
	if res.Score != nil {
		out.Score = res.Score.Breakdown()
	}
	return out
}

// PreviewResponse is the response to a dry-run validation
type PreviewResponse struct {
	Valid     bool                  `json:"valid"`
	Rejection *rules.RuleResult     `json:"rejection,omitempty"`
	Words     []string              `json:"words,omitempty"`
	Score     *model.ScoreBreakdown `json:"score,omitempty"`
}

// PreviewResponseFromModel converts a game.Preview
func PreviewResponseFromModel(p *game.Preview) PreviewResponse {
	out := PreviewResponse{
		Valid:     p.Valid,
		Rejection: p.Rejection,
		Words:     p.Words,
	}
	if p.Score != nil {
		out.Score = p.Score.Breakdown()
	}
	return out
}

// MovesResponse lists a game's move history, oldest first
type MovesResponse struct {
	Moves []*model.Move `json:"moves"`
}

// GamesResponse lists the games a user takes part in
type GamesResponse struct {
	Games []string `json:"games"`
}

// GamesResponseFromIDs converts game IDs
func GamesResponseFromIDs(ids []model.GameID) GamesResponse {
	games := make([]string, len(ids))
	for i, id := range ids {
		games[i] = string(id)
	}
	return GamesResponse{Games: games}
}
