package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/mcoot/wordtiles/internal/api/response"
	"github.com/mcoot/wordtiles/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		o.printJSON(map[string]string{"message": msg})
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	out, err := sonic.MarshalIndent(data, "", "  ")
	if err != nil {
		fmt.Fprintf(o.w, "{\"error\":{\"message\":%q}}\n", err.Error())
		return
	}
	fmt.Fprintln(o.w, string(out))
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.GameState:
		o.printGameState(v)
	case response.ActionResponse:
		o.printActionResponse(v)
	case response.PreviewResponse:
		o.printPreview(v)
	case response.MovesResponse:
		o.printMoves(v)
	case response.GamesResponse:
		o.printGames(v)
	case model.UserStats:
		o.printStats(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printGameState(g response.GameState) {
	fmt.Fprintf(o.w, "Game: %s\n", g.ID)
	fmt.Fprintf(o.w, "Status: %s\n", g.Status)
	fmt.Fprintf(o.w, "Language: %s\n", g.Language)
	fmt.Fprintf(o.w, "Bag: %d tiles\n", g.BagCount)
	if g.CurrentTurn != nil {
		fmt.Fprintf(o.w, "Turn: %s", *g.CurrentTurn)
		if g.TurnExpiresAt != nil {
			fmt.Fprintf(o.w, " (expires %s)", g.TurnExpiresAt.Format("2006-01-02 15:04:05"))
		}
		fmt.Fprintln(o.w)
	}
	if g.ConsecutivePasses > 0 {
		fmt.Fprintf(o.w, "Consecutive passes: %d\n", g.ConsecutivePasses)
	}

	fmt.Fprintln(o.w, "\nPlayers:")
	for _, p := range g.Players {
		fmt.Fprintf(o.w, "  %d. %s: %d points, %d tiles", p.TurnOrder+1, p.UserID, p.Score, p.RackCount)
		if p.HasFreeSwap {
			fmt.Fprint(o.w, " [free swap]")
		}
		fmt.Fprintln(o.w)
		if len(p.Rack) > 0 {
			fmt.Fprintf(o.w, "     Rack: %s\n", formatRack(p.Rack))
		}
	}

	fmt.Fprintln(o.w)
	o.printBoard(g.Board)

	if g.Status == string(model.GameStatusFinished) {
		fmt.Fprintln(o.w)
		if g.Winner != nil {
			fmt.Fprintf(o.w, "Winner: %s\n", *g.Winner)
		} else {
			fmt.Fprintln(o.w, "Result: draw")
		}
		if g.EndReason != "" {
			fmt.Fprintf(o.w, "Reason: %s\n", g.EndReason)
		}
	}
}

func (o *Output) printBoard(b response.Board) {
	if b.Size == 0 || len(b.Cells) == 0 {
		return
	}

	// Print column headers
	fmt.Fprint(o.w, "    ")
	for x := 0; x < b.Size; x++ {
		fmt.Fprintf(o.w, "%2d ", x)
	}
	fmt.Fprintln(o.w)

	fmt.Fprintf(o.w, "   +%s+\n", strings.Repeat("---", b.Size))

	for y := 0; y < b.Size; y++ {
		fmt.Fprintf(o.w, "%2d |", y)
		for x := 0; x < b.Size; x++ {
			fmt.Fprintf(o.w, " %s ", cellText(b.Cells[y][x]))
		}
		fmt.Fprintln(o.w, "|")
	}

	fmt.Fprintf(o.w, "   +%s+\n", strings.Repeat("---", b.Size))
}

// cellText renders a board cell; blanks show their letter in lower case
func cellText(t *model.Tile) string {
	if t == nil {
		return "."
	}
	if t.IsBlank {
		return strings.ToLower(t.Letter)
	}
	return t.Letter
}

func formatRack(rack []model.Tile) string {
	parts := make([]string, len(rack))
	for i, t := range rack {
		if t.IsBlank {
			parts[i] = "?"
			continue
		}
		parts[i] = fmt.Sprintf("%s%d", t.Letter, t.Points)
	}
	return strings.Join(parts, " ")
}

func (o *Output) printActionResponse(a response.ActionResponse) {
	if a.Move != nil {
		switch a.Move.Type {
		case model.MoveTypePlay:
			words := make([]string, len(a.Move.Words))
			for i, w := range a.Move.Words {
				words[i] = w.Word
			}
			fmt.Fprintf(o.w, "Played %s for %d points\n", strings.Join(words, ", "), a.Move.Score)
		case model.MoveTypeSwap:
			fmt.Fprintln(o.w, "Tiles swapped")
		case model.MoveTypeResign:
			fmt.Fprintln(o.w, "Resigned")
		default:
			fmt.Fprintln(o.w, "Passed")
		}
	}
	if a.Score != nil {
		o.printBreakdown(a.Score)
	}
	if a.Finished {
		fmt.Fprintln(o.w, "Game finished!")
	}
	fmt.Fprintln(o.w)
	o.printGameState(a.Game)
}

func (o *Output) printBreakdown(s *model.ScoreBreakdown) {
	for _, w := range s.Words {
		fmt.Fprintf(o.w, "  - %s (%d pts)\n", w.Word, w.Score)
	}
	for _, b := range s.Bonuses {
		fmt.Fprintf(o.w, "  + %s (%d pts)\n", b.Rule, b.Points)
	}
	fmt.Fprintf(o.w, "  Total: %d\n", s.Total)
}

func (o *Output) printPreview(p response.PreviewResponse) {
	if !p.Valid {
		if p.Rejection != nil {
			fmt.Fprintf(o.w, "Invalid move (%s): %s\n", p.Rejection.Rule, p.Rejection.Message)
		} else {
			fmt.Fprintln(o.w, "Invalid move")
		}
		return
	}
	fmt.Fprintf(o.w, "Valid move: %s\n", strings.Join(p.Words, ", "))
	if p.Score != nil {
		o.printBreakdown(p.Score)
	}
}

func (o *Output) printMoves(m response.MovesResponse) {
	if len(m.Moves) == 0 {
		fmt.Fprintln(o.w, "No moves yet")
		return
	}
	for i, mv := range m.Moves {
		line := fmt.Sprintf("%3d. %s %s", i+1, mv.UserID, mv.Type)
		if mv.Type == model.MoveTypePlay {
			words := make([]string, len(mv.Words))
			for j, w := range mv.Words {
				words[j] = w.Word
			}
			line += fmt.Sprintf(" %s (%d pts)", strings.Join(words, ", "), mv.Score)
		}
		if mv.Auto {
			line += " [timeout]"
		}
		fmt.Fprintln(o.w, line)
	}
}

func (o *Output) printGames(g response.GamesResponse) {
	if len(g.Games) == 0 {
		fmt.Fprintln(o.w, "No games")
		return
	}
	for _, id := range g.Games {
		fmt.Fprintln(o.w, id)
	}
}

func (o *Output) printStats(s model.UserStats) {
	fmt.Fprintf(o.w, "User: %s\n", s.UserID)
	fmt.Fprintf(o.w, "Played: %d\n", s.GamesPlayed)
	fmt.Fprintf(o.w, "Won: %d\n", s.GamesWon)
	fmt.Fprintf(o.w, "Lost: %d\n", s.GamesLost)
	fmt.Fprintf(o.w, "Current streak: %d\n", s.CurrentStreak)
	fmt.Fprintf(o.w, "Best streak: %d\n", s.BestStreak)
	fmt.Fprintf(o.w, "Best move: %d\n", s.BestMoveScore)
	fmt.Fprintf(o.w, "Bingos: %d\n", s.Bingos)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Fprintf(o.w, "Status: %s\n", h.Status)
}
