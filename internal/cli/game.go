package cli

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/mcoot/wordtiles/internal/api/request"
	"github.com/mcoot/wordtiles/internal/api/response"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameShowCmd())
	cmd.AddCommand(newGameJoinCmd())
	cmd.AddCommand(newGamePlayCmd())
	cmd.AddCommand(newGameValidateCmd())
	cmd.AddCommand(newGamePassCmd())
	cmd.AddCommand(newGameSwapCmd())
	cmd.AddCommand(newGameResignCmd())
	cmd.AddCommand(newGameMovesCmd())

	return cmd
}

func newGameCreateCmd() *cobra.Command {
	var req request.CreateGameRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new game",
		Long: `Create a new game as the acting user.

Without --opponent the game stays pending until another user joins.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.GameState

			if err := client.Post("/api/v1/games", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Opponent, "opponent", "", "Opponent user ID")
	cmd.Flags().StringVar(&req.Language, "language", "", "Dictionary language (default en)")

	return cmd
}

func newGameShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <game-id>",
		Short: "Show current game state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.GameState

			if err := client.Get(gamePath(args[0], ""), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newGameJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <game-id>",
		Short: "Join a pending game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.GameState

			if err := client.Post(gamePath(args[0], "join"), nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

const placementHelp = `Each tile is given as x,y,LETTER,POINTS with zero-based coordinates.
A lower-case letter plays a blank tile as that letter; its points may be omitted.

Example:
  wordtiles game play <game-id> 7,7,C,3 8,7,A,1 9,7,t`

func newGamePlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play <game-id> <tile>...",
		Short: "Play tiles on the board",
		Long:  "Play tiles from your rack onto the board.\n\n" + placementHelp,
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := parsePlacement(args[1:])
			if err != nil {
				return err
			}

			var result response.ActionResponse
			if err := client.Post(gamePath(args[0], "play"), req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newGameValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <game-id> <tile>...",
		Short: "Check a play and preview its score without committing it",
		Long:  "Validate a play without changing the game.\n\n" + placementHelp,
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := parsePlacement(args[1:])
			if err != nil {
				return err
			}

			var result response.PreviewResponse
			if err := client.Post(gamePath(args[0], "validate"), req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newGamePassCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pass <game-id>",
		Short: "Pass your turn",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.ActionResponse

			if err := client.Post(gamePath(args[0], "pass"), nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newGameSwapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "swap <game-id> <tile>...",
		Short: "Swap rack tiles with the bag",
		Long: `Return tiles to the bag and draw the same number.

Each tile is given as LETTER,POINTS, or ? for a blank.

Example:
  wordtiles game swap <game-id> Q,10 ?`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := parseSwap(args[1:])
			if err != nil {
				return err
			}

			var result response.ActionResponse
			if err := client.Post(gamePath(args[0], "swap"), req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newGameResignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resign <game-id>",
		Short: "Resign from the game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.ActionResponse

			if err := client.Post(gamePath(args[0], "resign"), nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newGameMovesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "moves <game-id>",
		Short: "List the game's move history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.MovesResponse

			if err := client.Get(gamePath(args[0], "moves"), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func gamePath(id, action string) string {
	path := "/api/v1/games/" + id
	if action != "" {
		path += "/" + action
	}
	return path
}

// parsePlacement parses x,y,LETTER[,POINTS] tile arguments
func parsePlacement(args []string) (request.PlayRequest, error) {
	req := request.PlayRequest{Tiles: make([]request.PlacedTile, 0, len(args))}
	for _, arg := range args {
		parts := strings.Split(arg, ",")
		if len(parts) < 3 || len(parts) > 4 {
			return req, errors.Newf("invalid tile %q: expected x,y,LETTER,POINTS", arg)
		}

		x, err := strconv.Atoi(parts[0])
		if err != nil {
			return req, errors.Wrapf(err, "invalid x in tile %q", arg)
		}
		y, err := strconv.Atoi(parts[1])
		if err != nil {
			return req, errors.Wrapf(err, "invalid y in tile %q", arg)
		}

		letter := parts[2]
		if len(letter) != 1 || !unicode.IsLetter(rune(letter[0])) {
			return req, errors.Newf("invalid letter in tile %q", arg)
		}

		tile := request.PlacedTile{X: x, Y: y, Letter: strings.ToUpper(letter)}
		if unicode.IsLower(rune(letter[0])) {
			tile.IsBlank = true
		} else {
			if len(parts) != 4 {
				return req, errors.Newf("tile %q needs points", arg)
			}
			if tile.Points, err = parsePoints(parts[3]); err != nil {
				return req, errors.Wrapf(err, "invalid tile %q", arg)
			}
		}
		req.Tiles = append(req.Tiles, tile)
	}
	return req, nil
}

// parseSwap parses LETTER,POINTS or ? tile arguments
func parseSwap(args []string) (request.SwapRequest, error) {
	req := request.SwapRequest{Tiles: make([]request.Tile, 0, len(args))}
	for _, arg := range args {
		if arg == "?" {
			req.Tiles = append(req.Tiles, request.Tile{IsBlank: true})
			continue
		}

		letter, points, ok := strings.Cut(arg, ",")
		if !ok || len(letter) != 1 || !unicode.IsLetter(rune(letter[0])) {
			return req, errors.Newf("invalid tile %q: expected LETTER,POINTS or ?", arg)
		}
		p, err := parsePoints(points)
		if err != nil {
			return req, errors.Wrapf(err, "invalid tile %q", arg)
		}
		req.Tiles = append(req.Tiles, request.Tile{Letter: strings.ToUpper(letter), Points: p})
	}
	return req, nil
}

func parsePoints(s string) (int, error) {
	p, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrap(err, "invalid points")
	}
	if p < 0 {
		return 0, errors.New("points must not be negative")
	}
	return p, nil
}
