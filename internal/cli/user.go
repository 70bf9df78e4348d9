package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/wordtiles/internal/api/response"
	"github.com/mcoot/wordtiles/internal/model"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "User commands",
	}

	cmd.AddCommand(newUserStatsCmd())
	cmd.AddCommand(newUserGamesCmd())

	return cmd
}

func newUserStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [user-id]",
		Short: "Show a user's statistics (defaults to the acting user)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result model.UserStats

			if err := client.Get("/api/v1/users/"+targetUser(args)+"/stats", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newUserGamesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "games [user-id]",
		Short: "List a user's games (defaults to the acting user)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.GamesResponse

			if err := client.Get("/api/v1/users/"+targetUser(args)+"/games", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func targetUser(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.User
}
