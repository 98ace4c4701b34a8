package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Table management commands",
	}

	cmd.AddCommand(newTableCreateCmd())
	cmd.AddCommand(newTableListCmd())
	cmd.AddCommand(newTableGetCmd())
	cmd.AddCommand(newTableCloseCmd())
	cmd.AddCommand(newTableJoinCmd())
	cmd.AddCommand(newTableLeaveCmd())
	cmd.AddCommand(newTableStartCmd())
	cmd.AddCommand(newTablePauseCmd())
	cmd.AddCommand(newTableResumeCmd())
	cmd.AddCommand(newTableEndCmd())
	cmd.AddCommand(newTableTurnCmd())
	cmd.AddCommand(newTablePileCmd())
	cmd.AddCommand(newTableRecordsCmd())

	return cmd
}

func newTableCreateCmd() *cobra.Command {
	var name, gameType string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new table",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("--name is required")
			}

			req := map[string]string{"name": name, "game_type": gameType}
			var result Table

			if err := client.Post("/api/v1/tables", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Table name (required)")
	cmd.Flags().StringVar(&gameType, "game", "standard", "Game type: standard, uno")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newTableListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result TableList

			if err := client.Get("/api/v1/tables", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newTableGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a table's state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Table

			if err := client.Get("/api/v1/tables/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newTableCloseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "close <id>",
		Short: "Close a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/tables/" + args[0]); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Table closed")
			return nil
		},
	}
}

func newTableJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <id>",
		Short: "Join a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Table

			if err := client.Post("/api/v1/tables/"+args[0]+"/join", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newTableLeaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leave <id>",
		Short: "Leave a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/api/v1/tables/"+args[0]+"/leave", nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Left table")
			return nil
		},
	}
}

func newTableStartCmd() *cobra.Command {
	return newTransitionCmd("start", "Start the game")
}

func newTablePauseCmd() *cobra.Command {
	return newTransitionCmd("pause", "Pause the game")
}

func newTableResumeCmd() *cobra.Command {
	return newTransitionCmd("resume", "Resume a paused game")
}

func newTransitionCmd(verb, short string) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Table

			if err := client.Post("/api/v1/tables/"+args[0]+"/"+verb, nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newTableEndCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "end <id>",
		Short: "End the game and record it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameRecord

			if err := client.Post("/api/v1/tables/"+args[0]+"/end", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newTableTurnCmd() *cobra.Command {
	var playerID string

	cmd := &cobra.Command{
		Use:   "turn <id>",
		Short: "Set the current player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if playerID == "" {
				return fmt.Errorf("--player is required")
			}

			req := map[string]string{"player_id": playerID}
			if err := client.Put("/api/v1/tables/"+args[0]+"/turn", req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Turn set to " + playerID)
			return nil
		},
	}

	cmd.Flags().StringVar(&playerID, "player", "", "Player ID (required)")
	_ = cmd.MarkFlagRequired("player")

	return cmd
}

func newTablePileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pile <id> <key>",
		Short: "Show a pile's contents",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Pile

			if err := client.Get("/api/v1/tables/"+args[0]+"/piles/"+args[1], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newTableRecordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "records <id>",
		Short: "List a table's completed games",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameRecordList

			if err := client.Get("/api/v1/tables/"+args[0]+"/records", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
