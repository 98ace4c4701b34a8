package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "In-game action commands",
	}

	cmd.AddCommand(newPlayCardsCmd())
	cmd.AddCommand(newPlayDrawCmd())
	cmd.AddCommand(newPlayPassCmd())
	cmd.AddCommand(newPlayRevealCmd())
	cmd.AddCommand(newPlayHideCmd())
	cmd.AddCommand(newPlayTransferCmd())

	return cmd
}

// postAction sends an action request and prints the result
func postAction(tableID string, req map[string]any) error {
	var result ActionResult

	if err := client.Post("/api/v1/tables/"+tableID+"/actions", req, &result); err != nil {
		return err
	}

	out := NewOutput(cfg.Output)
	out.Print(result)
	return nil
}

func newPlayCardsCmd() *cobra.Command {
	var from, to, cards string

	cmd := &cobra.Command{
		Use:   "cards <table-id>",
		Short: "Play named cards from one pile to another",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if from == "" || to == "" || cards == "" {
				return fmt.Errorf("--from, --to, and --cards are required")
			}

			req := map[string]any{
				"type":       "play",
				"source_key": from,
				"target_key": to,
				"card_ids":   strings.Split(cards, ","),
			}
			return postAction(args[0], req)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Source pile key (required)")
	cmd.Flags().StringVar(&to, "to", "", "Target pile key (required)")
	cmd.Flags().StringVar(&cards, "cards", "", "Comma-separated card IDs (required)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("cards")

	return cmd
}

func newPlayDrawCmd() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "draw <table-id>",
		Short: "Draw the top card from a pile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if from == "" || to == "" {
				return fmt.Errorf("--from and --to are required")
			}

			req := map[string]any{
				"type":       "draw",
				"source_key": from,
				"target_key": to,
			}
			return postAction(args[0], req)
		},
	}

	cmd.Flags().StringVar(&from, "from", "deck", "Source pile key")
	cmd.Flags().StringVar(&to, "to", "", "Target pile key (required)")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newPlayPassCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pass <table-id>",
		Short: "Pass the turn",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return postAction(args[0], map[string]any{"type": "pass"})
		},
	}
}

func newPlayRevealCmd() *cobra.Command {
	return newFaceCmd("reveal", "Show a pile's card faces")
}

func newPlayHideCmd() *cobra.Command {
	return newFaceCmd("hide", "Hide a pile's card faces")
}

func newFaceCmd(verb, short string) *cobra.Command {
	var pile string

	cmd := &cobra.Command{
		Use:   verb + " <table-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if pile == "" {
				return fmt.Errorf("--pile is required")
			}

			req := map[string]any{
				"type":       verb,
				"source_key": pile,
			}
			return postAction(args[0], req)
		},
	}

	cmd.Flags().StringVar(&pile, "pile", "", "Pile key (required)")
	_ = cmd.MarkFlagRequired("pile")

	return cmd
}

func newPlayTransferCmd() *cobra.Command {
	var from, to, cards string

	cmd := &cobra.Command{
		Use:   "transfer <table-id>",
		Short: "Move cards between piles directly",
		Long: `Move named cards between piles without going through a seated player.

Unlike "play cards", this bypasses player action routing and talks to the
table's transfer protocol directly. Useful for setup and debugging.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if from == "" || to == "" || cards == "" {
				return fmt.Errorf("--from, --to, and --cards are required")
			}

			req := map[string]any{
				"source_key": from,
				"target_key": to,
				"card_ids":   strings.Split(cards, ","),
			}
			var result Table

			if err := client.Post("/api/v1/tables/"+args[0]+"/transfers", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Source pile key (required)")
	cmd.Flags().StringVar(&to, "to", "", "Target pile key (required)")
	cmd.Flags().StringVar(&cards, "cards", "", "Comma-separated card IDs (required)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("cards")

	return cmd
}

func newBotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bot",
		Short: "Bot player commands",
	}

	cmd.AddCommand(newBotAddCmd())
	cmd.AddCommand(newBotRemoveCmd())
	cmd.AddCommand(newBotProcessCmd())

	return cmd
}

func newBotAddCmd() *cobra.Command {
	var strategy string

	cmd := &cobra.Command{
		Use:   "add <table-id>",
		Short: "Add a bot to a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"strategy": strategy}
			var result Player

			if err := client.Post("/api/v1/tables/"+args[0]+"/bots", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&strategy, "strategy", "random", "Bot strategy")

	return cmd
}

func newBotRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <table-id> <bot-id>",
		Short: "Remove a bot from a table",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/tables/" + args[0] + "/bots/" + args[1]); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Bot removed")
			return nil
		},
	}
}

func newBotProcessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "process <table-id>",
		Short: "Run consecutive bot turns until a human is up",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result BotTurnList

			if err := client.Post("/api/v1/tables/"+args[0]+"/bots/process", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
