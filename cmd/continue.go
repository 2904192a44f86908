package cmd

import (
	"fmt"
	"strings"

	"github.com/coderFeedForwardAlg/web-term/internal"
	"github.com/spf13/cobra"
)

// continueCmd represents the continue command
var continueCmd = &cobra.Command{
	Use:   "continue <name> [message...]",
	Short: "Continue an existing chat",
	Long: `Send a message into an existing chat. Without a message, read messages from
standard input one line at a time until the exit token (default "exit") or EOF.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		l, err := openLedger()
		if err != nil {
			return err
		}
		sessionID, err := l.Resolve(name)
		if err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		conv := &conversation{
			ledger:    l,
			client:    client,
			name:      name,
			sessionID: sessionID,
			renderer:  internal.NewReplyRenderer(cfg.Render, out),
			out:       out,
			errOut:    cmd.ErrOrStderr(),
		}

		if len(args) == 1 {
			return conv.loop(cmd.Context(), cmd.InOrStdin(), cfg.ExitToken)
		}

		message := strings.TrimSpace(strings.Join(args[1:], " "))
		if message == "" {
			return fmt.Errorf("message must not be empty")
		}
		return conv.send(cmd.Context(), message)
	},
}

func init() {
	rootCmd.AddCommand(continueCmd)
}
