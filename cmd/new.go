package cmd

import (
	"fmt"
	"strings"

	"github.com/coderFeedForwardAlg/web-term/internal"
	"github.com/coderFeedForwardAlg/web-term/internal/ledger"
	"github.com/spf13/cobra"
)

var newInteractive bool

// newCmd represents the new command
var newCmd = &cobra.Command{
	Use:   "new <name> <message...>",
	Short: "Start a new named chat",
	Long: `Start a new chat session on the endpoint with a first message and remember it
under <name>. The first exchange is written to <name>.txt in the storage directory.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		message := strings.TrimSpace(strings.Join(args[1:], " "))
		if message == "" {
			return fmt.Errorf("message must not be empty")
		}
		if err := ledger.ValidateName(name); err != nil {
			return err
		}

		l, err := openLedger()
		if err != nil {
			return err
		}
		// fail before a server-side session is created for nothing
		if l.Has(name) {
			return &ledger.DuplicateNameError{Name: name}
		}

		client, err := newClient()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		var sessionID, reply string
		err = internal.ShowProgress(ctx, fmt.Sprintf("Starting chat %q...", name), func() error {
			var err error
			sessionID, reply, err = client.CreateSession(ctx, message)
			return err
		})
		if err != nil {
			return err
		}

		if err := l.AddChat(name, sessionID); err != nil {
			internal.LogError("Session %s was created on the endpoint but chat %q could not be saved", sessionID, name)
			return err
		}
		if err := l.AppendExchange(name, message, reply); err != nil {
			return err
		}
		internal.LogInfo("Chat %q started with session %s", name, sessionID)

		out := cmd.OutOrStdout()
		renderer := internal.NewReplyRenderer(cfg.Render, out)
		printReply(out, cmd.ErrOrStderr(), renderer, reply)
		internal.PrintSuccess(cmd.ErrOrStderr(), fmt.Sprintf("New chat %q started with ID: %s", name, sessionID))

		if !newInteractive {
			return nil
		}
		conv := &conversation{
			ledger:    l,
			client:    client,
			name:      name,
			sessionID: sessionID,
			renderer:  renderer,
			out:       out,
			errOut:    cmd.ErrOrStderr(),
		}
		return conv.loop(ctx, cmd.InOrStdin(), cfg.ExitToken)
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().BoolVarP(&newInteractive, "interactive", "i", false, "Keep chatting after the first reply")
}
