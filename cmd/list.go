package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/coderFeedForwardAlg/web-term/internal"
	"github.com/spf13/cobra"
)

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available chats",
	Long:  `List every chat name in the storage directory, in alphabetical order, with its session id.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := openLedger()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		names := l.ListChats()
		if len(names) == 0 {
			internal.PrintInfo(out, "No chats found.")
			return nil
		}

		_, _ = fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("Available chats (%d):", len(names))))

		w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
		_, _ = fmt.Fprintln(w, titleStyle.Render("NAME")+"\t"+titleStyle.Render("SESSION ID"))
		_, _ = fmt.Fprintln(w, strings.Repeat("-", 4)+"\t"+strings.Repeat("-", 10))
		for _, name := range names {
			sessionID, err := l.Resolve(name)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(w, "%s\t%s\n", name, idStyle.Render(sessionID))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
