package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/coderFeedForwardAlg/web-term/internal"
	"github.com/spf13/cobra"
)

var limit int

var (
	// Styles for show command
	sessionHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212"))

	sessionMetaStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243"))

	userMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39")).
				Bold(true)

	assistantMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("135")).
				Bold(true)

	messageContentStyle = lipgloss.NewStyle().
				PaddingLeft(2)

	counterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show the transcript of a chat",
	Long:  `Display the exchanges recorded for a chat, oldest first.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := openLedger()
		if err != nil {
			return err
		}
		session, err := l.Session(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		displaySessionHeader(out, session)

		// limit counts exchanges, so a question is never shown without its reply
		messagesToShow := session.Messages
		total := session.Metadata.ExchangeCount
		if limit > 0 && limit < total {
			messagesToShow = messagesToShow[:limit*2]
		}

		for i, msg := range messagesToShow {
			displayMessage(out, i/2+1, msg, total)
		}

		if limit > 0 && limit < total {
			_, _ = fmt.Fprintln(out, counterStyle.Render(fmt.Sprintf("... (%d more exchange(s))", total-limit)))
		}
		return nil
	},
}

func displaySessionHeader(w io.Writer, session *internal.Session) {
	_, _ = fmt.Fprintln(w, sessionHeaderStyle.Render(fmt.Sprintf("Chat %s", session.Name)))

	metaParts := []string{
		fmt.Sprintf("Session: %s", session.SessionID),
		fmt.Sprintf("Exchanges: %d", session.Metadata.ExchangeCount),
	}
	_, _ = fmt.Fprintln(w, sessionMetaStyle.Render(strings.Join(metaParts, " • ")))
	_, _ = fmt.Fprintln(w)

	if session.Metadata.ExchangeCount == 0 {
		_, _ = fmt.Fprintln(w, counterStyle.Render("(no exchanges yet)"))
	}
}

func displayMessage(w io.Writer, turn int, msg internal.Message, total int) {
	var header string
	switch msg.Actor {
	case internal.ActorUser:
		header = userMessageStyle.Render("User:") + " " + counterStyle.Render(fmt.Sprintf("[%d/%d]", turn, total))
	case internal.ActorAssistant:
		header = assistantMessageStyle.Render("AI:")
	default:
		header = msg.Actor + ":"
	}
	_, _ = fmt.Fprintln(w, header)

	content := strings.TrimSpace(msg.Content)
	if content == "" {
		content = "(empty message)"
	} else {
		content = wrapText(content, 80)
	}
	_, _ = fmt.Fprintln(w, messageContentStyle.Render(content))
	_, _ = fmt.Fprintln(w)
}

func wrapText(text string, width int) string {
	lines := strings.Split(text, "\n")
	var wrapped []string

	for _, line := range lines {
		if len(line) <= width {
			wrapped = append(wrapped, line)
			continue
		}

		words := strings.Fields(line)
		currentLine := ""
		for _, word := range words {
			if len(currentLine)+len(word)+1 > width {
				if currentLine != "" {
					wrapped = append(wrapped, currentLine)
				}
				currentLine = word
			} else if currentLine == "" {
				currentLine = word
			} else {
				currentLine += " " + word
			}
		}
		if currentLine != "" {
			wrapped = append(wrapped, currentLine)
		}
	}

	return strings.Join(wrapped, "\n")
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().IntVarP(&limit, "limit", "n", 0, "Limit number of exchanges to show")
}
