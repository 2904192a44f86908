package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/coderFeedForwardAlg/web-term/internal"
	"github.com/coderFeedForwardAlg/web-term/internal/ledger"
	"github.com/coderFeedForwardAlg/web-term/internal/protocol"
)

const maxInputLine = 1024 * 1024

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	replyLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135")).
			Bold(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Italic(true)
)

// conversation sends messages into one registered chat and records every exchange
type conversation struct {
	ledger    *ledger.Ledger
	client    *protocol.Client
	name      string
	sessionID string
	renderer  *internal.ReplyRenderer
	out       io.Writer
	errOut    io.Writer
}

// send performs one exchange: the reply is printed only after it has been
// appended to the transcript. A failed request leaves the transcript untouched.
func (c *conversation) send(ctx context.Context, message string) error {
	var reply string
	err := internal.ShowProgress(ctx, "Waiting for reply...", func() error {
		var err error
		reply, err = c.client.ContinueSession(ctx, c.sessionID, message)
		return err
	})
	if err != nil {
		return err
	}
	if err := c.ledger.AppendExchange(c.name, message, reply); err != nil {
		return err
	}
	printReply(c.out, c.errOut, c.renderer, reply)
	return nil
}

// loop reads messages from in until the exit token or EOF. Blank lines are skipped.
func (c *conversation) loop(ctx context.Context, in io.Reader, exitToken string) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxInputLine)

	_, _ = fmt.Fprintln(c.out, hintStyle.Render(fmt.Sprintf("Chatting in %q. Type %q to quit.", c.name, exitToken)))
	for {
		_, _ = fmt.Fprint(c.out, promptStyle.Render("You:")+" ")
		if !scanner.Scan() {
			_, _ = fmt.Fprintln(c.out)
			break
		}

		message := strings.TrimSpace(scanner.Text())
		if message == "" {
			continue
		}
		if message == exitToken {
			break
		}
		if err := c.send(ctx, message); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	internal.LogDebug("Left chat %q", c.name)
	return nil
}

func printReply(w, errOut io.Writer, renderer *internal.ReplyRenderer, reply string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", replyLabelStyle.Render("AI:"), renderer.Render(reply))
	if strings.TrimSpace(reply) == "" {
		internal.PrintWarning(errOut, "the endpoint returned an empty reply")
	}
}
