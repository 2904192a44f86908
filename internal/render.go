package internal

import (
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
)

// ReplyRenderer formats AI replies for the console
type ReplyRenderer struct {
	markdown *glamour.TermRenderer
}

// NewReplyRenderer returns a renderer; markdown rendering is used only when
// enabled and out is a terminal.
func NewReplyRenderer(enabled bool, out io.Writer) *ReplyRenderer {
	r := &ReplyRenderer{}
	if !enabled || !IsTerminal(out) {
		return r
	}

	tr, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		LogWarn("Markdown rendering disabled: %v", err)
		return r
	}
	r.markdown = tr
	return r
}

// Render returns the reply as it should be printed
func (r *ReplyRenderer) Render(reply string) string {
	if r == nil || r.markdown == nil {
		return reply
	}
	out, err := r.markdown.Render(reply)
	if err != nil {
		LogDebug("Markdown rendering failed, printing raw reply: %v", err)
		return reply
	}
	return strings.TrimRight(out, "\n")
}
