package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/coderFeedForwardAlg/web-term/internal"
)

// MarkdownExporter exports sessions in Markdown format
type MarkdownExporter struct{}

// Export exports a session to Markdown format
func (e *MarkdownExporter) Export(session *internal.Session, w io.Writer) error {
	// Header
	_, _ = fmt.Fprintf(w, "# Chat %s\n\n", session.Name)
	_, _ = fmt.Fprintf(w, "**Session:** `%s`  \n", session.SessionID)
	_, _ = fmt.Fprintf(w, "**Exchanges:** %d\n\n", session.Metadata.ExchangeCount)

	_, _ = fmt.Fprintf(w, "---\n\n")

	for i, msg := range session.Messages {
		// a rule separates exchanges, not the two halves of one
		if msg.Actor == internal.ActorUser && i > 0 {
			_, _ = fmt.Fprintf(w, "---\n\n")
		}

		content := escapeMarkdown(msg.Content)
		if content == "" {
			content = "_(empty reply)_"
		}
		_, _ = fmt.Fprintf(w, "**%s:**\n\n%s\n\n", actorLabel(msg.Actor), content)
	}

	return nil
}

func actorLabel(actor string) string {
	switch actor {
	case internal.ActorUser:
		return "User"
	case internal.ActorAssistant:
		return "AI"
	default:
		return actor
	}
}

// escapeMarkdown escapes markdown special characters
func escapeMarkdown(text string) string {
	// Basic escaping - preserve code blocks
	lines := strings.Split(text, "\n")
	var result []string
	inCodeBlock := false

	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			inCodeBlock = !inCodeBlock
			result = append(result, line)
		} else if inCodeBlock {
			result = append(result, line)
		} else {
			// Escape markdown syntax outside code blocks
			line = strings.ReplaceAll(line, "**", "\\*\\*")
			line = strings.ReplaceAll(line, "__", "\\_\\_")
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
