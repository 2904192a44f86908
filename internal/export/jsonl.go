package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/coderFeedForwardAlg/web-term/internal"
)

// JSONLExporter exports sessions in JSONL format (one message per line)
type JSONLExporter struct{}

type jsonlLine struct {
	Chat    string `json:"chat"`
	Turn    int    `json:"turn"`
	Actor   string `json:"actor"`
	Content string `json:"content"`
}

// Export writes one line per message. Turn numbers start at 1 and are shared
// by a user message and its reply.
func (e *JSONLExporter) Export(session *internal.Session, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	turn := 0
	for _, msg := range session.Messages {
		if msg.Actor == internal.ActorUser {
			turn++
		}
		line := jsonlLine{
			Chat:    session.Name,
			Turn:    turn,
			Actor:   msg.Actor,
			Content: msg.Content,
		}
		if err := enc.Encode(line); err != nil {
			return fmt.Errorf("failed to encode message %d: %w", turn, err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
