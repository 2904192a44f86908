package export

import (
	"encoding/json"
	"io"

	"github.com/coderFeedForwardAlg/web-term/internal"
)

// JSONExporter writes one chat as an indented JSON document of exchanges
type JSONExporter struct{}

func (e *JSONExporter) Export(session *internal.Session, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	// replies are often code; keep <, > and & readable
	enc.SetEscapeHTML(false)
	return enc.Encode(newChatDocument(session))
}

func (e *JSONExporter) Extension() string { return "json" }
