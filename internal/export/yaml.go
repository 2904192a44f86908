package export

import (
	"io"

	"github.com/coderFeedForwardAlg/web-term/internal"
	"gopkg.in/yaml.v3"
)

// YAMLExporter writes one chat as a YAML document of exchanges.
// Multi-line replies come out as literal blocks.
type YAMLExporter struct{}

func (e *YAMLExporter) Export(session *internal.Session, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(newChatDocument(session)); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}

func (e *YAMLExporter) Extension() string { return "yaml" }
