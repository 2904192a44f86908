package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/coderFeedForwardAlg/web-term/internal"
)

// Exporter defines the interface for all export formats
type Exporter interface {
	Export(session *internal.Session, w io.Writer) error
	Extension() string
}

// Formats lists the accepted --format values
var Formats = []string{"jsonl", "md", "yaml", "json"}

// NewExporter creates a new exporter based on format
func NewExporter(format string) (Exporter, error) {
	switch strings.ToLower(format) {
	case "jsonl":
		return &JSONLExporter{}, nil
	case "md", "markdown":
		return &MarkdownExporter{}, nil
	case "yaml", "yml":
		return &YAMLExporter{}, nil
	case "json":
		return &JSONExporter{}, nil
	default:
		return nil, &internal.ConfigError{
			Key:    "format",
			Value:  format,
			Reason: fmt.Sprintf("unsupported format (supported: %s)", strings.Join(Formats, ", ")),
		}
	}
}

// FileName returns the export file name for a chat, e.g. chat_trip.md
func FileName(session *internal.Session, e Exporter) string {
	return fmt.Sprintf("chat_%s.%s", session.Name, e.Extension())
}

// ToFile writes the session into dir and returns the written path
func ToFile(session *internal.Session, dir string, e Exporter) (string, error) {
	path := filepath.Join(dir, FileName(session, e))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", &internal.ExportError{Format: e.Extension(), Path: dir, Err: err}
	}

	f, err := os.Create(path)
	if err != nil {
		return "", &internal.ExportError{Format: e.Extension(), Path: path, Err: err}
	}
	if err := e.Export(session, f); err != nil {
		_ = f.Close()
		return "", &internal.ExportError{Format: e.Extension(), Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return "", &internal.ExportError{Format: e.Extension(), Path: path, Err: err}
	}
	return path, nil
}
