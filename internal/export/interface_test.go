package export

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/coderFeedForwardAlg/web-term/internal"
)

func TestNewExporter(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		wantExt string
		wantErr bool
	}{
		{name: "jsonl format", format: "jsonl", wantExt: "jsonl"},
		{name: "markdown format", format: "md", wantExt: "md"},
		{name: "markdown format long", format: "markdown", wantExt: "md"},
		{name: "yaml format", format: "yaml", wantExt: "yaml"},
		{name: "yml alias", format: "yml", wantExt: "yaml"},
		{name: "json format", format: "json", wantExt: "json"},
		{name: "upper case", format: "JSON", wantExt: "json"},
		{name: "unsupported format", format: "xml", wantErr: true},
		{name: "empty format", format: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exporter, err := NewExporter(tt.format)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewExporter() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if tt.wantErr {
				var cfgErr *internal.ConfigError
				if !errors.As(err, &cfgErr) || cfgErr.Key != "format" {
					t.Errorf("NewExporter() error = %v, want ConfigError for format", err)
				}
				if exporter != nil {
					t.Errorf("NewExporter() returned exporter %T, want nil", exporter)
				}
				return
			}

			if got := exporter.Extension(); got != tt.wantExt {
				t.Errorf("Exporter.Extension() = %v, want %v", got, tt.wantExt)
			}
		})
	}
}

func TestFileName(t *testing.T) {
	session := internal.CreateTestSession("trip")
	if got := FileName(session, &MarkdownExporter{}); got != "chat_trip.md" {
		t.Errorf("FileName() = %q, want %q", got, "chat_trip.md")
	}
	if got := FileName(session, &JSONLExporter{}); got != "chat_trip.jsonl" {
		t.Errorf("FileName() = %q, want %q", got, "chat_trip.jsonl")
	}
}

func TestToFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	session := internal.CreateTestSession("trip")

	path, err := ToFile(session, dir, &JSONExporter{})
	if err != nil {
		t.Fatalf("ToFile() error = %v", err)
	}
	if path != filepath.Join(dir, "chat_trip.json") {
		t.Errorf("ToFile() path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}
	if !strings.Contains(string(data), `"session_id": "run_trip"`) {
		t.Errorf("export missing session id:\n%s", data)
	}
}

func TestToFile_Unwritable(t *testing.T) {
	// a regular file where the directory should be
	parent := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(parent, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ToFile(internal.CreateTestSession("trip"), parent, &YAMLExporter{})
	var exportErr *internal.ExportError
	if !errors.As(err, &exportErr) {
		t.Fatalf("ToFile() error = %v, want *ExportError", err)
	}
	if exportErr.Format != "yaml" {
		t.Errorf("ExportError.Format = %q, want yaml", exportErr.Format)
	}
}
