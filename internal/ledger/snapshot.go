package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/coderFeedForwardAlg/web-term/internal"
)

// Backend names a snapshot storage format
type Backend string

const (
	BackendJSON   Backend = "json"
	BackendSQLite Backend = "sqlite"
	BackendBolt   Backend = "bolt"
)

// Backends lists the supported snapshot backends
var Backends = []Backend{BackendJSON, BackendSQLite, BackendBolt}

// ParseBackend converts a configuration value into a Backend.
// An empty value selects the JSON backend.
func ParseBackend(name string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(name))) {
	case "", BackendJSON:
		return BackendJSON, nil
	case BackendSQLite:
		return BackendSQLite, nil
	case BackendBolt:
		return BackendBolt, nil
	}
	names := make([]string, 0, len(Backends))
	for _, b := range Backends {
		names = append(names, string(b))
	}
	return "", &internal.ConfigError{
		Key:    "backend",
		Value:  name,
		Reason: "supported backends are " + strings.Join(names, ", "),
	}
}

// SnapshotStore persists the complete name to session id mapping.
// Save always replaces the previous snapshot as a whole.
type SnapshotStore interface {
	// Load returns the stored mapping and whether a snapshot existed at all
	Load() (map[string]string, bool, error)
	Save(chats map[string]string) error
	Path() string
}

// NewSnapshotStore returns the store for backend rooted at dir
func NewSnapshotStore(dir string, backend Backend) (SnapshotStore, error) {
	switch backend {
	case BackendJSON, "":
		return NewJSONStore(filepath.Join(dir, "chats.json")), nil
	case BackendSQLite:
		return NewSQLiteStore(filepath.Join(dir, "chats.db")), nil
	case BackendBolt:
		return NewBoltStore(filepath.Join(dir, "chats.bolt")), nil
	}
	return nil, fmt.Errorf("unsupported backend %q", backend)
}

// snapshotFile is the on-disk layout of chats.json
type snapshotFile struct {
	Chats map[string]string `json:"chats"`
}

// JSONStore keeps the snapshot in a single pretty-printed JSON file
type JSONStore struct {
	path string
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Path() string { return s.path }

func (s *JSONStore) Load() (map[string]string, bool, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, false, nil
		}
		return nil, true, err
	}

	var f snapshotFile
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, true, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	if f.Chats == nil {
		f.Chats = map[string]string{}
	}
	return f.Chats, true, nil
}

// Save writes the snapshot to a temporary file and renames it into place
func (s *JSONStore) Save(chats map[string]string) error {
	if chats == nil {
		chats = map[string]string{}
	}
	b, err := json.MarshalIndent(snapshotFile{Chats: chats}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	b = append(b, '\n')

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	tmpPath := s.path + ".tmp"
	if err := writeSynced(tmpPath, b); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

// writeSynced writes b to path and flushes it to disk before closing, so a
// rename that follows never exposes an empty file.
func writeSynced(path string, b []byte) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
