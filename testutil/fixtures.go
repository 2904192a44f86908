package testutil

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// Exchange is one user message and its reply, for building fixtures
type Exchange struct {
	User      string
	Assistant string
}

// WriteJSONSnapshot writes a chats.json fixture into dir
func WriteJSONSnapshot(t *testing.T, dir string, chats map[string]string) string {
	t.Helper()
	data, err := json.MarshalIndent(map[string]interface{}{"chats": chats}, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal snapshot: %v", err)
	}
	path := filepath.Join(dir, "chats.json")
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		t.Fatalf("Failed to write snapshot %s: %v", path, err)
	}
	return path
}

// CreateSQLiteSnapshot creates a chats.db fixture the way an older run would have left it
func CreateSQLiteSnapshot(t *testing.T, dir string, chats map[string]string) string {
	t.Helper()
	dbPath := filepath.Join(dir, "chats.db")
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		t.Fatalf("Failed to create fixture directory: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS chats (
		name TEXT PRIMARY KEY,
		session_id TEXT NOT NULL
	)`
	if _, err := db.Exec(createTableSQL); err != nil {
		t.Fatalf("Failed to create table: %v", err)
	}

	for name, id := range chats {
		if _, err := db.Exec("INSERT INTO chats (name, session_id) VALUES (?, ?)", name, id); err != nil {
			t.Fatalf("Failed to insert %s: %v", name, err)
		}
	}
	return dbPath
}

// WriteTranscript writes <name>.txt in dir in the transcript format
func WriteTranscript(t *testing.T, dir, name string, exchanges ...Exchange) string {
	t.Helper()
	var data []byte
	for _, e := range exchanges {
		data = append(data, "User: "+e.User+"\nAI: "+e.Assistant+"\n\n"...)
	}
	path := filepath.Join(dir, name+".txt")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write transcript %s: %v", path, err)
	}
	return path
}
