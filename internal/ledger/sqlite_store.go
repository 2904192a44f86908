package ledger

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS chats (
	name       TEXT PRIMARY KEY,
	session_id TEXT NOT NULL
)`

// SQLiteStore keeps the snapshot in a single-table SQLite database
type SQLiteStore struct {
	path string
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Path() string { return s.path }

// openDatabase opens the database and checks the connection
func openDatabase(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return db, nil
}

func (s *SQLiteStore) Load() (map[string]string, bool, error) {
	if _, err := os.Stat(s.path); err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, false, nil
		}
		return nil, true, err
	}

	db, err := openDatabase(s.path)
	if err != nil {
		return nil, true, err
	}
	defer db.Close()

	var tables int
	err = db.QueryRow("SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'chats'").Scan(&tables)
	if err != nil {
		return nil, true, fmt.Errorf("query failed: %w", err)
	}
	chats := map[string]string{}
	if tables == 0 {
		return chats, true, nil
	}

	rows, err := db.Query("SELECT name, session_id FROM chats")
	if err != nil {
		return nil, true, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name, sessionID string
		if err := rows.Scan(&name, &sessionID); err != nil {
			return nil, true, fmt.Errorf("scan failed: %w", err)
		}
		chats[name] = sessionID
	}

	if err := rows.Err(); err != nil {
		return nil, true, fmt.Errorf("rows iteration error: %w", err)
	}

	return chats, true, nil
}

// Save replaces every row inside one transaction
func (s *SQLiteStore) Save(chats map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	db, err := openDatabase(s.path)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin failed: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("create table failed: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM chats"); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	stmt, err := tx.Prepare("INSERT INTO chats (name, session_id) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("prepare failed: %w", err)
	}
	defer stmt.Close()

	for name, sessionID := range chats {
		if _, err := stmt.Exec(name, sessionID); err != nil {
			return fmt.Errorf("insert %q failed: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit failed: %w", err)
	}
	return nil
}
