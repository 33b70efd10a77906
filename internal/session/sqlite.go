package session

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS chat_turns (
	session_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	role TEXT NOT NULL,
	content TEXT NOT NULL,
	PRIMARY KEY (session_id, seq)
);
`

// SQLiteStore persists conversation histories in a local sqlite file, so
// sessions survive a process restart.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) the sqlite database at path and
// ensures the schema exists.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create session schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, sessionID string) ([]Turn, error) {
	turns := []Turn{}
	err := s.db.SelectContext(ctx, &turns,
		`SELECT role, content FROM chat_turns WHERE session_id = ? ORDER BY seq`,
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}
	return turns, nil
}

// Put rewrites the session's turns in one transaction.
func (s *SQLiteStore) Put(ctx context.Context, sessionID string, turns []Turn) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM chat_turns WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("failed to clear session %s: %w", sessionID, err)
	}

	for i, turn := range turns {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO chat_turns (session_id, seq, role, content) VALUES (?, ?, ?, ?)`,
			sessionID, i, turn.Role, turn.Content); err != nil {
			return fmt.Errorf("failed to save session %s: %w", sessionID, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) Delete(ctx context.Context, sessionID string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM chat_turns WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", sessionID, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
