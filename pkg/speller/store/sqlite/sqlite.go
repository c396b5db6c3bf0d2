package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/cognicore/speller/pkg/speller/internalerr"
	"github.com/cognicore/speller/pkg/speller/store"
)

// sqliteStore implements the WordStore interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.WordStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One connection keeps concurrent AddWord calls from hitting SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS lists (
	name TEXT PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS words (
	list TEXT NOT NULL,
	word TEXT NOT NULL,
	PRIMARY KEY(list, word),
	FOREIGN KEY(list) REFERENCES lists(name) ON DELETE CASCADE
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// Words returns the list ordered by word.
func (s *sqliteStore) Words(ctx context.Context, list store.List) ([]string, error) {
	var name string
	err := s.db.QueryRowContext(ctx, `SELECT name FROM lists WHERE name = ?`, string(list)).Scan(&name)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("list %q: %w", list, internalerr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT word FROM words WHERE list = ? ORDER BY word`, string(list))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	words := []string{}
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	return words, rows.Err()
}

// ReplaceWords replaces the list contents in a single transaction.
func (s *sqliteStore) ReplaceWords(ctx context.Context, list store.List, words []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO lists (name) VALUES (?)`, string(list)); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM words WHERE list = ?`, string(list)); err != nil {
		return err
	}

	if len(words) > 0 {
		stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO words (list, word) VALUES (?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, w := range store.Normalize(words) {
			if _, err := stmt.ExecContext(ctx, string(list), w); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// AddWord inserts a single word, creating the list if it does not exist.
func (s *sqliteStore) AddWord(ctx context.Context, list store.List, word string) (bool, error) {
	if word == "" {
		return false, internalerr.ErrInvalidInput
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO lists (name) VALUES (?)`, string(list)); err != nil {
		return false, err
	}
	res, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO words (list, word) VALUES (?, ?)`, string(list), word)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, tx.Commit()
}
