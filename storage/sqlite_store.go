package storage

import (
	"database/sql"
	"fmt"

	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// SQLiteStore keeps the token in a single-table SQLite database
type SQLiteStore struct {
	db *sql.DB
}

func newSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening sqlite store %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating sqlite schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close ...
func (ss *SQLiteStore) Close() error {
	log.Debug("closing store ...")
	return ss.db.Close()
}

// GetToken ...
func (ss *SQLiteStore) GetToken() (string, error) {
	var token string
	err := ss.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, TokenKey).Scan(&token)
	if err == sql.ErrNoRows {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

// SetToken ...
func (ss *SQLiteStore) SetToken(token string) error {
	_, err := ss.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		TokenKey, token,
	)
	return err
}

// DelToken ...
func (ss *SQLiteStore) DelToken() error {
	_, err := ss.db.Exec(`DELETE FROM kv WHERE key = ?`, TokenKey)
	return err
}
