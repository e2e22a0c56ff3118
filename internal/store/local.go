package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// Logical keys for the local persistent store. The core treats the store as
// opaque durable storage keyed by this small fixed set of names.
const (
	KeySettings = "settings"
	KeyTimer    = "timer"
	KeyRoom     = "room"
	KeyStats    = "stats"
	KeyCoins    = "coins"
)

var ErrKeyNotFound = errors.New("key not found")

// Local is the durable key-value store backing the client core. It survives
// restarts and is mutated only by the owning session.
type Local struct {
	db *sql.DB
}

func OpenLocal(path string) (*Local, error) {
	db, err := OpenSQLite(path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL
		)
	`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create kv table: %w", err)
	}

	return &Local{db: db}, nil
}

func (l *Local) Close() error {
	return l.db.Close()
}

func (l *Local) Get(key string) ([]byte, error) {
	var value []byte
	err := l.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

func (l *Local) Set(key string, value []byte) error {
	_, err := l.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// LoadJSON decodes the value stored under key into out. Returns
// ErrKeyNotFound when the key has never been written.
func (l *Local) LoadJSON(key string, out interface{}) error {
	raw, err := l.Get(key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (l *Local) SaveJSON(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return l.Set(key, raw)
}
