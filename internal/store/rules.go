// Package store persists the rule set document in SQLite. Persistence is
// best-effort: the engine keeps running on its in-memory rule set when the
// store misbehaves.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"giveaway/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS rule_set (
	id         INTEGER PRIMARY KEY CHECK (id = 1),
	doc        TEXT NOT NULL,
	updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);`

// Rules is a SQLite-backed single-document store for the rule set.
type Rules struct {
	db *sql.DB
}

// Open opens (creating if necessary) the rule store at the given path.
func Open(path string) (*Rules, error) {
	if path == "" {
		return nil, fmt.Errorf("store path is required")
	}
	dsn := path + "?_journal_mode=WAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Rules{db: db}, nil
}

// Close closes the underlying handle.
func (r *Rules) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Load returns the persisted rule set, or the default rule set when none
// has been saved yet.
func (r *Rules) Load() (models.RuleSet, error) {
	var doc string
	err := r.db.QueryRow(`SELECT doc FROM rule_set WHERE id = 1`).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DefaultRuleSet(), nil
	}
	if err != nil {
		return models.DefaultRuleSet(), fmt.Errorf("load rule set: %w", err)
	}

	var rules models.RuleSet
	if err := json.Unmarshal([]byte(doc), &rules); err != nil {
		return models.DefaultRuleSet(), fmt.Errorf("decode rule set: %w", err)
	}
	return rules, nil
}

// Save overwrites the persisted rule set.
func (r *Rules) Save(rules models.RuleSet) error {
	doc, err := json.Marshal(rules)
	if err != nil {
		return fmt.Errorf("encode rule set: %w", err)
	}
	_, err = r.db.Exec(`
		INSERT INTO rule_set (id, doc, updated_at) VALUES (1, ?, datetime('now'))
		ON CONFLICT (id) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at
	`, string(doc))
	if err != nil {
		return fmt.Errorf("save rule set: %w", err)
	}
	return nil
}
