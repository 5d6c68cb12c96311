// Package state persists user-visible menu item state across sessions.
//
// Toggle state and the enabled and hidden flags are recorded per item in a
// SQLite database, keyed by the item's path in the menu tree. Separators
// have no identity and are skipped.
package state

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"menukit/internal/menu"
)

// Schema for the item state store.
const schema = `
CREATE TABLE IF NOT EXISTS item_state (
    path        TEXT PRIMARY KEY,
    state       INTEGER NOT NULL,
    enabled     INTEGER NOT NULL,
    hidden      INTEGER NOT NULL,
    updated_ns  INTEGER NOT NULL
);
`

// Store is the SQLite item state store.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at the given path.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("state: create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("state: open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("state: apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save records the state of every addressable item in the menu tree.
func (s *Store) Save(m *menu.Menu) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("state: begin save: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO item_state (path, state, enabled, hidden, updated_ns)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			state = excluded.state,
			enabled = excluded.enabled,
			hidden = excluded.hidden,
			updated_ns = excluded.updated_ns`)
	if err != nil {
		return fmt.Errorf("state: prepare save: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UnixNano()
	err = walk(m, "", func(path string, it *menu.Item) error {
		_, err := stmt.Exec(path, int(it.State()), it.IsEnabled(), it.IsHidden(), now)
		return err
	})
	if err != nil {
		return fmt.Errorf("state: save: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("state: commit save: %w", err)
	}
	return nil
}

// Restore applies previously saved state to matching items in the menu
// tree. Items without a saved row keep their current values. Enabled flags
// are not applied to menus that autoenable; the container owns them there.
func (s *Store) Restore(m *menu.Menu) error {
	rows, err := s.db.Query(`SELECT path, state, enabled, hidden FROM item_state`)
	if err != nil {
		return fmt.Errorf("state: query: %w", err)
	}
	defer rows.Close()

	type saved struct {
		state   int
		enabled bool
		hidden  bool
	}
	byPath := make(map[string]saved)
	for rows.Next() {
		var path string
		var sv saved
		if err := rows.Scan(&path, &sv.state, &sv.enabled, &sv.hidden); err != nil {
			return fmt.Errorf("state: scan: %w", err)
		}
		byPath[path] = sv
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("state: rows: %w", err)
	}

	return walk(m, "", func(path string, it *menu.Item) error {
		sv, ok := byPath[path]
		if !ok {
			return nil
		}
		it.SetState(menu.State(sv.state))
		it.SetEnabled(sv.enabled)
		it.SetHidden(sv.hidden)
		return nil
	})
}

// Forget removes the saved row for one item path.
func (s *Store) Forget(path string) error {
	if _, err := s.db.Exec(`DELETE FROM item_state WHERE path = ?`, path); err != nil {
		return fmt.Errorf("state: forget %s: %w", path, err)
	}
	return nil
}

// ItemPath returns the persistence key of an item within a tree rooted at
// root: slash-joined titles from the root down, with the tag appended when
// non-zero so equally titled siblings stay distinct. Separators have no
// path.
func ItemPath(root *menu.Menu, it *menu.Item) (string, bool) {
	var found string
	_ = walk(root, "", func(path string, candidate *menu.Item) error {
		if candidate == it {
			found = path
		}
		return nil
	})
	return found, found != ""
}

func walk(m *menu.Menu, prefix string, fn func(path string, it *menu.Item) error) error {
	for _, it := range m.Items() {
		if it.IsSeparator() {
			continue
		}
		seg := it.Title()
		if tag := it.Tag(); tag != 0 {
			seg = fmt.Sprintf("%s#%d", seg, tag)
		}
		path := prefix + "/" + seg
		if err := fn(path, it); err != nil {
			return err
		}
		if sub := it.Submenu(); sub != nil {
			if err := walk(sub, path, fn); err != nil {
				return err
			}
		}
	}
	return nil
}
