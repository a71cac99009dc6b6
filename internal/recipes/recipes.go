// Package recipes persists recipe snapshots: the raw inputs of one
// calculation session alongside the derived numbers at save time. Snapshots
// are read back verbatim, never recalculated, so a saved card keeps showing
// what the brewer saw even if formulas change later.
package recipes

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mrnasser/dewey.beer/internal/brew"
)

// Snapshot is one saved recipe.
type Snapshot struct {
	ID        int64
	Title     string
	Notes     string
	Context   brew.RecipeContext
	Derived   brew.Summary
	CreatedAt string
}

// ListItem is the condensed row shown on the recipe list.
type ListItem struct {
	ID        int64
	Title     string
	CreatedAt string
	ABV       float64
	IBU       float64
}

// Store persists snapshots in SQLite.
type Store struct {
	DB *sql.DB
}

// Save stores a snapshot and returns its id.
func (s *Store) Save(snap Snapshot) (int64, error) {
	snap.Title = strings.TrimSpace(snap.Title)
	if snap.Title == "" {
		snap.Title = snap.Context.Name
	}
	if snap.Title == "" {
		return 0, fmt.Errorf("recipe title is required")
	}

	inputs, err := json.Marshal(snap.Context)
	if err != nil {
		return 0, fmt.Errorf("encode recipe inputs: %w", err)
	}
	derived, err := json.Marshal(snap.Derived)
	if err != nil {
		return 0, fmt.Errorf("encode derived values: %w", err)
	}

	res, err := s.DB.Exec(`
		INSERT INTO recipes (title, notes, inputs_json, derived_json)
		VALUES (?, ?, ?, ?)
	`, snap.Title, snap.Notes, string(inputs), string(derived))
	if err != nil {
		return 0, fmt.Errorf("insert recipe: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read recipe id: %w", err)
	}
	return id, nil
}

// List returns saved recipes newest first, optionally filtered by a substring
// of title or notes.
func (s *Store) List(query string) ([]ListItem, error) {
	search := "%" + query + "%"
	rows, err := s.DB.Query(`
		SELECT id, title, created_at, derived_json
		FROM recipes
		WHERE (? = '' OR title LIKE ? OR COALESCE(notes, '') LIKE ?)
		ORDER BY datetime(created_at) DESC, id DESC
	`, query, search, search)
	if err != nil {
		return nil, fmt.Errorf("query recipes: %w", err)
	}
	defer rows.Close()

	items := make([]ListItem, 0)
	for rows.Next() {
		var item ListItem
		var derivedJSON string
		if err := rows.Scan(&item.ID, &item.Title, &item.CreatedAt, &derivedJSON); err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		item.ABV, item.IBU = headline(derivedJSON)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipes: %w", err)
	}
	return items, nil
}

// headline pulls the two list-view numbers out of the derived snapshot.
// Undecodable JSON shows as zeros rather than failing the whole list.
func headline(derivedJSON string) (abv, ibu float64) {
	var d brew.Summary
	if err := json.Unmarshal([]byte(derivedJSON), &d); err != nil {
		return 0, 0
	}
	return d.ABV, d.IBU
}

// Get loads a full snapshot. Returns sql.ErrNoRows when the id is unknown.
func (s *Store) Get(id int64) (Snapshot, error) {
	var snap Snapshot
	var inputsJSON, derivedJSON string
	err := s.DB.QueryRow(`
		SELECT id, title, COALESCE(notes, ''), inputs_json, derived_json, created_at
		FROM recipes
		WHERE id = ?
	`, id).Scan(&snap.ID, &snap.Title, &snap.Notes, &inputsJSON, &derivedJSON, &snap.CreatedAt)
	if err != nil {
		return Snapshot{}, err
	}

	if err := json.Unmarshal([]byte(inputsJSON), &snap.Context); err != nil {
		return Snapshot{}, fmt.Errorf("decode recipe inputs: %w", err)
	}
	if err := json.Unmarshal([]byte(derivedJSON), &snap.Derived); err != nil {
		return Snapshot{}, fmt.Errorf("decode derived values: %w", err)
	}
	return snap, nil
}
