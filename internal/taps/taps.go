// Package taps stores the tap board: what is pouring, what kicked, and what
// is on deck.
package taps

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Tap statuses. Anything else is rejected at the storage boundary.
const (
	StatusOnTap  = "on"
	StatusKicked = "kicked"
	StatusOnDeck = "on-deck"
)

// Tap is one line of the board.
type Tap struct {
	ID int64
	// PublicID is a stable identifier that survives remote mirroring; row
	// ids are local to one database.
	PublicID string
	Position int
	Beer     string
	Style    string
	ABV      float64
	IBU      float64
	SRM      float64
	Status   string
	// SwatchHex is derived from SRM for display; never stored.
	SwatchHex string `json:",omitempty"`
}

// Store persists taps in SQLite.
type Store struct {
	DB *sql.DB
}

func validStatus(s string) bool {
	switch s {
	case StatusOnTap, StatusKicked, StatusOnDeck:
		return true
	}
	return false
}

// List returns the board ordered by position.
func (s *Store) List() ([]Tap, error) {
	rows, err := s.DB.Query(`
		SELECT id, public_id, position, beer, style, abv, ibu, srm, status
		FROM taps
		ORDER BY position ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query taps: %w", err)
	}
	defer rows.Close()

	board := make([]Tap, 0)
	for rows.Next() {
		var t Tap
		if err := rows.Scan(&t.ID, &t.PublicID, &t.Position, &t.Beer, &t.Style, &t.ABV, &t.IBU, &t.SRM, &t.Status); err != nil {
			return nil, fmt.Errorf("scan tap: %w", err)
		}
		board = append(board, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate taps: %w", err)
	}

	return board, nil
}

// Create inserts a tap and returns it with its assigned ids.
func (s *Store) Create(t Tap) (Tap, error) {
	t.Beer = strings.TrimSpace(t.Beer)
	if t.Beer == "" {
		return Tap{}, fmt.Errorf("beer name is required")
	}
	if t.Status == "" {
		t.Status = StatusOnTap
	}
	if !validStatus(t.Status) {
		return Tap{}, fmt.Errorf("invalid tap status %q", t.Status)
	}
	if t.PublicID == "" {
		t.PublicID = uuid.NewString()
	}

	res, err := s.DB.Exec(`
		INSERT INTO taps (public_id, position, beer, style, abv, ibu, srm, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, t.PublicID, t.Position, t.Beer, t.Style, t.ABV, t.IBU, t.SRM, t.Status)
	if err != nil {
		return Tap{}, fmt.Errorf("insert tap: %w", err)
	}

	t.ID, err = res.LastInsertId()
	if err != nil {
		return Tap{}, fmt.Errorf("read tap id: %w", err)
	}
	return t, nil
}

// Update replaces a tap's fields. Returns sql.ErrNoRows when the id is unknown.
func (s *Store) Update(t Tap) error {
	t.Beer = strings.TrimSpace(t.Beer)
	if t.Beer == "" {
		return fmt.Errorf("beer name is required")
	}
	if !validStatus(t.Status) {
		return fmt.Errorf("invalid tap status %q", t.Status)
	}

	res, err := s.DB.Exec(`
		UPDATE taps
		SET
			position = ?,
			beer = ?,
			style = ?,
			abv = ?,
			ibu = ?,
			srm = ?,
			status = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, t.Position, t.Beer, t.Style, t.ABV, t.IBU, t.SRM, t.Status, t.ID)
	if err != nil {
		return fmt.Errorf("update tap: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update tap: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a tap. Returns sql.ErrNoRows when the id is unknown.
func (s *Store) Delete(id int64) error {
	res, err := s.DB.Exec(`DELETE FROM taps WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete tap: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete tap: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
