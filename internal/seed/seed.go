package seed

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

// Config contains the values required by startup seed.
type Config struct {
	AdminEmail    string
	AdminPassword string
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// Run executes the startup seed in an idempotent way: the admin account and
// a starter tap board, inserted only when missing.
func Run(db *sql.DB, cfg Config) (Stats, error) {
	tx, err := db.Begin()
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	if err := seedAdmin(tx, cfg.AdminEmail, cfg.AdminPassword, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if err := seedTaps(tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func seedAdmin(tx *sql.Tx, email, password string, stats *Stats) error {
	if email == "" || password == "" {
		return nil
	}

	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM users WHERE email = ? LIMIT 1)`, email).Scan(&exists); err != nil {
		return fmt.Errorf("check admin user existence: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := tx.Exec(`INSERT INTO users (email, password_hash) VALUES (?, ?)`, email, hashPassword(password)); err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}
	stats.Inserts++
	return nil
}

// hashPassword must stay in sync with the login handler's hashing.
func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// seedTaps gives a fresh install something to show on the board.
func seedTaps(tx *sql.Tx, stats *Stats) error {
	var count int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM taps`).Scan(&count); err != nil {
		return fmt.Errorf("count taps: %w", err)
	}
	if count > 0 {
		return nil
	}

	starters := []struct {
		position int
		beer     string
		style    string
		abv      float64
		ibu      float64
		srm      float64
	}{
		{1, "House Pale", "American Pale Ale", 5.4, 38, 6.5},
		{2, "Porch Lager", "Munich Helles", 4.9, 18, 3.5},
	}

	for _, t := range starters {
		if _, err := tx.Exec(`
			INSERT INTO taps (public_id, position, beer, style, abv, ibu, srm, status)
			VALUES (?, ?, ?, ?, ?, ?, ?, 'on')
		`, uuid.NewString(), t.position, t.beer, t.style, t.abv, t.ibu, t.srm); err != nil {
			return fmt.Errorf("insert starter tap: %w", err)
		}
		stats.Inserts++
	}
	return nil
}
