// Package links implements the marketing-URL builder: UTM parameter
// composition plus a saved-link list.
package links

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"
)

// Params are the UTM fields appended to a base URL. Empty fields are omitted
// from the built URL.
type Params struct {
	Source   string
	Medium   string
	Campaign string
	Term     string
	Content  string
}

// Build composes the final URL, preserving any query parameters already on
// the base. An unparseable base is returned unchanged: the builder previews
// as the user types, so garbage input must round-trip quietly.
func Build(base string, p Params) string {
	u, err := url.Parse(strings.TrimSpace(base))
	if err != nil {
		return base
	}

	q := u.Query()
	set := func(key, val string) {
		if val = strings.TrimSpace(val); val != "" {
			q.Set(key, val)
		}
	}
	set("utm_source", p.Source)
	set("utm_medium", p.Medium)
	set("utm_campaign", p.Campaign)
	set("utm_term", p.Term)
	set("utm_content", p.Content)

	u.RawQuery = q.Encode()
	return u.String()
}

// Link is one saved marketing URL.
type Link struct {
	ID        int64
	Name      string
	BaseURL   string
	Params    Params
	CreatedAt string
}

// URL returns the composed URL for the saved link.
func (l Link) URL() string {
	return Build(l.BaseURL, l.Params)
}

// Store persists saved links in SQLite.
type Store struct {
	DB *sql.DB
}

// List returns saved links newest first, optionally filtered by a substring
// of name or campaign.
func (s *Store) List(query string) ([]Link, error) {
	search := "%" + query + "%"
	rows, err := s.DB.Query(`
		SELECT id, name, base_url, source, medium, campaign, term, content, created_at
		FROM links
		WHERE (? = '' OR name LIKE ? OR campaign LIKE ?)
		ORDER BY datetime(created_at) DESC, id DESC
	`, query, search, search)
	if err != nil {
		return nil, fmt.Errorf("query links: %w", err)
	}
	defer rows.Close()

	links := make([]Link, 0)
	for rows.Next() {
		var l Link
		if err := rows.Scan(&l.ID, &l.Name, &l.BaseURL, &l.Params.Source, &l.Params.Medium,
			&l.Params.Campaign, &l.Params.Term, &l.Params.Content, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan link: %w", err)
		}
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate links: %w", err)
	}
	return links, nil
}

// Create saves a link and returns it with its id.
func (s *Store) Create(l Link) (Link, error) {
	l.Name = strings.TrimSpace(l.Name)
	l.BaseURL = strings.TrimSpace(l.BaseURL)
	if l.BaseURL == "" {
		return Link{}, fmt.Errorf("base url is required")
	}

	res, err := s.DB.Exec(`
		INSERT INTO links (name, base_url, source, medium, campaign, term, content)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, l.Name, l.BaseURL, l.Params.Source, l.Params.Medium, l.Params.Campaign, l.Params.Term, l.Params.Content)
	if err != nil {
		return Link{}, fmt.Errorf("insert link: %w", err)
	}

	l.ID, err = res.LastInsertId()
	if err != nil {
		return Link{}, fmt.Errorf("read link id: %w", err)
	}
	return l, nil
}

// Delete removes a saved link. Returns sql.ErrNoRows when the id is unknown.
func (s *Store) Delete(id int64) error {
	res, err := s.DB.Exec(`DELETE FROM links WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete link: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete link: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
