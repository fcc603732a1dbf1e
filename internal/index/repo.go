package index

import (
	"encoding/json"
	"fmt"

	"github.com/starford/dagaz/internal/checksum"
	"github.com/starford/dagaz/internal/models"
)

// SearchResult represents one search hit.
type SearchResult struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// Fingerprint returns the checksum of the event's JSON form.
func Fingerprint(ev models.Event) string {
	sum, _ := checksum.JSON(ev)
	return sum
}

// UpsertEvent inserts or replaces an event and its FTS entry within a transaction.
func (db *DB) UpsertEvent(ev models.Event) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	attendees := ev.Attendees
	if attendees == nil {
		attendees = []string{}
	}
	attendeesJSON, _ := json.Marshal(attendees)

	_, err = tx.Exec(`
		INSERT INTO events (id, title, description, location, category, attendees, all_day, start_at, end_at, checksum)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title       = excluded.title,
			description = excluded.description,
			location    = excluded.location,
			category    = excluded.category,
			attendees   = excluded.attendees,
			all_day     = excluded.all_day,
			start_at    = excluded.start_at,
			end_at      = excluded.end_at,
			checksum    = excluded.checksum
	`, ev.ID, ev.Title, ev.Description, ev.Location, string(ev.Category), string(attendeesJSON),
		ev.AllDay, ev.Start.UTC(), ev.End.UTC(), Fingerprint(ev))
	if err != nil {
		return fmt.Errorf("index: upsert event: %w", err)
	}

	// FTS upsert (no-op when FTS5 tag is absent).
	if err := ftsUpsert(tx, ev); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteEvent removes an event and its FTS entry.
func (db *DB) DeleteEvent(id string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDelete(tx, id)
	if _, err := tx.Exec(`DELETE FROM events WHERE id = ?`, id); err != nil {
		return fmt.Errorf("index: delete event: %w", err)
	}

	return tx.Commit()
}

// GetChecksum returns the stored checksum for an event, or empty string if not found.
func (db *DB) GetChecksum(id string) (string, error) {
	var cs string
	err := db.conn.QueryRow(`SELECT checksum FROM events WHERE id = ?`, id).Scan(&cs)
	if err != nil {
		return "", nil // not found is fine
	}
	return cs, nil
}

// AllChecksums returns the checksum of every indexed event keyed by id.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT id, checksum FROM events`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var id, cs string
		if err := rows.Scan(&id, &cs); err != nil {
			return nil, err
		}
		out[id] = cs
	}
	return out, rows.Err()
}

// CountByCategory returns how many indexed events carry each category.
func (db *DB) CountByCategory() (map[models.Category]int, error) {
	rows, err := db.conn.Query(`SELECT category, count(*) FROM events GROUP BY category`)
	if err != nil {
		return nil, fmt.Errorf("index: count by category: %w", err)
	}
	defer rows.Close()
	out := make(map[models.Category]int)
	for rows.Next() {
		var c string
		var n int
		if err := rows.Scan(&c, &n); err != nil {
			return nil, err
		}
		out[models.Category(c)] = n
	}
	return out, rows.Err()
}
