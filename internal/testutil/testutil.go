// Package testutil provides shared test helpers for engines, stores and indexes.
package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/starford/dagaz/internal/calendar"
	"github.com/starford/dagaz/internal/eventstore"
	"github.com/starford/dagaz/internal/index"
	"github.com/starford/dagaz/internal/models"
)

// Now is the fixed wall clock used by test engines: Sunday 2024-03-10 12:00 UTC.
var Now = time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

// Engine returns a UTC engine whose clock is frozen at Now.
func Engine(opts ...calendar.Option) *calendar.Engine {
	opts = append([]calendar.Option{
		calendar.WithLocation(time.UTC),
		calendar.WithClock(func() time.Time { return Now }),
	}, opts...)
	return calendar.NewEngine(opts...)
}

// TestDB creates a temporary SQLite index that is automatically cleaned up.
func TestDB(t *testing.T) *index.DB {
	t.Helper()
	db, err := index.Open(filepath.Join(t.TempDir(), "dagaz-test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// Fields builds valid event fields on 2024-03-<day> from hh:mm for d.
func Fields(title string, day, hh, mm int, d time.Duration) models.Fields {
	start := time.Date(2024, time.March, day, hh, mm, 0, 0, time.UTC)
	return models.Fields{
		Title:    title,
		Start:    start,
		End:      start.Add(d),
		Category: models.CategoryPrimary,
	}
}

// Seed adds fields to store and returns the created events.
func Seed(store *eventstore.Store, fields ...models.Fields) []models.Event {
	out := make([]models.Event, len(fields))
	for i, f := range fields {
		out[i] = store.Add(f)
	}
	return out
}
