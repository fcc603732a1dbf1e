package index

import "github.com/starford/dagaz/internal/models"

// EventIndex defines the interface for event indexing operations.
// Consumers should depend on this interface rather than the concrete *DB type
// to facilitate testing with mocks.
type EventIndex interface {
	UpsertEvent(ev models.Event) error
	DeleteEvent(id string) error
	GetChecksum(id string) (string, error)
	AllChecksums() (map[string]string, error)
	Search(query string, limit int) ([]SearchResult, error)
	CountByCategory() (map[models.Category]int, error)
	Close() error
}

// Verify *DB satisfies EventIndex at compile time.
var _ EventIndex = (*DB)(nil)
