// Package store persists journal entries. The SQLite backend is primary;
// a flat-file fallback keeps the application usable when it is not, with
// Failover switching between them invisibly to callers.
package store

import "github.com/starford/laguz/internal/models"

// Order fields accepted by List.
const (
	OrderByCreatedAt = "created_at"
	OrderByDate      = "date"
	OrderByScore     = "score"
)

// Store is the entry persistence contract. Implementations must tolerate
// entries with missing optional fields.
type Store interface {
	// Add persists a new entry and returns its id.
	Add(e *models.Entry) (string, error)

	// List returns at most limit entries ordered by the given field.
	List(limit int, orderBy string, descending bool) ([]*models.Entry, error)

	// Get returns the entry with the given id, or apperr.ErrNotFound.
	Get(id string) (*models.Entry, error)

	// Update replaces the stored entry with the given id.
	Update(id string, e *models.Entry) error

	// Delete removes the entry with the given id.
	Delete(id string) error

	// Search matches query against title, content, summary, and tags.
	Search(query string, limit int) ([]*models.Entry, error)

	Close() error
}

// Compile-time interface checks.
var (
	_ Store = (*SQLite)(nil)
	_ Store = (*Local)(nil)
	_ Store = (*Failover)(nil)
)
