package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/starford/laguz/internal/apperr"
	"github.com/starford/laguz/internal/models"
)

// Local is the fallback store: an in-memory list mirrored to a flat JSON
// file so entries survive restarts even without the primary backend.
type Local struct {
	mu      sync.Mutex
	path    string
	entries []*models.Entry
}

// NewLocal creates a Local store mirrored to the given file, loading any
// entries a previous run left behind. A read failure starts empty rather
// than failing; the fallback must always be constructible.
func NewLocal(path string) *Local {
	l := &Local{path: path}
	data, err := os.ReadFile(path)
	if err == nil {
		_ = json.Unmarshal(data, &l.entries)
	}
	return l
}

// Close flushes the mirror file.
func (l *Local) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.flush()
}

// Add appends the entry and rewrites the mirror file.
func (l *Local) Add(e *models.Entry) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	cp := *e
	l.entries = append(l.entries, &cp)
	if err := l.flush(); err != nil {
		return "", err
	}
	return e.ID, nil
}

// List returns at most limit entries ordered by the given field.
func (l *Local) List(limit int, orderBy string, descending bool) ([]*models.Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if limit <= 0 {
		limit = 50
	}
	out := make([]*models.Entry, len(l.entries))
	for i, e := range l.entries {
		cp := *e
		out[i] = &cp
	}
	sortEntries(out, orderBy, descending)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Get returns the entry with the given id.
func (l *Local) Get(id string) (*models.Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, e := range l.entries {
		if e.ID == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, apperr.ErrNotFound
}

// Update replaces the stored record for id.
func (l *Local) Update(id string, e *models.Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, existing := range l.entries {
		if existing.ID == id {
			cp := *e
			cp.ID = id
			if cp.CreatedAt.IsZero() {
				cp.CreatedAt = existing.CreatedAt
			}
			l.entries[i] = &cp
			return l.flush()
		}
	}
	return apperr.ErrNotFound
}

// Delete removes the entry with the given id.
func (l *Local) Delete(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, e := range l.entries {
		if e.ID == id {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return l.flush()
		}
	}
	return apperr.ErrNotFound
}

// Search does a case-insensitive substring match.
func (l *Local) Search(query string, limit int) ([]*models.Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if limit <= 0 {
		limit = 20
	}
	q := strings.ToLower(query)
	var out []*models.Entry
	for _, e := range l.entries {
		if matchEntry(e, q) {
			cp := *e
			out = append(out, &cp)
			if len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}

func matchEntry(e *models.Entry, q string) bool {
	if strings.Contains(strings.ToLower(e.Title), q) ||
		strings.Contains(strings.ToLower(e.Content), q) ||
		strings.Contains(strings.ToLower(e.Summary), q) {
		return true
	}
	for _, t := range e.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

func sortEntries(entries []*models.Entry, orderBy string, descending bool) {
	less := func(a, b *models.Entry) bool { return a.CreatedAt.Before(b.CreatedAt) }
	switch orderBy {
	case OrderByDate:
		less = func(a, b *models.Entry) bool { return a.EffectiveDate().Before(b.EffectiveDate()) }
	case OrderByScore:
		less = func(a, b *models.Entry) bool { return a.Sentiment.Score < b.Sentiment.Score }
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if descending {
			return less(entries[j], entries[i])
		}
		return less(entries[i], entries[j])
	})
}

// flush atomically rewrites the mirror file: tmp file, fsync, rename.
// Callers must hold the mutex.
func (l *Local) flush() error {
	if l.path == "" {
		return nil
	}
	data, err := json.MarshalIndent(l.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("store: marshal local entries: %w", err)
	}

	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("store: mkdir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".laguz-tmp-*")
	if err != nil {
		return fmt.Errorf("store: create temp: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("store: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("store: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("store: close temp: %w", err)
	}
	if err := os.Rename(tmpName, l.path); err != nil {
		return fmt.Errorf("store: rename: %w", err)
	}
	success = true
	return nil
}
