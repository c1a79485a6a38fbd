package store

import (
	"errors"
	"log/slog"

	"github.com/starford/laguz/internal/apperr"
	"github.com/starford/laguz/internal/models"
)

// Failover routes operations to the primary store and falls back to the
// local store when the primary is absent or errors. Callers never see the
// switch: reads and writes just keep working against the fallback.
type Failover struct {
	logger   *slog.Logger
	primary  Store // may be nil when the backend failed to open
	fallback Store
}

// NewFailover wraps primary (which may be nil) with a fallback store.
func NewFailover(logger *slog.Logger, primary, fallback Store) *Failover {
	return &Failover{logger: logger, primary: primary, fallback: fallback}
}

// UsingFallback reports whether the primary backend is absent.
func (f *Failover) UsingFallback() bool {
	return f.primary == nil
}

// Add never fails against an unreachable primary; at worst the entry lands
// in the local fallback.
func (f *Failover) Add(e *models.Entry) (string, error) {
	if f.primary != nil {
		id, err := f.primary.Add(e)
		if err == nil {
			return id, nil
		}
		f.warn("add", err)
	}
	id, err := f.fallback.Add(e)
	if err != nil {
		return "", errors.Join(apperr.ErrStoreUnavailable, err)
	}
	return id, nil
}

// List returns entries from the primary, or from the fallback on error.
func (f *Failover) List(limit int, orderBy string, descending bool) ([]*models.Entry, error) {
	if f.primary != nil {
		out, err := f.primary.List(limit, orderBy, descending)
		if err == nil {
			return out, nil
		}
		f.warn("list", err)
	}
	return f.fallback.List(limit, orderBy, descending)
}

// Get looks up an entry in the primary, then the fallback. Entries written
// while the primary was down live only in the fallback, so a primary miss
// still checks there.
func (f *Failover) Get(id string) (*models.Entry, error) {
	if f.primary != nil {
		e, err := f.primary.Get(id)
		if err == nil {
			return e, nil
		}
		if !errors.Is(err, apperr.ErrNotFound) {
			f.warn("get", err)
		}
	}
	return f.fallback.Get(id)
}

// Update applies the change wherever the entry lives.
func (f *Failover) Update(id string, e *models.Entry) error {
	if f.primary != nil {
		err := f.primary.Update(id, e)
		if err == nil {
			return nil
		}
		if !errors.Is(err, apperr.ErrNotFound) {
			f.warn("update", err)
		}
	}
	return f.fallback.Update(id, e)
}

// Delete removes the entry wherever it lives.
func (f *Failover) Delete(id string) error {
	if f.primary != nil {
		err := f.primary.Delete(id)
		if err == nil {
			return nil
		}
		if !errors.Is(err, apperr.ErrNotFound) {
			f.warn("delete", err)
		}
	}
	return f.fallback.Delete(id)
}

// Search queries the primary, or the fallback on error.
func (f *Failover) Search(query string, limit int) ([]*models.Entry, error) {
	if f.primary != nil {
		out, err := f.primary.Search(query, limit)
		if err == nil {
			return out, nil
		}
		f.warn("search", err)
	}
	return f.fallback.Search(query, limit)
}

// Close closes both stores.
func (f *Failover) Close() error {
	var errs []error
	if f.primary != nil {
		errs = append(errs, f.primary.Close())
	}
	errs = append(errs, f.fallback.Close())
	return errors.Join(errs...)
}

func (f *Failover) warn(op string, err error) {
	f.logger.Warn("store: primary failed, using fallback",
		slog.String("op", op),
		slog.String("error", err.Error()))
}
