// Package apperr defines sentinel errors shared across application layers.
package apperr

import "errors"

var (
	// ErrNotFound indicates the requested entry does not exist.
	ErrNotFound = errors.New("not found")

	// ErrStoreUnavailable indicates that neither the primary store nor the
	// fallback could complete the operation.
	ErrStoreUnavailable = errors.New("store unavailable")
)
