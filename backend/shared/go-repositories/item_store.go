package repositories

import "context"

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

// ItemStore is a string key/value store with the semantics of browser
// local storage: whole values are read and replaced, nothing is merged.
type ItemStore interface {
	// GetItem returns the stored value. found is false when the key is absent.
	GetItem(ctx context.Context, key string) (value string, found bool, err error)
	// SetItem replaces the value stored under key.
	SetItem(ctx context.Context, key, value string) error
	// Keys lists every stored key starting with prefix, in no particular order.
	Keys(ctx context.Context, prefix string) ([]string, error)
	// Ping checks the backing service is reachable.
	Ping(ctx context.Context) error
	Close() error
}
