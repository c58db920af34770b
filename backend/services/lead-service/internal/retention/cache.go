// Package retention keeps the "recent requests" list of each browser: a
// JSON array of submitted-request summaries under one storage key, pruned
// to a rolling horizon.
package retention

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mudassir779/Frant-Ent-Tree/backend/shared/go-models"
	"github.com/mudassir779/Frant-Ent-Tree/backend/shared/go-repositories"
	"github.com/mudassir779/Frant-Ent-Tree/backend/shared/go-utils"
)

// LoadState tells how the persisted value looked when it was read.
type LoadState int

const (
	// StateLoaded means a valid array was read (it may have been empty).
	StateLoaded LoadState = iota
	// StateEmpty means nothing was stored under the key.
	StateEmpty
	// StateUnreadable means the store failed or held something that is not
	// a record array. It is reported as an empty cache.
	StateUnreadable
)

func (s LoadState) String() string {
	switch s {
	case StateLoaded:
		return "loaded"
	case StateEmpty:
		return "empty"
	case StateUnreadable:
		return "unreadable"
	default:
		return fmt.Sprintf("LoadState(%d)", int(s))
	}
}

// LoadResult is what LoadValid saw and kept.
type LoadResult struct {
	State   LoadState
	Records []models.SubmittedRequest
	// Pruned is how many expired records were dropped.
	Pruned int
}

// ErrUnreadable is wrapped in a WriteError when Append refuses to overwrite a
// value it could not read.
var ErrUnreadable = errors.New("stored value is unreadable")

// WriteError wraps a failed or skipped write to the store. Persistence is
// best effort; callers may log it and carry on.
type WriteError struct {
	Key string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Key, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Cache is the retention list for every scope in one ItemStore. Reads and
// writes of one scope are not serialized against each other: two concurrent
// appends may race and the last write wins.
type Cache struct {
	store   repositories.ItemStore
	horizon time.Duration
	now     func() time.Time
}

// Option customizes a Cache.
type Option func(*Cache)

// WithHorizon overrides utils.LeadRetentionHorizon.
func WithHorizon(d time.Duration) Option { return func(c *Cache) { c.horizon = d } }

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option { return func(c *Cache) { c.now = now } }

func NewCache(store repositories.ItemStore, opts ...Option) *Cache {
	c := &Cache{
		store:   store,
		horizon: utils.LeadRetentionHorizon,
		now:     time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// KeyPrefix is shared by every scope's storage key.
const KeyPrefix = utils.SubmittedRequestsKey + ":"

// StorageKey returns the key holding scope's records.
func StorageKey(scope string) string { return KeyPrefix + scope }

// ScopeFromKey is the inverse of StorageKey.
func ScopeFromKey(key string) (string, bool) {
	if !strings.HasPrefix(key, KeyPrefix) {
		return "", false
	}
	return strings.TrimPrefix(key, KeyPrefix), true
}

// LoadValid reads scope's records and drops every record at least one
// horizon old. When something was dropped the remaining records are written
// back; a failed write-back is returned as a *WriteError next to the usable
// result. Read failures never produce an error.
func (c *Cache) LoadValid(ctx context.Context, scope string) (LoadResult, error) {
	key := StorageKey(scope)
	records, state := c.read(ctx, key)
	if state != StateLoaded {
		return LoadResult{State: state, Records: []models.SubmittedRequest{}}, nil
	}

	now := c.now()
	valid := make([]models.SubmittedRequest, 0, len(records))
	for _, r := range records {
		if !r.ExpiredAt(now, c.horizon) {
			valid = append(valid, r)
		}
	}

	res := LoadResult{State: StateLoaded, Records: valid, Pruned: len(records) - len(valid)}
	if res.Pruned == 0 {
		return res, nil
	}
	if err := c.write(ctx, key, valid); err != nil {
		return res, err
	}
	utils.Logger.WithField("scope", scope).Debugf("Pruned %d expired request(s)", res.Pruned)
	return res, nil
}

// Append adds rec to whatever is currently stored for scope (pruned or not)
// and persists the result, which is also returned. There is no count limit.
// When the stored value cannot be read nothing is written and a WriteError
// wrapping ErrUnreadable is returned, so a transient store failure never
// replaces existing history.
func (c *Cache) Append(ctx context.Context, scope string, rec models.SubmittedRequest) ([]models.SubmittedRequest, error) {
	key := StorageKey(scope)
	records, state := c.read(ctx, key)
	if state == StateUnreadable {
		return nil, &WriteError{Key: key, Err: ErrUnreadable}
	}
	updated := append(records, rec)
	if err := c.write(ctx, key, updated); err != nil {
		return updated, err
	}
	return updated, nil
}

// Scopes lists every scope that has a stored value.
func (c *Cache) Scopes(ctx context.Context) ([]string, error) {
	keys, err := c.store.Keys(ctx, KeyPrefix)
	if err != nil {
		return nil, err
	}
	scopes := make([]string, 0, len(keys))
	for _, k := range keys {
		if s, ok := ScopeFromKey(k); ok {
			scopes = append(scopes, s)
		}
	}
	return scopes, nil
}

func (c *Cache) read(ctx context.Context, key string) ([]models.SubmittedRequest, LoadState) {
	raw, found, err := c.store.GetItem(ctx, key)
	if err != nil {
		utils.Logger.WithError(err).WithField("key", key).Warn("Error loading submitted requests")
		return []models.SubmittedRequest{}, StateUnreadable
	}
	if !found || raw == "" {
		return []models.SubmittedRequest{}, StateEmpty
	}

	var records []models.SubmittedRequest
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		utils.Logger.WithError(err).WithField("key", key).Warn("Error parsing submitted requests")
		return []models.SubmittedRequest{}, StateUnreadable
	}
	if records == nil {
		records = []models.SubmittedRequest{}
	}
	return records, StateLoaded
}

func (c *Cache) write(ctx context.Context, key string, records []models.SubmittedRequest) error {
	if records == nil {
		records = []models.SubmittedRequest{}
	}
	b, err := json.Marshal(records)
	if err != nil {
		return &WriteError{Key: key, Err: err}
	}
	if err := c.store.SetItem(ctx, key, string(b)); err != nil {
		return &WriteError{Key: key, Err: err}
	}
	return nil
}
