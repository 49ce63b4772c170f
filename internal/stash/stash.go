package stash

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/appstash/appstash/internal/kv"
	"github.com/appstash/appstash/internal/logging"
	"github.com/google/uuid"
)

const (
	// DefaultAppName is the namespace used when none is configured.
	DefaultAppName = "taskManagementApp"

	// DefaultVersion is the data-format version stamped on records when
	// none is configured.
	DefaultVersion = "2.0"

	// metadataEntity is the reserved entity holding the namespace's
	// bookkeeping record. Writes to it go through putRecord directly so
	// metadata updates never re-enter the tracking path.
	metadataEntity = "_metadata"
)

// Stash is a persistence façade over a kv.Store. It namespaces entity
// names into physical keys, stamps every value with a write timestamp
// and format version, and keeps a secondary metadata record describing
// what it has written.
//
// No method ever returns an error: failures are absorbed into the
// documented safe default (false, nil, zero value, or the caller's
// fallback) and reported through the configured logger. Availability is
// probed once at construction and never re-checked.
//
// A Stash assumes single-actor access. Save and Remove perform
// non-atomic read-modify-write sequences against the metadata record,
// so concurrent writers can lose metadata updates.
type Stash struct {
	appName   string
	version   string
	available bool

	store kv.Store
	log   logging.Logger
	now   func() time.Time
}

// Option configures a Stash before its availability probe runs.
type Option func(*Stash)

// WithAppName sets the namespace all physical keys are prefixed with.
func WithAppName(name string) Option {
	return func(s *Stash) { s.appName = name }
}

// WithVersion sets the data-format version stamped on written records.
func WithVersion(version string) Option {
	return func(s *Stash) { s.version = version }
}

// WithLogger sets the diagnostic logger. Defaults to a no-op logger.
func WithLogger(log logging.Logger) Option {
	return func(s *Stash) { s.log = log }
}

// WithClock overrides the wall clock used for timestamps. For tests.
func WithClock(now func() time.Time) Option {
	return func(s *Stash) { s.now = now }
}

// New builds a Stash over store, probes whether the store is usable,
// and, when it is, writes the namespace's initial metadata record if
// one does not exist yet. Construction never fails: an unusable store
// yields a Stash whose every operation returns its safe default.
func New(ctx context.Context, store kv.Store, opts ...Option) *Stash {
	s := &Stash{
		appName: DefaultAppName,
		version: DefaultVersion,
		store:   store,
		log:     logging.NewNopLogger(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.available = s.probe(ctx)
	if !s.available {
		s.log.Warn(ctx, "store unavailable, operating in degraded mode", "app", s.appName)
		return s
	}
	s.initMetadata(ctx)
	return s
}

// probe checks the store with a trial write+delete of a unique key kept
// outside the namespace, so a failed cleanup can never pollute it.
func (s *Stash) probe(ctx context.Context) bool {
	if s.store == nil {
		return false
	}
	key := "__stash_probe_" + uuid.NewString()
	if err := s.store.Set(ctx, key, "ok"); err != nil {
		return false
	}
	if err := s.store.Remove(ctx, key); err != nil {
		return false
	}
	return true
}

// Available reports the result of the construction-time probe.
func (s *Stash) Available() bool { return s.available }

// AppName returns the configured namespace.
func (s *Stash) AppName() string { return s.appName }

// Version returns the configured data-format version.
func (s *Stash) Version() string { return s.version }

func (s *Stash) key(entity string) string { return s.appName + "_" + entity }

func (s *Stash) prefix() string { return s.appName + "_" }

func (s *Stash) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

// putRecord wraps value into a Record and writes it under the entity's
// physical key. It never touches the metadata record; tracking is the
// caller's concern.
func (s *Stash) putRecord(ctx context.Context, entity string, value any) bool {
	data, err := json.Marshal(value)
	if err != nil {
		s.log.Error(ctx, "failed to serialize entity", "entity", entity, "error", err)
		return false
	}
	rec := Record{Data: data, Timestamp: s.timestamp(), Version: s.version}
	buf, err := json.Marshal(rec)
	if err != nil {
		s.log.Error(ctx, "failed to serialize record", "entity", entity, "error", err)
		return false
	}
	if err := s.store.Set(ctx, s.key(entity), string(buf)); err != nil {
		s.log.Error(ctx, "failed to write entity", "entity", entity, "error", err)
		return false
	}
	return true
}

// Save persists value under the named entity and records the update in
// the metadata entities index. Saving under the reserved metadata name
// writes the record but is never self-tracked. Returns false when the
// store is unavailable or the write fails; the value is then unchanged
// or absent, never half-written.
func (s *Stash) Save(ctx context.Context, entity string, value any) bool {
	if !s.available {
		return false
	}
	if !s.putRecord(ctx, entity, value) {
		return false
	}
	if entity != metadataEntity {
		s.trackEntity(ctx, entity)
	}
	return true
}

// Load retrieves the named entity's value, decoded into T. Absent,
// unreadable, or corrupt records yield def. A stored record whose format
// version differs from the stash's configured version is returned
// unchanged after a warning; no migration is attempted.
func Load[T any](ctx context.Context, s *Stash, entity string, def T) T {
	if !s.available {
		return def
	}
	raw, err := s.store.Get(ctx, s.key(entity))
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.log.Warn(ctx, "failed to read entity", "entity", entity, "error", err)
		}
		return def
	}

	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		s.log.Warn(ctx, "corrupt record, returning default", "entity", entity, "error", err)
		return def
	}
	if rec.Version != s.version {
		s.log.Warn(ctx, "format version mismatch",
			"entity", entity, "stored", rec.Version, "configured", s.version)
	}

	var value T
	if err := json.Unmarshal(rec.Data, &value); err != nil {
		s.log.Warn(ctx, "failed to decode entity payload", "entity", entity, "error", err)
		return def
	}
	return value
}

// Remove deletes the named entity and drops it from the metadata
// entities index. Removing an absent entity succeeds.
func (s *Stash) Remove(ctx context.Context, entity string) bool {
	if !s.available {
		return false
	}
	if err := s.store.Remove(ctx, s.key(entity)); err != nil {
		s.log.Error(ctx, "failed to remove entity", "entity", entity, "error", err)
		return false
	}
	if entity != metadataEntity {
		s.untrackEntity(ctx, entity)
	}
	return true
}

// Exists reports whether the named entity has a stored record.
func (s *Stash) Exists(ctx context.Context, entity string) bool {
	if !s.available {
		return false
	}
	_, err := s.store.Get(ctx, s.key(entity))
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.log.Warn(ctx, "failed to check entity", "entity", entity, "error", err)
		}
		return false
	}
	return true
}

// Entities lists the namespace's entity names in store enumeration
// order, excluding the reserved metadata entity. Unavailable stores and
// enumeration failures yield an empty list.
func (s *Stash) Entities(ctx context.Context) []string {
	if !s.available {
		return nil
	}
	keys, err := s.scanKeys(ctx, s.prefix())
	if err != nil {
		s.log.Warn(ctx, "failed to enumerate entities", "error", err)
		return nil
	}
	entities := make([]string, 0, len(keys))
	for _, k := range keys {
		name := strings.TrimPrefix(k, s.prefix())
		if name == metadataEntity {
			continue
		}
		entities = append(entities, name)
	}
	return entities
}

// Clear deletes every physical key whose name starts with the
// namespace, the metadata record included. Keys are collected first and
// deleted afterwards so the store is never mutated mid-enumeration.
func (s *Stash) Clear(ctx context.Context) bool {
	if !s.available {
		return false
	}
	keys, err := s.scanKeys(ctx, s.appName)
	if err != nil {
		s.log.Error(ctx, "failed to enumerate keys for clear", "error", err)
		return false
	}
	for _, k := range keys {
		if err := s.store.Remove(ctx, k); err != nil {
			s.log.Error(ctx, "failed to remove key during clear", "key", k, "error", err)
			return false
		}
	}
	return true
}

// scanKeys walks the store's full enumeration and collects the keys
// starting with prefix. The store offers no prefix query, so this is
// O(total stored keys) regardless of how many match.
func (s *Stash) scanKeys(ctx context.Context, prefix string) ([]string, error) {
	n, err := s.store.Len(ctx)
	if err != nil {
		return nil, err
	}
	var keys []string
	for i := 0; i < n; i++ {
		k, err := s.store.Key(ctx, i)
		if err != nil {
			return nil, err
		}
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}
