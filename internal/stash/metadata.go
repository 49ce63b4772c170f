package stash

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/appstash/appstash/internal/kv"
)

// emptyMetadata is the fallback returned when no metadata record can be
// read. CreatedAt stays empty: only construction sets it.
func (s *Stash) emptyMetadata() Metadata {
	return Metadata{Version: s.version, Entities: map[string]EntityInfo{}}
}

// Metadata returns the namespace's bookkeeping record, or an empty one
// when the store is unavailable or the record is absent or corrupt.
func (s *Stash) Metadata(ctx context.Context) Metadata {
	if !s.available {
		return s.emptyMetadata()
	}
	return s.loadMetadata(ctx)
}

func (s *Stash) loadMetadata(ctx context.Context) Metadata {
	m := Load(ctx, s, metadataEntity, s.emptyMetadata())
	if m.Entities == nil {
		m.Entities = map[string]EntityInfo{}
	}
	return m
}

// initMetadata writes the initial metadata record unless one already
// exists, so reconstruction over a populated store never resets
// createdAt. Only a definite absence triggers the write: read failures
// are left alone rather than risk clobbering a live record.
func (s *Stash) initMetadata(ctx context.Context) {
	_, err := s.store.Get(ctx, s.key(metadataEntity))
	if err == nil {
		return
	}
	if !errors.Is(err, kv.ErrNotFound) {
		s.log.Warn(ctx, "failed to check metadata record", "error", err)
		return
	}

	m := Metadata{
		Version:   s.version,
		CreatedAt: s.timestamp(),
		Entities:  map[string]EntityInfo{},
	}
	if !s.putRecord(ctx, metadataEntity, m) {
		s.log.Warn(ctx, "failed to initialize metadata record", "app", s.appName)
	}
}

// trackEntity records a fresh write of entity in the metadata entities
// index. Best effort: a failed metadata update is logged but does not
// undo the entity write it follows.
func (s *Stash) trackEntity(ctx context.Context, entity string) {
	m := s.loadMetadata(ctx)
	m.Entities[entity] = EntityInfo{LastUpdated: s.timestamp(), Version: s.version}
	if !s.putRecord(ctx, metadataEntity, m) {
		s.log.Warn(ctx, "failed to update metadata index", "entity", entity)
	}
}

// untrackEntity drops entity from the metadata entities index. The
// metadata record is rewritten only when an entry was actually present.
func (s *Stash) untrackEntity(ctx context.Context, entity string) {
	m := s.loadMetadata(ctx)
	if _, ok := m.Entities[entity]; !ok {
		return
	}
	delete(m.Entities, entity)
	if !s.putRecord(ctx, metadataEntity, m) {
		s.log.Warn(ctx, "failed to update metadata index", "entity", entity)
	}
}

// rawRecord parses the stored record under a physical key without
// interpreting its payload.
func (s *Stash) rawRecord(ctx context.Context, physicalKey string) (Record, error) {
	raw, err := s.store.Get(ctx, physicalKey)
	if err != nil {
		return Record{}, err
	}
	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}
