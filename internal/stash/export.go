package stash

import (
	"context"
	"encoding/json"
	"strings"
)

// Export snapshots every record under the namespace into a Bundle,
// keyed by physical store key. Returns nil when the store is
// unavailable or any record cannot be read or parsed.
func (s *Stash) Export(ctx context.Context) *Bundle {
	if !s.available {
		return nil
	}
	keys, err := s.scanKeys(ctx, s.prefix())
	if err != nil {
		s.log.Error(ctx, "failed to enumerate keys for export", "error", err)
		return nil
	}

	data := make(map[string]Record, len(keys))
	for _, k := range keys {
		rec, err := s.rawRecord(ctx, k)
		if err != nil {
			s.log.Error(ctx, "failed to export record", "key", k, "error", err)
			return nil
		}
		data[k] = rec
	}

	return &Bundle{
		AppName:    s.appName,
		Version:    s.version,
		ExportedAt: s.timestamp(),
		Data:       data,
	}
}

// Import writes every record of a previously exported bundle back into
// the store under its original physical key. The bundle is validated
// before any write, so an invalid bundle is never partially applied.
//
// Records are restored verbatim: timestamps and versions are kept as
// exported, and the metadata entities index is not rebuilt. Imported
// entities therefore surface in the index only after their next Save.
func (s *Stash) Import(ctx context.Context, b *Bundle) bool {
	if !s.available {
		return false
	}
	if b == nil || b.AppName == "" || b.Data == nil {
		s.log.Error(ctx, "invalid import bundle: missing appName or data")
		return false
	}

	for k, rec := range b.Data {
		buf, err := json.Marshal(rec)
		if err != nil {
			s.log.Error(ctx, "failed to serialize imported record", "key", k, "error", err)
			return false
		}
		if err := s.store.Set(ctx, k, string(buf)); err != nil {
			s.log.Error(ctx, "failed to write imported record", "key", k, "error", err)
			return false
		}
	}
	return true
}

// Info reports key counts and byte usage for the whole store and for
// the namespace's share of it. An unavailable store, or any enumeration
// failure, yields the zero Info with Available false.
func (s *Stash) Info(ctx context.Context) Info {
	if !s.available {
		return Info{}
	}
	n, err := s.store.Len(ctx)
	if err != nil {
		s.log.Warn(ctx, "failed to measure store", "error", err)
		return Info{}
	}

	info := Info{Available: true, AppName: s.appName}
	for i := 0; i < n; i++ {
		k, err := s.store.Key(ctx, i)
		if err != nil {
			s.log.Warn(ctx, "failed to measure store", "error", err)
			return Info{}
		}
		v, err := s.store.Get(ctx, k)
		if err != nil {
			s.log.Warn(ctx, "failed to measure store", "key", k, "error", err)
			return Info{}
		}
		size := len(k) + len(v)
		info.TotalKeys++
		info.TotalBytes += size
		if strings.HasPrefix(k, s.prefix()) {
			info.AppKeys++
			info.AppBytes += size
		}
	}
	return info
}
