package stash

import "encoding/json"

// Record is the persisted envelope around every entity value. The data
// payload is kept raw so records survive export/import without the
// importer knowing the caller's types.
type Record struct {
	Data      json.RawMessage `json:"data"`
	Timestamp string          `json:"timestamp"`
	Version   string          `json:"version"`
}

// EntityInfo is the per-entity bookkeeping kept in the metadata record.
type EntityInfo struct {
	LastUpdated string `json:"lastUpdated"`
	Version     string `json:"version"`
}

// Metadata is the payload of the reserved metadata entity. Entities is a
// best-effort index of what the stash has written: it can drift from the
// store's real contents when the store is mutated outside this API, and
// no reconciliation is attempted.
type Metadata struct {
	Version   string                `json:"version"`
	CreatedAt string                `json:"createdAt"`
	Entities  map[string]EntityInfo `json:"entities"`
}

// Bundle is a full snapshot of one namespace, keyed by physical store
// key, suitable for backup and restore.
type Bundle struct {
	AppName    string            `json:"appName"`
	Version    string            `json:"version"`
	ExportedAt string            `json:"exportedAt"`
	Data       map[string]Record `json:"data"`
}

// Info summarizes store usage. Byte counts are the summed lengths of
// keys plus serialized values.
type Info struct {
	Available  bool   `json:"available"`
	AppName    string `json:"appName,omitempty"`
	TotalKeys  int    `json:"totalKeys"`
	TotalBytes int    `json:"totalBytes"`
	AppKeys    int    `json:"appKeys"`
	AppBytes   int    `json:"appBytes"`
}
