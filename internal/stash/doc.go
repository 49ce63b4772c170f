// Package stash is a persistence façade over a synchronous key/value
// store. It stores named entities (any JSON-serializable value) under a
// common namespace, stamps every record with a write timestamp and
// format version, and maintains a metadata record indexing what it has
// written.
//
// # Record layout
//
// Each entity lives under the physical key "<appName>_<entity>" as
//
//	{"data": <value>, "timestamp": "<RFC3339>", "version": "<format version>"}
//
// The namespace's metadata lives under "<appName>__metadata" in the same
// envelope, with a payload of
//
//	{"version": ..., "createdAt": ..., "entities": {<name>: {"lastUpdated": ..., "version": ...}}}
//
// The metadata entity never appears in its own entities index.
//
// # Failure model
//
// Availability is probed once at construction with a trial write+delete;
// an unusable store puts the stash in degraded mode where every
// operation returns its safe default without touching the store. No
// operation returns an error: failures surface as false/nil/default and
// are reported through the configured logging.Logger.
//
// # Typical usage
//
//	s := stash.New(ctx, store, stash.WithAppName("app"), stash.WithVersion("1.0"))
//	s.Save(ctx, "users", users)
//	users = stash.Load(ctx, s, "users", nil)
//	names := s.Entities(ctx)
//	bundle := s.Export(ctx)
//
// A Stash assumes a single writer; metadata updates are read-modify-write
// and can lose updates under concurrent use.
package stash
