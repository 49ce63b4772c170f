// Package kv defines the synchronous key/value substrate the stash
// façade persists into, plus interchangeable backends.
//
// # Contract
//
// Store models a flat string→string map with positional key enumeration
// (Key(i) for i < Len()) and no prefix query. Aggregate consumers must
// enumerate every key and filter; that cost model is deliberate and part
// of the contract.
//
// # Backends
//
//   - MemoryStore  — in-memory map, insertion-ordered; default and test double
//   - FileStore    — single JSON document, rewritten atomically per mutation
//   - SQLiteStore  — sqlite table managed by goose migrations
//
// All backends are safe for concurrent use, but the façade layered on top
// performs non-atomic read-modify-write sequences, so single-actor access
// is still the assumed usage model.
package kv
