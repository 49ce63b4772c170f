package kv

import "context"

// Store is a synchronous string key/value store with positional key
// enumeration. It is the substrate the stash façade persists into.
//
// There is no prefix query: callers that need "all keys under a prefix"
// must enumerate Key(0)..Key(Len()-1) and filter.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Key returns the key at the given enumeration position, or
	// ErrNotFound when index is out of range. Positions are stable
	// between mutations; new keys enumerate after existing ones.
	Key(ctx context.Context, index int) (string, error)

	// Len returns the number of stored keys.
	Len(ctx context.Context) (int, error)
}
