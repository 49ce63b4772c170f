package kv

import "errors"

var (
	// ErrNotFound reports an absent key or an out-of-range enumeration index.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable reports a store that cannot serve any operation
	// (e.g. closed, or its backing medium is inaccessible).
	ErrUnavailable = errors.New("store unavailable")
)
