package cache

import (
	"context"
	"time"
)

// NullCache stores nothing. Every Get is a miss.
// Used with --no-cache and in tests.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache {
	return NullCache{}
}

// Get always returns a miss.
func (NullCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set does nothing.
func (NullCache) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}

// Delete does nothing.
func (NullCache) Delete(context.Context, string) error {
	return nil
}

// Clear removes nothing.
func (NullCache) Clear(context.Context) (int, error) {
	return 0, nil
}

// Close does nothing.
func (NullCache) Close() error {
	return nil
}

var (
	_ Cache   = NullCache{}
	_ Clearer = NullCache{}
)
