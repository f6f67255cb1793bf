// Package cache memoizes translations of previously seen text.
package cache

import "context"

// Cache stores string values by key. Implementations must be safe for
// concurrent use.
type Cache interface {
	// Get returns the value for key. Misses, expired entries and backend
	// failures all report false.
	Get(ctx context.Context, key string) (string, bool)

	Set(ctx context.Context, key string, value string) error
}

// DefaultKeyPrefix namespaces keys in shared stores.
const DefaultKeyPrefix = "sentilens:translation:"
