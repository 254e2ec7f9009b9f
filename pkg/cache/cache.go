// Package cache provides caching for Portage tree scan results.
//
// Walking a full tree and parsing every metadata.xml is the slow part of the
// proxy-maintainer reports, so scan results can be persisted between runs.
// Three backends implement the Cache interface:
//   - FileCache: XDG cache directory storage for CLI usage
//   - RedisCache: shared storage when several hosts serve the same reports
//   - NullCache: no-op backend used by --no-cache and in tests
//
// Keys are derived from the scan inputs (tree root, classifier policy) via
// SHA-256 hashing; see keys.go.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values with optional expiration.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
