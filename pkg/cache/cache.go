// Package cache stores the results of floor runs so repeated scripts are not
// replayed.
//
// Three backends implement [Cache]:
//   - [FileCache]: JSON files under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance
//   - [NullCache]: never stores anything, for --no-cache and tests
//
// Keys come from a [Keyer] so callers never build them by hand.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long a run result stays cached when no TTL is configured.
const DefaultTTL = 24 * time.Hour

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired key is a miss,
	// reported as (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// RunKey identifies the result of running script on a floor of the given size.
	RunKey(size int, script string) string
}

// DefaultKeyer builds unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// RunKey returns "run:" followed by a hash of size and script.
func (DefaultKeyer) RunKey(size int, script string) string {
	return hashKey("run", size, script)
}
