// Package cache stores rendered artifacts keyed by everything that affects
// their bytes.
//
// Backends implement [Cache]: [FileCache] for the CLI, [RedisCache] for a
// server shared between processes, and [NullCache] when caching is off.
// Keys come from a [Keyer] so that callers never assemble them by hand.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and true, or false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the backend.
	Close() error
}

// Entry lifetimes. Artifacts are deterministic in their key, so they only
// expire to bound disk and memory use.
const (
	TTLArtifact = 7 * 24 * time.Hour
	TTLGraph    = 7 * 24 * time.Hour
)

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey returns the key of one rendered frame of a preset.
	ArtifactKey(preset string, opts ArtifactKeyOpts) string
	// GraphKey returns the key of a node-link diagram of a preset.
	GraphKey(preset string, opts GraphKeyOpts) string
}

// ArtifactKeyOpts holds every render option that changes artifact bytes.
type ArtifactKeyOpts struct {
	Format     string     `json:"format"`
	Width      int        `json:"width"`
	Height     int        `json:"height"`
	Zoom       float64    `json:"zoom"`
	Centered   bool       `json:"centered"`
	Background string     `json:"background"`
	Rotate     [3]float64 `json:"rotate"`
	Frame      int        `json:"frame"`
	Frames     int        `json:"frames"`
}

// GraphKeyOpts holds every option that changes a node-link diagram.
type GraphKeyOpts struct {
	Format    string     `json:"format"`
	Detailed  bool       `json:"detailed"`
	Generated bool       `json:"generated"`
	Rotate    [3]float64 `json:"rotate"`
}

// NullCache never stores anything. Every Get is a miss.
type NullCache struct{}

// NewNullCache returns a cache that disables caching.
func NewNullCache() Cache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error { return nil }
func (*NullCache) Close() error { return nil }

// DefaultKeyer hashes key options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// keyVersion is mixed into every key; bump it when rendering output
// changes for identical options.
const keyVersion = 1

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(preset string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+preset, keyVersion, opts)
}

// GraphKey implements [Keyer].
func (DefaultKeyer) GraphKey(preset string, opts GraphKeyOpts) string {
	return hashKey("graph:"+preset, keyVersion, opts)
}

// hashKey returns prefix joined to the SHA-256 of the JSON encoding of
// parts. Encoding a struct cannot fail, so the error is dropped.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + digest(data)
}

func digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
