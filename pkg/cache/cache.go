// Package cache stores rendered artifacts between CLI runs.
//
// # Backends
//
//   - [FileCache]: JSON entries on disk with optional expiry
//   - [NullCache]: never stores anything, used with --no-cache
//
// # Keys
//
// Keys are built by a [Keyer] from a hash of the inputs that determine the
// output: the document bytes, the flavor file, and the render flags. The
// hashing scheme keeps keys a fixed length regardless of input size.
//
//	k := cache.NewDefaultKeyer()
//	key := k.ArtifactKey(cache.Hash(docBytes), cache.ArtifactKeyOpts{Flavor: "shader", Format: "svg"})
//	if data, ok, _ := c.Get(ctx, key); ok {
//	    return data
//	}
package cache

import (
	"context"
	"strings"
	"time"
)

// Cache is a byte-oriented key/value store.
// A miss is reported as ok == false with a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// prefixArtifact starts every artifact key.
const prefixArtifact = "artifact"

// ArtifactKeyOpts are the render settings that change an artifact.
type ArtifactKeyOpts struct {
	Flavor     string  `json:"flavor"`
	Format     string  `json:"format"`
	ConfigHash string  `json:"config_hash,omitempty"`
	Scale      float64 `json:"scale,omitempty"`
	Detailed   bool    `json:"detailed,omitempty"`
	NodeLink   bool    `json:"node_link,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey identifies a rendered scene or diagram.
	ArtifactKey(docHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return hashKey(prefixArtifact, docHash, opts)
}

// keyType returns the prefix of key, used to label cache events.
func keyType(key string) string {
	if i := strings.LastIndexByte(key, ':'); i > 0 {
		k := key[:i]
		if j := strings.LastIndexByte(k, ':'); j >= 0 {
			return k[j+1:]
		}
		return k
	}
	return "unknown"
}
