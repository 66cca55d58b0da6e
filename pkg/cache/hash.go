package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the hex SHA-256 digest of data. A nil slice and an empty one
// hash alike, so a missing flavor file keys the same as an empty one.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey returns prefix + ":" + the digest of the JSON encoding of parts.
// Struct parts are encoded field by field in declaration order, which keeps
// keys stable across runs.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}
