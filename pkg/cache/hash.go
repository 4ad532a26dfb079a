package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey returns prefix + ":" + the SHA-256 of the JSON-encoded parts.
func hashKey(prefix string, parts ...any) string {
	return prefix + ":" + HashJSON(parts)
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashJSON hashes the JSON encoding of v. Values that fail to encode hash
// as the empty document.
func HashJSON(v any) string {
	data, _ := json.Marshal(v)
	return Hash(data)
}
