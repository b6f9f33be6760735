package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// RenderKey generates the cache key for a rendered artifact.
// The key format is: render:<format>:hash(snapshot JSON)
func RenderKey(format string, snapshotJSON []byte) string {
	return fmt.Sprintf("render:%s:%s", format, Hash(snapshotJSON))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
