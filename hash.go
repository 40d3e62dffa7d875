package apiglot

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashText computes the SHA-256 hash of the trimmed text.
func HashText(text string) string {
	trimmed := strings.TrimSpace(text)
	hash := sha256.Sum256([]byte(trimmed))
	return hex.EncodeToString(hash[:])
}

// CacheKey generates a cache key from a hash and the kind of value stored.
func CacheKey(hash, kind string) string {
	return hash + ":" + kind
}

// ProjectInfoKey is the cache key of a project's info for one host and credential.
// The API key only enters the key through the hash.
func ProjectInfoKey(host, projectID, apiKey string) string {
	return CacheKey(HashText(host+"\x00"+projectID+"\x00"+apiKey), "project-info")
}
