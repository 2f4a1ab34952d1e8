package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"
)

// Cache defines the interface for caching raw byte values
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from a search query and result limit
func Key(query string, maxResults int) string {
	hash := sha256.Sum256([]byte(query))
	return "veristat:v1:" + hex.EncodeToString(hash[:]) + ":" + strconv.Itoa(maxResults)
}
