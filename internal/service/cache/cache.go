package cache

import (
	"fmt"
	"time"
)

// BytesCache is a minimal cache API storing raw bytes with TTL. The
// pipeline uses it to keep kline snapshots fresh enough to skip a
// refetch inside the dataset freshness window.
type BytesCache interface {
	GetBytes(key string) (b []byte, ok bool, err error)
	SetBytes(key string, value []byte, ttl time.Duration) error
}

// KlinesKey builds the cache key for one symbol/interval snapshot.
func KlinesKey(symbol, interval string) string {
	return fmt.Sprintf("klines:%s:%s", symbol, interval)
}
