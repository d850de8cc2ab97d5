// Package cache declares the contract of the match result cache.
package cache

import "github.com/guttosm/stacking-service/internal/domain/model"

// Cache stores derived packages keyed by a cart/catalog signature.
type Cache interface {
	Get(key string) ([]model.Package, bool)
	Set(key string, value []model.Package)
	Invalidate(key string)
	Clear()
	Stop()
}

// Metrics provides cache performance counters.
type Metrics struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	Capacity  int
}

// CacheWithMetrics extends Cache with metrics reporting.
type CacheWithMetrics interface {
	Cache
	Metrics() Metrics
}
