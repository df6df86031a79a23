package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "listing_cache_hits_total",
		Help: "Listing cache lookups served from the cache.",
	})
	cacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "listing_cache_misses_total",
		Help: "Listing cache lookups that fell through to the database.",
	})
	cacheErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "listing_cache_errors_total",
		Help: "Cache store or codec failures, treated as misses or dropped writes.",
	}, []string{"op"})
	cacheInvalidatedKeysTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "listing_cache_invalidated_keys_total",
		Help: "Keys removed by prefix invalidation.",
	})
)
