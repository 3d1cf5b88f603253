// Package cache provides caching implementations for repository and query interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"screener_backend/internal/feature/dashboard/usecase"
)

// DashboardQuery is the query surface this decorator caches.
type DashboardQuery interface {
	GetDashboard(ctx context.Context, indexName string, tradeDate time.Time) (usecase.DashboardView, error)
}

// CachingDashboardQuery decorates a DashboardQuery with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying query. The view for one (index, date) pair is
// cached as a whole; webhook and snapshot writers never invalidate it, so the
// TTL is kept short.
type CachingDashboardQuery struct {
	inner     DashboardQuery
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingDashboardQuery decorates a DashboardQuery with Redis caching.
// If ttl is 0, it defaults to 1 minute. If namespace is empty, it uses "dashboard".
func NewCachingDashboardQuery(rdb *redis.Client, ttl time.Duration, inner DashboardQuery, namespace string) *CachingDashboardQuery {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if namespace == "" {
		namespace = "dashboard"
	}
	return &CachingDashboardQuery{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// GetDashboard retrieves the view, checking cache first then falling back to
// the underlying query.
func (c *CachingDashboardQuery) GetDashboard(ctx context.Context, indexName string, tradeDate time.Time) (usecase.DashboardView, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.GetDashboard(ctx, indexName, tradeDate)
	}

	key := c.cacheKey(indexName, tradeDate)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out usecase.DashboardView
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.GetDashboard(ctx, indexName, tradeDate)
	if err != nil {
		return usecase.DashboardView{}, err
	}

	// 3) Store best effort: don't fail the request if caching fails
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

func (c *CachingDashboardQuery) cacheKey(indexName string, tradeDate time.Time) string {
	return fmt.Sprintf("%s:%s:%s", c.namespace, indexName, tradeDate.Format("2006-01-02"))
}
