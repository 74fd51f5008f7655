package oracle

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

// CachedSource wraps another PriceSource with a Redis cache so that
// repeated lookups of the same symbol within the TTL skip the network
// fetch. A cache outage never fails a lookup; it only falls through to
// the wrapped source.
type CachedSource struct {
	source PriceSource
	rdb    *redis.Client
	ttl    time.Duration
}

func NewCachedSource(source PriceSource, rdb *redis.Client, ttl time.Duration) *CachedSource {
	return &CachedSource{source: source, rdb: rdb, ttl: ttl}
}

func (c *CachedSource) CurrentPrice(symbol string) (int64, error) {
	ctx := context.Background()
	key := fmt.Sprintf("stock:%s:price", strings.ToUpper(strings.TrimSpace(symbol)))

	if cents, err := c.rdb.Get(ctx, key).Int64(); err == nil {
		return cents, nil
	}

	cents, err := c.source.CurrentPrice(symbol)
	if err != nil {
		return 0, err
	}

	if err := c.rdb.Set(ctx, key, cents, c.ttl).Err(); err != nil {
		log.Printf("price cache write failed: %v", err)
	}
	return cents, nil
}
