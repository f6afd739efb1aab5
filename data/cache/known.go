package cache

import (
	"context"
	"time"

	"github.com/ncobase/geocontent/logging/logger"
	"github.com/ncobase/geocontent/paging"
)

// DefaultKnownValuesTTL is how long resolved facet values stay cached.
const DefaultKnownValuesTTL = 10 * time.Minute

// KnownValues caches the values resolved by another resolver.
//
// Cache failures are logged and the call falls through to the underlying
// resolver; the cache never fails a list request.
type KnownValues struct {
	next  paging.KnownValuesResolver
	cache ICache[[]string]
	ttl   time.Duration
}

var _ paging.KnownValuesResolver = (*KnownValues)(nil)

// NewKnownValues wraps next with cache.
func NewKnownValues(next paging.KnownValuesResolver, cache ICache[[]string], ttl time.Duration) *KnownValues {
	if ttl <= 0 {
		ttl = DefaultKnownValuesTTL
	}
	return &KnownValues{next: next, cache: cache, ttl: ttl}
}

// KnownValues returns the cached values of field, resolving and caching
// them on a miss.
func (k *KnownValues) KnownValues(ctx context.Context, field string) ([]string, error) {
	cached, err := k.cache.Get(ctx, field)
	if err != nil {
		logger.Warnf(ctx, "known values cache get %s: %v", field, err)
	}
	if cached != nil {
		return *cached, nil
	}

	values, err := k.next.KnownValues(ctx, field)
	if err != nil {
		return nil, err
	}
	if err := k.cache.Set(ctx, field, &values, k.ttl); err != nil {
		logger.Warnf(ctx, "known values cache set %s: %v", field, err)
	}
	return values, nil
}

// Invalidate drops the cached values of field.
func (k *KnownValues) Invalidate(ctx context.Context, field string) error {
	return k.cache.Delete(ctx, field)
}
