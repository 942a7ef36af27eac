package corona

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/limejump/corona-analytics/internal/contract"
	"github.com/limejump/corona-analytics/pkg/logger"
	"github.com/limejump/corona-analytics/pkg/redis"
)

// QuoteSource returns the raw PPA quote records matching filters, in Corona's order
type QuoteSource interface {
	FetchQuotes(ctx context.Context, filters contract.Filters) ([]contract.Record, error)
}

var _ QuoteSource = (*Client)(nil)
var _ QuoteSource = (*CachedQuotes)(nil)

// FetchQuotes queries ppa/quotes with the given filters
func (c *Client) FetchQuotes(ctx context.Context, filters contract.Filters) ([]contract.Record, error) {
	var records []contract.Record
	if err := c.get(ctx, PathQuotes, c.collectionURL(PathQuotes), filters.Values(), &records); err != nil {
		return nil, err
	}

	c.logger.WithFields(map[string]interface{}{
		"filters": filters.Encode(),
		"quotes":  len(records),
	}).Debug("PPA quotes fetched")

	return records, nil
}

// FetchProductQuotes loads the price components of one quote
func (c *Client) FetchProductQuotes(ctx context.Context, quoteID int64) (contract.Pricing, error) {
	query := url.Values{"quote_id": {strconv.FormatInt(quoteID, 10)}}

	var items []contract.ProductQuote
	if err := c.get(ctx, PathProductQuotes, c.collectionURL(PathProductQuotes), query, &items); err != nil {
		return contract.Pricing{}, err
	}
	return contract.NewPricing(items), nil
}

// CacheRecorder counts quote cache lookups
type CacheRecorder interface {
	CacheHit()
	CacheMiss()
	CacheError()
}

// CachedQuotes is a cache-aside decorator over a QuoteSource.
// Cached entries are keyed by the encoded filters; Corona order is kept as-is.
type CachedQuotes struct {
	next     QuoteSource
	cache    *redis.Cache
	ttl      time.Duration
	logger   *logger.Logger
	recorder CacheRecorder
}

// NewCachedQuotes wraps next with a Redis cache
func NewCachedQuotes(next QuoteSource, cache *redis.Cache, ttl time.Duration, log *logger.Logger) *CachedQuotes {
	return &CachedQuotes{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: log.Component("quote_cache"),
	}
}

// WithRecorder reports hits and misses to r
func (q *CachedQuotes) WithRecorder(r CacheRecorder) *CachedQuotes {
	q.recorder = r
	return q
}

// FetchQuotes serves from cache, falling back to the wrapped source.
// With Redis disabled it passes straight through and records nothing.
func (q *CachedQuotes) FetchQuotes(ctx context.Context, filters contract.Filters) ([]contract.Record, error) {
	if !q.cache.Enabled() {
		return q.next.FetchQuotes(ctx, filters)
	}

	key := redis.QuotesKey(filters.Encode())

	var records []contract.Record
	found, err := q.cache.Get(ctx, key, &records)
	switch {
	case err != nil:
		// a broken cache must not block the query
		q.record(CacheRecorder.CacheError)
		q.logger.WithError(err).WithField("key", key).Warn("Quote cache read failed")
	case found:
		q.record(CacheRecorder.CacheHit)
		return records, nil
	default:
		q.record(CacheRecorder.CacheMiss)
	}

	records, err = q.next.FetchQuotes(ctx, filters)
	if err != nil {
		return nil, err
	}

	if err := q.cache.Set(ctx, key, records, q.ttl); err != nil {
		q.logger.WithError(err).WithField("key", key).Warn("Quote cache write failed")
	}
	return records, nil
}

// Invalidate drops the cached result for filters
func (q *CachedQuotes) Invalidate(ctx context.Context, filters contract.Filters) error {
	if err := q.cache.Delete(ctx, redis.QuotesKey(filters.Encode())); err != nil {
		return fmt.Errorf("invalidate quotes: %w", err)
	}
	return nil
}

func (q *CachedQuotes) record(fn func(CacheRecorder)) {
	if q.recorder != nil {
		fn(q.recorder)
	}
}
