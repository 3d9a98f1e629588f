package geocode

import (
	"context"
	"errors"
	"log"
	"time"

	"jobad-insights/internal/domain/jobad"
)

// JSONCache is the subset of cache.Redis used here.
type JSONCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

type cachedPlace struct {
	Found  bool            `json:"found"`
	Record jobad.GeoRecord `json:"record"`
}

// CachedClient remembers answers, including misses, so reruns do not spend
// API quota on places already looked up.
type CachedClient struct {
	next   Forwarder
	cache  JSONCache
	ttl    time.Duration
	logger *log.Logger
}

func NewCachedClient(next Forwarder, cache JSONCache, ttl time.Duration, logger *log.Logger) *CachedClient {
	if logger == nil {
		logger = log.Default()
	}
	return &CachedClient{next: next, cache: cache, ttl: ttl, logger: logger}
}

func cacheKey(location string) string {
	return "geo:" + location
}

func (c *CachedClient) Forward(ctx context.Context, location string) (jobad.GeoRecord, error) {
	key := cacheKey(location)
	if c.cache != nil {
		var hit cachedPlace
		found, err := c.cache.GetJSON(ctx, key, &hit)
		if err != nil {
			c.logger.Printf("[Geocode] cache read failed location=%q err=%v", location, err)
		}
		if found {
			if !hit.Found {
				return jobad.GeoRecord{}, ErrNoResult
			}
			return hit.Record, nil
		}
	}

	rec, err := c.next.Forward(ctx, location)
	switch {
	case err == nil:
		c.store(ctx, key, cachedPlace{Found: true, Record: rec})
	case errors.Is(err, ErrNoResult):
		c.store(ctx, key, cachedPlace{Found: false})
	}
	return rec, err
}

func (c *CachedClient) store(ctx context.Context, key string, v cachedPlace) {
	if c.cache == nil {
		return
	}
	if err := c.cache.SetJSON(ctx, key, v, c.ttl); err != nil {
		c.logger.Printf("[Geocode] cache write failed key=%q err=%v", key, err)
	}
}
