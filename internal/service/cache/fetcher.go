package cache

import (
	"context"
	"errors"
	"time"

	"RiskFill/internal/domain/models"
	drepo "RiskFill/internal/domain/repository"
	pcache "RiskFill/pkg/cache"
	"RiskFill/pkg/logger"
	"RiskFill/pkg/util"
)

const keyPrefix = "series"

// CachedFetcher decorates a SeriesFetcher with a read-through cache.
// Keys carry the current date so a cached history never outlives the day it was fetched.
type CachedFetcher struct {
	next  drepo.SeriesFetcher
	store pcache.Service
	ttl   time.Duration
	log   *logger.Logger
	now   func() time.Time
}

func NewCachedFetcher(next drepo.SeriesFetcher, store pcache.Service, ttl time.Duration, l *logger.Logger) *CachedFetcher {
	if l == nil {
		l = logger.Nop()
	}
	return &CachedFetcher{next: next, store: store, ttl: ttl, log: l, now: time.Now}
}

// FetchSeries serves from cache when possible. Cache failures fall through to the source.
func (f *CachedFetcher) FetchSeries(ctx context.Context, seriesID string, start time.Time) ([]models.Observation, error) {
	key := pcache.GenerateKeyWithParams(keyPrefix, seriesID, util.FormatDate(start), util.FormatDate(f.now().UTC()))

	var cached []models.Observation
	err := f.store.Get(ctx, key, &cached)
	switch {
	case err == nil:
		f.log.Debug("series cache hit", logger.String("series", seriesID), logger.Int("observations", len(cached)))
		return cached, nil
	case !errors.Is(err, pcache.ErrCacheMiss):
		f.log.Warn("series cache read failed", logger.String("series", seriesID), logger.Error(err))
	}

	obs, err := f.next.FetchSeries(ctx, seriesID, start)
	if err != nil {
		return nil, err
	}

	if err := f.store.Set(ctx, key, obs, f.ttl); err != nil {
		f.log.Warn("series cache write failed", logger.String("series", seriesID), logger.Error(err))
	}
	return obs, nil
}
