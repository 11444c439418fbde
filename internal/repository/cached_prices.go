package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"StockPulse/internal/domain/models"
	domrepo "StockPulse/internal/domain/repository"
	"StockPulse/pkg/cache"
	applogger "StockPulse/pkg/logger"
)

// CachedPriceSource decorates a PriceSource with a TTL cache.
// Cache failures degrade to a direct fetch.
type CachedPriceSource struct {
	next  domrepo.PriceSource
	cache cache.Service
	ttl   time.Duration
	l     *applogger.Logger
}

func NewCachedPriceSource(next domrepo.PriceSource, c cache.Service, ttl time.Duration) *CachedPriceSource {
	return &CachedPriceSource{next: next, cache: c, ttl: ttl, l: applogger.Nop()}
}

func (s *CachedPriceSource) SetLogger(l *applogger.Logger) {
	if l != nil {
		s.l = l
	}
}

func priceKey(symbol string, days int) string {
	return fmt.Sprintf("prices:%s:%d", symbol, days)
}

func (s *CachedPriceSource) GetDailyCandles(ctx context.Context, symbol string, days int) ([]models.Candle, error) {
	key := priceKey(symbol, days)

	var cached []models.Candle
	err := s.cache.Get(ctx, key, &cached)
	switch {
	case err == nil:
		return cached, nil
	case !errors.Is(err, cache.ErrCacheMiss):
		s.l.Warn("price cache get failed", applogger.String("key", key), applogger.Error(err))
	}

	candles, err := s.next.GetDailyCandles(ctx, symbol, days)
	if err != nil {
		return nil, err
	}
	if len(candles) == 0 {
		return candles, nil
	}
	if err := s.cache.Set(ctx, key, candles, s.ttl); err != nil {
		s.l.Warn("price cache set failed", applogger.String("key", key), applogger.Error(err))
	}
	return candles, nil
}
