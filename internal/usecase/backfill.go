package usecase

import (
	"context"
	"fmt"

	"StockPulse/internal/domain/models"
	domrepo "StockPulse/internal/domain/repository"
	applogger "StockPulse/pkg/logger"
)

// CandleStore persists daily bars.
type CandleStore interface {
	StoreCandles(ctx context.Context, candles []models.Candle) error
}

// BackfillUseCase copies daily history from an upstream source into a store
// so the store can serve as the price source later.
type BackfillUseCase struct {
	source domrepo.PriceSource
	store  CandleStore
	l      *applogger.Logger
}

func NewBackfillUseCase(source domrepo.PriceSource, store CandleStore, l *applogger.Logger) *BackfillUseCase {
	if l == nil {
		l = applogger.Nop()
	}
	return &BackfillUseCase{source: source, store: store, l: l}
}

// Run stops at the first failing symbol and reports how many were loaded.
func (uc *BackfillUseCase) Run(ctx context.Context, symbols []string, days int) (int, error) {
	for i, sym := range symbols {
		candles, err := uc.source.GetDailyCandles(ctx, sym, days)
		if err != nil {
			return i, fmt.Errorf("backfill fetch %s: %w", sym, err)
		}
		if len(candles) == 0 {
			return i, fmt.Errorf("backfill %w: %s", ErrNoPriceData, sym)
		}
		if err := uc.store.StoreCandles(ctx, candles); err != nil {
			return i, fmt.Errorf("backfill store %s: %w", sym, err)
		}
		uc.l.Info("backfill symbol done", applogger.String("symbol", sym), applogger.Int("bars", len(candles)))
	}
	return len(symbols), nil
}
