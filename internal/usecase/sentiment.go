package usecase

import (
	"context"
	"fmt"
	"time"

	"StockPulse/internal/domain/models"
	domrepo "StockPulse/internal/domain/repository"
)

// SentimentUseCase returns the fused sentiment without a forecast.
type SentimentUseCase struct {
	prices       domrepo.PriceSource
	sentiment    SentimentSummarizer
	lookbackDays int
	timeout      time.Duration
}

func NewSentimentUseCase(prices domrepo.PriceSource, sentiment SentimentSummarizer, lookbackDays int) *SentimentUseCase {
	if lookbackDays <= 0 {
		lookbackDays = DefaultLookbackDays
	}
	return &SentimentUseCase{prices: prices, sentiment: sentiment, lookbackDays: lookbackDays, timeout: 20 * time.Second}
}

// Summary degrades gracefully: a short history only drops the price-derived signals.
func (uc *SentimentUseCase) Summary(ctx context.Context, symbol string) (*models.SentimentSummary, error) {
	if symbol == "" {
		return nil, ErrSymbolRequired
	}
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	candles, err := uc.prices.GetDailyCandles(ctx, symbol, uc.lookbackDays)
	if err != nil {
		return nil, fmt.Errorf("load prices %s: %w", symbol, err)
	}
	if len(candles) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoPriceData, symbol)
	}

	s := uc.sentiment.Summarize(ctx, symbol, models.Closes(candles), models.Volumes(candles))
	return &s, nil
}
