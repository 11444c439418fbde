package service

import (
	"context"

	"StockPulse/internal/domain/models"
)

// NewsSource returns recent headlines for a symbol, newest first.
type NewsSource interface {
	Headlines(ctx context.Context, symbol string) ([]models.Article, error)
}

// FearGreedSource returns the latest macro reading, or nil when unavailable.
type FearGreedSource interface {
	Latest(ctx context.Context) *models.FearGreedReading
}

// PolarityAnalyzer scores text with a compound polarity in [-1, 1].
type PolarityAnalyzer interface {
	Compound(text string) float64
}

// Forecaster predicts the next close from a window of recent closes.
type Forecaster interface {
	Forecast(ctx context.Context, window []float64) (float64, error)
}
