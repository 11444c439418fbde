package repository

import (
	"context"

	"StockPulse/internal/domain/models"
)

// PriceSource provides daily price history, oldest bar first.
type PriceSource interface {
	GetDailyCandles(ctx context.Context, symbol string, days int) ([]models.Candle, error)
}

// EventPublisher emits completed predictions to downstream consumers.
type EventPublisher interface {
	PublishPrediction(ctx context.Context, result *models.PredictionResult) error
	Close() error
}

type Metrics interface {
	RecordSignal(signal string, available bool)
	RecordSourceError(source string)
	RecordResolution(kind string)
	RecordAdjustment(pct float64)
	RecordLatency(op string, seconds float64)
}
