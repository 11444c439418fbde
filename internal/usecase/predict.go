package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"StockPulse/internal/domain/models"
	domrepo "StockPulse/internal/domain/repository"
	"StockPulse/internal/domain/service"
	"StockPulse/internal/services/indicator"
	"StockPulse/internal/services/reconcile"
	applogger "StockPulse/pkg/logger"
)

var (
	ErrSymbolRequired      = errors.New("symbol required")
	ErrNoPriceData         = errors.New("no price data for symbol")
	ErrInsufficientHistory = errors.New("insufficient price history")
)

const (
	DefaultWindow       = 100
	DefaultLookbackDays = 3650
	shortMAPeriod       = 100
	longMAPeriod        = 200
)

// SentimentSummarizer fuses indicator and external signals for a symbol.
type SentimentSummarizer interface {
	Summarize(ctx context.Context, symbol string, prices, volumes []float64) models.SentimentSummary
}

// PredictionUseCase produces a sentiment-adjusted next-day forecast.
type PredictionUseCase struct {
	prices     domrepo.PriceSource
	sentiment  SentimentSummarizer
	forecaster service.Forecaster
	events     domrepo.EventPublisher
	metrics    domrepo.Metrics

	window       int
	lookbackDays int
	timeout      time.Duration
	now          func() time.Time
	l            *applogger.Logger
}

type PredictOption func(*PredictionUseCase)

func WithWindow(n int) PredictOption {
	return func(uc *PredictionUseCase) {
		if n > 0 {
			uc.window = n
		}
	}
}

func WithLookbackDays(days int) PredictOption {
	return func(uc *PredictionUseCase) {
		if days > 0 {
			uc.lookbackDays = days
		}
	}
}

func WithTimeout(d time.Duration) PredictOption {
	return func(uc *PredictionUseCase) {
		if d > 0 {
			uc.timeout = d
		}
	}
}

func WithEvents(p domrepo.EventPublisher) PredictOption {
	return func(uc *PredictionUseCase) { uc.events = p }
}

func WithMetrics(m domrepo.Metrics) PredictOption {
	return func(uc *PredictionUseCase) { uc.metrics = m }
}

func NewPredictionUseCase(prices domrepo.PriceSource, sentiment SentimentSummarizer, forecaster service.Forecaster, opts ...PredictOption) *PredictionUseCase {
	uc := &PredictionUseCase{
		prices:       prices,
		sentiment:    sentiment,
		forecaster:   forecaster,
		window:       DefaultWindow,
		lookbackDays: DefaultLookbackDays,
		timeout:      30 * time.Second,
		now:          time.Now,
		l:            applogger.Nop(),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// SetLogger injects a structured logger.
func (uc *PredictionUseCase) SetLogger(l *applogger.Logger) {
	if l != nil {
		uc.l = l
	}
}

type PredictParams struct {
	Symbol string
}

func (uc *PredictionUseCase) Predict(ctx context.Context, p PredictParams) (*models.PredictionResult, error) {
	if p.Symbol == "" {
		return nil, ErrSymbolRequired
	}
	start := time.Now()
	defer func() { uc.recordLatency("predict", time.Since(start)) }()

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	candles, err := uc.prices.GetDailyCandles(ctx, p.Symbol, uc.lookbackDays)
	if err != nil {
		uc.recordSourceError("prices")
		return nil, fmt.Errorf("load prices %s: %w", p.Symbol, err)
	}
	if len(candles) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoPriceData, p.Symbol)
	}
	closes := models.Closes(candles)
	if len(closes) < uc.window {
		return nil, fmt.Errorf("%w: %s has %d closes, need %d", ErrInsufficientHistory, p.Symbol, len(closes), uc.window)
	}

	today := closes[len(closes)-1]
	market := marketContext(closes)

	summary := uc.sentiment.Summarize(ctx, p.Symbol, closes, models.Volumes(candles))

	base, err := uc.forecaster.Forecast(ctx, closes[len(closes)-uc.window:])
	if err != nil {
		uc.recordSourceError("forecast")
		return nil, fmt.Errorf("forecast %s: %w", p.Symbol, err)
	}

	rec := reconcile.Reconcile(reconcile.Input{
		BaseForecast: base,
		TodayPrice:   today,
		Sentiment:    summary,
		Market:       market,
	})
	if uc.metrics != nil {
		uc.metrics.RecordResolution(string(rec.Resolution))
		uc.metrics.RecordAdjustment(rec.AdjustmentPct)
	}

	result := &models.PredictionResult{
		Symbol:                 p.Symbol,
		Sentiment:              summary,
		TomorrowPrediction:     indicator.Round(rec.AdjustedForecast, 2),
		BasePrediction:         indicator.Round(rec.BaseForecast, 2),
		SentimentAdjustmentPct: indicator.Round(rec.AdjustmentPct, 2),
		TodayPrice:             indicator.Round(today, 2),
		MA100:                  indicator.Round(market.MA100, 2),
		MA200:                  indicator.Round(market.MA200, 2),
		Resolution:             rec.Resolution,
		PredictionSummary:      rec.Explanation,
		GeneratedAt:            uc.now().UTC(),
	}

	uc.l.Info("prediction completed",
		applogger.String("symbol", p.Symbol),
		applogger.Float64("base", result.BasePrediction),
		applogger.Float64("adjusted", result.TomorrowPrediction),
		applogger.String("resolution", string(rec.Resolution)),
		applogger.Duration("duration_ms", time.Since(start)),
	)

	if uc.events != nil {
		if err := uc.events.PublishPrediction(ctx, result); err != nil {
			uc.l.Warn("publish prediction failed", applogger.String("symbol", p.Symbol), applogger.Error(err))
		}
	}
	return result, nil
}

// marketContext falls back to the mean of all closes for an average the history cannot fill.
func marketContext(closes []float64) reconcile.MarketContext {
	var m reconcile.MarketContext
	m.Momentum5Pct, _ = indicator.Momentum5(closes)
	if ma, ok := indicator.SMA(closes, shortMAPeriod); ok {
		m.MA100 = ma
	} else {
		m.MA100 = indicator.Mean(closes)
	}
	if ma, ok := indicator.SMA(closes, longMAPeriod); ok {
		m.MA200 = ma
	} else {
		m.MA200 = indicator.Mean(closes)
	}
	return m
}

func (uc *PredictionUseCase) recordLatency(op string, d time.Duration) {
	if uc.metrics != nil {
		uc.metrics.RecordLatency(op, d.Seconds())
	}
}

func (uc *PredictionUseCase) recordSourceError(source string) {
	if uc.metrics != nil {
		uc.metrics.RecordSourceError(source)
	}
}
