package sentiment

import (
	"context"
	"time"

	"StockPulse/internal/domain/models"
	"StockPulse/internal/domain/repository"
	"StockPulse/internal/domain/service"
	"StockPulse/internal/services/indicator"
	applogger "StockPulse/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// MinRSIPrices is the shortest close series the aggregator computes RSI for.
const MinRSIPrices = indicator.DefaultRSIPeriod + 1

// Option configures Aggregator.
type Option func(*Aggregator)

// Aggregator combines technical, news and macro signals into a SentimentSummary.
// It holds no per-request state and is safe for concurrent use.
type Aggregator struct {
	news             *NewsScorer
	fearGreed        service.FearGreedSource
	newsTimeout      time.Duration
	fearGreedTimeout time.Duration
	metrics          repository.Metrics
	logger           *applogger.Logger
}

// NewAggregator builds an aggregator. Either source may be nil.
func NewAggregator(news *NewsScorer, fearGreed service.FearGreedSource, opts ...Option) *Aggregator {
	a := &Aggregator{
		news:             news,
		fearGreed:        fearGreed,
		newsTimeout:      5 * time.Second,
		fearGreedTimeout: 5 * time.Second,
		logger:           applogger.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// WithTimeouts bounds each outbound lookup independently.
func WithTimeouts(news, fearGreed time.Duration) Option {
	return func(a *Aggregator) {
		if news > 0 {
			a.newsTimeout = news
		}
		if fearGreed > 0 {
			a.fearGreedTimeout = fearGreed
		}
	}
}

func WithMetrics(m repository.Metrics) Option {
	return func(a *Aggregator) {
		a.metrics = m
	}
}

// SetLogger sets the logger.
func (a *Aggregator) SetLogger(l *applogger.Logger) {
	if l != nil {
		a.logger = l
	}
}

// Summarize computes the sentiment summary for symbol. volumes may be nil.
// The news and fear/greed lookups run concurrently; a failed or slow lookup
// only removes that signal.
func (a *Aggregator) Summarize(ctx context.Context, symbol string, prices, volumes []float64) models.SentimentSummary {
	var signals Signals

	if len(prices) >= MinRSIPrices {
		if rsi, ok := indicator.RSI(prices, indicator.DefaultRSIPeriod); ok {
			signals.RSI = &rsi
		}
	}
	if va, ok := indicator.VolumeTrend(volumes); ok {
		signals.Volume = &va
		signals.PriceChange5, _ = indicator.Momentum5(prices)
	}

	var (
		news NewsResult
		fg   *models.FearGreedReading
	)
	g, gctx := errgroup.WithContext(ctx)
	if a.news != nil {
		g.Go(func() error {
			c, cancel := context.WithTimeout(gctx, a.newsTimeout)
			defer cancel()
			news = a.news.Score(c, symbol)
			return nil
		})
	}
	if a.fearGreed != nil {
		g.Go(func() error {
			c, cancel := context.WithTimeout(gctx, a.fearGreedTimeout)
			defer cancel()
			fg = a.fearGreed.Latest(c)
			return nil
		})
	}
	_ = g.Wait()

	signals.News = news.Score
	signals.FearGreed = fg

	summary := Fuse(signals)
	if news.Headlines != nil {
		summary.Headlines = news.Headlines
	}

	a.record(summary)
	a.logger.Debug("sentiment summarized",
		applogger.String("symbol", symbol),
		applogger.String("overall", string(summary.Overall)),
		applogger.Float64("score", summary.Score),
	)
	return summary
}

func (a *Aggregator) record(s models.SentimentSummary) {
	if a.metrics == nil {
		return
	}
	a.metrics.RecordSignal("rsi", s.RSI != nil)
	a.metrics.RecordSignal("volume", s.Volume != nil)
	a.metrics.RecordSignal("news", s.NewsSentiment != nil)
	a.metrics.RecordSignal("fear_greed", s.FearGreed != nil)
}
