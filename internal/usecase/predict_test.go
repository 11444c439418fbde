package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"StockPulse/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPrices struct {
	candles []models.Candle
	err     error
	days    int
}

func (s *stubPrices) GetDailyCandles(_ context.Context, _ string, days int) ([]models.Candle, error) {
	s.days = days
	return s.candles, s.err
}

type stubSummarizer struct {
	summary models.SentimentSummary
	prices  int
}

func (s *stubSummarizer) Summarize(_ context.Context, _ string, prices, _ []float64) models.SentimentSummary {
	s.prices = len(prices)
	return s.summary
}

type stubForecaster struct {
	value  float64
	err    error
	window []float64
}

func (f *stubForecaster) Forecast(_ context.Context, window []float64) (float64, error) {
	f.window = window
	return f.value, f.err
}

type recordingEvents struct {
	published []*models.PredictionResult
	err       error
}

func (r *recordingEvents) PublishPrediction(_ context.Context, res *models.PredictionResult) error {
	r.published = append(r.published, res)
	return r.err
}

func (r *recordingEvents) Close() error { return nil }

type recordingMetrics struct {
	resolutions  []string
	adjustments  []float64
	sourceErrors []string
	latencies    []string
}

func (m *recordingMetrics) RecordSignal(string, bool) {}
func (m *recordingMetrics) RecordSourceError(source string) {
	m.sourceErrors = append(m.sourceErrors, source)
}
func (m *recordingMetrics) RecordResolution(kind string)       { m.resolutions = append(m.resolutions, kind) }
func (m *recordingMetrics) RecordAdjustment(pct float64)       { m.adjustments = append(m.adjustments, pct) }
func (m *recordingMetrics) RecordLatency(op string, _ float64) { m.latencies = append(m.latencies, op) }

func flatCandles(n int, price float64) []models.Candle {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]models.Candle, n)
	for i := range out {
		out[i] = models.Candle{Time: start.AddDate(0, 0, i), Symbol: "AAPL", Close: price, Volume: 1000}
	}
	return out
}

func bearishSummary() models.SentimentSummary {
	return models.SentimentSummary{Overall: models.SentimentBearish, Score: -0.43, BullishVotes: 1, BearishVotes: 2.5}
}

func TestPredictReconcilesForecast(t *testing.T) {
	prices := &stubPrices{candles: flatCandles(250, 100)}
	summ := &stubSummarizer{summary: bearishSummary()}
	fc := &stubForecaster{value: 103}
	events := &recordingEvents{}
	metrics := &recordingMetrics{}
	now := time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

	uc := NewPredictionUseCase(prices, summ, fc, WithEvents(events), WithMetrics(metrics))
	uc.now = func() time.Time { return now }

	res, err := uc.Predict(context.Background(), PredictParams{Symbol: "AAPL"})
	require.NoError(t, err)

	assert.Equal(t, DefaultLookbackDays, prices.days)
	assert.Equal(t, 250, summ.prices)
	assert.Len(t, fc.window, DefaultWindow)

	assert.Equal(t, "AAPL", res.Symbol)
	assert.Equal(t, 100.0, res.TodayPrice)
	assert.Equal(t, 103.0, res.BasePrediction)
	assert.Equal(t, 99.7, res.TomorrowPrediction)
	assert.Equal(t, -3.2, res.SentimentAdjustmentPct)
	assert.Equal(t, 100.0, res.MA100)
	assert.Equal(t, 100.0, res.MA200)
	assert.Equal(t, models.ResolutionContradictionUp, res.Resolution)
	assert.Equal(t, now, res.GeneratedAt)
	require.NotEmpty(t, res.PredictionSummary)
	assert.Equal(t, "Overall market sentiment is BEARISH (score: -0.43).", res.PredictionSummary[len(res.PredictionSummary)-1])

	require.Len(t, events.published, 1)
	assert.Same(t, res, events.published[0])
	assert.Equal(t, []string{"contradiction_up"}, metrics.resolutions)
	assert.Equal(t, []string{"predict"}, metrics.latencies)
}

func TestPredictMA200FallsBackToMeanOfAll(t *testing.T) {
	candles := flatCandles(150, 100)
	for i := 0; i < 50; i++ {
		candles[i].Close = 50
	}
	uc := NewPredictionUseCase(&stubPrices{candles: candles}, &stubSummarizer{}, &stubForecaster{value: 100})

	res, err := uc.Predict(context.Background(), PredictParams{Symbol: "AAPL"})
	require.NoError(t, err)
	assert.Equal(t, 100.0, res.MA100)
	assert.Equal(t, 83.33, res.MA200)
}

func TestPredictErrors(t *testing.T) {
	tests := []struct {
		name    string
		symbol  string
		prices  *stubPrices
		fc      *stubForecaster
		wantErr error
		source  string
	}{
		{name: "empty symbol", symbol: "", prices: &stubPrices{}, fc: &stubForecaster{}, wantErr: ErrSymbolRequired},
		{name: "no data", symbol: "NOPE", prices: &stubPrices{candles: nil}, fc: &stubForecaster{}, wantErr: ErrNoPriceData},
		{name: "short history", symbol: "NEW", prices: &stubPrices{candles: flatCandles(50, 10)}, fc: &stubForecaster{}, wantErr: ErrInsufficientHistory},
		{name: "price source down", symbol: "AAPL", prices: &stubPrices{err: errors.New("boom")}, fc: &stubForecaster{}, source: "prices"},
		{name: "forecaster down", symbol: "AAPL", prices: &stubPrices{candles: flatCandles(120, 10)}, fc: &stubForecaster{err: errors.New("503")}, source: "forecast"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metrics := &recordingMetrics{}
			uc := NewPredictionUseCase(tt.prices, &stubSummarizer{}, tt.fc, WithMetrics(metrics))
			_, err := uc.Predict(context.Background(), PredictParams{Symbol: tt.symbol})
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.source != "" {
				assert.Equal(t, []string{tt.source}, metrics.sourceErrors)
			}
		})
	}
}

func TestPredictPublishFailureIsNotFatal(t *testing.T) {
	events := &recordingEvents{err: errors.New("broker down")}
	uc := NewPredictionUseCase(&stubPrices{candles: flatCandles(120, 10)}, &stubSummarizer{}, &stubForecaster{value: 10}, WithEvents(events))

	res, err := uc.Predict(context.Background(), PredictParams{Symbol: "AAPL"})
	require.NoError(t, err)
	assert.NotNil(t, res)
	assert.Len(t, events.published, 1)
}

func TestPredictCustomWindow(t *testing.T) {
	fc := &stubForecaster{value: 10}
	uc := NewPredictionUseCase(&stubPrices{candles: flatCandles(60, 10)}, &stubSummarizer{}, fc, WithWindow(60))

	_, err := uc.Predict(context.Background(), PredictParams{Symbol: "AAPL"})
	require.NoError(t, err)
	assert.Len(t, fc.window, 60)
}

func TestSentimentSummary(t *testing.T) {
	summ := &stubSummarizer{summary: bearishSummary()}
	uc := NewSentimentUseCase(&stubPrices{candles: flatCandles(10, 5)}, summ, 0)

	got, err := uc.Summary(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, models.SentimentBearish, got.Overall)
	assert.Equal(t, 10, summ.prices)

	_, err = uc.Summary(context.Background(), "")
	assert.ErrorIs(t, err, ErrSymbolRequired)

	_, err = NewSentimentUseCase(&stubPrices{}, summ, 0).Summary(context.Background(), "NOPE")
	assert.ErrorIs(t, err, ErrNoPriceData)
}
