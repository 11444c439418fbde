package reconcile

import (
	"testing"

	"StockPulse/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func sentiment(score float64, label models.SentimentLabel) models.SentimentSummary {
	return models.SentimentSummary{Score: score, Overall: label}
}

func representativeInput() Input {
	rsiSig := models.RSIOverbought
	return Input{
		BaseForecast: 103,
		TodayPrice:   100,
		Market:       MarketContext{Momentum5Pct: 2.5, MA100: 98, MA200: 95},
		Sentiment: models.SentimentSummary{
			RSI:           f(75),
			RSISignal:     &rsiSig,
			Volume:        &models.VolumeAnalysis{Ratio: 1.8, Signal: models.VolumeHigh},
			NewsSentiment: f(-0.2),
			FearGreed:     &models.FearGreedReading{Value: 30, Classification: "Fear"},
			Overall:       models.SentimentBearish,
			Score:         -0.43,
			BullishVotes:  1,
			BearishVotes:  2.5,
		},
	}
}

func TestReconcileRepresentativeScenario(t *testing.T) {
	out := Reconcile(representativeInput())

	assert.Equal(t, models.ResolutionContradictionUp, out.Resolution)
	assert.InDelta(t, 3, out.BaseChangePct, 1e-9)
	assert.InDelta(t, 99.7, out.AdjustedForecast, 1e-9)
	assert.InDelta(t, -3.2038835, out.AdjustmentPct, 1e-6)

	want := []string{
		"The model predicts a 0.30% decrease based on recent price patterns.",
		"Short-term momentum is bullish (+2.50% over 5 days).",
		"Price is above 100-day moving average ($98.00), indicating bullish trend.",
		"Price is above 200-day moving average ($95.00), a long-term bullish signal.",
		"Golden Cross pattern: 100 DMA is above 200 DMA, typically bullish.",
		"Strongly bearish sentiment overrides the model's bullish forecast (+3.00%); adjusted to a small decline (-0.30%).",
		"RSI is 75.00 (overbought).",
		"Trading volume is 1.80x the 20-day average (high).",
		"News sentiment is -0.200 (bearish).",
		"Market Fear & Greed Index is 30 (Fear).",
		"Overall market sentiment is BEARISH (score: -0.43).",
	}
	assert.Equal(t, want, out.Explanation)
}

func TestReconcileIsIdempotent(t *testing.T) {
	in := representativeInput()
	first := Reconcile(in)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Reconcile(in))
	}
}

func TestContradictionUpFlip(t *testing.T) {
	out := Reconcile(Input{BaseForecast: 104, TodayPrice: 100, Sentiment: sentiment(-0.5, models.SentimentBearish)})
	res := Resolve(sentiment(-0.5, models.SentimentBearish), 4)

	c, ok := res.(Contradiction)
	require.True(t, ok)
	assert.True(t, c.Flipped)
	assert.InDelta(t, -0.4, c.AdjustedChange, 1e-9)
	assert.InDelta(t, 99.6, out.AdjustedForecast, 1e-9)
}

func TestContradictionUpDampened(t *testing.T) {
	res := Resolve(sentiment(-0.2, models.SentimentNeutral), 4)
	c, ok := res.(Contradiction)
	require.True(t, ok)
	assert.False(t, c.Flipped)
	assert.InDelta(t, 0.42, c.Dampening, 1e-9)
	assert.InDelta(t, 1.68, c.AdjustedChange, 1e-9)
}

func TestContradictionDown(t *testing.T) {
	res := Resolve(sentiment(0.2, models.SentimentNeutral), -3)
	c, ok := res.(Contradiction)
	require.True(t, ok)
	assert.Equal(t, Down, c.Direction)
	assert.InDelta(t, -1.26, c.AdjustedChange, 1e-9)

	res = Resolve(sentiment(0.5, models.SentimentBullish), -3)
	c = res.(Contradiction)
	assert.True(t, c.Flipped)
	assert.InDelta(t, 0.3, c.AdjustedChange, 1e-9)
}

func TestContradictionTakesPrecedenceOverCap(t *testing.T) {
	res := Resolve(sentiment(-0.2, models.SentimentNeutral), 6)
	c, ok := res.(Contradiction)
	require.True(t, ok, "expected contradiction, got %T", res)
	assert.InDelta(t, 2.52, c.AdjustedChange, 1e-9)
}

func TestLargeMoveCap(t *testing.T) {
	for _, s := range []models.SentimentSummary{
		sentiment(0, models.SentimentNeutral),
		sentiment(0.5, models.SentimentBullish),
	} {
		out := Reconcile(Input{BaseForecast: 108, TodayPrice: 100, Sentiment: s})
		assert.Equal(t, models.ResolutionLargeMoveCap, out.Resolution)
		assert.InDelta(t, 102.4, out.AdjustedForecast, 1e-9)
		assert.Contains(t, out.Explanation, "Large predicted move (+8.00%) is treated as unreliable and capped to +2.40%.")
	}
}

func TestFineTuneWithRSICorrection(t *testing.T) {
	s := sentiment(0.2, models.SentimentNeutral)
	s.RSI = f(75)
	out := Reconcile(Input{BaseForecast: 101, TodayPrice: 100, Sentiment: s})

	require.Equal(t, models.ResolutionFineTune, out.Resolution)
	wantAdj := 0.2*0.02 - 0.01*(75-70)/30.0
	assert.InDelta(t, 101*(1+wantAdj), out.AdjustedForecast, 1e-9)
	assert.InDelta(t, wantAdj*100, out.AdjustmentPct, 1e-9)
	assert.Contains(t, out.Explanation, "Sentiment analysis fine-tuned the forecast by +0.23%.")
}

func TestFineTuneOversoldCorrection(t *testing.T) {
	s := sentiment(0, models.SentimentNeutral)
	s.RSI = f(15)
	res := Resolve(s, 0.5).(FineTune)
	assert.InDelta(t, 0.005, res.SentimentAdjustment, 1e-12)
}

func TestFineTuneSmallAdjustmentOmitsStatement(t *testing.T) {
	out := Reconcile(Input{
		BaseForecast: 101,
		TodayPrice:   100,
		Market:       MarketContext{MA100: 90, MA200: 95},
		Sentiment:    sentiment(0.02, models.SentimentNeutral),
	})
	// direction, momentum, two MA lines, cross, summary
	require.Len(t, out.Explanation, 6)
	assert.Equal(t, "Death Cross pattern: 100 DMA is below 200 DMA, typically bearish.", out.Explanation[4])
	assert.Equal(t, "Overall market sentiment is NEUTRAL (score: 0.02).", out.Explanation[5])
}

func TestNoSignalsFallsThroughToZeroFineTune(t *testing.T) {
	out := Reconcile(Input{BaseForecast: 101, TodayPrice: 100, Sentiment: models.SentimentSummary{}})
	assert.Equal(t, models.ResolutionFineTune, out.Resolution)
	assert.Equal(t, 101.0, out.AdjustedForecast)
	assert.Equal(t, 0.0, out.AdjustmentPct)
	assert.Equal(t, "Overall market sentiment is NEUTRAL (score: 0.00).", out.Explanation[len(out.Explanation)-1])
}

func TestZeroPriceGuards(t *testing.T) {
	out := Reconcile(Input{BaseForecast: 50, TodayPrice: 0, Sentiment: sentiment(-0.9, models.SentimentBearish)})
	assert.Equal(t, 0.0, out.BaseChangePct)
	assert.Equal(t, models.ResolutionFineTune, out.Resolution)

	out = Reconcile(Input{BaseForecast: 0, TodayPrice: 100, Sentiment: sentiment(0.5, models.SentimentBullish)})
	assert.Equal(t, 0.0, out.AdjustmentPct)
}

func TestMomentumLines(t *testing.T) {
	cases := map[float64]string{
		1.5:  "Short-term momentum is bullish (+1.50% over 5 days).",
		-2:   "Short-term momentum is bearish (-2.00% over 5 days).",
		1:    "Short-term momentum is neutral (sideways movement).",
		-0.5: "Short-term momentum is neutral (sideways movement).",
	}
	for mom, want := range cases {
		out := Reconcile(Input{BaseForecast: 100, TodayPrice: 100, Market: MarketContext{Momentum5Pct: mom}})
		assert.Equal(t, want, out.Explanation[1])
	}
}
