// Package reconcile blends a model's base price forecast with fused market sentiment.
package reconcile

import (
	"fmt"
	"strings"

	"StockPulse/internal/domain/models"
	"StockPulse/internal/services/indicator"
)

// MarketContext is the price-derived context the caller computes from history.
type MarketContext struct {
	Momentum5Pct float64
	MA100        float64
	MA200        float64
}

// Input holds everything a reconciliation needs.
type Input struct {
	BaseForecast float64
	TodayPrice   float64
	Sentiment    models.SentimentSummary
	Market       MarketContext
}

// Reconcile is pure: identical inputs give identical output.
func Reconcile(in Input) models.ForecastReconciliation {
	baseChange := indicator.PercentChange(in.TodayPrice, in.BaseForecast)

	res := Resolve(in.Sentiment, baseChange)
	adjusted := res.adjust(in, baseChange)

	adjustmentPct := 0.0
	if in.BaseForecast != 0 {
		adjustmentPct = (adjusted - in.BaseForecast) / in.BaseForecast * 100
	}

	return models.ForecastReconciliation{
		BaseForecast:     in.BaseForecast,
		TodayPrice:       in.TodayPrice,
		BaseChangePct:    baseChange,
		AdjustedForecast: adjusted,
		AdjustmentPct:    adjustmentPct,
		Resolution:       res.Kind(),
		Explanation:      explain(in, res, adjusted, baseChange, adjustmentPct),
	}
}

func explain(in Input, res Resolution, adjusted, baseChange, adjustmentPct float64) []string {
	lines := make([]string, 0, 11)
	m := in.Market
	s := in.Sentiment

	if finalChange := indicator.PercentChange(in.TodayPrice, adjusted); finalChange > 0 {
		lines = append(lines, fmt.Sprintf("The model predicts a %.2f%% increase based on recent price patterns.", finalChange))
	} else {
		lines = append(lines, fmt.Sprintf("The model predicts a %.2f%% decrease based on recent price patterns.", -finalChange))
	}

	switch {
	case m.Momentum5Pct > 1:
		lines = append(lines, fmt.Sprintf("Short-term momentum is bullish (+%.2f%% over 5 days).", m.Momentum5Pct))
	case m.Momentum5Pct < -1:
		lines = append(lines, fmt.Sprintf("Short-term momentum is bearish (%.2f%% over 5 days).", m.Momentum5Pct))
	default:
		lines = append(lines, "Short-term momentum is neutral (sideways movement).")
	}

	if in.TodayPrice > m.MA100 {
		lines = append(lines, fmt.Sprintf("Price is above 100-day moving average ($%.2f), indicating bullish trend.", m.MA100))
	} else {
		lines = append(lines, fmt.Sprintf("Price is below 100-day moving average ($%.2f), indicating bearish trend.", m.MA100))
	}
	if in.TodayPrice > m.MA200 {
		lines = append(lines, fmt.Sprintf("Price is above 200-day moving average ($%.2f), a long-term bullish signal.", m.MA200))
	} else {
		lines = append(lines, fmt.Sprintf("Price is below 200-day moving average ($%.2f), a long-term bearish signal.", m.MA200))
	}
	if m.MA100 > m.MA200 {
		lines = append(lines, "Golden Cross pattern: 100 DMA is above 200 DMA, typically bullish.")
	} else {
		lines = append(lines, "Death Cross pattern: 100 DMA is below 200 DMA, typically bearish.")
	}

	if line := res.statement(baseChange, adjustmentPct); line != "" {
		lines = append(lines, line)
	}

	if s.RSI != nil {
		sig := indicator.ClassifyRSI(*s.RSI)
		if s.RSISignal != nil {
			sig = *s.RSISignal
		}
		lines = append(lines, fmt.Sprintf("RSI is %.2f (%s).", *s.RSI, sig))
	}
	if s.Volume != nil {
		lines = append(lines, fmt.Sprintf("Trading volume is %.2fx the 20-day average (%s).", s.Volume.Ratio, s.Volume.Signal))
	}
	if s.NewsSentiment != nil {
		lines = append(lines, fmt.Sprintf("News sentiment is %.3f (%s).", *s.NewsSentiment, newsLean(*s.NewsSentiment)))
	}
	if s.FearGreed != nil {
		lines = append(lines, fmt.Sprintf("Market Fear & Greed Index is %d (%s).", s.FearGreed.Value, s.FearGreed.Classification))
	}

	overall := s.Overall
	if overall == "" {
		overall = models.SentimentNeutral
	}
	lines = append(lines, fmt.Sprintf("Overall market sentiment is %s (score: %.2f).", strings.ToUpper(string(overall)), s.Score))
	return lines
}

// newsLean uses the same thresholds as the news vote.
func newsLean(score float64) models.SentimentLabel {
	switch {
	case score > 0.1:
		return models.SentimentBullish
	case score < -0.1:
		return models.SentimentBearish
	default:
		return models.SentimentNeutral
	}
}
