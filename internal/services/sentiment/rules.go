package sentiment

import (
	"StockPulse/internal/domain/models"
	"StockPulse/internal/services/indicator"
)

// Side is the direction a vote counts toward.
type Side int

const (
	Bullish Side = iota
	Bearish
)

// Signals are the fused inputs. Nil fields are unavailable and never vote.
type Signals struct {
	RSI    *float64
	Volume *models.VolumeAnalysis
	// PriceChange5 is the sign-bearing change across the last 5 closes; only read
	// when a volume vote is possible.
	PriceChange5 float64
	News         *float64
	FearGreed    *models.FearGreedReading
}

// VoteRule is one row of the voting table.
type VoteRule struct {
	Signal    string
	Condition string
	Side      Side
	Weight    float64
	When      func(Signals) bool
}

// VoteRules is the single source of truth for how signals vote. Rows are evaluated
// independently; a signal may match at most one row of its group.
var VoteRules = []VoteRule{
	{"rsi", "> 70 overbought", Bearish, 1, rsiWhen(func(v float64) bool { return v > 70 })},
	{"rsi", "< 30 oversold", Bullish, 1, rsiWhen(func(v float64) bool { return v < 30 })},
	{"rsi", "50-70 bullish zone", Bullish, 0.5, rsiWhen(func(v float64) bool { return v > 50 && v <= 70 })},
	{"rsi", "30-50 bearish zone", Bearish, 0.5, rsiWhen(func(v float64) bool { return v >= 30 && v <= 50 })},
	{"volume", "ratio > 1.2 and rising", Bullish, 1, func(s Signals) bool {
		return s.Volume != nil && s.Volume.Ratio > 1.2 && s.PriceChange5 > 0
	}},
	{"volume", "ratio > 1.2 and falling", Bearish, 1, func(s Signals) bool {
		return s.Volume != nil && s.Volume.Ratio > 1.2 && s.PriceChange5 <= 0
	}},
	{"news", "> 0.1", Bullish, 1, func(s Signals) bool { return s.News != nil && *s.News > 0.1 }},
	{"news", "< -0.1", Bearish, 1, func(s Signals) bool { return s.News != nil && *s.News < -0.1 }},
	{"fear_greed", "> 60 greed", Bullish, 0.5, func(s Signals) bool { return s.FearGreed != nil && s.FearGreed.Value > 60 }},
	{"fear_greed", "< 40 fear", Bearish, 0.5, func(s Signals) bool { return s.FearGreed != nil && s.FearGreed.Value < 40 }},
}

func rsiWhen(cond func(float64) bool) func(Signals) bool {
	return func(s Signals) bool { return s.RSI != nil && cond(*s.RSI) }
}

// Tally folds the rule table into bullish and bearish totals.
func Tally(s Signals, rules []VoteRule) (bullish, bearish float64) {
	for _, r := range rules {
		if !r.When(s) {
			continue
		}
		if r.Side == Bullish {
			bullish += r.Weight
		} else {
			bearish += r.Weight
		}
	}
	return bullish, bearish
}

// Score normalizes vote totals to [-1, 1] and labels the result.
func Score(bullish, bearish float64) (float64, models.SentimentLabel) {
	total := bullish + bearish
	if total == 0 {
		return 0, models.SentimentNeutral
	}
	score := indicator.Round((bullish-bearish)/total, 2)
	switch {
	case score > 0.3:
		return score, models.SentimentBullish
	case score < -0.3:
		return score, models.SentimentBearish
	default:
		return score, models.SentimentNeutral
	}
}

// Fuse builds the summary fields derived from signals alone.
func Fuse(s Signals) models.SentimentSummary {
	bull, bear := Tally(s, VoteRules)
	score, label := Score(bull, bear)

	summary := models.SentimentSummary{
		RSI:           s.RSI,
		Volume:        s.Volume,
		NewsSentiment: s.News,
		FearGreed:     s.FearGreed,
		Overall:       label,
		Score:         score,
		BullishVotes:  bull,
		BearishVotes:  bear,
		Headlines:     []models.Headline{},
	}
	if s.RSI != nil {
		sig := indicator.ClassifyRSI(*s.RSI)
		summary.RSISignal = &sig
	}
	return summary
}
