package reconcile

import (
	"fmt"
	"math"

	"StockPulse/internal/domain/models"
)

const (
	forecastMoveThreshold = 2.0 // percent
	sentimentLean         = 0.1
	strongSentiment       = 0.3
	largeMoveThreshold    = 5.0 // percent
	largeMoveKeep         = 0.3
	minDampening          = 0.1
	flipFraction          = 0.1
	sentimentAdjustCap    = 0.02
	rsiCorrection         = 0.01
)

// Direction of the model forecast that sentiment contradicts.
type Direction int

const (
	Up Direction = iota
	Down
)

// Resolution is the branch that decided the adjusted forecast. It is one of
// Contradiction, LargeMoveCap or FineTune.
type Resolution interface {
	Kind() models.Resolution
	// adjust returns the adjusted forecast.
	adjust(in Input, baseChangePct float64) float64
	// statement returns the explanation line for the branch, or "" to omit it.
	statement(baseChangePct, adjustmentPct float64) string
}

// Contradiction fires when the model and sentiment point in opposite directions.
type Contradiction struct {
	Direction Direction
	Dampening float64
	// Flipped is set when sentiment is strong enough to reverse the forecast.
	Flipped        bool
	AdjustedChange float64
}

func (c Contradiction) Kind() models.Resolution {
	if c.Direction == Up {
		return models.ResolutionContradictionUp
	}
	return models.ResolutionContradictionDown
}

func (c Contradiction) adjust(in Input, _ float64) float64 {
	return in.TodayPrice * (1 + c.AdjustedChange/100)
}

func (c Contradiction) statement(baseChangePct, _ float64) string {
	switch {
	case c.Direction == Up && c.Flipped:
		return fmt.Sprintf("Strongly bearish sentiment overrides the model's bullish forecast (%+.2f%%); adjusted to a small decline (%+.2f%%).", baseChangePct, c.AdjustedChange)
	case c.Direction == Up:
		return fmt.Sprintf("Bearish sentiment contradicts the model's bullish forecast; expected move dampened from %+.2f%% to %+.2f%%.", baseChangePct, c.AdjustedChange)
	case c.Flipped:
		return fmt.Sprintf("Strongly bullish sentiment overrides the model's bearish forecast (%+.2f%%); adjusted to a small gain (%+.2f%%).", baseChangePct, c.AdjustedChange)
	default:
		return fmt.Sprintf("Bullish sentiment contradicts the model's bearish forecast; expected move dampened from %+.2f%% to %+.2f%%.", baseChangePct, c.AdjustedChange)
	}
}

// LargeMoveCap keeps 30% of a large move that sentiment does not contradict.
type LargeMoveCap struct {
	AdjustedChange float64
}

func (LargeMoveCap) Kind() models.Resolution { return models.ResolutionLargeMoveCap }

func (c LargeMoveCap) adjust(in Input, _ float64) float64 {
	return in.TodayPrice * (1 + c.AdjustedChange/100)
}

func (c LargeMoveCap) statement(baseChangePct, _ float64) string {
	return fmt.Sprintf("Large predicted move (%+.2f%%) is treated as unreliable and capped to %+.2f%%.", baseChangePct, c.AdjustedChange)
}

// FineTune nudges the base forecast by sentiment and RSI extremes.
type FineTune struct {
	SentimentAdjustment float64
}

func (FineTune) Kind() models.Resolution { return models.ResolutionFineTune }

func (f FineTune) adjust(in Input, _ float64) float64 {
	return in.BaseForecast * (1 + f.SentimentAdjustment)
}

func (FineTune) statement(_, adjustmentPct float64) string {
	if math.Abs(adjustmentPct) <= 0.1 {
		return ""
	}
	return fmt.Sprintf("Sentiment analysis fine-tuned the forecast by %+.2f%%.", adjustmentPct)
}

type lean struct {
	modelUp, modelDown         bool
	sentimentUp, sentimentDown bool
	score                      float64
	rsi                        *float64
}

func classify(s models.SentimentSummary, baseChangePct float64) lean {
	return lean{
		modelUp:       baseChangePct > forecastMoveThreshold,
		modelDown:     baseChangePct < -forecastMoveThreshold,
		sentimentUp:   s.Overall == models.SentimentBullish || s.Score > sentimentLean,
		sentimentDown: s.Overall == models.SentimentBearish || s.Score < -sentimentLean,
		score:         s.Score,
		rsi:           s.RSI,
	}
}

// rule returns a resolution when it applies.
type rule func(l lean, baseChangePct float64) (Resolution, bool)

// rules are evaluated in order; the first match wins. The order is load-bearing:
// a +6% forecast with mild bearish sentiment is a contradiction, not a cap.
var rules = []rule{
	contradictionUp,
	contradictionDown,
	largeMoveCap,
	fineTune,
}

func contradictionUp(l lean, chg float64) (Resolution, bool) {
	if !l.modelUp || !l.sentimentDown {
		return nil, false
	}
	c := Contradiction{Direction: Up, Dampening: math.Max(minDampening, 0.5+l.score*0.4)}
	if l.score < -strongSentiment {
		c.Flipped = true
		c.AdjustedChange = -math.Abs(chg) * flipFraction
	} else {
		c.AdjustedChange = chg * c.Dampening
	}
	return c, true
}

func contradictionDown(l lean, chg float64) (Resolution, bool) {
	if !l.modelDown || !l.sentimentUp {
		return nil, false
	}
	c := Contradiction{Direction: Down, Dampening: math.Max(minDampening, 0.5-l.score*0.4)}
	if l.score > strongSentiment {
		c.Flipped = true
		c.AdjustedChange = math.Abs(chg) * flipFraction
	} else {
		c.AdjustedChange = chg * c.Dampening
	}
	return c, true
}

func largeMoveCap(_ lean, chg float64) (Resolution, bool) {
	if math.Abs(chg) <= largeMoveThreshold {
		return nil, false
	}
	return LargeMoveCap{AdjustedChange: chg * largeMoveKeep}, true
}

func fineTune(l lean, _ float64) (Resolution, bool) {
	adj := l.score * sentimentAdjustCap
	if l.rsi != nil {
		switch rsi := *l.rsi; {
		case rsi > 70:
			adj -= rsiCorrection * (rsi - 70) / 30
		case rsi < 30:
			adj += rsiCorrection * (30 - rsi) / 30
		}
	}
	return FineTune{SentimentAdjustment: adj}, true
}

// Resolve picks the first matching resolution for the classified inputs.
func Resolve(s models.SentimentSummary, baseChangePct float64) Resolution {
	l := classify(s, baseChangePct)
	for _, r := range rules {
		if res, ok := r(l, baseChangePct); ok {
			return res
		}
	}
	// fineTune always matches.
	return FineTune{}
}
