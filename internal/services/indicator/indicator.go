// Package indicator holds the pure technical computations behind the sentiment signals.
package indicator

import (
	"math"

	"StockPulse/internal/domain/models"
)

const (
	DefaultRSIPeriod = 14

	// MinVolumePoints is the shortest volume series VolumeTrend will analyse.
	MinVolumePoints = 20

	volumeRecentWindow   = 5
	volumeBaselineWindow = 20
)

// RSI returns the relative strength index of prices.
//
// Gains and losses are averaged over the FIRST period deltas of the series,
// not a trailing window and not Wilder-smoothed. Downstream thresholds were
// tuned against this variant, so it is kept as is.
//
// ok is false when len(prices) < period+1.
func RSI(prices []float64, period int) (value float64, ok bool) {
	if period <= 0 || len(prices) < period+1 {
		return 0, false
	}

	var gain, loss float64
	for i := 1; i <= period; i++ {
		d := prices[i] - prices[i-1]
		if d > 0 {
			gain += d
		} else {
			loss -= d
		}
	}
	avgGain := gain / float64(period)
	avgLoss := loss / float64(period)

	if avgLoss == 0 {
		return 100, true
	}
	rs := avgGain / avgLoss
	return Round(100-100/(1+rs), 2), true
}

// ClassifyRSI maps an RSI value onto its vote zone.
func ClassifyRSI(rsi float64) models.RSISignal {
	switch {
	case rsi > 70:
		return models.RSIOverbought
	case rsi < 30:
		return models.RSIOversold
	case rsi > 50:
		return models.RSIBullish
	default:
		return models.RSIBearish
	}
}

// VolumeTrend compares the mean of the last 5 volumes to the mean of the last 20.
// ok is false when fewer than 20 points are supplied.
func VolumeTrend(volumes []float64) (models.VolumeAnalysis, bool) {
	if len(volumes) < MinVolumePoints {
		return models.VolumeAnalysis{}, false
	}

	recent := mean(volumes[len(volumes)-volumeRecentWindow:])
	baseline := mean(volumes[len(volumes)-volumeBaselineWindow:])

	ratio := 1.0
	if baseline > 0 {
		ratio = recent / baseline
	}
	ratio = Round(ratio, 2)

	return models.VolumeAnalysis{
		Ratio:     ratio,
		RecentAvg: int64(recent),
		PeriodAvg: int64(baseline),
		Signal:    ClassifyVolume(ratio),
	}, true
}

// ClassifyVolume buckets a volume ratio. Both bounds are strict.
func ClassifyVolume(ratio float64) models.VolumeSignal {
	switch {
	case ratio > 1.5:
		return models.VolumeHigh
	case ratio < 0.5:
		return models.VolumeLow
	default:
		return models.VolumeNormal
	}
}

// SMA returns the mean of the last period values; ok is false if there are fewer.
func SMA(values []float64, period int) (float64, bool) {
	if period <= 0 || len(values) < period {
		return 0, false
	}
	return mean(values[len(values)-period:]), true
}

// Mean returns the arithmetic mean, 0 for an empty slice.
func Mean(values []float64) float64 {
	return mean(values)
}

// PercentChange returns (to-from)/from*100, or 0 when from is 0.
func PercentChange(from, to float64) float64 {
	if from == 0 {
		return 0
	}
	return (to - from) / from * 100
}

// Momentum5 is the percent change across the last 5 closes (first to last).
// ok is false with fewer than 5 closes.
func Momentum5(prices []float64) (float64, bool) {
	if len(prices) < 5 {
		return 0, false
	}
	return PercentChange(prices[len(prices)-5], prices[len(prices)-1]), true
}

// Round rounds x half away from zero to the given number of decimal places.
func Round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
