package models

import "time"

// Resolution names the reconciliation branch that produced the final forecast.
type Resolution string

const (
	ResolutionContradictionUp   Resolution = "contradiction_up"
	ResolutionContradictionDown Resolution = "contradiction_down"
	ResolutionLargeMoveCap      Resolution = "large_move_cap"
	ResolutionFineTune          Resolution = "fine_tune"
)

// ForecastReconciliation is the outcome of blending a base forecast with sentiment.
type ForecastReconciliation struct {
	BaseForecast     float64    `json:"base_forecast"`
	TodayPrice       float64    `json:"today_price"`
	BaseChangePct    float64    `json:"base_change_pct"`
	AdjustedForecast float64    `json:"adjusted_forecast"`
	AdjustmentPct    float64    `json:"adjustment_pct"`
	Resolution       Resolution `json:"resolution"`
	Explanation      []string   `json:"explanation"`
}

// PredictionResult is the response of a prediction request.
type PredictionResult struct {
	Symbol                 string           `json:"ticker"`
	Sentiment              SentimentSummary `json:"sentiment"`
	TomorrowPrediction     float64          `json:"tomorrow_prediction"`
	BasePrediction         float64          `json:"base_prediction"`
	SentimentAdjustmentPct float64          `json:"sentiment_adjustment_pct"`
	TodayPrice             float64          `json:"today_price"`
	MA100                  float64          `json:"ma100"`
	MA200                  float64          `json:"ma200"`
	Resolution             Resolution       `json:"resolution"`
	PredictionSummary      []string         `json:"prediction_summary"`
	GeneratedAt            time.Time        `json:"generated_at"`
}
