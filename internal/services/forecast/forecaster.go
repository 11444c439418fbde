package forecast

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
)

var ErrEmptyWindow = errors.New("forecast window is empty")

// HTTPForecaster asks an external model service for the next close.
type HTTPForecaster struct {
	*HTTPServiceBase
}

type forecastRequest struct {
	Window []float64 `json:"window"`
}

type forecastResponse struct {
	Prediction *float64 `json:"prediction"`
}

func NewHTTPForecaster(serviceURL string, timeout time.Duration) *HTTPForecaster {
	return &HTTPForecaster{HTTPServiceBase: NewHTTPServiceBase(serviceURL, timeout)}
}

// Forecast makes a single attempt; the caller treats failure as fatal for the request.
func (f *HTTPForecaster) Forecast(ctx context.Context, window []float64) (float64, error) {
	if len(window) == 0 {
		return 0, ErrEmptyWindow
	}
	var resp forecastResponse
	if err := f.PostJSON(ctx, "/forecast", forecastRequest{Window: window}, &resp); err != nil {
		return 0, fmt.Errorf("forecast: %w", err)
	}
	if resp.Prediction == nil {
		return 0, errors.New("forecast: response missing prediction")
	}
	p := *resp.Prediction
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0, fmt.Errorf("forecast: invalid prediction %v", p)
	}
	return p, nil
}

// DriftForecaster extrapolates the last close by the least-squares slope of the window.
type DriftForecaster struct{}

func NewDriftForecaster() DriftForecaster { return DriftForecaster{} }

func (DriftForecaster) Forecast(_ context.Context, window []float64) (float64, error) {
	n := len(window)
	if n == 0 {
		return 0, ErrEmptyWindow
	}
	last := window[n-1]
	if n == 1 {
		return last, nil
	}
	return last + slope(window), nil
}

func slope(ys []float64) float64 {
	n := float64(len(ys))
	meanX := (n - 1) / 2
	var meanY float64
	for _, y := range ys {
		meanY += y
	}
	meanY /= n

	var num, den float64
	for i, y := range ys {
		dx := float64(i) - meanX
		num += dx * (y - meanY)
		den += dx * dx
	}
	if den == 0 {
		return 0
	}
	return num / den
}
