package indicator

import (
	"math"
	"testing"

	"StockPulse/internal/domain/models"
)

func TestRSIReferenceVectors(t *testing.T) {
	cases := []struct {
		name   string
		prices []float64
		want   float64
	}{
		{
			name:   "wilder textbook window",
			prices: []float64{44.34, 44.09, 44.15, 43.61, 44.33, 44.83, 45.10, 45.42, 45.84, 46.08, 45.89, 46.03, 45.61, 46.28, 46.28},
			want:   70.46,
		},
		{
			name:   "alternating climb",
			prices: []float64{44, 44.5, 43.5, 44.5, 45, 45.5, 46, 45, 46, 46.5, 47, 46, 47, 47.5, 48},
			want:   70.0,
		},
		{
			name:   "no losses",
			prices: []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
			want:   100,
		},
		{
			name:   "no gains",
			prices: []float64{30, 29, 28, 27, 26, 25, 24, 23, 22, 21, 20, 19, 18, 17, 16},
			want:   0,
		},
	}
	for _, tc := range cases {
		got, ok := RSI(tc.prices, DefaultRSIPeriod)
		if !ok {
			t.Fatalf("%s: expected ok", tc.name)
		}
		if got != tc.want {
			t.Fatalf("%s: RSI = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestRSIUsesFirstWindowOnly(t *testing.T) {
	base := []float64{44.34, 44.09, 44.15, 43.61, 44.33, 44.83, 45.10, 45.42, 45.84, 46.08, 45.89, 46.03, 45.61, 46.28, 46.28}
	extended := append(append([]float64{}, base...), 10, 5, 1)

	a, _ := RSI(base, DefaultRSIPeriod)
	b, _ := RSI(extended, DefaultRSIPeriod)
	if a != b {
		t.Fatalf("later prices must not change the value: %v vs %v", a, b)
	}
}

func TestRSIInsufficientData(t *testing.T) {
	if _, ok := RSI(make([]float64, 14), DefaultRSIPeriod); ok {
		t.Fatalf("expected not ok for 14 points")
	}
	if _, ok := RSI(nil, DefaultRSIPeriod); ok {
		t.Fatalf("expected not ok for nil")
	}
}

func TestRSIBounded(t *testing.T) {
	prices := []float64{10, 12, 9, 15, 3, 8, 20, 1, 7, 7, 7, 30, 2, 9, 11, 5}
	got, ok := RSI(prices, DefaultRSIPeriod)
	if !ok || got < 0 || got > 100 {
		t.Fatalf("RSI out of range: %v", got)
	}
}

func TestClassifyRSI(t *testing.T) {
	cases := map[float64]models.RSISignal{
		70.01: models.RSIOverbought,
		70:    models.RSIBullish,
		50.5:  models.RSIBullish,
		50:    models.RSIBearish,
		30:    models.RSIBearish,
		29.99: models.RSIOversold,
	}
	for v, want := range cases {
		if got := ClassifyRSI(v); got != want {
			t.Fatalf("ClassifyRSI(%v) = %s, want %s", v, got, want)
		}
	}
}

func TestVolumeTrend(t *testing.T) {
	vols := make([]float64, 0, 25)
	for i := 0; i < 20; i++ {
		vols = append(vols, 100)
	}
	for i := 0; i < 5; i++ {
		vols = append(vols, 200)
	}
	// last 20 = 15x100 + 5x200 -> baseline 125, recent 200
	got, ok := VolumeTrend(vols)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Ratio != 1.6 || got.Signal != models.VolumeHigh {
		t.Fatalf("unexpected analysis %+v", got)
	}
	if got.RecentAvg != 200 || got.PeriodAvg != 125 {
		t.Fatalf("unexpected averages %+v", got)
	}
}

func TestVolumeTrendLowAndTruncation(t *testing.T) {
	vols := make([]float64, 0, 20)
	for i := 0; i < 15; i++ {
		vols = append(vols, 100)
	}
	for i := 0; i < 5; i++ {
		vols = append(vols, 30)
	}
	got, ok := VolumeTrend(vols)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Ratio != 0.36 || got.Signal != models.VolumeLow {
		t.Fatalf("unexpected analysis %+v", got)
	}
	if got.PeriodAvg != 82 {
		t.Fatalf("expected truncated baseline 82, got %d", got.PeriodAvg)
	}
}

func TestVolumeTrendZeroBaseline(t *testing.T) {
	got, ok := VolumeTrend(make([]float64, 20))
	if !ok || got.Ratio != 1 || got.Signal != models.VolumeNormal {
		t.Fatalf("unexpected analysis %+v ok=%v", got, ok)
	}
}

func TestVolumeTrendInsufficient(t *testing.T) {
	if _, ok := VolumeTrend(make([]float64, 19)); ok {
		t.Fatalf("expected absent for 19 points")
	}
}

func TestClassifyVolumeBoundaries(t *testing.T) {
	cases := map[float64]models.VolumeSignal{
		1.6: models.VolumeHigh,
		1.5: models.VolumeNormal,
		1.0: models.VolumeNormal,
		0.5: models.VolumeNormal,
		0.4: models.VolumeLow,
	}
	for ratio, want := range cases {
		if got := ClassifyVolume(ratio); got != want {
			t.Fatalf("ClassifyVolume(%v) = %s, want %s", ratio, got, want)
		}
	}
}

func TestSMAAndMomentum(t *testing.T) {
	prices := []float64{1, 2, 3, 4, 100, 102, 98, 99, 105}
	if v, ok := SMA(prices, 3); !ok || math.Abs(v-(98+99+105)/3.0) > 1e-9 {
		t.Fatalf("unexpected SMA %v", v)
	}
	if _, ok := SMA(prices, 10); ok {
		t.Fatalf("expected SMA not ok for short series")
	}
	m, ok := Momentum5(prices)
	if !ok || math.Abs(m-5) > 1e-9 {
		t.Fatalf("expected momentum 5%%, got %v", m)
	}
	if _, ok := Momentum5(prices[:4]); ok {
		t.Fatalf("expected momentum not ok for 4 closes")
	}
	if PercentChange(0, 10) != 0 {
		t.Fatalf("expected guarded percent change")
	}
}

func TestRound(t *testing.T) {
	if Round(1.005001, 2) != 1.01 || Round(-0.4449, 3) != -0.445 || Round(2.5, 0) != 3 {
		t.Fatalf("unexpected rounding")
	}
}
