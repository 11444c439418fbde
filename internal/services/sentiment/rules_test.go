package sentiment

import (
	"testing"

	"StockPulse/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestFuseRepresentativeScenario(t *testing.T) {
	s := Fuse(Signals{
		RSI:          f(75),
		Volume:       &models.VolumeAnalysis{Ratio: 1.8, Signal: models.VolumeHigh},
		PriceChange5: 2.1,
		News:         f(-0.2),
		FearGreed:    &models.FearGreedReading{Value: 30, Classification: "Fear"},
	})

	assert.Equal(t, 1.0, s.BullishVotes)
	assert.Equal(t, 2.5, s.BearishVotes)
	assert.Equal(t, -0.43, s.Score)
	assert.Equal(t, models.SentimentBearish, s.Overall)
	require.NotNil(t, s.RSISignal)
	assert.Equal(t, models.RSIOverbought, *s.RSISignal)
}

func TestFuseNoSignalsIsNeutralZero(t *testing.T) {
	s := Fuse(Signals{})
	assert.Equal(t, 0.0, s.Score)
	assert.Equal(t, models.SentimentNeutral, s.Overall)
	assert.Nil(t, s.RSISignal)
	assert.NotNil(t, s.Headlines)
}

func TestAbsentAndZeroVoteDifferently(t *testing.T) {
	// A real news score of 0 and a missing score both cast no vote, but only
	// the real score is reported.
	zero := Fuse(Signals{News: f(0)})
	absent := Fuse(Signals{})
	assert.Equal(t, zero.Score, absent.Score)
	require.NotNil(t, zero.NewsSentiment)
	assert.Nil(t, absent.NewsSentiment)
}

func TestVoteRuleBoundaries(t *testing.T) {
	cases := []struct {
		name       string
		signals    Signals
		bull, bear float64
	}{
		{"rsi 70 is bullish zone", Signals{RSI: f(70)}, 0.5, 0},
		{"rsi 50 is bearish zone", Signals{RSI: f(50)}, 0, 0.5},
		{"rsi 30 is bearish zone", Signals{RSI: f(30)}, 0, 0.5},
		{"rsi 29.9 oversold", Signals{RSI: f(29.9)}, 1, 0},
		{"volume 1.2 casts no vote", Signals{Volume: &models.VolumeAnalysis{Ratio: 1.2}, PriceChange5: 3}, 0, 0},
		{"volume flat price is bearish", Signals{Volume: &models.VolumeAnalysis{Ratio: 1.3}, PriceChange5: 0}, 0, 1},
		{"news 0.1 casts no vote", Signals{News: f(0.1)}, 0, 0},
		{"news 0.11 bullish", Signals{News: f(0.11)}, 1, 0},
		{"greed 60 casts no vote", Signals{FearGreed: &models.FearGreedReading{Value: 60}}, 0, 0},
		{"greed 61", Signals{FearGreed: &models.FearGreedReading{Value: 61}}, 0.5, 0},
		{"fear 39", Signals{FearGreed: &models.FearGreedReading{Value: 39}}, 0, 0.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bull, bear := Tally(tc.signals, VoteRules)
			assert.Equal(t, tc.bull, bull)
			assert.Equal(t, tc.bear, bear)
		})
	}
}

func TestScoreLabels(t *testing.T) {
	score, label := Score(2, 1)
	assert.Equal(t, 0.33, score)
	assert.Equal(t, models.SentimentBullish, label)

	score, label = Score(1.3, 1)
	assert.Equal(t, 0.13, score)
	assert.Equal(t, models.SentimentNeutral, label)

	score, label = Score(0, 0.5)
	assert.Equal(t, -1.0, score)
	assert.Equal(t, models.SentimentBearish, label)
}

func TestScoreBounded(t *testing.T) {
	for _, s := range []Signals{
		{RSI: f(10), News: f(0.9), FearGreed: &models.FearGreedReading{Value: 90}},
		{RSI: f(90), News: f(-0.9), FearGreed: &models.FearGreedReading{Value: 5}},
	} {
		sum := Fuse(s)
		assert.GreaterOrEqual(t, sum.Score, -1.0)
		assert.LessOrEqual(t, sum.Score, 1.0)
	}
}
