package sentiment

import (
	"github.com/jonreiter/govader"
)

// VaderAnalyzer scores text with the VADER lexicon.
type VaderAnalyzer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVaderAnalyzer loads the VADER lexicon.
func NewVaderAnalyzer() *VaderAnalyzer {
	return &VaderAnalyzer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Compound returns VADER's normalized compound score in [-1, 1].
func (v *VaderAnalyzer) Compound(text string) float64 {
	return v.analyzer.PolarityScores(text).Compound
}
