package sentiment

import (
	"context"
	"errors"
	"testing"

	"StockPulse/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubNews struct {
	articles []models.Article
	err      error
}

func (s stubNews) Headlines(context.Context, string) ([]models.Article, error) {
	return s.articles, s.err
}

type mapAnalyzer map[string]float64

func (m mapAnalyzer) Compound(text string) float64 { return m[text] }

func articles(titles ...string) []models.Article {
	out := make([]models.Article, len(titles))
	for i, t := range titles {
		out[i] = models.Article{Title: t}
	}
	return out
}

func TestNewsScorerAveragesAndLabels(t *testing.T) {
	an := mapAnalyzer{"up": 0.6, "down": -0.4, "flat": 0.05}
	s := NewNewsScorer(stubNews{articles: articles("up", "down", "flat")}, an)

	res := s.Score(context.Background(), "AAPL")
	require.NotNil(t, res.Score)
	assert.Equal(t, 0.083, *res.Score)
	require.Len(t, res.Headlines, 3)
	assert.Equal(t, models.HeadlinePositive, res.Headlines[0].Label)
	assert.Equal(t, models.HeadlineNegative, res.Headlines[1].Label)
	assert.Equal(t, models.HeadlineNeutral, res.Headlines[2].Label)
	assert.Equal(t, -0.4, res.Headlines[1].Polarity)
}

func TestNewsScorerCapsArticlesAndHeadlines(t *testing.T) {
	an := mapAnalyzer{}
	titles := make([]string, 0, 12)
	for i := 0; i < 12; i++ {
		title := string(rune('a' + i))
		titles = append(titles, title)
		an[title] = 0.1
	}
	// the 11th and 12th articles would drag the mean down if they were scored
	an["k"], an["l"] = -1, -1

	res := NewNewsScorer(stubNews{articles: articles(titles...)}, an).Score(context.Background(), "X")
	require.NotNil(t, res.Score)
	assert.Equal(t, 0.1, *res.Score)
	require.Len(t, res.Headlines, 5)
	assert.Equal(t, "a", res.Headlines[0].Title)
	assert.Equal(t, "e", res.Headlines[4].Title)
}

func TestNewsScorerSkipsEmptyTitles(t *testing.T) {
	an := mapAnalyzer{"good": 0.5}
	res := NewNewsScorer(stubNews{articles: articles("", "good", "  ")}, an).Score(context.Background(), "X")
	require.NotNil(t, res.Score)
	assert.Equal(t, 0.5, *res.Score)
	assert.Len(t, res.Headlines, 1)
}

func TestNewsScorerNoUsableTitlesScoresZero(t *testing.T) {
	res := NewNewsScorer(stubNews{articles: articles("", "")}, mapAnalyzer{}).Score(context.Background(), "X")
	require.NotNil(t, res.Score)
	assert.Equal(t, 0.0, *res.Score)
	assert.Empty(t, res.Headlines)
}

func TestNewsScorerSourceFailure(t *testing.T) {
	res := NewNewsScorer(stubNews{err: errors.New("timeout")}, mapAnalyzer{}).Score(context.Background(), "X")
	assert.Nil(t, res.Score)
	assert.Empty(t, res.Headlines)
}

func TestNewsScorerEmptyNews(t *testing.T) {
	res := NewNewsScorer(stubNews{}, mapAnalyzer{}).Score(context.Background(), "X")
	assert.Nil(t, res.Score)
	assert.Empty(t, res.Headlines)
}

func TestNewsScorerWithoutAnalyzer(t *testing.T) {
	res := NewNewsScorer(stubNews{articles: articles("a", "b", "c", "d", "e", "f")}, nil).Score(context.Background(), "X")
	assert.Nil(t, res.Score)
	require.Len(t, res.Headlines, 5)
	for _, h := range res.Headlines {
		assert.Equal(t, models.HeadlineUnknown, h.Label)
		assert.Equal(t, 0.0, h.Polarity)
	}
}

func TestLabelHeadlineBoundaries(t *testing.T) {
	assert.Equal(t, models.HeadlineNeutral, LabelHeadline(0.05))
	assert.Equal(t, models.HeadlineNeutral, LabelHeadline(-0.05))
	assert.Equal(t, models.HeadlinePositive, LabelHeadline(0.0501))
	assert.Equal(t, models.HeadlineNegative, LabelHeadline(-0.0501))
}

func TestVaderAnalyzerPolarity(t *testing.T) {
	v := NewVaderAnalyzer()
	assert.Greater(t, v.Compound("Shares surge after great earnings"), 0.05)
	assert.Less(t, v.Compound("Stock crashes on terrible fraud scandal"), -0.05)
}
