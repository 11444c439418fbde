package sentiment

import (
	"context"
	"strings"

	"StockPulse/internal/domain/models"
	"StockPulse/internal/domain/service"
	"StockPulse/internal/services/indicator"
	applogger "StockPulse/pkg/logger"
)

const (
	maxScoredArticles   = 10
	maxSurfacedHeadline = 5
	headlineThreshold   = 0.05
)

// NewsResult is the outcome of scoring a symbol's headlines.
// Score is nil when no usable news was retrieved or no analyzer is configured.
type NewsResult struct {
	Score     *float64
	Headlines []models.Headline
}

// NewsScorer fetches headlines and scores them with a polarity analyzer.
type NewsScorer struct {
	source   service.NewsSource
	analyzer service.PolarityAnalyzer
	logger   *applogger.Logger
}

// NewNewsScorer builds a scorer. analyzer may be nil, in which case headlines
// are surfaced unscored.
func NewNewsScorer(source service.NewsSource, analyzer service.PolarityAnalyzer) *NewsScorer {
	return &NewsScorer{source: source, analyzer: analyzer, logger: applogger.Nop()}
}

// SetLogger sets the logger.
func (s *NewsScorer) SetLogger(l *applogger.Logger) {
	if l != nil {
		s.logger = l
	}
}

// Score never fails: a source error yields an empty result.
func (s *NewsScorer) Score(ctx context.Context, symbol string) NewsResult {
	if s.source == nil {
		return NewsResult{}
	}
	articles, err := s.source.Headlines(ctx, symbol)
	if err != nil {
		s.logger.Warn("news lookup failed", applogger.String("symbol", symbol), applogger.Error(err))
		return NewsResult{}
	}
	if len(articles) == 0 {
		return NewsResult{}
	}

	if s.analyzer == nil {
		n := min(len(articles), maxSurfacedHeadline)
		headlines := make([]models.Headline, 0, n)
		for _, a := range articles[:n] {
			headlines = append(headlines, models.Headline{Title: a.Title, Label: models.HeadlineUnknown})
		}
		return NewsResult{Headlines: headlines}
	}

	if len(articles) > maxScoredArticles {
		articles = articles[:maxScoredArticles]
	}

	var (
		sum       float64
		scored    int
		headlines = make([]models.Headline, 0, maxSurfacedHeadline)
	)
	for _, a := range articles {
		title := strings.TrimSpace(a.Title)
		if title == "" {
			continue
		}
		compound := s.analyzer.Compound(title)
		sum += compound
		scored++
		if len(headlines) < maxSurfacedHeadline {
			headlines = append(headlines, models.Headline{
				Title:    title,
				Label:    LabelHeadline(compound),
				Polarity: indicator.Round(compound, 3),
			})
		}
	}

	score := 0.0
	if scored > 0 {
		score = indicator.Round(sum/float64(scored), 3)
	}
	return NewsResult{Score: &score, Headlines: headlines}
}

// LabelHeadline maps a compound score to a headline label.
func LabelHeadline(compound float64) models.HeadlineLabel {
	switch {
	case compound > headlineThreshold:
		return models.HeadlinePositive
	case compound < -headlineThreshold:
		return models.HeadlineNegative
	default:
		return models.HeadlineNeutral
	}
}
