// Package finnhub reads company news from the Finnhub REST API.
package finnhub

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"StockPulse/internal/domain/models"
	xhttp "StockPulse/pkg/http"
	"StockPulse/pkg/util"
)

const DefaultBaseURL = "https://finnhub.io"

// Client implements NewsSource backed by /api/v1/company-news.
type Client struct {
	apiKey       string
	baseURL      string
	lookbackDays int
	http         *xhttp.Client
	now          func() time.Time
}

// New creates a Finnhub news client. lookbackDays bounds the from/to window.
func New(apiKey, baseURL string, lookbackDays int, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if lookbackDays <= 0 {
		lookbackDays = 7
	}
	return &Client{
		apiKey:       apiKey,
		baseURL:      strings.TrimRight(baseURL, "/"),
		lookbackDays: lookbackDays,
		http:         xhttp.NewClient(xhttp.WithTimeout(timeout)),
		now:          time.Now,
	}
}

type companyNews struct {
	Headline string `json:"headline"`
	Datetime int64  `json:"datetime"` // unix seconds
	Source   string `json:"source"`
	URL      string `json:"url"`
}

// Headlines returns the symbol's news in the lookback window, newest first.
func (c *Client) Headlines(ctx context.Context, symbol string) ([]models.Article, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("finnhub: api key not configured")
	}
	from, to := util.DayRange(c.now(), c.lookbackDays)

	var items []companyNews
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/api/v1/company-news",
		QueryParams: map[string][]string{
			"symbol": {symbol},
			"from":   {from},
			"to":     {to},
			"token":  {c.apiKey},
		},
	}, &items)
	if err != nil {
		return nil, fmt.Errorf("finnhub company news %s: %w", symbol, err)
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].Datetime > items[j].Datetime })

	out := make([]models.Article, 0, len(items))
	for _, it := range items {
		out = append(out, models.Article{
			Title:       it.Headline,
			Source:      it.Source,
			URL:         it.URL,
			PublishedAt: time.Unix(it.Datetime, 0).UTC(),
		})
	}
	return out, nil
}
