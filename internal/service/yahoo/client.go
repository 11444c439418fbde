// Package yahoo reads daily price history and headlines from Yahoo Finance.
package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"StockPulse/internal/domain/models"
	xhttp "StockPulse/pkg/http"
	"StockPulse/pkg/util"
)

const (
	DefaultBaseURL = "https://query1.finance.yahoo.com"
	userAgent      = "Mozilla/5.0 (compatible; StockPulse/1.0)"
	newsCount      = 10
)

// Client implements both PriceSource and NewsSource.
type Client struct {
	baseURL string
	http    *xhttp.Client
	now     func() time.Time
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http = xhttp.NewClient(xhttp.WithTimeout(d), xhttp.WithUserAgent(userAgent))
		}
	}
}

func New(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		http:    xhttp.NewClient(xhttp.WithTimeout(15*time.Second), xhttp.WithUserAgent(userAgent)),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// GetDailyCandles returns up to days of daily bars, oldest first. Bars with a
// null close (holidays, halted sessions) are skipped. An unknown symbol yields
// an empty slice, not an error.
func (c *Client) GetDailyCandles(ctx context.Context, symbol string, days int) ([]models.Candle, error) {
	var resp chartResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    fmt.Sprintf("%s/v8/finance/chart/%s", c.baseURL, url.PathEscape(symbol)),
		QueryParams: map[string][]string{
			"interval": {"1d"},
			"range":    {util.ChartRange(days)},
		},
	}, &resp)
	if err != nil {
		var se *xhttp.StatusError
		if errors.As(err, &se) && se.StatusCode == 404 {
			return []models.Candle{}, nil
		}
		return nil, fmt.Errorf("yahoo chart %s: %w", symbol, err)
	}
	if resp.Chart.Error != nil && resp.Chart.Error.Code != "Not Found" {
		return nil, fmt.Errorf("yahoo chart %s: %s", symbol, resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 || len(resp.Chart.Result[0].Indicators.Quote) == 0 {
		return []models.Candle{}, nil
	}

	result := resp.Chart.Result[0]
	q := result.Indicators.Quote[0]
	candles := make([]models.Candle, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		cl := at(q.Close, i)
		if cl == nil {
			continue
		}
		candle := models.Candle{
			Time:   time.Unix(ts, 0).UTC(),
			Symbol: symbol,
			Close:  *cl,
			Open:   valueOr(at(q.Open, i), *cl),
			High:   valueOr(at(q.High, i), *cl),
			Low:    valueOr(at(q.Low, i), *cl),
			Volume: valueOr(at(q.Volume, i), 0),
		}
		candles = append(candles, candle)
	}
	sort.Slice(candles, func(i, j int) bool { return candles[i].Time.Before(candles[j].Time) })

	return util.TrimToDays(candles, func(c models.Candle) time.Time { return c.Time }, c.now(), days), nil
}

type searchResponse struct {
	News []struct {
		Title               string `json:"title"`
		Publisher           string `json:"publisher"`
		Link                string `json:"link"`
		ProviderPublishTime int64  `json:"providerPublishTime"`
	} `json:"news"`
}

// Headlines returns the most recent news for symbol in the order Yahoo ranks them.
func (c *Client) Headlines(ctx context.Context, symbol string) ([]models.Article, error) {
	var resp searchResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/v1/finance/search",
		QueryParams: map[string][]string{
			"q":           {symbol},
			"newsCount":   {strconv.Itoa(newsCount)},
			"quotesCount": {"0"},
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("yahoo news %s: %w", symbol, err)
	}

	out := make([]models.Article, 0, len(resp.News))
	for _, n := range resp.News {
		a := models.Article{Title: n.Title, Source: n.Publisher, URL: n.Link}
		if n.ProviderPublishTime > 0 {
			a.PublishedAt = time.Unix(n.ProviderPublishTime, 0).UTC()
		}
		out = append(out, a)
	}
	return out, nil
}

func at(vals []*float64, i int) *float64 {
	if i < len(vals) {
		return vals[i]
	}
	return nil
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
