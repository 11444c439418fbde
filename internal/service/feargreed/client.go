// Package feargreed reads the crypto Fear & Greed index from alternative.me.
package feargreed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"StockPulse/internal/domain/models"
	xhttp "StockPulse/pkg/http"
	applogger "StockPulse/pkg/logger"
)

const (
	DefaultURL     = "https://api.alternative.me/fng/?limit=1"
	DefaultTimeout = 5 * time.Second
	sourceName     = "fear_greed"
)

// ErrorRecorder counts upstream failures.
type ErrorRecorder interface {
	RecordSourceError(source string)
}

// Client implements FearGreedSource. Latest never returns an error.
type Client struct {
	url     string
	http    *xhttp.Client
	metrics ErrorRecorder
	logger  *applogger.Logger
}

type Option func(*Client)

func WithMetrics(m ErrorRecorder) Option {
	return func(c *Client) { c.metrics = m }
}

// New builds a client. timeout is clamped to DefaultTimeout.
func New(url string, timeout time.Duration, opts ...Option) *Client {
	if url == "" {
		url = DefaultURL
	}
	if timeout <= 0 || timeout > DefaultTimeout {
		timeout = DefaultTimeout
	}
	c := &Client{
		url:    url,
		http:   xhttp.NewClient(xhttp.WithTimeout(timeout)),
		logger: applogger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) SetLogger(l *applogger.Logger) {
	if l != nil {
		c.logger = l
	}
}

// intValue accepts both "54" and 54.
type intValue int

func (v *intValue) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("fear/greed value %s: %w", b, err)
	}
	*v = intValue(n)
	return nil
}

type response struct {
	Data []struct {
		Value               intValue `json:"value"`
		ValueClassification string   `json:"value_classification"`
		Timestamp           string   `json:"timestamp"`
	} `json:"data"`
}

// Latest returns the first reading, or nil on any failure.
func (c *Client) Latest(ctx context.Context) *models.FearGreedReading {
	reading, err := c.fetch(ctx)
	if err != nil {
		c.logger.Warn("fear/greed lookup failed", applogger.Error(err))
		if c.metrics != nil {
			c.metrics.RecordSourceError(sourceName)
		}
		return nil
	}
	return reading
}

func (c *Client) fetch(ctx context.Context) (*models.FearGreedReading, error) {
	httpResp, err := c.http.SendRequest(ctx, &xhttp.RequestOptions{Method: xhttp.MethodGet, URL: c.url})
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", httpResp.StatusCode)
	}
	var resp response
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("empty data")
	}
	d := resp.Data[0]
	return &models.FearGreedReading{
		Value:          int(d.Value),
		Classification: d.ValueClassification,
		Timestamp:      d.Timestamp,
	}, nil
}
