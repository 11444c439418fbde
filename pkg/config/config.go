package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	SourceYahoo      = "yahoo"
	SourceClickHouse = "clickhouse"
	SourceFinnhub    = "finnhub"

	AnalyzerVader = "vader"
	AnalyzerNone  = "none"

	// MaxFearGreedTimeout bounds the macro sentiment lookup; a slow index must not stall a request.
	MaxFearGreedTimeout = 5 * time.Second
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
		SlowThreshold   time.Duration `yaml:"slow_threshold"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"log"`
	RateLimit struct {
		RPS   float64 `yaml:"rps"`
		Burst int     `yaml:"burst"`
	} `yaml:"rate_limit"`
	MarketData struct {
		Source       string        `yaml:"source"`
		YahooBaseURL string        `yaml:"yahoo_base_url"`
		LookbackDays int           `yaml:"lookback_days"`
		Timeout      time.Duration `yaml:"timeout"`
		CacheTTL     time.Duration `yaml:"cache_ttl"`
	} `yaml:"market_data"`
	News struct {
		Provider       string        `yaml:"provider"`
		Analyzer       string        `yaml:"analyzer"`
		FinnhubAPIKey  string        `yaml:"finnhub_api_key"`
		FinnhubBaseURL string        `yaml:"finnhub_base_url"`
		YahooBaseURL   string        `yaml:"yahoo_base_url"`
		LookbackDays   int           `yaml:"lookback_days"`
		Timeout        time.Duration `yaml:"timeout"`
	} `yaml:"news"`
	FearGreed struct {
		URL     string        `yaml:"url"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"fear_greed"`
	Forecast struct {
		ServiceURL string        `yaml:"service_url"`
		Window     int           `yaml:"window"`
		Timeout    time.Duration `yaml:"timeout"`
	} `yaml:"forecast"`
	Redis struct {
		Enabled  bool   `yaml:"enabled"`
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		Prefix   string `yaml:"prefix"`
	} `yaml:"redis"`
	Kafka struct {
		Brokers      []string      `yaml:"brokers"`
		Topic        string        `yaml:"topic"`
		RequiredAcks int           `yaml:"required_acks"`
		Compression  string        `yaml:"compression"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
		Async        bool          `yaml:"async"`
	} `yaml:"kafka"`
	ClickHouse struct {
		Host         string        `yaml:"host"`
		Port         int           `yaml:"port"`
		Database     string        `yaml:"database"`
		Table        string        `yaml:"table"`
		User         string        `yaml:"user"`
		Password     string        `yaml:"password"`
		UseHTTP      bool          `yaml:"use_http"`
		DialTimeout  time.Duration `yaml:"dial_timeout"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
	} `yaml:"clickhouse"`
}

// Load reads and parses a YAML configuration file, fills defaults and validates.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML bytes, fills defaults and validates.
func Parse(b []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}
	c.applyEnv(os.Getenv)
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv("FINNHUB_API_KEY"); v != "" {
		c.News.FinnhubAPIKey = v
	}
	if v := getenv("NEWS_PROVIDER"); v != "" {
		c.News.Provider = v
	}
	if v := getenv("MARKET_DATA_SOURCE"); v != "" {
		c.MarketData.Source = v
	}
	if v := getenv("FORECAST_SERVICE_URL"); v != "" {
		c.Forecast.ServiceURL = v
	}
	if v := getenv("REDIS_HOST"); v != "" {
		c.Redis.Host = v
		c.Redis.Enabled = true
	}
	if v := getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

func (c *Config) applyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
	if c.Log.Output == "" {
		c.Log.Output = "stdout"
	}
	if c.RateLimit.RPS == 0 {
		c.RateLimit.RPS = 2
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 5
	}
	if c.MarketData.Source == "" {
		c.MarketData.Source = SourceYahoo
	}
	if c.MarketData.YahooBaseURL == "" {
		c.MarketData.YahooBaseURL = "https://query1.finance.yahoo.com"
	}
	if c.MarketData.LookbackDays == 0 {
		c.MarketData.LookbackDays = 3650
	}
	if c.MarketData.Timeout == 0 {
		c.MarketData.Timeout = 15 * time.Second
	}
	if c.MarketData.CacheTTL == 0 {
		c.MarketData.CacheTTL = 15 * time.Minute
	}
	if c.News.Provider == "" {
		c.News.Provider = SourceYahoo
	}
	if c.News.Analyzer == "" {
		c.News.Analyzer = AnalyzerVader
	}
	if c.News.FinnhubBaseURL == "" {
		c.News.FinnhubBaseURL = "https://finnhub.io"
	}
	if c.News.YahooBaseURL == "" {
		c.News.YahooBaseURL = "https://query1.finance.yahoo.com"
	}
	if c.News.LookbackDays == 0 {
		c.News.LookbackDays = 7
	}
	if c.News.Timeout == 0 {
		c.News.Timeout = 5 * time.Second
	}
	if c.FearGreed.URL == "" {
		c.FearGreed.URL = "https://api.alternative.me/fng/?limit=1"
	}
	if c.FearGreed.Timeout == 0 {
		c.FearGreed.Timeout = MaxFearGreedTimeout
	}
	if c.Forecast.Window == 0 {
		c.Forecast.Window = 100
	}
	if c.Forecast.Timeout == 0 {
		c.Forecast.Timeout = 10 * time.Second
	}
	if c.Redis.Host == "" {
		c.Redis.Host = "localhost"
	}
	if c.Redis.Port == 0 {
		c.Redis.Port = 6379
	}
	if c.Redis.Prefix == "" {
		c.Redis.Prefix = "stockpulse"
	}
	if c.Kafka.Topic == "" {
		c.Kafka.Topic = "stockpulse.predictions"
	}
	if c.Kafka.RequiredAcks == 0 {
		c.Kafka.RequiredAcks = 1
	}
	if c.ClickHouse.Database == "" {
		c.ClickHouse.Database = "stockpulse"
	}
	if c.ClickHouse.Table == "" {
		c.ClickHouse.Table = "daily_candles"
	}
	if c.ClickHouse.Port == 0 {
		c.ClickHouse.Port = 9000
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.MarketData.Source {
	case SourceYahoo:
	case SourceClickHouse:
		if c.ClickHouse.Host == "" {
			return fmt.Errorf("clickhouse.host is required when market_data.source is clickhouse")
		}
	default:
		return fmt.Errorf("market_data.source must be 'yahoo' or 'clickhouse', got '%s'", c.MarketData.Source)
	}
	switch c.News.Provider {
	case SourceYahoo:
	case SourceFinnhub:
		if c.News.FinnhubAPIKey == "" {
			return fmt.Errorf("news.finnhub_api_key is required when news.provider is finnhub")
		}
	default:
		return fmt.Errorf("news.provider must be 'yahoo' or 'finnhub', got '%s'", c.News.Provider)
	}
	if c.News.Analyzer != AnalyzerVader && c.News.Analyzer != AnalyzerNone {
		return fmt.Errorf("news.analyzer must be 'vader' or 'none', got '%s'", c.News.Analyzer)
	}
	if c.FearGreed.Timeout > MaxFearGreedTimeout {
		return fmt.Errorf("fear_greed.timeout must be <= %s", MaxFearGreedTimeout)
	}
	if c.Forecast.Window < 15 {
		return fmt.Errorf("forecast.window must be >= 15, got %d", c.Forecast.Window)
	}
	if c.MarketData.LookbackDays < c.Forecast.Window {
		return fmt.Errorf("market_data.lookback_days must cover forecast.window")
	}
	if c.RateLimit.RPS < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("rate_limit values must be non-negative")
	}
	return nil
}
