package di

import (
	"context"
	"fmt"
	"time"

	"StockPulse/internal/domain/repository"
	"StockPulse/internal/domain/service"
	"StockPulse/internal/handler/api"
	internalrepo "StockPulse/internal/repository"
	"StockPulse/internal/service/feargreed"
	"StockPulse/internal/service/finnhub"
	imetrics "StockPulse/internal/service/metrics"
	"StockPulse/internal/service/ratelimit"
	"StockPulse/internal/service/yahoo"
	"StockPulse/internal/services/forecast"
	"StockPulse/internal/services/sentiment"
	"StockPulse/internal/usecase"
	"StockPulse/pkg/cache"
	pkgch "StockPulse/pkg/clickhouse"
	"StockPulse/pkg/config"
	xhttp "StockPulse/pkg/http"
	pkgkafka "StockPulse/pkg/kafka"
	applogger "StockPulse/pkg/logger"
	"StockPulse/pkg/metrics"
	"StockPulse/pkg/server"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// ProvideLogger builds the application logger from the log section.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideRegistry creates the registry served on /metrics.
func ProvideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics(reg *prometheus.Registry) repository.Metrics {
	return metrics.NewWithRegistry(reg)
}

func ProvideAPIMetrics(reg *prometheus.Registry) *imetrics.APIMetrics {
	return imetrics.NewAPIMetrics(reg)
}

// ProvideClickHouseClient connects only when a host is configured; a nil
// client means ClickHouse is not in use.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, func(), error) {
	if cfg.ClickHouse.Host == "" {
		return nil, func() {}, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.InitSchema(ctx, internalrepo.DailyCandleSchema(cfg.ClickHouse.Database, cfg.ClickHouse.Table)); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return client, func() { _ = client.Close() }, nil
}

// ProvideCache builds the layered price cache. An unreachable Redis degrades
// to memory only.
func ProvideCache(cfg *config.Config, l *applogger.Logger) (cache.Service, func(), error) {
	var remote cache.Service
	if cfg.Redis.Enabled {
		rc, err := cache.NewRedisCache(
			cache.WithRedisHost(cfg.Redis.Host),
			cache.WithRedisPort(cfg.Redis.Port),
			cache.WithRedisPassword(cfg.Redis.Password),
			cache.WithRedisDB(cfg.Redis.DB),
			cache.WithRedisPrefix(cfg.Redis.Prefix),
		)
		if err != nil {
			l.Warn("redis unavailable, using memory cache only", applogger.Error(err))
		} else {
			remote = rc
		}
	}
	lc := cache.NewLayeredCache(remote, cache.WithLayeredMemoryTTL(cfg.MarketData.CacheTTL))
	return lc, func() { _ = lc.Close() }, nil
}

func ProvideYahooClient(cfg *config.Config) *yahoo.Client {
	return yahoo.New(
		yahoo.WithBaseURL(cfg.MarketData.YahooBaseURL),
		yahoo.WithTimeout(cfg.MarketData.Timeout),
	)
}

// ProvidePriceSource selects the configured source and puts the cache in front of it.
func ProvidePriceSource(cfg *config.Config, yc *yahoo.Client, ch *pkgch.Client, c cache.Service, l *applogger.Logger) repository.PriceSource {
	var src repository.PriceSource = yc
	if cfg.MarketData.Source == config.SourceClickHouse && ch != nil {
		chs := internalrepo.NewCHPriceSource(ch, cfg.ClickHouse.Table)
		chs.SetLogger(l)
		src = chs
	}
	cached := internalrepo.NewCachedPriceSource(src, c, cfg.MarketData.CacheTTL)
	cached.SetLogger(l)
	return cached
}

func ProvideNewsSource(cfg *config.Config) service.NewsSource {
	if cfg.News.Provider == config.SourceFinnhub {
		return finnhub.New(cfg.News.FinnhubAPIKey, cfg.News.FinnhubBaseURL, cfg.News.LookbackDays, cfg.News.Timeout)
	}
	return yahoo.New(
		yahoo.WithBaseURL(cfg.News.YahooBaseURL),
		yahoo.WithTimeout(cfg.News.Timeout),
	)
}

// ProvidePolarityAnalyzer returns nil when scoring is disabled; headlines are
// then surfaced unscored.
func ProvidePolarityAnalyzer(cfg *config.Config) service.PolarityAnalyzer {
	if cfg.News.Analyzer == config.AnalyzerNone {
		return nil
	}
	return sentiment.NewVaderAnalyzer()
}

func ProvideFearGreed(cfg *config.Config, m repository.Metrics, l *applogger.Logger) service.FearGreedSource {
	c := feargreed.New(cfg.FearGreed.URL, cfg.FearGreed.Timeout, feargreed.WithMetrics(m))
	c.SetLogger(l)
	return c
}

func ProvideAggregator(
	cfg *config.Config,
	news service.NewsSource,
	analyzer service.PolarityAnalyzer,
	fg service.FearGreedSource,
	m repository.Metrics,
	l *applogger.Logger,
) *sentiment.Aggregator {
	scorer := sentiment.NewNewsScorer(news, analyzer)
	scorer.SetLogger(l)
	agg := sentiment.NewAggregator(scorer, fg,
		sentiment.WithTimeouts(cfg.News.Timeout, cfg.FearGreed.Timeout),
		sentiment.WithMetrics(m),
	)
	agg.SetLogger(l)
	return agg
}

// ProvideForecaster falls back to the drift forecaster without a model service.
func ProvideForecaster(cfg *config.Config, l *applogger.Logger) service.Forecaster {
	if cfg.Forecast.ServiceURL == "" {
		l.Warn("no forecast service configured, using drift forecaster")
		return forecast.NewDriftForecaster()
	}
	return forecast.NewHTTPForecaster(cfg.Forecast.ServiceURL, cfg.Forecast.Timeout)
}

// ProvideEventPublisher publishes to Kafka when brokers are configured.
func ProvideEventPublisher(cfg *config.Config, reg *prometheus.Registry, l *applogger.Logger) (repository.EventPublisher, func(), error) {
	if len(cfg.Kafka.Brokers) == 0 {
		return internalrepo.NoopEventPublisher{}, func() {}, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithTopic(cfg.Kafka.Topic),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithWriteTimeout(cfg.Kafka.WriteTimeout),
		pkgkafka.WithAsync(cfg.Kafka.Async),
		pkgkafka.WithRegisterer(reg),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("kafka producer: %w", err)
	}
	pub := internalrepo.NewKafkaEventPublisher(producer)
	cleanup := func() {
		if err := pub.Close(); err != nil {
			l.Warn("kafka producer close error", applogger.Error(err))
		}
	}
	return pub, cleanup, nil
}

func ProvidePredictionUseCase(
	cfg *config.Config,
	prices repository.PriceSource,
	agg *sentiment.Aggregator,
	fc service.Forecaster,
	events repository.EventPublisher,
	m repository.Metrics,
	l *applogger.Logger,
) *usecase.PredictionUseCase {
	uc := usecase.NewPredictionUseCase(prices, agg, fc,
		usecase.WithWindow(cfg.Forecast.Window),
		usecase.WithLookbackDays(cfg.MarketData.LookbackDays),
		usecase.WithEvents(events),
		usecase.WithMetrics(m),
	)
	uc.SetLogger(l)
	return uc
}

func ProvideSentimentUseCase(cfg *config.Config, prices repository.PriceSource, agg *sentiment.Aggregator) *usecase.SentimentUseCase {
	return usecase.NewSentimentUseCase(prices, agg, cfg.MarketData.LookbackDays)
}

func ProvideHandler(l *applogger.Logger, pu *usecase.PredictionUseCase, su *usecase.SentimentUseCase, am *imetrics.APIMetrics) xhttp.Handler {
	return api.NewPredictionHandler(l, pu, su, am)
}

func ProvideRateLimiter(cfg *config.Config) *ratelimit.Limiter {
	return ratelimit.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
}

func ProvideHTTPServer(cfg *config.Config, h xhttp.Handler, l *applogger.Logger, lim *ratelimit.Limiter, reg *prometheus.Registry) *xhttp.Server {
	return xhttp.NewServer(h, l,
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithSlowThreshold(cfg.Server.SlowThreshold),
		xhttp.WithRateLimiter(lim),
		xhttp.WithRegistry(reg),
	)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, srv *xhttp.Server, l *applogger.Logger) *server.App {
	return server.New(cfg, srv, l)
}

// ProvideCandleStore requires ClickHouse; backfill has nowhere to write without it.
func ProvideCandleStore(cfg *config.Config, ch *pkgch.Client, l *applogger.Logger) (usecase.CandleStore, error) {
	if ch == nil {
		return nil, fmt.Errorf("backfill: clickhouse.host is not configured")
	}
	store := internalrepo.NewCHPriceSource(ch, cfg.ClickHouse.Table)
	store.SetLogger(l)
	return store, nil
}

func ProvideBackfillUseCase(yc *yahoo.Client, store usecase.CandleStore, l *applogger.Logger) *usecase.BackfillUseCase {
	return usecase.NewBackfillUseCase(yc, store, l)
}
