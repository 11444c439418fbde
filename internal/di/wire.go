//go:build wireinject
// +build wireinject

package di

import (
	"StockPulse/internal/usecase"
	"StockPulse/pkg/config"
	"StockPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// The returned cleanup closes infrastructure clients.
func InitializeApp(cfg *config.Config) (*server.App, func(), error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideRegistry,
		ProvideMetrics,
		ProvideAPIMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideCache,
		ProvideEventPublisher,

		// External sources
		ProvideYahooClient,
		ProvidePriceSource,
		ProvideNewsSource,
		ProvidePolarityAnalyzer,
		ProvideFearGreed,
		ProvideForecaster,

		// Services and use cases
		ProvideAggregator,
		ProvidePredictionUseCase,
		ProvideSentimentUseCase,

		// HTTP
		ProvideHandler,
		ProvideRateLimiter,
		ProvideHTTPServer,
		ProvideApp,
	)
	return nil, nil, nil
}

// InitializeBackfill wires the one-shot history loader.
func InitializeBackfill(cfg *config.Config) (*usecase.BackfillUseCase, func(), error) {
	wire.Build(
		ProvideLogger,
		ProvideClickHouseClient,
		ProvideYahooClient,
		ProvideCandleStore,
		ProvideBackfillUseCase,
	)
	return nil, nil, nil
}
