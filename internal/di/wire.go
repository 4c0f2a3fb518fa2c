//go:build wireinject
// +build wireinject

package di

import (
	"SentimentDash/internal/handler/api"
	"SentimentDash/pkg/config"
	"SentimentDash/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, func(), error) {
	wire.Build(
		// Infrastructure
		ProvideKafkaProducer,
		ProvideLogger,
		ProvideMetrics,
		ProvideCache,

		// Sources and repositories
		ProvidePlayfairClient,
		ProvideFeedRelay,
		ProvidePredictionSource,
		ProvideSeriesPublisher,

		// Use cases
		ProvideCompanyDirectory,
		ProvideIconResolver,
		ProvideAggregator,
		ProvidePredictionService,

		// HTTP
		ProvideRateLimiter,
		ProvideCatalog,
		api.NewProxyHandler,
		api.NewPredictionsHandler,
		api.NewReferenceHandler,
		api.NewComponentsHandler,
		api.NewRouter,
		ProvideHTTPServer,

		// Application server
		ProvideApp,
	)
	return nil, nil, nil
}
