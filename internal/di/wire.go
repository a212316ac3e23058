//go:build wireinject
// +build wireinject

package di

import (
	"CandlePull/pkg/config"
	"CandlePull/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config, opts *server.Options) (*server.App, error) {
	wire.Build(
		// Ambient infrastructure
		ProvideLogger,
		ProvideMetrics,

		// Exchange access
		ProvideHTTPClient,
		ProvideCandleSource,
		ProvideKlineCache,

		// Optional export clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideSinks,

		// Pipeline
		ProvideResults,
		ProvidePipeline,

		// Application
		ProvideApp,
	)
	return &server.App{}, nil
}
