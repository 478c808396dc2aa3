//go:build wireinject
// +build wireinject

package di

import (
	"RiskFill/pkg/config"
	"RiskFill/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, func(), error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideHTTPClient,
		ProvideCache,

		// Repositories
		ProvideFredClient,
		ProvideSeriesFetcher,
		ProvideSinks,

		// Use cases
		ProvideHistoryBuilder,
		ProvideBackfill,

		// HTTP
		ProvideRiskHandler,

		ProvideApp,
	)
	return nil, nil, nil
}
