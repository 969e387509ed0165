//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/dharshaa/air-advisor/internal/bootstrap"
	"github.com/dharshaa/air-advisor/internal/infra/config"
	httpiface "github.com/dharshaa/air-advisor/internal/interface/http"
	"github.com/dharshaa/air-advisor/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideLiveSource,
		provideCSVSource,
		provideResolver,
		provideHistoryRepository,
		provideQueryLog,
		provideService,
		provideScheduler,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
