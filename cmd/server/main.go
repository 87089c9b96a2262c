package main

import (
	"context"
	"fmt"

	"github.com/kioskops/fleetconfig/internal/config"
	handlerhttp "github.com/kioskops/fleetconfig/internal/handler/http"
	"github.com/kioskops/fleetconfig/internal/logger"
	"github.com/kioskops/fleetconfig/internal/server"
	"github.com/kioskops/fleetconfig/internal/service"
	"github.com/kioskops/fleetconfig/internal/store"
	"github.com/kioskops/fleetconfig/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("fleetconfig-server")

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	services, err := service.NewServices(ctx, storages, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handler := handlerhttp.NewHandler(services, cfg.App, log)

	ws := workers.NewWorkers(
		workers.NewRefreshWorker(services, cfg.Workers.RefreshInterval, log),
	)

	srv, err := server.NewServer(handler.Init(), ws, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
