package http

import (
	"github.com/kioskops/fleetconfig/internal/config"
	"github.com/kioskops/fleetconfig/internal/logger"
	"github.com/kioskops/fleetconfig/internal/service"
)

type Handler struct {
	services *service.Services
	app      config.App

	logger *logger.Logger
}

func NewHandler(services *service.Services, app config.App, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		app:      app,
		logger:   logger,
	}
}
