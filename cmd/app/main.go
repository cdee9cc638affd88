package main

//go:generate swag init -g cmd/app/main.go -d ../../ -o ../../docs --parseDependency

import (
	"voyage/config"
	"voyage/di"
	"voyage/helper"
	"voyage/shared/logger"
	"voyage/shared/timezone"

	"github.com/rs/zerolog/log"
)

// @title Voyage API
// @version 1.0
// @description Travel agency back office: places, bookings and the media attached to them.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.Configure(cfg)

	if err := timezone.Configure(cfg.App.Timezone); err != nil {
		log.Fatal().Err(err).Msg("Failed to configure timezone")
	}

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
