package main

import (
	"roomly/config"
	"roomly/di"
	"roomly/helper"
	"roomly/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()
	logger.Configure(cfg)

	if err := helper.AutoMigrate(cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to apply migrations")
	}

	http := di.InitializeService()
	http.Serve()
}
