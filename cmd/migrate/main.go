package main

import (
	"os"
	"roomly/config"
	"roomly/helper"
	"roomly/shared/logger"

	"github.com/rs/zerolog/log"
)

const (
	argLength = 2
)

func main() {
	logger.InitLogger()

	if len(os.Args) < argLength {
		log.Fatal().Msg("Migration action is required: up, down, step-up, drop or version")
	}

	action, err := helper.ParseAction(os.Args[1])
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid migration action")
	}

	cfg := config.Get()
	logger.Configure(cfg)

	if err = helper.Runner(cfg, action); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}
}
