package main

import (
	"context"
	"os"
	"time"

	"github.com/yigit/schoolrecords/internal/bootstrap"
	"github.com/yigit/schoolrecords/internal/pkg/logger"
)

func main() {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load config or setup logger")
		os.Exit(1)
	}

	store, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to setup database")
		os.Exit(1)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	bootstrap.SeedIfEnabled(ctx, cfg, store, lgr)

	if err := bootstrap.Summary(ctx, store, lgr); err != nil {
		lgr.Error().Err(err).Msg("Records store check failed")
		store.Close()
		os.Exit(1)
	}

	lgr.Info().Msg("Application finished gracefully.")
}
