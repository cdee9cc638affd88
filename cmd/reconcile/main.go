package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"voyage/config"
	"voyage/di"
	"voyage/shared/logger"
	"voyage/shared/timezone"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.Configure(cfg)

	if err := timezone.Configure(cfg.App.Timezone); err != nil {
		log.Fatal().Err(err).Msg("Failed to configure timezone")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	di.InitializeReconciler().Run(ctx)
}
