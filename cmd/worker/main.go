package main

import (
	"context"
	"hotel/config"
	"hotel/di"
	"hotel/shared/logger"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := di.InitializeWorker()

	defer func() {
		if err := w.Kafka.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close kafka client")
		}

		w.DB.Close()
	}()

	log.Info().Msg("Starting up worker.")

	w.Activities.Run(ctx)

	log.Info().Msg("Worker stopped.")
}
