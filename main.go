package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	ossignal "os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func run(cfg Config, log zerolog.Logger) int {
	client, err := NewKalshiClient(cfg)
	if err != nil {
		log.Error().Err(err).Msg("Error creating Kalshi client")
		return ExitFailure
	}

	switch cfg.RunMode {
	case RunModeFills:
		ctx, cancel := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		if cfg.MetricsAddr != "" {
			srv := ServeMetrics(cfg.MetricsAddr)
			defer srv.Close()
			log.Info().Str("addr", cfg.MetricsAddr).Msg("metrics up")
		}
		if err := NewFillWatcher(log).Run(ctx, client.BaseURL(), client.Signer()); err != nil {
			log.Error().Err(err).Msg("fill watcher stopped")
			return ExitFailure
		}
		return ExitOK
	default:
		ctx := context.Background()
		logBalance(ctx, client, log)
		code := NewQuickTrade(cfg, NewOrderExecutor(client, log), log).Run(ctx)
		if cfg.PushGateway != "" {
			if err := PushOrderMetrics(cfg.PushGateway); err != nil {
				log.Warn().Err(err).Str("gateway", cfg.PushGateway).Msg("metrics push failed")
			}
		}
		return code
	}
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		boot := NewLogger(os.Stderr, "")
		boot.Fatal().Err(err).Msg("Error loading .env file")
	}

	cfg, err := LoadConfig(os.Getenv("KALSHI_CONFIG"), os.Getenv)
	log := NewLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		log.Error().Err(err).Msg("load config")
		os.Exit(ExitFailure)
	}

	os.Exit(run(cfg, log))
}
