package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/exp/slog"

	"credshare/internal/app/server/api"
	"credshare/internal/app/server/config"
	"credshare/internal/crypto"
	"credshare/internal/infrastructure/storage/postgres"
	"credshare/internal/utils/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	suite, err := crypto.New(suiteConfig(cfg))
	if err != nil {
		return err
	}

	storage, err := postgres.New(cfg)
	if err != nil {
		return err
	}
	defer storage.Close()

	mux := api.New(storage, suite, cfg.Server.PublicBaseURL, log)

	server := &http.Server{
		Addr:    cfg.Server.RunAddress,
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting",
			slog.String("address", cfg.Server.RunAddress),
			slog.String("env", cfg.Env),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Info("shutting down", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return server.Shutdown(ctx)
}

// suiteConfig layers the configured crypto parameters over the defaults.
func suiteConfig(cfg *config.Config) crypto.Config {
	sc := crypto.DefaultConfig()
	if cfg.Crypto.RSABits > 0 {
		sc.RSABits = cfg.Crypto.RSABits
	}
	if cfg.Crypto.Argon2Time > 0 {
		sc.Argon2Time = cfg.Crypto.Argon2Time
	}
	if cfg.Crypto.Argon2Memory > 0 {
		sc.Argon2Memory = cfg.Crypto.Argon2Memory
	}
	if cfg.Crypto.Argon2Threads > 0 {
		sc.Argon2Threads = cfg.Crypto.Argon2Threads
	}
	return sc
}
