//go:build !integration

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gitlab.com/velorent/booking-widget/internal/config"
	"gitlab.com/velorent/booking-widget/internal/tools/logging"
	"gitlab.com/velorent/booking-widget/internal/tools/redisfactory"
	"gitlab.com/velorent/booking-widget/internal/web"
)

func serverApp(httpServer *http.Server, logger *zerolog.Logger) int {
	shutdown := false
	done := make(chan error, 1)
	stop := make(chan os.Signal, 1)
	go func() {
		logger.
			Info().
			Msg("Listening on address " + httpServer.Addr)
		done <- httpServer.ListenAndServe()
	}()
	go func() {
		// Wait for stop
		<-stop
		shutdown = true
		logger.Info().Msg("Shutting down server...")
		_ = httpServer.Shutdown(context.Background())
	}()

	// Notify stop channel if SIGINT or SIGTERM is received
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	err := <-done
	if err != nil && !shutdown {
		logger.
			Error().
			Err(err).
			Msg("Server failed")
		return 1
	}
	return 0
}

func main() {
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logging.New(cfg.LogLevel)

	if cfg.RemoteStore.Configured() {
		expiry, err := cfg.RemoteStore.AnonKeyExpiry()
		switch {
		case err != nil:
			log.Warn().Err(err).Msg("Remote store anon key is not a parseable token")
		case time.Until(expiry) < 30*24*time.Hour:
			log.Warn().Time("expiry", expiry).Msg("Remote store anon key expires soon")
		}
	} else {
		log.Warn().Msg("Remote store credentials missing, submissions will fall back")
	}

	redisFactory, err := redisfactory.New(cfg.Redis)
	if err != nil {
		log.Error().Err(err).Msg("Redis configuration is invalid")
		os.Exit(1)
	}

	appRouter, err := web.SetupRouter(log, cfg, redisFactory)
	if err != nil {
		log.Error().Err(err).Msg("Router setup failed")
		os.Exit(1)
	}

	var host string
	if os.Getenv("TEST") == "true" {
		host = "localhost"
	}

	httpServer := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", host, cfg.Port),
		Handler: appRouter,
	}

	os.Exit(serverApp(httpServer, log))
}
