package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"

	"openmandi/accessible"
	"openmandi/ai"
	"openmandi/auth"
	httpserver "openmandi/infrastructure/http"
	"openmandi/internal"
	"openmandi/negotiation"
	"openmandi/observability"
	"openmandi/pricing"
	"openmandi/repositories"
	"openmandi/runtime"
	"openmandi/safeguards"
	"openmandi/speech"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run wires all components and manages the server lifecycle, so that every
// defer (database close included) executes before the process exits.
func run() error {
	_ = godotenv.Load()

	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := internal.NewLogger(config.LogLevel)

	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("closing BadgerDB")
		_ = db.Close()
	}()

	monitor := observability.NewMonitor(log)
	registry := runtime.NewSessionRegistry(log, monitor, config.AssistantID)
	responder := ai.NewResponder()
	dispatcher := runtime.NewDispatcher(log, registry, responder)
	reaper := runtime.NewReaper(log, registry, config.SessionTTL, config.ReapInterval)

	prices := repositories.NewPriceRepository(db, log, config.LimitPriceRecords)
	if err := seedIfEmpty(prices); err != nil {
		return fmt.Errorf("price seeding failed: %w", err)
	}

	guard, err := safeguards.NewService(log, repositories.NewAlertRepository(db, log))
	if err != nil {
		return fmt.Errorf("safeguards setup failed: %w", err)
	}

	server := httpserver.NewServer(log, httpserver.Deps{
		Registry:             registry,
		Dispatcher:           dispatcher,
		Responder:            responder,
		Monitor:              monitor,
		Speech:               speech.NewService(log),
		Analyzer:             pricing.NewAnalyzer(),
		Prices:               prices,
		Negotiator:           negotiation.NewService(),
		Guard:                guard,
		Accessible:           accessible.NewService(),
		Tokens:               auth.NewTokens(config.JWTSecret, config.AuthTokenDuration),
		ConnectionBufferSize: config.ConnectionBufferSize,
		DeliveryTimeout:      config.DeliveryTimeout,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go monitor.Listen(ctx, config.StatsInterval)
	go reaper.Run(ctx)

	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	errChan := make(chan error, 1)
	go func() {
		log.Info("starting HTTP server", "address", address)
		if err := server.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting down gracefully")
	case err := <-errChan:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	log.Info("program stopped cleanly")
	return nil
}

// seedIfEmpty fills the price store with generated quotes on first boot so
// the price endpoints have data to serve.
func seedIfEmpty(prices repositories.PriceRepository) error {
	records, _, err := prices.RecentRecords("rice", nil)
	if err != nil {
		return err
	}
	if len(records) > 0 {
		return nil
	}
	_, err = prices.SeedSampleRecords(7)
	return err
}
