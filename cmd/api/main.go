package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MaykalDroshev-Hull/kasameri-bg-sub000/internal/catalog"
	"github.com/MaykalDroshev-Hull/kasameri-bg-sub000/internal/config"
	"github.com/MaykalDroshev-Hull/kasameri-bg-sub000/internal/handler"
	"github.com/MaykalDroshev-Hull/kasameri-bg-sub000/internal/idempotency"
	"github.com/MaykalDroshev-Hull/kasameri-bg-sub000/internal/notify"
	"github.com/MaykalDroshev-Hull/kasameri-bg-sub000/internal/router"
	"github.com/MaykalDroshev-Hull/kasameri-bg-sub000/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting kasameri order API server")

	products, err := catalog.Load(cfg.Catalog.Path, logger)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	// Idempotency keys live in process memory only; a restart forgets them.
	keys := idempotency.NewMemoryStore()

	sender := notify.NewAPISender(cfg.Mail.APIEndpoint, cfg.Mail.APIKey, nil, logger)

	mailboxes := service.Mailboxes{
		From:     cfg.Mail.From,
		Operator: cfg.Mail.Operator,
		Backup:   cfg.Mail.Backup,
	}
	processing := service.ProcessingConfig{
		MinDelay: cfg.Processing.MinDelay(),
		MaxDelay: cfg.Processing.MaxDelay(),
	}

	orderService := service.NewOrderService(keys, sender, mailboxes, processing, logger)
	distributorService := service.NewDistributorService(sender, mailboxes, logger)

	productHandler := handler.NewProductHandler(products, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)
	distributorHandler := handler.NewDistributorHandler(distributorService, logger)

	mux := router.New(productHandler, orderHandler, distributorHandler, logger)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
