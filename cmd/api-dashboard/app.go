package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/i474232898/api-dashboard/internal/config"
	"github.com/i474232898/api-dashboard/internal/dashboard"
	"github.com/i474232898/api-dashboard/internal/dashboard/sources"
	"github.com/i474232898/api-dashboard/internal/logging"
	"github.com/i474232898/api-dashboard/internal/store"
)

// application bundles the pieces every command needs.
type application struct {
	cfg     *config.AppConfig
	logger  *slog.Logger
	store   store.Store
	service *dashboard.Service
}

func (a *application) Close() error {
	return a.store.Close()
}

// newApplication loads configuration, opens the settings store and wires the service.
func newApplication(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.New(os.Stderr, logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	slog.SetDefault(logger)

	st, err := store.Open(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("opening settings store: %w", err)
	}

	if err := seedAPIKey(ctx, st, cfg.MarketstackAPIKey); err != nil {
		st.Close()
		return nil, err
	}

	session, err := dashboard.NewSession(ctx, st)
	if err != nil {
		st.Close()
		return nil, err
	}

	renderer, err := dashboard.NewRenderer()
	if err != nil {
		st.Close()
		return nil, err
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	service := dashboard.NewService(session, sources.New(httpClient, cfg.Endpoints()), renderer, logger)

	return &application{cfg: cfg, logger: logger, store: st, service: service}, nil
}

// seedAPIKey stores key from the environment unless one was already saved.
func seedAPIKey(ctx context.Context, st store.Store, key string) error {
	if key == "" {
		return nil
	}
	_, ok, err := st.Get(ctx, dashboard.APIKeySetting)
	if err != nil {
		return fmt.Errorf("reading stored api key: %w", err)
	}
	if ok {
		return nil
	}
	return st.Set(ctx, dashboard.APIKeySetting, key)
}
