// Package app wires configuration, logging, the webclient backend and the
// fetcher into one runtime container.
package app

import (
	"errors"

	"github.com/antonvyukov/snag/internal/fetch"
	"github.com/antonvyukov/snag/internal/logging"
	"github.com/antonvyukov/snag/internal/webclient"
)

// Application is the runtime state container. It holds config and the core
// services shared across commands. Pass Application into code that needs the
// shared state rather than using package-level variables.
type Application struct {
	Config  *Config
	Logger  logging.Logger
	Client  webclient.WebClient
	Fetcher *fetch.Fetcher
}

// NewApplication constructs an Application from a validated Config: it builds
// the logger, registers and constructs the configured webclient backend, and
// wires the fetcher on top.
func NewApplication(cfg *Config) (*Application, error) {
	if cfg == nil {
		return nil, errors.New("application: nil config")
	}

	logger := logging.NewStderrLogger("snag", logging.ParseLevel(cfg.LogLevel))

	webclient.RegisterDefaultBackends()
	wc, err := webclient.New(cfg.WebClientCfg, logger)
	if err != nil {
		return nil, err
	}

	fetcher, err := fetch.New(wc, logger.With(logging.Field{Key: "component", Value: "fetcher"}))
	if err != nil {
		_ = wc.Close()
		return nil, err
	}

	return &Application{
		Config:  cfg,
		Logger:  logger,
		Client:  wc,
		Fetcher: fetcher,
	}, nil
}

// Close releases the webclient backend.
func (a *Application) Close() error {
	if a == nil || a.Client == nil {
		return nil
	}
	return a.Client.Close()
}
