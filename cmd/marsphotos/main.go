package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/thesavant42/marsphotos/internal/api"
	"github.com/thesavant42/marsphotos/internal/config"
	"github.com/thesavant42/marsphotos/internal/db"
	"github.com/thesavant42/marsphotos/internal/ui"
)

func main() {
	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		ui.PrintError(fmt.Sprintf("Failed to load configuration: %v", err))
		os.Exit(1)
	}

	// The TUI owns the terminal, so logs go to a file
	logger := api.NewFileLogger(cfg.Client.LogFile, "marsphotos", cfg.Log.LogLevel())

	src, err := newSource(cfg, logger)
	if err != nil {
		ui.PrintError(err.Error())
		os.Exit(1)
	}

	var history ui.History
	database, err := db.New(cfg.Client.HistoryDB)
	if err != nil {
		ui.PrintWarning(fmt.Sprintf("Search history disabled: %v", err))
	} else {
		defer database.Close()
		history = database
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := ui.RunApp(ctx, src, history, ui.ConfigForLocale(cfg.Client.Locale), logger); err != nil {
		ui.PrintError(err.Error())
		os.Exit(1)
	}
}

// newSource picks the proxy when one is configured, else NASA directly
func newSource(cfg *config.Config, logger *log.Logger) (ui.Source, error) {
	if cfg.Client.ProxyURL != "" {
		client, err := api.NewProxyClient(cfg.Client.ProxyURL, logger)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy URL: %w", err)
		}
		return client, nil
	}
	return api.NewNASAClient(cfg.NASA.APIKey, logger, api.WithBaseURL(cfg.NASA.BaseURL)), nil
}
