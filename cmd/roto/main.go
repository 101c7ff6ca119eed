package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/omarshaarawi/rotocoach/internal/api/espn"
	"github.com/omarshaarawi/rotocoach/internal/api/fantasy"
	"github.com/omarshaarawi/rotocoach/internal/config"
	"github.com/omarshaarawi/rotocoach/internal/dataset"
	"github.com/omarshaarawi/rotocoach/internal/logging"
	"github.com/omarshaarawi/rotocoach/internal/repository/history"
	"github.com/omarshaarawi/rotocoach/internal/repository/memory"
	"github.com/omarshaarawi/rotocoach/internal/service"
)

// roto runs the valuation once and writes the report tables to OUTPUT_DIR.
func main() {
	if err := run(); err != nil {
		slog.Error("Error running roto", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file loaded", "error", err)
	}

	cfg, err := config.NewBatch()
	if err != nil {
		return err
	}
	slog.SetDefault(logging.NewLogger(cfg.Log.Level, cfg.Log.Format))

	var espnAPI *espn.API
	if cfg.ESPNAPI.Enabled() {
		espnAPI = espn.NewAPI(espn.NewClient(cfg.ESPNAPI))
	}
	fantasyAPI := fantasy.NewAPI(espnAPI, cfg.Data, cfg.League.TeamIDs())

	opts, err := service.OptionsFromConfig(cfg.League)
	if err != nil {
		return err
	}

	var store service.HistoryStore
	if cfg.Data.HistoryDB != "" {
		db, err := history.Open(cfg.Data.HistoryDB)
		if err != nil {
			return err
		}
		defer db.Close()
		store = db
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rotoService := service.NewRotoService(fantasyAPI, memory.NewRepository(), store, opts, cfg.League.TeamIDs())
	report, err := rotoService.Refresh(ctx)
	if err != nil {
		return err
	}

	if err := dataset.WriteReport(cfg.Data.OutputDir, report); err != nil {
		return err
	}
	slog.Info("Report written", "path", cfg.Data.OutputDir, "values", len(report.Values), "swaps", len(report.Swaps))
	fmt.Println(service.FormatSwaps(report, 10))
	return nil
}
