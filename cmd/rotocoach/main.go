package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/omarshaarawi/rotocoach/internal/api/espn"
	"github.com/omarshaarawi/rotocoach/internal/api/fantasy"
	"github.com/omarshaarawi/rotocoach/internal/bot"
	"github.com/omarshaarawi/rotocoach/internal/config"
	"github.com/omarshaarawi/rotocoach/internal/logging"
	"github.com/omarshaarawi/rotocoach/internal/repository/history"
	"github.com/omarshaarawi/rotocoach/internal/repository/memory"
	"github.com/omarshaarawi/rotocoach/internal/scheduler"
	"github.com/omarshaarawi/rotocoach/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file loaded", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}
	slog.SetDefault(logging.NewLogger(cfg.Log.Level, cfg.Log.Format))

	var espnAPI *espn.API
	if cfg.ESPNAPI.Enabled() {
		espnAPI = espn.NewAPI(espn.NewClient(cfg.ESPNAPI))
	}
	fantasyAPI := fantasy.NewAPI(espnAPI, cfg.Data, cfg.League.TeamIDs())

	store, err := history.Open(cfg.Data.HistoryDB)
	if err != nil {
		return err
	}
	defer store.Close()

	opts, err := service.OptionsFromConfig(cfg.League)
	if err != nil {
		return err
	}
	repo := memory.NewRepository()
	rotoService := service.NewRotoService(fantasyAPI, repo, store, opts, cfg.League.TeamIDs())

	telegramBot, err := bot.NewTelegramBot(cfg.TelegramBot.Token, cfg.TelegramBot.ChatID, rotoService)
	if err != nil {
		return err
	}

	sched, err := scheduler.NewScheduler(cfg.Schedule, rotoService, telegramBot.SendMessage)
	if err != nil {
		return err
	}

	if err := sched.Start(); err != nil {
		return err
	}
	defer func() {
		err := sched.Stop()
		if err != nil {
			slog.Error("Error stopping scheduler", "error", err)
		}
	}()

	http.HandleFunc("/", healthCheckHandler)

	go func() {
		if err := http.ListenAndServe(":80", nil); err != nil {
			slog.Error("Error starting HTTP server", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("Starting rotocoach", "source", fantasyAPI.Source(), "team_id", cfg.League.MyTeamID)

	go func() {
		if err := telegramBot.Start(ctx); err != nil {
			slog.Error("Error running telegram bot", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down gracefully...")

	return nil
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
