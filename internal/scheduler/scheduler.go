package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/omarshaarawi/rotocoach/internal/config"
)

// Refresher rebuilds the report and returns the message to post.
type Refresher interface {
	RefreshSummary(ctx context.Context) (string, error)
}

type Scheduler struct {
	s           gocron.Scheduler
	cfg         config.Schedule
	service     Refresher
	sendMessage func(string) error
	timeout     time.Duration
}

func NewScheduler(cfg config.Schedule, service Refresher, sendMessage func(string) error) (*Scheduler, error) {
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		slog.Error("Failed to load location", "error", err, "timezone", cfg.Timezone)
		location = time.UTC
	}

	s, err := gocron.NewScheduler(
		gocron.WithLocation(location),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:           s,
		cfg:         cfg,
		service:     service,
		sendMessage: sendMessage,
		timeout:     5 * time.Minute,
	}, nil
}

func (s *Scheduler) Start() error {
	if !s.cfg.Enabled {
		slog.Info("Scheduled reports disabled")
		return nil
	}

	// Weekly report, Monday 7:30 by default
	_, err := s.s.NewJob(
		gocron.CronJob(s.cfg.Cron, false),
		gocron.NewTask(s.sendReport),
		gocron.WithName("roto-report"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to create report job: %w", err)
	}

	s.s.Start()
	slog.Info("Scheduler started", "cron", s.cfg.Cron, "timezone", s.cfg.Timezone)
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) sendReport() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	report, err := s.service.RefreshSummary(ctx)
	if err != nil {
		slog.Error("Failed to refresh report", "error", err)
		return
	}
	if err := s.sendMessage(report); err != nil {
		slog.Error("Failed to send report", "error", err)
	}
}
