package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"funnel_backend/internal/email"
	"funnel_backend/internal/scheduler"
	"funnel_backend/platform/config"
	"funnel_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting reminder worker", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !cfg.GetEmailEnabled() {
		log.Warn("email credentials not configured; reminders will be dropped")
	}
	sender := email.NewSender(cfg, cfg.GetMeetingLocation())

	worker, err := scheduler.NewWorker(cfg, sender, log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	if err := worker.Run(ctx); err != nil {
		log.Error("scheduler worker failed", "error", err)
		panic("scheduler worker failed: " + err.Error())
	}
	log.Info("reminder worker stopped")
}
