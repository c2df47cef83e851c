package scheduler

import (
	"context"
	"fmt"

	"funnel_backend/internal/email"
	"funnel_backend/platform/config"
	"funnel_backend/platform/logger"

	"github.com/hibiken/asynq"
)

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	sender email.Sender
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, sender email.Sender, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: 5,
		Queues: map[string]int{
			defaultQueue: 1,
		},
	})

	w := &Worker{
		server: server,
		mux:    asynq.NewServeMux(),
		sender: sender,
		log:    log,
	}
	w.mux.HandleFunc(TaskAppointmentReminder, w.handleAppointmentReminder)

	return w, nil
}

// Run processes tasks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	if w == nil || w.server == nil {
		return nil
	}

	if err := w.server.Start(w.mux); err != nil {
		return fmt.Errorf("start scheduler worker: %w", err)
	}
	<-ctx.Done()
	w.server.Shutdown()
	return nil
}

func (w *Worker) handleAppointmentReminder(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseAppointmentReminderPayload(task)
	if err != nil {
		// malformed payloads never succeed on retry
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	if payload.Email == "" {
		return nil
	}

	if err := w.sender.SendAppointmentReminder(ctx, email.Reminder{
		ToEmail:     payload.Email,
		ToName:      payload.Name,
		Start:       payload.Start,
		MeetingLink: payload.MeetingLink,
	}); err != nil {
		w.log.CollaboratorFailure("email", "reminder", err)
		return err
	}

	w.log.WithLeadID(payload.LeadID).Info("appointment reminder sent")
	return nil
}
