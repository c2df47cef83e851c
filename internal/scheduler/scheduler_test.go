package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"funnel_backend/internal/email"
	"funnel_backend/platform/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

type testSchedulerConfig struct{ url string }

func (c testSchedulerConfig) GetRedisURL() string      { return c.url }
func (c testSchedulerConfig) IsSchedulerEnabled() bool { return c.url != "" }

type recordingSender struct {
	email.NoopSender
	reminders []email.Reminder
	err       error
}

func (s *recordingSender) SendAppointmentReminder(_ context.Context, msg email.Reminder) error {
	s.reminders = append(s.reminders, msg)
	return s.err
}

func TestNewClientRequiresRedisURL(t *testing.T) {
	if _, err := NewClient(testSchedulerConfig{}); err == nil {
		t.Fatal("expected error without redis url")
	}
	if _, err := NewClient(testSchedulerConfig{url: "::not a url"}); err == nil {
		t.Fatal("expected error for malformed redis url")
	}
}

func TestScheduleAppointmentReminderEnqueuesOncePerLead(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := NewClient(testSchedulerConfig{url: "redis://" + mr.Addr()})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = client.Close() })

	payload := AppointmentReminderPayload{
		LeadID: "lead-1",
		Email:  "ana@example.com",
		Name:   "Ana",
		Start:  time.Now().Add(48 * time.Hour),
	}
	ctx := context.Background()
	runAt := time.Now().Add(24 * time.Hour)

	if err := client.ScheduleAppointmentReminder(ctx, payload, runAt); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	err = client.ScheduleAppointmentReminder(ctx, payload, runAt)
	if !errors.Is(err, asynq.ErrTaskIDConflict) {
		t.Fatalf("expected task id conflict on second schedule, got %v", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	n, err := rdb.ZCard(ctx, "asynq:{default}:scheduled").Result()
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("expected one scheduled task, got %d", n)
	}
}

func TestNilClientIsNoop(t *testing.T) {
	var c *Client
	if err := c.ScheduleAppointmentReminder(context.Background(), AppointmentReminderPayload{}, time.Now()); err != nil {
		t.Fatalf("expected nil client to be a no-op, got %v", err)
	}
}

func TestHandleAppointmentReminderSendsEmail(t *testing.T) {
	sender := &recordingSender{}
	w := &Worker{sender: sender, log: logger.Discard()}

	start := time.Date(2026, 2, 2, 19, 0, 0, 0, time.UTC)
	task, err := NewAppointmentReminderTask(AppointmentReminderPayload{
		LeadID:      "lead-1",
		Email:       "ana@example.com",
		Name:        "Ana",
		Start:       start,
		MeetingLink: "https://meet.google.com/abc",
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := w.handleAppointmentReminder(context.Background(), task); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(sender.reminders) != 1 {
		t.Fatalf("expected one reminder, got %d", len(sender.reminders))
	}
	got := sender.reminders[0]
	if got.ToEmail != "ana@example.com" || !got.Start.Equal(start) || got.MeetingLink != "https://meet.google.com/abc" {
		t.Fatalf("unexpected reminder: %+v", got)
	}
}

func TestHandleAppointmentReminderSkipsRetryOnBadPayload(t *testing.T) {
	w := &Worker{sender: &recordingSender{}, log: logger.Discard()}
	err := w.handleAppointmentReminder(context.Background(), asynq.NewTask(TaskAppointmentReminder, []byte("{")))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry, got %v", err)
	}
}

func TestHandleAppointmentReminderReturnsSendError(t *testing.T) {
	sender := &recordingSender{err: errors.New("smtp down")}
	w := &Worker{sender: sender, log: logger.Discard()}
	task, _ := NewAppointmentReminderTask(AppointmentReminderPayload{LeadID: "x", Email: "a@b.co"})

	if err := w.handleAppointmentReminder(context.Background(), task); err == nil {
		t.Fatal("expected send error so asynq retries")
	}
}
