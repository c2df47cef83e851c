package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MEETING_TIMEZONE", "America/Bogota")
	t.Setenv("MEETING_DURATION", "75")
	t.Setenv("EMAIL_USER", "")
	t.Setenv("EMAIL_PASSWORD", "")
	t.Setenv("CORS_ORIGINS", "http://localhost:5173")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.GetMeetingDuration() != 75*time.Minute {
		t.Fatalf("expected 75m meeting duration, got %s", cfg.GetMeetingDuration())
	}
	if cfg.GetMeetingLocation().String() != "America/Bogota" {
		t.Fatalf("expected America/Bogota location, got %s", cfg.GetMeetingLocation())
	}
	if cfg.GetEmailEnabled() {
		t.Fatal("expected email disabled without SMTP credentials")
	}
	if len(cfg.GetCORSOrigins()) != 1 || cfg.GetCORSOrigins()[0] != "http://localhost:5173" {
		t.Fatalf("unexpected CORS origins: %v", cfg.GetCORSOrigins())
	}
	if cfg.GetGoogleTokenTimeout() != cfg.GetCalendarTimeout() || cfg.GetGoogleTokenTimeout() <= 0 {
		t.Fatalf("token refresh must share the calendar timeout, got %s", cfg.GetGoogleTokenTimeout())
	}
}

func TestLoadRejectsUnknownTimezone(t *testing.T) {
	t.Setenv("MEETING_TIMEZONE", "Mars/Olympus_Mons")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown timezone")
	}
}

func TestLoadRejectsInvertedWorkHours(t *testing.T) {
	t.Setenv("MEETING_TIMEZONE", "UTC")
	t.Setenv("WORKDAY_START_HOUR", "18")
	t.Setenv("WORKDAY_END_HOUR", "9")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for inverted work hours")
	}
}

func TestWildcardOriginEnablesAllowAll(t *testing.T) {
	t.Setenv("MEETING_TIMEZONE", "UTC")
	t.Setenv("CORS_ORIGINS", "*")
	t.Setenv("CORS_ALLOW_CREDENTIALS", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !cfg.GetCORSAllowAll() {
		t.Fatal("expected wildcard origin to enable allow-all")
	}
}
