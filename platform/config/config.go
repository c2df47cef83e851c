// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
	IsDatabaseEnabled() bool
}

// JWTConfig provides JWT validation settings for middleware.
type JWTConfig interface {
	GetJWTAccessSecret() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
	GetPublicRateLimit() float64
	GetPublicRateBurst() int
}

// MeetingConfig provides the booking parameters shared by the slot
// calculator, the calendar provider and the notifier.
type MeetingConfig interface {
	GetMeetingLocation() *time.Location
	GetMeetingTimezone() string
	GetMeetingDuration() time.Duration
	GetWorkdayStartHour() int
	GetWorkdayEndHour() int
	GetMeetingFallbackLink() string
}

// CalendarConfig provides settings for the calendar provider.
type CalendarConfig interface {
	MeetingConfig
	GetCalendarID() string
	GetCalendarTimeout() time.Duration
}

// GoogleAuthConfig provides OAuth client settings for Google APIs.
type GoogleAuthConfig interface {
	GetGoogleClientID() string
	GetGoogleClientSecret() string
	GetGoogleRedirectURI() string
	GetGoogleCredentialsPath() string
	GetGoogleTokenPath() string
	// GetGoogleTokenTimeout bounds token refreshes; it shares the
	// calendar's timeout so a slow refresh still degrades to fallback slots.
	GetGoogleTokenTimeout() time.Duration
}

// EmailConfig provides settings for email sending.
type EmailConfig interface {
	GetEmailEnabled() bool
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPSecure() bool
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
}

// NotificationConfig provides settings for the notification module.
type NotificationConfig interface {
	MeetingConfig
	GetOrganizerName() string
	GetOrganizerEmail() string
	GetReminderLeadTime() time.Duration
}

// LedgerConfig provides settings for the lead ledger sinks.
type LedgerConfig interface {
	GetExcelExportPath() string
	GetGoogleSheetsID() string
	IsSheetsEnabled() bool
}

// MinIOConfig provides settings for MinIO S3-compatible storage.
type MinIOConfig interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinIOBucketLedger() string
	IsMinIOEnabled() bool
}

// AnalyticsConfig provides settings for the GA4 measurement client.
type AnalyticsConfig interface {
	GetGAMeasurementID() string
	GetGAAPISecret() string
	IsAnalyticsEnabled() bool
}

// SchedulerConfig provides settings for the background task queue.
type SchedulerConfig interface {
	GetRedisURL() string
	IsSchedulerEnabled() bool
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                   string
	HTTPAddr              string
	DatabaseURL           string
	JWTAccessSecret       string
	CORSAllowAll          bool
	CORSOrigins           []string
	CORSAllowCreds        bool
	PublicRateLimit       float64
	PublicRateBurst       int
	MeetingTimezone       string
	MeetingLocation       *time.Location
	MeetingDuration       time.Duration
	WorkdayStartHour      int
	WorkdayEndHour        int
	MeetingFallbackLink   string
	CalendarID            string
	CalendarTimeout       time.Duration
	GoogleClientID        string
	GoogleClientSecret    string
	GoogleRedirectURI     string
	GoogleCredentialsPath string
	GoogleTokenPath       string
	GoogleSheetsID        string
	ExcelExportPath       string
	EmailEnabled          bool
	SMTPHost              string
	SMTPPort              int
	SMTPSecure            bool
	SMTPUsername          string
	SMTPPassword          string
	EmailFromName         string
	EmailFromAddress      string
	OrganizerName         string
	OrganizerEmail        string
	ReminderLeadTime      time.Duration
	MinIOEndpoint         string
	MinIOAccessKey        string
	MinIOSecretKey        string
	MinIOUseSSL           bool
	MinIOBucketLedger     string
	GAMeasurementID       string
	GAAPISecret           string
	RedisURL              string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string  { return c.DatabaseURL }
func (c *Config) IsDatabaseEnabled() bool { return c.DatabaseURL != "" }

// JWTConfig implementation
func (c *Config) GetJWTAccessSecret() string { return c.JWTAccessSecret }

// IsAdminEnabled reports whether the protected admin routes should be mounted.
func (c *Config) IsAdminEnabled() bool { return c.JWTAccessSecret != "" }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string         { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool       { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string    { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool     { return c.CORSAllowCreds }
func (c *Config) GetPublicRateLimit() float64 { return c.PublicRateLimit }
func (c *Config) GetPublicRateBurst() int     { return c.PublicRateBurst }

// MeetingConfig implementation
func (c *Config) GetMeetingLocation() *time.Location { return c.MeetingLocation }
func (c *Config) GetMeetingTimezone() string         { return c.MeetingTimezone }
func (c *Config) GetMeetingDuration() time.Duration  { return c.MeetingDuration }
func (c *Config) GetWorkdayStartHour() int           { return c.WorkdayStartHour }
func (c *Config) GetWorkdayEndHour() int             { return c.WorkdayEndHour }
func (c *Config) GetMeetingFallbackLink() string     { return c.MeetingFallbackLink }

// CalendarConfig implementation
func (c *Config) GetCalendarID() string             { return c.CalendarID }
func (c *Config) GetCalendarTimeout() time.Duration { return c.CalendarTimeout }

// GoogleAuthConfig implementation
func (c *Config) GetGoogleClientID() string        { return c.GoogleClientID }
func (c *Config) GetGoogleClientSecret() string    { return c.GoogleClientSecret }
func (c *Config) GetGoogleRedirectURI() string     { return c.GoogleRedirectURI }
func (c *Config) GetGoogleCredentialsPath() string { return c.GoogleCredentialsPath }
func (c *Config) GetGoogleTokenPath() string       { return c.GoogleTokenPath }
func (c *Config) GetGoogleTokenTimeout() time.Duration {
	return c.CalendarTimeout
}

// EmailConfig implementation
func (c *Config) GetEmailEnabled() bool       { return c.EmailEnabled }
func (c *Config) GetSMTPHost() string         { return c.SMTPHost }
func (c *Config) GetSMTPPort() int            { return c.SMTPPort }
func (c *Config) GetSMTPSecure() bool         { return c.SMTPSecure }
func (c *Config) GetSMTPUsername() string     { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string     { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string    { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string { return c.EmailFromAddress }

// NotificationConfig implementation
func (c *Config) GetOrganizerName() string           { return c.OrganizerName }
func (c *Config) GetOrganizerEmail() string          { return c.OrganizerEmail }
func (c *Config) GetReminderLeadTime() time.Duration { return c.ReminderLeadTime }

// LedgerConfig implementation
func (c *Config) GetExcelExportPath() string { return c.ExcelExportPath }
func (c *Config) GetGoogleSheetsID() string  { return c.GoogleSheetsID }
func (c *Config) IsSheetsEnabled() bool      { return c.GoogleSheetsID != "" }

// MinIOConfig implementation
func (c *Config) GetMinIOEndpoint() string     { return c.MinIOEndpoint }
func (c *Config) GetMinIOAccessKey() string    { return c.MinIOAccessKey }
func (c *Config) GetMinIOSecretKey() string    { return c.MinIOSecretKey }
func (c *Config) GetMinIOUseSSL() bool         { return c.MinIOUseSSL }
func (c *Config) GetMinIOBucketLedger() string { return c.MinIOBucketLedger }
func (c *Config) IsMinIOEnabled() bool         { return c.MinIOEndpoint != "" }

// AnalyticsConfig implementation
func (c *Config) GetGAMeasurementID() string { return c.GAMeasurementID }
func (c *Config) GetGAAPISecret() string     { return c.GAAPISecret }
func (c *Config) IsAnalyticsEnabled() bool {
	return c.GAMeasurementID != "" && c.GAAPISecret != ""
}

// SchedulerConfig implementation
func (c *Config) GetRedisURL() string      { return c.RedisURL }
func (c *Config) IsSchedulerEnabled() bool { return c.RedisURL != "" }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", getEnv("FRONTEND_URL", "http://localhost:5173")))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	smtpUser := getEnv("EMAIL_USER", "")
	smtpPassword := getEnv("EMAIL_PASSWORD", "")
	emailEnabled := strings.EqualFold(getEnv("EMAIL_ENABLED", "true"), "true")

	timezone := getEnv("MEETING_TIMEZONE", "America/Bogota")
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("MEETING_TIMEZONE %q is not a valid IANA zone: %w", timezone, err)
	}

	cfg := &Config{
		Env:                   getEnv("APP_ENV", "development"),
		HTTPAddr:              getEnv("HTTP_ADDR", ":"+getEnv("PORT", "3001")),
		DatabaseURL:           getEnv("DATABASE_URL", ""),
		JWTAccessSecret:       getEnv("ADMIN_JWT_SECRET", ""),
		CORSAllowAll:          corsAllowAll,
		CORSOrigins:           corsOrigins,
		CORSAllowCreds:        strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		PublicRateLimit:       mustFloat(getEnv("PUBLIC_RATE_LIMIT_PER_MIN", "30")) / 60.0,
		PublicRateBurst:       mustInt(getEnv("PUBLIC_RATE_BURST", "10")),
		MeetingTimezone:       timezone,
		MeetingLocation:       location,
		MeetingDuration:       time.Duration(mustInt(getEnv("MEETING_DURATION", "75"))) * time.Minute,
		WorkdayStartHour:      mustInt(getEnv("WORKDAY_START_HOUR", "9")),
		WorkdayEndHour:        mustInt(getEnv("WORKDAY_END_HOUR", "19")),
		MeetingFallbackLink:   getEnv("MEETING_FALLBACK_LINK", "https://meet.google.com/xxx-xxxx-xxx"),
		CalendarID:            getEnv("GOOGLE_CALENDAR_ID", "primary"),
		CalendarTimeout:       mustDuration(getEnv("CALENDAR_TIMEOUT", "5s")),
		GoogleClientID:        getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret:    getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURI:     getEnv("GOOGLE_REDIRECT_URI", "http://localhost:3001/api/auth/callback"),
		GoogleCredentialsPath: getEnv("GOOGLE_CREDENTIALS_PATH", "credentials.json"),
		GoogleTokenPath:       getEnv("GOOGLE_TOKEN_PATH", "token.json"),
		GoogleSheetsID:        getEnv("GOOGLE_SHEETS_ID", ""),
		ExcelExportPath:       getEnv("EXCEL_EXPORT_PATH", "./exports"),
		EmailEnabled:          emailEnabled && smtpUser != "" && smtpPassword != "",
		SMTPHost:              getEnv("EMAIL_HOST", "smtp.gmail.com"),
		SMTPPort:              mustInt(getEnv("EMAIL_PORT", "587")),
		SMTPSecure:            strings.EqualFold(getEnv("EMAIL_SECURE", "false"), "true"),
		SMTPUsername:          smtpUser,
		SMTPPassword:          smtpPassword,
		EmailFromName:         getEnv("EMAIL_FROM_NAME", getEnv("ORGANIZER_NAME", "ErickAds")),
		EmailFromAddress:      getEnv("EMAIL_FROM_ADDRESS", smtpUser),
		OrganizerName:         getEnv("ORGANIZER_NAME", "ErickAds"),
		OrganizerEmail:        getEnv("ORGANIZER_EMAIL", smtpUser),
		ReminderLeadTime:      mustDuration(getEnv("REMINDER_LEAD_TIME", "24h")),
		MinIOEndpoint:         getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:        getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:        getEnv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:           strings.EqualFold(getEnv("MINIO_USE_SSL", "false"), "true"),
		MinIOBucketLedger:     getEnv("MINIO_BUCKET_LEDGER", "lead-ledger"),
		GAMeasurementID:       getEnv("GA_MEASUREMENT_ID", ""),
		GAAPISecret:           getEnv("GA_API_SECRET", ""),
		RedisURL:              getEnv("REDIS_URL", ""),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.WorkdayStartHour < 0 || c.WorkdayEndHour > 24 || c.WorkdayStartHour >= c.WorkdayEndHour {
		return fmt.Errorf("WORKDAY_START_HOUR (%d) and WORKDAY_END_HOUR (%d) must satisfy 0 <= start < end <= 24",
			c.WorkdayStartHour, c.WorkdayEndHour)
	}
	if c.MeetingDuration <= 0 {
		return fmt.Errorf("MEETING_DURATION must be a positive number of minutes")
	}
	if c.CalendarTimeout <= 0 {
		return fmt.Errorf("CALENDAR_TIMEOUT must be a positive duration")
	}
	if c.EmailEnabled && c.EmailFromAddress == "" {
		return fmt.Errorf("EMAIL_FROM_ADDRESS is required when email is enabled")
	}
	if c.CORSAllowAll && c.CORSAllowCreds {
		return fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}
	if c.PublicRateBurst <= 0 {
		return fmt.Errorf("PUBLIC_RATE_BURST must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return result
}

func mustFloat(value string) float64 {
	result, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
