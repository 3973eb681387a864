package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/robfig/cron/v3"
)

type Config struct {
	// HTTP Server
	Port    string `default:"8081"`
	BaseURL string

	// Logging
	LogLevel  string `default:"info"`
	LogFormat string `default:"text"`

	// Storage
	Backend      string `default:"sqlite"`
	SQLiteDBPath string `default:"./data/cashflow.db"`

	// AMQP
	AMQPURL      string
	AMQPExchange string `default:"cashflow"`
	AMQPQueue    string `default:"forecast_exports"`

	// Report cache
	RedisURL  string
	CacheTTL  time.Duration `default:"5m"`
	CacheSize int           `default:"128"`

	// Rate limiting
	RateLimitRequests int           `default:"60"`
	RateLimitWindow   time.Duration `default:"1m"`

	// Google Sheets export
	GoogleSpreadsheetID      string
	GoogleSheetName          string `default:"Forecast"`
	GoogleServiceAccountJSON string
	GoogleServiceAccountFile string
	GoogleOAuthClientJSON    string
	GoogleOAuthClientFile    string
	GoogleOAuthTokenJSON     string
	GoogleOAuthTokenFile     string

	// Export worker
	ExportInterval       time.Duration `default:"10s"`
	ExportMaxRetries     int           `default:"3"`
	ExportInitialBalance float64

	// SMTP notifications
	SMTPHost     string
	SMTPPort     string `default:"587"`
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	SMTPTo       []string

	// Low balance alerts
	AlertSchedule       string `default:"0 8 * * *"`
	AlertInitialBalance float64
	AlertWeeks          int
}

// Load reads configuration from the environment on top of struct defaults.
func Load() *Config {
	cfg := &Config{}
	defaults.MustSet(cfg)

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.BaseURL = getEnv("BASE_URL", cfg.BaseURL)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)

	cfg.Backend = getEnv("BACKEND", cfg.Backend)
	cfg.SQLiteDBPath = getEnv("SQLITE_DB_PATH", cfg.SQLiteDBPath)

	cfg.AMQPURL = getEnv("AMQP_URL", cfg.AMQPURL)
	cfg.AMQPExchange = getEnv("AMQP_EXCHANGE", cfg.AMQPExchange)
	cfg.AMQPQueue = getEnv("AMQP_QUEUE", cfg.AMQPQueue)

	cfg.RedisURL = getEnv("REDIS_URL", cfg.RedisURL)
	cfg.CacheTTL = getEnvDuration("CACHE_TTL", cfg.CacheTTL)
	cfg.CacheSize = getEnvInt("CACHE_SIZE", cfg.CacheSize)

	cfg.RateLimitRequests = getEnvInt("RATE_LIMIT_REQUESTS", cfg.RateLimitRequests)
	cfg.RateLimitWindow = getEnvDuration("RATE_LIMIT_WINDOW", cfg.RateLimitWindow)

	cfg.GoogleSpreadsheetID = getEnv("GOOGLE_SPREADSHEET_ID", cfg.GoogleSpreadsheetID)
	cfg.GoogleSheetName = getEnv("GOOGLE_SHEET_NAME", cfg.GoogleSheetName)
	cfg.GoogleServiceAccountJSON = getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", cfg.GoogleServiceAccountJSON)
	cfg.GoogleServiceAccountFile = getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", getEnv("GOOGLE_APPLICATION_CREDENTIALS", cfg.GoogleServiceAccountFile))
	cfg.GoogleOAuthClientJSON = getEnv("GOOGLE_OAUTH_CLIENT_JSON", cfg.GoogleOAuthClientJSON)
	cfg.GoogleOAuthClientFile = getEnv("GOOGLE_OAUTH_CLIENT_FILE", cfg.GoogleOAuthClientFile)
	cfg.GoogleOAuthTokenJSON = getEnv("GOOGLE_OAUTH_TOKEN_JSON", cfg.GoogleOAuthTokenJSON)
	cfg.GoogleOAuthTokenFile = getEnv("GOOGLE_OAUTH_TOKEN_FILE", cfg.GoogleOAuthTokenFile)

	cfg.ExportInterval = getEnvDuration("EXPORT_INTERVAL", cfg.ExportInterval)
	cfg.ExportMaxRetries = getEnvInt("EXPORT_MAX_RETRIES", cfg.ExportMaxRetries)
	cfg.ExportInitialBalance = getEnvFloat("EXPORT_INITIAL_BALANCE", cfg.ExportInitialBalance)

	cfg.SMTPHost = getEnv("SMTP_HOST", cfg.SMTPHost)
	cfg.SMTPPort = getEnv("SMTP_PORT", cfg.SMTPPort)
	cfg.SMTPUsername = getEnv("SMTP_USERNAME", cfg.SMTPUsername)
	cfg.SMTPPassword = getEnv("SMTP_PASSWORD", cfg.SMTPPassword)
	cfg.SMTPFrom = getEnv("SMTP_FROM", cfg.SMTPFrom)
	cfg.SMTPTo = getEnvList("SMTP_TO", cfg.SMTPTo)

	cfg.AlertSchedule = getEnv("ALERT_SCHEDULE", cfg.AlertSchedule)
	cfg.AlertInitialBalance = getEnvFloat("ALERT_INITIAL_BALANCE", cfg.AlertInitialBalance)
	cfg.AlertWeeks = getEnvInt("ALERT_WEEKS", cfg.AlertWeeks)

	return cfg
}

// SheetsEnabled reports whether forecast export to Google Sheets is configured.
func (c *Config) SheetsEnabled() bool { return c.GoogleSpreadsheetID != "" }

// SMTPEnabled reports whether email alerts are configured.
func (c *Config) SMTPEnabled() bool { return c.SMTPHost != "" }

// AMQPEnabled reports whether item events are published.
func (c *Config) AMQPEnabled() bool { return c.AMQPURL != "" }

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.Backend {
	case "memory":
	case "sqlite":
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else if dir := filepath.Dir(c.SQLiteDBPath); dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
		}
	default:
		errors = append(errors, fmt.Sprintf("invalid backend '%s': must be one of [memory sqlite]", c.Backend))
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.RedisURL != "" {
		if parsedURL, err := url.Parse(c.RedisURL); err != nil || (parsedURL.Scheme != "redis" && parsedURL.Scheme != "rediss") {
			errors = append(errors, fmt.Sprintf("invalid Redis URL '%s': must use redis:// or rediss://", c.RedisURL))
		}
	}
	if c.CacheSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid cache size %d: must be at least 1", c.CacheSize))
	}
	if c.CacheTTL <= 0 {
		errors = append(errors, fmt.Sprintf("invalid cache TTL %v: must be positive", c.CacheTTL))
	}

	if c.RateLimitRequests < 1 {
		errors = append(errors, fmt.Sprintf("invalid rate limit %d: must be at least 1", c.RateLimitRequests))
	}
	if c.RateLimitWindow < time.Second {
		errors = append(errors, fmt.Sprintf("invalid rate limit window %v: must be at least 1 second", c.RateLimitWindow))
	}

	if c.SheetsEnabled() {
		hasServiceAccount := c.GoogleServiceAccountJSON != "" || c.GoogleServiceAccountFile != ""
		hasOAuth := (c.GoogleOAuthClientJSON != "" || c.GoogleOAuthClientFile != "") &&
			(c.GoogleOAuthTokenJSON != "" || c.GoogleOAuthTokenFile != "")
		if !hasServiceAccount && !hasOAuth {
			errors = append(errors, "Google Sheets export needs service account credentials or an OAuth client and token")
		}
		for name, path := range map[string]string{
			"service account": c.GoogleServiceAccountFile,
			"OAuth client":    c.GoogleOAuthClientFile,
			"OAuth token":     c.GoogleOAuthTokenFile,
		} {
			if path == "" {
				continue
			}
			if _, err := os.Stat(path); os.IsNotExist(err) {
				errors = append(errors, fmt.Sprintf("Google %s file does not exist: %s", name, path))
			}
		}
	}

	if c.ExportInterval < time.Second {
		errors = append(errors, fmt.Sprintf("invalid export interval %v: must be at least 1 second", c.ExportInterval))
	} else if c.ExportInterval > 24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid export interval %v: must be at most 24 hours", c.ExportInterval))
	}
	if c.ExportMaxRetries < 1 || c.ExportMaxRetries > 10 {
		errors = append(errors, fmt.Sprintf("invalid export max retries %d: must be between 1 and 10", c.ExportMaxRetries))
	}

	if c.SMTPEnabled() {
		if c.SMTPFrom == "" {
			errors = append(errors, "SMTP_FROM is required when SMTP_HOST is set")
		}
		if len(c.SMTPTo) == 0 {
			errors = append(errors, "SMTP_TO is required when SMTP_HOST is set")
		}
	}

	if _, err := cron.ParseStandard(c.AlertSchedule); err != nil {
		errors = append(errors, fmt.Sprintf("invalid alert schedule '%s': %v", c.AlertSchedule, err))
	}
	if c.AlertWeeks < 0 || c.AlertWeeks > 520 {
		errors = append(errors, fmt.Sprintf("invalid alert weeks %d: must be between 0 and 520", c.AlertWeeks))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// getEnvList splits a comma separated value, dropping empty entries.
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
