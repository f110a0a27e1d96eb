package app

import (
	"os"
	"strconv"
	"time"

	"github.com/aussiebroadwan/snaptranslate/internal/client/service"
)

type Config struct {
	APIBaseURL    string // Translation backend base URL (default: http://localhost:8000)
	DatabaseFile  string // Path to the SQLite token database (default: snaptranslate.db, ":memory:" keeps nothing)
	MasterKeyPath string // Optional: file holding the key that seals stored tokens
	ListenAddr    string // Local API address (default: 127.0.0.1:7070)

	LoginThrottle    time.Duration // Minimum gap between login submits (default: 3s)
	LoginMaxAttempts int           // Failures before lockout (default: 5)
	LoginLockout     time.Duration // Lockout length (default: 1h)
	ResendCooldown   time.Duration // OTP resend cooldown (default: 60s)
	LanguagesTTL     time.Duration // Language list cache lifetime (default: 5m)
	ProfileTimeout   time.Duration // Deadline for background profile loads (default: 30s)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		APIBaseURL:    getEnvOrDefault("SNAP_API_BASE_URL", "http://localhost:8000"),
		DatabaseFile:  getEnvOrDefault("SNAP_DATABASE_FILE", "snaptranslate.db"),
		MasterKeyPath: os.Getenv("SNAP_MASTER_KEY_PATH"),
		ListenAddr:    getEnvOrDefault("SNAP_LISTEN_ADDR", "127.0.0.1:7070"),

		LoginThrottle:    getEnvDurationOrDefault("SNAP_LOGIN_THROTTLE", service.DefaultLoginThrottle),
		LoginMaxAttempts: getEnvIntOrDefault("SNAP_LOGIN_MAX_ATTEMPTS", service.DefaultMaxLoginAttempts),
		LoginLockout:     getEnvDurationOrDefault("SNAP_LOGIN_LOCKOUT", service.DefaultLockout),
		ResendCooldown:   getEnvDurationOrDefault("SNAP_RESEND_COOLDOWN", service.DefaultResendCooldown),
		LanguagesTTL:     getEnvDurationOrDefault("SNAP_LANGUAGES_TTL", service.DefaultLanguagesTTL),
		ProfileTimeout:   getEnvDurationOrDefault("SNAP_PROFILE_TIMEOUT", 30*time.Second),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil && intValue > 0 {
		return intValue
	}

	return defaultValue
}

// getEnvDurationOrDefault accepts Go durations ("90s", "1h") or a bare
// number of seconds.
func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil && duration > 0 {
		return duration
	}

	if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
