package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App struct {
		Name string
		Env  string
	}

	API struct {
		Host            string
		Port            string
		WriteTimeout    time.Duration
		ShutdownTimeout time.Duration
	}

	DB struct {
		Driver   string
		Host     string
		Port     int
		User     string
		Password string
		Name     string
		SSLMode  string
		// Path is the database file used by the sqlite driver.
		Path string
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	GreenAPI struct {
		BaseURL    string
		InstanceID string
		APIToken   string
		Timeout    time.Duration
	}

	Media struct {
		PublicBaseURL string
		TTL           time.Duration
		MaxBytes      int
	}

	Maintenance struct {
		Enabled        bool
		Interval       time.Duration
		BatchTimeout   time.Duration
		PendingTimeout time.Duration
		Retention      time.Duration
	}

	Log struct {
		Level string
		File  string
	}
}

func New() *Config {
	_ = godotenv.Load()

	cfg := &Config{}

	// App
	cfg.App.Name = getEnv("APP_NAME", "greenapi-notifier")
	cfg.App.Env = getEnv("APP_ENV", "development")

	// API
	cfg.API.Host = getEnv("API_HOST", "0.0.0.0")
	cfg.API.Port = getEnv("API_PORT", "8080")
	cfg.API.WriteTimeout = getDuration("API_WRITE_TIMEOUT", 30*time.Second)
	cfg.API.ShutdownTimeout = getDuration("API_SHUTDOWN_TIMEOUT", 10*time.Second)

	// DB
	cfg.DB.Driver = strings.ToLower(getEnv("DB_DRIVER", "postgres"))
	cfg.DB.Host = getEnv("DB_HOST", "db")
	cfg.DB.Port = getInt("DB_PORT", 5432)
	cfg.DB.User = getEnv("DB_USER", "root")
	cfg.DB.Password = getEnv("DB_PASSWORD", "123456")
	cfg.DB.Name = getEnv("DB_NAME", "db_greenapi_notifier")
	cfg.DB.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.DB.Path = getEnv("DB_PATH", "greenapi-notifier.db")

	// Redis
	cfg.Redis.Addr = getEnv("REDIS_ADDR", "redis:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = getInt("REDIS_DB", 0)

	// Green API account. Instance and token only seed the provider settings
	// on first start; afterwards the stored settings win.
	cfg.GreenAPI.BaseURL = getEnv("GREENAPI_BASE_URL", "https://7103.api.greenapi.com")
	cfg.GreenAPI.InstanceID = getEnv("GREENAPI_INSTANCE_ID", "")
	cfg.GreenAPI.APIToken = getEnv("GREENAPI_API_TOKEN", "")
	cfg.GreenAPI.Timeout = getDuration("GREENAPI_TIMEOUT", 10*time.Second)

	// Media served back to the remote API for sendFileByUrl
	cfg.Media.PublicBaseURL = getEnv("MEDIA_PUBLIC_BASE_URL", "http://localhost:8080")
	cfg.Media.TTL = getDuration("MEDIA_TTL", time.Hour)
	cfg.Media.MaxBytes = getInt("MEDIA_MAX_BYTES", 5<<20)

	// History maintenance
	cfg.Maintenance.Enabled = isTruthy(getEnv("MAINTENANCE_ENABLED", "true"))
	cfg.Maintenance.Interval = getDuration("MAINTENANCE_INTERVAL", 10*time.Minute)
	cfg.Maintenance.BatchTimeout = getDuration("MAINTENANCE_BATCH_TIMEOUT", 30*time.Second)
	cfg.Maintenance.PendingTimeout = getDuration("NOTIFICATION_PENDING_TIMEOUT", 5*time.Minute)
	cfg.Maintenance.Retention = getDuration("NOTIFICATION_RETENTION", 30*24*time.Hour)

	// Logging
	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.File = getEnv("LOG_FILE", "")

	return cfg
}

func getEnv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

// IsDevelopment reports whether the app runs in a development environment.
func (c *Config) IsDevelopment() bool {
	return isTruthy(getEnv("APP_DEBUG", "")) || c.App.Env == "development"
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host,
		c.DB.Port,
		c.DB.User,
		c.DB.Password,
		c.DB.Name,
		c.DB.SSLMode,
	)
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.DB.Driver == "sqlite" {
		return c.DB.Path
	}
	return c.PostgresDSN()
}
