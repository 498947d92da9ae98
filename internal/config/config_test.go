package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("GREENAPI_BASE_URL", "")
	t.Setenv("GREENAPI_TIMEOUT", "")
	t.Setenv("API_WRITE_TIMEOUT", "")

	cfg := New()

	assert.Equal(t, 30*time.Second, cfg.API.WriteTimeout)

	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, "https://7103.api.greenapi.com", cfg.GreenAPI.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.GreenAPI.Timeout)
	assert.Contains(t, cfg.DSN(), "dbname=")
}

func TestNew_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_PATH", "/tmp/test.db")
	t.Setenv("GREENAPI_TIMEOUT", "3s")
	t.Setenv("MEDIA_MAX_BYTES", "not-a-number")

	cfg := New()

	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "/tmp/test.db", cfg.DSN())
	assert.Equal(t, 3*time.Second, cfg.GreenAPI.Timeout)
	assert.Equal(t, 5<<20, cfg.Media.MaxBytes)
}
