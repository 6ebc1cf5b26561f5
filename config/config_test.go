package config

import (
	"github.com/stretchr/testify/assert"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DRIVER", "DATABASE_DSN", "CAFE_API_URL", "CAFE_API_TIMEOUT", "ALLOWED_ORIGINS", "JWT_SECRET"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "8083", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Contains(t, cfg.DatabaseDSN, "dbname=cafein")
	assert.Equal(t, "http://localhost:3001/cafes", cfg.CafeAPIURL)
	assert.Equal(t, 5*time.Second, cfg.CafeAPITimeout)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("CAFE_API_TIMEOUT", "750ms")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "cafein.db", cfg.DatabaseDSN)
	assert.Equal(t, 750*time.Millisecond, cfg.CafeAPITimeout)
	assert.Equal(t, []string{"http://localhost:3000", "https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestLoadIgnoresBadTimeout(t *testing.T) {
	t.Setenv("CAFE_API_TIMEOUT", "soon")
	assert.Equal(t, 5*time.Second, Load().CafeAPITimeout)
}

func TestLoadOwnerCredentialsAndFormTimeout(t *testing.T) {
	t.Setenv("CAFE_API_LOGIN", "owner")
	t.Setenv("CAFE_API_PASSWORD", "secret1")
	t.Setenv("FORM_IDLE_TIMEOUT", "5m")

	cfg := Load()

	assert.Equal(t, "owner", cfg.CafeAPILogin)
	assert.Equal(t, "secret1", cfg.CafeAPIPassword)
	assert.Equal(t, 5*time.Minute, cfg.FormIdleTimeout)

	t.Setenv("FORM_IDLE_TIMEOUT", "-1s")
	assert.Equal(t, 30*time.Minute, Load().FormIdleTimeout)
}
