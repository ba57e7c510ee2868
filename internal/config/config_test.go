package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "unit-test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "academy-backend", cfg.AppName)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "0.0.0.0:8080", cfg.Address())

	assert.Equal(t, "admin_session", cfg.Auth.CookieName)
	assert.Equal(t, "/admin", cfg.Auth.AdminPrefix)
	assert.Equal(t, "/api/admin", cfg.Auth.AdminAPIPrefix)
	assert.Equal(t, "/admin/login", cfg.Auth.LoginPath)
	assert.Contains(t, cfg.Auth.PublicPaths, "/admin/login")
	assert.Contains(t, cfg.Auth.PublicPaths, "/api/admin/auth/login")
	// Logout only clears the cookie, so it stays reachable with an
	// expired session.
	assert.Contains(t, cfg.Auth.PublicPaths, "/api/admin/auth/logout")
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 24*time.Hour, cfg.Auth.RefreshWindow)
	// Development environments default to non-secure cookies.
	assert.False(t, cfg.Auth.SecureCookies)

	assert.NotEmpty(t, cfg.Database.URL)
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SESSION_SECRET", "unit-test-secret")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SESSION_TOKEN_TTL", "30m")
	t.Setenv("SESSION_REFRESH_WINDOW", "72h")
	t.Setenv("ADMIN_PUBLIC_PATHS", "/admin/login, /api/admin/auth/login")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/academy?sslmode=require")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "0.0.0.0:9090", cfg.Address())
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, 72*time.Hour, cfg.Auth.RefreshWindow)
	assert.Equal(t, []string{"/admin/login", "/api/admin/auth/login"}, cfg.Auth.PublicPaths)
	assert.Equal(t, "postgres://u:p@db:5432/academy?sslmode=require", cfg.Database.URL)
	// Outside development, cookies default to secure.
	assert.True(t, cfg.Auth.SecureCookies)
}

func TestDurationFromSeconds(t *testing.T) {
	t.Setenv("SESSION_SECRET", "unit-test-secret")
	t.Setenv("SYNC_INTERVAL_SECONDS", "45")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, cfg.Buffer.SyncInterval)
}
