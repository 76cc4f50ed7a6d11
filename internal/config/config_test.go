package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("SESSION_SECRET", "secret")
	t.Setenv("PORT", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("DRAFT_TTL", "")
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SESSION_SECRET", "secret")
	t.Setenv("PORT", "")

	cfg, err := Load()

	require.Error(t, err)
	require.Contains(t, err.Error(), "DATABASE_URL")
	require.Equal(t, Config{}, cfg)
}

func TestLoad_MissingSessionSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("SESSION_SECRET", "")

	cfg, err := Load()

	require.Error(t, err)
	require.Contains(t, err.Error(), "SESSION_SECRET")
	require.Equal(t, Config{}, cfg)
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()

	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "postgres://example", cfg.DatabaseURL)
	require.Equal(t, "secret", cfg.SessionSecret)
	require.Equal(t, 24*time.Hour, cfg.SessionTTL)
	require.Equal(t, 15*time.Minute, cfg.DraftTTL)
}

func TestLoad_CustomPort(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9090")

	cfg, err := Load()

	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
}

func TestLoad_PortWithColonPrefix(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", ":9090")

	cfg, err := Load()

	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
}

func TestLoad_CustomTTLs(t *testing.T) {
	setRequired(t)
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("DRAFT_TTL", "5m")

	cfg, err := Load()

	require.NoError(t, err)
	require.Equal(t, 2*time.Hour, cfg.SessionTTL)
	require.Equal(t, 5*time.Minute, cfg.DraftTTL)
}

func TestLoad_InvalidTTL(t *testing.T) {
	tests := []struct {
		name  string
		env   string
		value string
	}{
		{"session ttl garbage", "SESSION_TTL", "soon"},
		{"session ttl negative", "SESSION_TTL", "-1h"},
		{"draft ttl garbage", "DRAFT_TTL", "later"},
		{"draft ttl zero", "DRAFT_TTL", "0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.env, tt.value)

			_, err := Load()

			require.Error(t, err)
			require.Contains(t, err.Error(), tt.env)
		})
	}
}
