package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "alchemist_db", cfg.DatabaseConfig.Database)
	assert.Equal(t, "alchemist_refresh", cfg.JWTConfig.RefreshCookieName)
	assert.False(t, cfg.JWTConfig.CookieSecure)
	assert.False(t, cfg.LoginCodeConfig.Debug)
	assert.Equal(t, []string{"*"}, cfg.CORSConfig.AllowedOrigins)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, 5, cfg.SearchConfig.BreakerThreshold)

	breakerTimeout, err := cfg.SearchConfig.ParseBreakerTimeout()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, breakerTimeout)

	ttl, err := cfg.LoginCodeConfig.ParseTTL()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, ttl)

	access, err := cfg.JWTConfig.ParseAccessTokenExpiry()
	require.NoError(t, err)
	assert.Equal(t, 7*24*time.Hour, access)

	refresh, err := cfg.JWTConfig.ParseRefreshTokenExpiry()
	require.NoError(t, err)
	assert.Equal(t, 30*24*time.Hour, refresh)

	assert.NoError(t, cfg.Validate())
}

func TestLoad_FromEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("LOGIN_CODE_DEBUG=true\nLOGIN_CODE_TTL=5m\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("LOGIN_CODE_DEBUG")
		os.Unsetenv("LOGIN_CODE_TTL")
	})

	cfg, err := Load(envFile)
	require.NoError(t, err)
	assert.True(t, cfg.LoginCodeConfig.Debug)

	ttl, err := cfg.LoginCodeConfig.ParseTTL()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, ttl)
}

func TestConfig_Validate(t *testing.T) {
	t.Setenv("JWT_SECRET", "short")
	t.Setenv("LOGIN_CODE_TTL", "soon")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	err = cfg.Validate()
	require.Error(t, err)
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 2)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "LOGIN_CODE_TTL")
}

func TestConfig_ValidateSearchBreaker(t *testing.T) {
	t.Setenv("SEARCH_BREAKER_THRESHOLD", "0")
	t.Setenv("SEARCH_BREAKER_TIMEOUT", "later")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	err = cfg.Validate()
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 2)
	assert.Contains(t, err.Error(), "SEARCH_BREAKER_THRESHOLD")
	assert.Contains(t, err.Error(), "SEARCH_BREAKER_TIMEOUT")
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{input: "PT10M", want: 10 * time.Minute},
		{input: "P30D", want: 30 * 24 * time.Hour},
		{input: "90s", want: 90 * time.Second},
		{input: "later", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDuration(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
