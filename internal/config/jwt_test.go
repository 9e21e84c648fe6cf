package config

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setJWTEnv(t *testing.T, secret, hours string, hoursSet bool) {
	t.Helper()
	t.Setenv("JWT_SECRET", secret)
	t.Setenv("JWT_EXPIRATION_HOURS", hours)
	if !hoursSet {
		require.NoError(t, os.Unsetenv("JWT_EXPIRATION_HOURS"))
	}
}

func TestNewJWTConfig_DefaultExpiration(t *testing.T) {
	setJWTEnv(t, "test-secret-key", "", false)

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, "test-secret-key", cfg.Secret)
	assert.Equal(t, 24, cfg.ExpirationHours, "should use default expiration of 24 hours")
	assert.Equal(t, 24*time.Hour, cfg.Expiration())
}

func TestNewJWTConfig(t *testing.T) {
	tests := []struct {
		name      string
		secret    string
		hours     string
		wantHours int
		wantErr   string
	}{
		{name: "custom 12 hours", secret: "s", hours: "12", wantHours: 12},
		{name: "minimum 1 hour", secret: "s", hours: "1", wantHours: 1},
		{name: "one week", secret: "s", hours: "168", wantHours: 168},
		{name: "missing secret", secret: "", hours: "12", wantErr: "JWT_SECRET is required"},
		{name: "non-numeric", secret: "s", hours: "abc", wantErr: "invalid JWT_EXPIRATION_HOURS"},
		{name: "zero", secret: "s", hours: "0", wantErr: "at least 1 hour"},
		{name: "negative", secret: "s", hours: "-5", wantErr: "at least 1 hour"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setJWTEnv(t, tt.secret, tt.hours, true)

			cfg, err := NewJWTConfig()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Nil(t, cfg)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.True(t, errors.Is(err, ErrInvalidConfig))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHours, cfg.ExpirationHours)
		})
	}
}
