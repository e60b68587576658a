package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		validate func(t *testing.T, cfg *Config)
	}{
		{
			name:    "load default configuration",
			envVars: map[string]string{},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "127.0.0.1", cfg.ServerHost)
				assert.Equal(t, 8080, cfg.ServerPort)
				assert.Equal(t, "postgres", cfg.DBDriver)
				assert.Equal(t, 25, cfg.DBMaxOpenConnections)
				assert.Equal(t, 5, cfg.DBMaxIdleConnections)
				assert.Equal(t, 5*time.Minute, cfg.DBConnMaxLifetime)
				assert.Equal(t, "info", cfg.LogLevel)
				assert.Equal(t, "aes-gcm", cfg.AEADAlgorithm)
				assert.Equal(t, 6, cfg.RefIDLength)
				assert.Equal(t, 16, cfg.ResolveMaxDepth)
				assert.Equal(t, 60*time.Second, cfg.ResolveTimeout)
				assert.Equal(t, 4, cfg.ResolveMaxConcurrent)
				assert.Equal(t, float64(0), cfg.ExecRateLimit)
				assert.True(t, cfg.MetricsEnabled)
				assert.Equal(t, "refvault", cfg.MetricsNamespace)
			},
		},
		{
			name: "load custom resolution configuration",
			envVars: map[string]string{
				"RESOLVE_MAX_DEPTH":       "4",
				"RESOLVE_TIMEOUT_SECONDS": "10",
				"AEAD_ALGORITHM":          "chacha20-poly1305",
				"REF_ID_LENGTH":           "8",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 4, cfg.ResolveMaxDepth)
				assert.Equal(t, 10*time.Second, cfg.ResolveTimeout)
				assert.Equal(t, "chacha20-poly1305", cfg.AEADAlgorithm)
				assert.Equal(t, 8, cfg.RefIDLength)
			},
		},
		{
			name: "load custom server configuration",
			envVars: map[string]string{
				"SERVER_HOST": "0.0.0.0",
				"SERVER_PORT": "9090",
				"DB_DRIVER":   "mysql",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "0.0.0.0", cfg.ServerHost)
				assert.Equal(t, 9090, cfg.ServerPort)
				assert.Equal(t, "mysql", cfg.DBDriver)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg := Load()
			tt.validate(t, cfg)
		})
	}
}

func TestGetGinMode(t *testing.T) {
	tests := []struct {
		logLevel string
		expected string
	}{
		{"debug", "debug"},
		{"info", "release"},
		{"warn", "release"},
		{"error", "release"},
		{"unknown", "release"},
	}

	for _, tt := range tests {
		t.Run(tt.logLevel, func(t *testing.T) {
			cfg := &Config{LogLevel: tt.logLevel}
			assert.Equal(t, tt.expected, cfg.GetGinMode())
		})
	}
}
