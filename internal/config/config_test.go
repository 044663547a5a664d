package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		wantErr  string
		validate func(t *testing.T, cfg *Config)
	}{
		{
			name: "defaults with credentials",
			env: map[string]string{
				"OGURY_CLIENT_ID":     "client",
				"OGURY_CLIENT_SECRET": "secret",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "client", cfg.Ogury.ClientID)
				assert.Equal(t, "secret", cfg.Ogury.ClientSecret)
				assert.Equal(t, "https://api.ogury.com", cfg.Ogury.BaseURL)
				assert.Equal(t, 30*time.Second, cfg.Ogury.HTTPTimeout)
				assert.Equal(t, "info", cfg.App.LogLevel)
				assert.Equal(t, float64(10), cfg.RateLimit.RequestsPerSecond)
				assert.Equal(t, 20, cfg.RateLimit.Burst)
				assert.Equal(t, TransportStdio, cfg.Transport())
			},
		},
		{
			name: "port selects http and overrides apply",
			env: map[string]string{
				"OGURY_CLIENT_ID":     "client",
				"OGURY_CLIENT_SECRET": "secret",
				"OGURY_BASE_URL":      "http://localhost:9999/",
				"OGURY_HTTP_TIMEOUT":  "5s",
				"PORT":                "3000",
				"MCP_JWT_SECRET":      "jwt",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "http://localhost:9999", cfg.Ogury.BaseURL)
				assert.Equal(t, 5*time.Second, cfg.Ogury.HTTPTimeout)
				assert.Equal(t, "3000", cfg.Server.Port)
				assert.Equal(t, "jwt", cfg.Auth.JWTSecret)
				assert.Equal(t, TransportHTTP, cfg.Transport())
			},
		},
		{
			name:    "missing both credentials",
			env:     map[string]string{},
			wantErr: "OGURY_CLIENT_ID and OGURY_CLIENT_SECRET environment variables are required",
		},
		{
			name: "missing secret",
			env: map[string]string{
				"OGURY_CLIENT_ID": "client",
			},
			wantErr: "OGURY_CLIENT_SECRET environment variables are required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"OGURY_CLIENT_ID", "OGURY_CLIENT_SECRET", "OGURY_BASE_URL", "OGURY_HTTP_TIMEOUT", "PORT", "MCP_JWT_SECRET"} {
				t.Setenv(key, "")
			}
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			cfg, err := Load(viper.New())

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())

				var configErr *ConfigError
				assert.ErrorAs(t, err, &configErr)
				return
			}

			require.NoError(t, err)
			tt.validate(t, cfg)
		})
	}
}
