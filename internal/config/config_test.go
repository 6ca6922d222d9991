package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
	}{
		{
			name: "Development with defaults",
			config: Config{
				Env:        "development",
				Port:       "8000",
				JWTSecret:  "your-secret-key-change-in-production",
				DBPassword: "password",
			},
			expectError: false,
		},
		{
			name: "Missing port",
			config: Config{
				Env:       "development",
				JWTSecret: "secret",
			},
			expectError: true,
		},
		{
			name: "Missing JWT secret",
			config: Config{
				Env:  "development",
				Port: "8000",
			},
			expectError: true,
		},
		{
			name: "Production with default JWT secret",
			config: Config{
				Env:        "production",
				Port:       "8000",
				JWTSecret:  "your-secret-key-change-in-production",
				DBPassword: "strong-password",
			},
			expectError: true,
		},
		{
			name: "Production with short JWT secret",
			config: Config{
				Env:        "production",
				Port:       "8000",
				JWTSecret:  "short",
				DBPassword: "strong-password",
			},
			expectError: true,
		},
		{
			name: "Production with weak DB password",
			config: Config{
				Env:        "production",
				Port:       "8000",
				JWTSecret:  "secure-secret-at-least-32-chars-long",
				DBPassword: "password",
			},
			expectError: true,
		},
		{
			name: "Production with strong settings",
			config: Config{
				Env:        "prod",
				Port:       "8000",
				JWTSecret:  "secure-secret-at-least-32-chars-long",
				DBPassword: "strong-password",
				DBSSLMode:  "require",
			},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
