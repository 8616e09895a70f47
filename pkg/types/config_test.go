package types

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "empty backend returns ErrBackendEmpty",
			config:  Config{Backend: "", DataDir: "/tmp/data"},
			wantErr: ErrBackendEmpty,
		},
		{
			name:    "unknown backend returns ErrBackendUnknown",
			config:  Config{Backend: "postgres", DataDir: "/tmp/data"},
			wantErr: ErrBackendUnknown,
		},
		{
			name:    "valid sqlite config",
			config:  Config{Backend: "sqlite", DataDir: "/tmp/data"},
			wantErr: nil,
		},
		{
			name:    "sqlite with empty DataDir is valid at config level",
			config:  Config{Backend: "sqlite", DataDir: ""},
			wantErr: nil,
		},
		{
			name:    "negative retry attempts",
			config:  Config{Backend: "sqlite", RetryAttempts: -1},
			wantErr: ErrRetryAttemptsInvalid,
		},
		{
			name:    "negative retry delay",
			config:  Config{Backend: "sqlite", RetryDelay: -time.Second},
			wantErr: ErrRetryDelayInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error %v, got nil", tt.wantErr)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestConfigWithDefaults(t *testing.T) {
	got := Config{Backend: BackendSQLite}.WithDefaults()
	assert.Equal(t, DefaultDBFile, got.DBFile)
	assert.Equal(t, DefaultPassword, got.DefaultPassword)
	assert.Equal(t, DefaultRetryAttempts, got.RetryAttempts)
	assert.Equal(t, DefaultRetryDelay, got.RetryDelay)

	kept := Config{Backend: BackendSQLite, DBFile: "shop.db", RetryAttempts: 5}.WithDefaults()
	assert.Equal(t, "shop.db", kept.DBFile)
	assert.Equal(t, 5, kept.RetryAttempts)

	assert.Empty(t, Config{}.WithDefaults().Backend, "backend is never defaulted")
}
