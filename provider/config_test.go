package provider

import (
	"errors"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{"valid with region", Config{APIKey: "k", Region: "us-east-1"}, nil},
		{"valid with endpoint", Config{APIKey: "k", Endpoint: "http://localhost:8080"}, nil},
		{"missing region and endpoint", Config{APIKey: "k"}, ErrInvalidRequest},
		{"missing key", Config{Region: "us-east-1"}, ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_LoadFromEnv(t *testing.T) {
	t.Setenv("AWS_BEARER_TOKEN_BEDROCK", "env-key")
	t.Setenv("AWS_DEFAULT_REGION", "eu-west-1")

	cfg := DefaultConfig()
	cfg.LoadFromEnv()

	if cfg.APIKey != "env-key" {
		t.Errorf("APIKey = %q, want env-key", cfg.APIKey)
	}
	if cfg.Region != "eu-west-1" {
		t.Errorf("Region = %q, want eu-west-1", cfg.Region)
	}
}
