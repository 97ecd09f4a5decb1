package core

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// TestWithAuthValidation covers the construction contract: exactly one of
// api token or username/password pair.
func TestWithAuthValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  FlashArrayConfig
		wantErr string
	}{
		{
			name:   "token only",
			config: FlashArrayConfig{ApiToken: "token"},
		},
		{
			name:   "username and password",
			config: FlashArrayConfig{Username: "pureuser", Password: "pureuser"},
		},
		{
			name:    "nothing",
			config:  FlashArrayConfig{},
			wantErr: "must specify api token or both username and password",
		},
		{
			name:    "username without password",
			config:  FlashArrayConfig{Username: "pureuser"},
			wantErr: "must specify api token or both username and password",
		},
		{
			name:    "token and username",
			config:  FlashArrayConfig{ApiToken: "token", Username: "pureuser"},
			wantErr: "specify only api token or both username and password",
		},
		{
			name:    "token and full credentials",
			config:  FlashArrayConfig{ApiToken: "token", Username: "pureuser", Password: "pureuser"},
			wantErr: "specify only api token or both username and password",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WithAuth(&tt.config)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Fatalf("got %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestWithTargetValidation(t *testing.T) {
	if err := WithTarget(&FlashArrayConfig{}); err == nil {
		t.Error("expected error for empty target")
	}
	if err := WithTarget(&FlashArrayConfig{Target: "10.0.0.1"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

// TestWithTimeoutDefault verifies the default is only applied when the caller
// left the timeout unset.
func TestWithTimeoutDefault(t *testing.T) {
	config := &FlashArrayConfig{}
	if err := WithTimeout(30 * time.Second)(config); err != nil {
		t.Fatal(err)
	}
	if config.Timeout == nil || *config.Timeout != 30*time.Second {
		t.Errorf("default timeout not applied: %v", config.Timeout)
	}

	custom := 5 * time.Second
	config = &FlashArrayConfig{Timeout: &custom}
	if err := WithTimeout(30 * time.Second)(config); err != nil {
		t.Fatal(err)
	}
	if *config.Timeout != custom {
		t.Errorf("explicit timeout overridden: %v", *config.Timeout)
	}
}

func TestWithMaxConnectionsDefault(t *testing.T) {
	config := &FlashArrayConfig{}
	if err := WithMaxConnections(10)(config); err != nil {
		t.Fatal(err)
	}
	if config.MaxConnections != 10 {
		t.Errorf("default max connections not applied: %d", config.MaxConnections)
	}

	config = &FlashArrayConfig{MaxConnections: 3}
	if err := WithMaxConnections(10)(config); err != nil {
		t.Fatal(err)
	}
	if config.MaxConnections != 3 {
		t.Errorf("explicit max connections overridden: %d", config.MaxConnections)
	}
}

func TestWithUserAgentDefault(t *testing.T) {
	config := &FlashArrayConfig{}
	if err := WithUserAgent(config); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(config.UserAgent, "pure-go-client-") {
		t.Errorf("unexpected default user agent: %q", config.UserAgent)
	}

	config = &FlashArrayConfig{UserAgent: "custom-agent"}
	if err := WithUserAgent(config); err != nil {
		t.Fatal(err)
	}
	if config.UserAgent != "custom-agent" {
		t.Errorf("explicit user agent overridden: %q", config.UserAgent)
	}
}

// TestValidateStopsAtFirstError verifies validator chaining semantics.
func TestValidateStopsAtFirstError(t *testing.T) {
	var applied bool
	boom := func(*FlashArrayConfig) error { return errors.New("boom") }
	after := func(*FlashArrayConfig) error { applied = true; return nil }

	err := (&FlashArrayConfig{}).Validate(boom, after)
	if err == nil || err.Error() != "boom" {
		t.Fatalf("expected first validator error, got %v", err)
	}
	if applied {
		t.Error("validators after a failure must not run")
	}
}
