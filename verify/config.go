package verify

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// DefaultBaseURL is the production endpoint of the verification API.
const DefaultBaseURL = "https://api.verifykit.dev"

// Config holds the credentials shared by every request a Client issues.
// It is read-only for the Client's lifetime, so concurrent requests may
// reference it without synchronization.
type Config struct {
	// APIKey authenticates requests. Required.
	APIKey string `env:"VERIFYKIT_API_KEY"`
	// BaseURL overrides the API endpoint, e.g. for a regional cluster
	// or a test server. Default: DefaultBaseURL.
	BaseURL string `env:"VERIFYKIT_BASE_URL"`
	// Timeout bounds a single verification round-trip. Default: 10s.
	Timeout time.Duration `env:"VERIFYKIT_TIMEOUT,default=10s"`
}

// ConfigFromEnv loads Config from VERIFYKIT_* environment variables.
func ConfigFromEnv(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, fmt.Errorf("verify: loading config from environment: %w", err)
	}
	return cfg, nil
}
