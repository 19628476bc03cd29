package shodan

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	clienterrors "github.com/netscout/shodan/internal/errors"
)

// Config holds client settings read from SHODAN_* environment variables.
type Config struct {
	APIKey     string        `envconfig:"API_KEY"`
	APIKeyFile string        `envconfig:"API_KEY_FILE"`
	BaseURL    string        `envconfig:"BASE_URL" default:"https://api.shodan.io"`
	StreamURL  string        `envconfig:"STREAM_URL" default:"https://stream.shodan.io"`
	Timeout    time.Duration `envconfig:"TIMEOUT" default:"30s"`
	Debug      bool          `envconfig:"DEBUG" default:"false"`
}

// LoadConfig reads environment variables prefixed with SHODAN_.
func LoadConfig() (Config, error) {
	var c Config
	if err := envconfig.Process("SHODAN", &c); err != nil {
		return Config{}, clienterrors.NewConfigError("load_config", err)
	}
	return c, nil
}

// ResolveAPIKey returns APIKey when set, otherwise the contents of APIKeyFile.
func (c Config) ResolveAPIKey() (string, error) {
	if c.APIKey != "" {
		return c.APIKey, nil
	}
	if c.APIKeyFile == "" {
		return "", clienterrors.NewConfigError("resolve_api_key", fmt.Errorf("%w: set SHODAN_API_KEY or SHODAN_API_KEY_FILE", clienterrors.ErrCredentialNotFound))
	}
	return LoadAPIKey(c.APIKeyFile)
}

// NewFromConfig builds a Client from cfg. opts are applied after the ones
// derived from cfg, so they win.
func NewFromConfig(cfg Config, opts ...Option) (*Client, error) {
	key, err := cfg.ResolveAPIKey()
	if err != nil {
		return nil, err
	}
	base := []Option{WithDebugLogging(cfg.Debug)}
	if cfg.BaseURL != "" {
		base = append(base, WithBaseURL(cfg.BaseURL))
	}
	if cfg.StreamURL != "" {
		base = append(base, WithStreamURL(cfg.StreamURL))
	}
	if cfg.Timeout > 0 {
		base = append(base, WithHTTPTimeout(cfg.Timeout))
	}
	return New(key, append(base, opts...)...)
}
