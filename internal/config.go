package internal

import (
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

const (
	DefaultSessionHeader = "x-toolhouse-run-id"
	DefaultExitToken     = "exit"
	DefaultBackend       = "json"
	EnvPrefix            = "web_term"
)

// Config holds the resolved settings for one invocation
type Config struct {
	BaseURL       string
	SessionHeader string
	StorageDir    string
	Backend       string
	ExitToken     string
	Render        bool
	Verbose       bool
	Log           LogConfig
}

// SetDefaults registers default values on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("session-header", DefaultSessionHeader)
	v.SetDefault("backend", DefaultBackend)
	v.SetDefault("exit-token", DefaultExitToken)
	v.SetDefault("log-level", "warn")
	v.SetDefault("log-format", "text")
}

// LoadConfig reads and validates settings from v.
// The base URL is optional here; commands that talk to the endpoint call RequireEndpoint.
func LoadConfig(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		BaseURL:       strings.TrimRight(strings.TrimSpace(v.GetString("base-url")), "/"),
		SessionHeader: strings.TrimSpace(v.GetString("session-header")),
		Backend:       strings.ToLower(strings.TrimSpace(v.GetString("backend"))),
		ExitToken:     strings.TrimSpace(v.GetString("exit-token")),
		Render:        v.GetBool("render"),
		Verbose:       v.GetBool("verbose"),
		Log: LogConfig{
			Level:      v.GetString("log-level"),
			Format:     v.GetString("log-format"),
			File:       v.GetString("log-file"),
			WithCaller: v.GetBool("with-caller"),
		},
	}
	if cfg.SessionHeader == "" {
		cfg.SessionHeader = DefaultSessionHeader
	}
	if cfg.Backend == "" {
		cfg.Backend = DefaultBackend
	}
	if cfg.ExitToken == "" {
		cfg.ExitToken = DefaultExitToken
	}

	switch cfg.Log.Format {
	case "", "text", "json":
	default:
		return nil, &ConfigError{Key: "log-format", Value: cfg.Log.Format, Reason: "expected text or json"}
	}

	if cfg.BaseURL != "" {
		if err := validateBaseURL(cfg.BaseURL); err != nil {
			return nil, err
		}
	}

	dir, err := DetectStorageDir(v.GetString("storage"))
	if err != nil {
		return nil, err
	}
	cfg.StorageDir = dir

	return cfg, nil
}

// RequireEndpoint fails when no base URL is configured
func (c *Config) RequireEndpoint() error {
	if c.BaseURL == "" {
		return &ConfigError{
			Key:    "base-url",
			Reason: "no endpoint configured (use --base-url, WEB_TERM_BASE_URL or base-url in config.yaml)",
		}
	}
	return nil
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return &ConfigError{Key: "base-url", Value: raw, Reason: err.Error()}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &ConfigError{Key: "base-url", Value: raw, Reason: "scheme must be http or https"}
	}
	if u.Host == "" {
		return &ConfigError{Key: "base-url", Value: raw, Reason: "host is required"}
	}
	return nil
}
