package app

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/antonvyukov/snag/internal/version"
	"github.com/antonvyukov/snag/internal/webclient"
)

// DefaultTarget is the URL fetched when no target is given anywhere. It is
// the stylesheet the original one-shot script mirrored.
const DefaultTarget = "https://fonts.googleapis.com/css?family=Open+Sans"

// Config contains the runtime configuration shared across modules.
type Config struct {
	// Target is the URL to fetch when the command line names none.
	Target string

	// Output is the body destination; "-" means stdout.
	Output string

	// LogLevel filters stderr diagnostics.
	LogLevel string

	// WebClientCfg carries the transport options.
	WebClientCfg webclient.Config
}

// DefaultConfig returns a Config populated with the documented defaults:
// ten redirect hops, no timeout, HTTP/1.1, body to stdout.
func DefaultConfig() *Config {
	wcCfg := webclient.DefaultConfig()
	wcCfg.UserAgent = "snag/" + version.Version

	return &Config{
		Target:       DefaultTarget,
		Output:       "-",
		LogLevel:     "info",
		WebClientCfg: wcCfg,
	}
}

// FromViper overlays values from v onto the defaults. Keys follow the
// flag/env naming used by the CLI (client.* for transport options).
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()

	if v.IsSet("target") {
		cfg.Target = v.GetString("target")
	}
	if v.IsSet("output") {
		cfg.Output = v.GetString("output")
	}
	if v.IsSet("log_level") {
		cfg.LogLevel = v.GetString("log_level")
	}
	if v.IsSet("client.backend") {
		cfg.WebClientCfg.Backend = webclient.Backend(v.GetString("client.backend"))
	}
	if v.IsSet("client.timeout") {
		cfg.WebClientCfg.Timeout = v.GetDuration("client.timeout")
	}
	if v.IsSet("client.max_redirects") {
		cfg.WebClientCfg.MaxRedirects = v.GetInt("client.max_redirects")
	}
	if v.IsSet("client.http2") {
		cfg.WebClientCfg.EnableHTTP2 = v.GetBool("client.http2")
	}
	if v.IsSet("client.user_agent") {
		cfg.WebClientCfg.UserAgent = v.GetString("client.user_agent")
	}
	if v.IsSet("client.headless") {
		cfg.WebClientCfg.Headless = v.GetBool("client.headless")
	}
	if v.IsSet("client.idle_after") {
		cfg.WebClientCfg.IdleAfter = v.GetDuration("client.idle_after")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations no backend could honor.
func (c *Config) Validate() error {
	if c.WebClientCfg.MaxRedirects < 0 {
		return fmt.Errorf("max redirects must be non-negative, got %d", c.WebClientCfg.MaxRedirects)
	}
	if c.WebClientCfg.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative, got %v", c.WebClientCfg.Timeout)
	}
	return nil
}
