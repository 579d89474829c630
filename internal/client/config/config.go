package config

import (
	"fmt"
	"net/url"
	"os"
	"time"
)

// Config holds runtime settings for the gophchat client.
//
// Fields:
//   - BackendURL: origin of the auth backend, e.g. http://localhost:4000.
//   - ChatURL: chat endpoint, an absolute URL or a path on BackendURL.
//   - RequestTimeout: deadline applied to every backend request.
//   - StateFile: SQLite file holding the durable session flags.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	BackendURL     string
	ChatURL        string
	RequestTimeout time.Duration
	StateFile      string
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BackendURL = "http://localhost:4000"
	c.ChatURL = "/api/chat"
	c.RequestTimeout = 15 * time.Second
	c.StateFile = "gophchat.db"
	c.LogLevel = "info"
}

// ChatEndpoint resolves ChatURL against BackendURL.
func (c *Config) ChatEndpoint() (string, error) {
	base, err := url.Parse(c.BackendURL)
	if err != nil {
		return "", fmt.Errorf("parse backend url: %w", err)
	}
	ref, err := url.Parse(c.ChatURL)
	if err != nil {
		return "", fmt.Errorf("parse chat url: %w", err)
	}
	return base.ResolveReference(ref).String(), nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	args := os.Args[1:]
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
