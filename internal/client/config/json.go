package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gophchat/internal/flagx"
	"github.com/dmitrijs2005/gophchat/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Timeouts go
// through timex.Duration so "15s" and integer nanoseconds both work.
type JsonConfig struct {
	BackendURL     string         `json:"backend_url"`
	ChatURL        string         `json:"chat_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	StateFile      string         `json:"state_file"`
	LogLevel       string         `json:"log_level"`
}

// parseJson overlays cfg with the JSON file named by -c or -config in args.
// Without such a flag nothing happens. Fields absent from the file keep
// their current values.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setIf(&cfg.BackendURL, jc.BackendURL)
	setIf(&cfg.ChatURL, jc.ChatURL)
	setIf(&cfg.StateFile, jc.StateFile)
	setIf(&cfg.LogLevel, jc.LogLevel)
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	return nil
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
