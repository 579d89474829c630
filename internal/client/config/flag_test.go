package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	defaults := func() *Config {
		c := &Config{}
		c.LoadDefaults()
		return c
	}

	tests := []struct {
		expected  *Config
		name      string
		args      []string
		expectErr bool
	}{
		{name: "all flags", args: []string{"-a", "https://api.example", "-chat", "/api/chatbot", "-t", "5", "-d", "/tmp/s.db", "-l", "debug"},
			expected: &Config{BackendURL: "https://api.example", ChatURL: "/api/chatbot", RequestTimeout: 5 * time.Second, StateFile: "/tmp/s.db", LogLevel: "debug"}},
		{name: "no flags keeps defaults", args: nil, expected: defaults()},
		{name: "foreign flags ignored", args: []string{"-c", "cfg.json", "-x", "-t=3"},
			expected: &Config{BackendURL: "http://localhost:4000", ChatURL: "/api/chat", RequestTimeout: 3 * time.Second, StateFile: "gophchat.db", LogLevel: "info"}},
		{name: "incorrect timeout", args: []string{"-t", "abc"}, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := defaults()

			err := parseFlags(config, tt.args)
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
