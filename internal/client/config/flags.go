package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/gophchat/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string     backend origin
//	-chat string  chat endpoint, absolute or relative to the backend origin
//	-t int        request timeout in seconds
//	-d string     state file path
//	-l string     log level
//
// Only these flags are read from args; everything else is ignored.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, "a", "chat", "t", "d", "l")

	fs := flag.NewFlagSet("gophchat", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.BackendURL, "a", cfg.BackendURL, "backend origin")
	fs.StringVar(&cfg.ChatURL, "chat", cfg.ChatURL, "chat endpoint")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.StateFile, "d", cfg.StateFile, "state file path")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	return nil
}
