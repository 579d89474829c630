// Package config loads runtime configuration for the gophchat client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string     backend origin (default http://localhost:4000)
//	-chat string  chat endpoint (default /api/chat)
//	-t int        request timeout (seconds)
//	-d string     state file (default gophchat.db)
//	-l string     log level (default info)
//
// # JSON schema
//
//	{
//	  "backend_url": "https://auth.example.com",
//	  "chat_url": "/api/chatbot",
//	  "request_timeout": "15s",
//	  "state_file": "/home/ann/.gophchat.db",
//	  "log_level": "debug"
//	}
//
// Every backend call, chat included, is addressed through BackendURL; a
// relative ChatURL is resolved against it by (*Config).ChatEndpoint.
package config
