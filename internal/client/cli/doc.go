// Package cli provides the interactive gophchat command-line client.
//
// It wires configuration, the durable state file, the backend API client,
// the session store and an interactive REPL. The session is restored from
// the state file on start and checked against the backend in the
// background; the prompt shows "checking" until that check completes.
//
// Key features:
//   - Register, verify the e-mail with a one-time code, login, logout
//   - Two-step password reset
//   - Chat with the AI backend (requires a verified, logged-in session)
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, runREPL and Guard decisions for details.
package cli
