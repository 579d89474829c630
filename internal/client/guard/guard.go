// Package guard decides whether a protected command may run for the
// current session.
package guard

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophchat/internal/client/api"
	"github.com/dmitrijs2005/gophchat/internal/client/session"
	"github.com/dmitrijs2005/gophchat/internal/client/storage"
	"github.com/dmitrijs2005/gophchat/internal/logging"
)

// Decision is the outcome of a guard check for a protected command.
type Decision int

const (
	Render         Decision = iota // run the command
	RedirectLogin                  // ask the user to log in
	RedirectVerify                 // ask the user to verify the e-mail first
	Pending                        // the initial auth check has not finished
)

func (d Decision) String() string {
	switch d {
	case Render:
		return "render"
	case RedirectLogin:
		return "login"
	case RedirectVerify:
		return "verify"
	case Pending:
		return "pending"
	default:
		return "unknown"
	}
}

// Decide evaluates the access table. The server-confirmed session is
// authoritative; durable flags only pick the redirect target. A JWT token
// that has already expired counts as absent.
func Decide(st session.State, flags storage.Snapshot, now time.Time) Decision {
	if st.IsLoggedIn {
		return Render
	}
	if st.IsLoadingInitialAuth {
		return Pending
	}
	if !flags.HasToken() || api.TokenExpired(flags.Token, now) {
		return RedirectLogin
	}
	if !flags.Verified {
		return RedirectVerify
	}
	return RedirectLogin
}

// Source is what the guard reads the session from.
type Source interface {
	Snapshot() session.State
	Flags(ctx context.Context) (storage.Snapshot, error)
	WaitInitialAuth(ctx context.Context) error
}

// Guard gates protected commands on the session held by a Source.
type Guard struct {
	src Source
	log logging.Logger
	now func() time.Time
}

// New creates a Guard reading the session from src.
func New(src Source, log logging.Logger) *Guard {
	return &Guard{src: src, log: log.With("component", "guard"), now: time.Now}
}

// Evaluate waits for the initial auth check and returns the decision for
// the current session. When ctx ends first the result is Pending.
func (g *Guard) Evaluate(ctx context.Context) Decision {
	if err := g.src.WaitInitialAuth(ctx); err != nil {
		return Pending
	}
	flags, err := g.src.Flags(ctx)
	if err != nil {
		g.log.Warn(ctx, "read durable flags", "error", err)
		flags = storage.Snapshot{}
	}
	return Decide(g.src.Snapshot(), flags, g.now())
}

// Protect wraps fn so that it only runs when the decision is Render.
// Otherwise the decision is returned and fn is never called.
func (g *Guard) Protect(name string, fn func(ctx context.Context) error) func(ctx context.Context) (Decision, error) {
	return func(ctx context.Context) (Decision, error) {
		d := g.Evaluate(ctx)
		if d != Render {
			g.log.Debug(ctx, "access denied", "command", name, "decision", d.String())
			return d, nil
		}
		return Render, fn(ctx)
	}
}
