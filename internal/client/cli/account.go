package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophchat/internal/client/guard"
)

// protected runs fn when the guard allows it and explains the redirect
// otherwise.
func (a *App) protected(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	d, err := a.guard.Protect(name, fn)(ctx)
	switch d {
	case guard.RedirectLogin:
		printlnFn("Please login first (run 'login').")
	case guard.RedirectVerify:
		printlnFn("Please verify your email first (run 'verify').")
	case guard.Pending:
		printlnFn("Still checking your session, try again in a moment.")
	}
	return err
}

// WhoAmI prints the profile of the logged-in user.
func (a *App) WhoAmI(ctx context.Context) error {
	return a.protected(ctx, "whoami", func(ctx context.Context) error {
		u := a.store.Snapshot().User
		if u == nil {
			printlnFn("Profile not loaded yet.")
			return nil
		}
		verified := "no"
		if u.IsEmailVerified {
			verified = "yes"
		}
		printlnFn(fmt.Sprintf("Name:     %s\nEmail:    %s\nVerified: %s", u.Name, u.Email, verified))
		return nil
	})
}

// Status prints the session as the store sees it and the stored flags.
func (a *App) Status(ctx context.Context) error {
	st := a.store.Snapshot()
	flags, err := a.store.Flags(ctx)
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Session:  %s", modeOf(st)))
	if st.User != nil {
		printlnFn(fmt.Sprintf("User:     %s", st.User))
	}
	printlnFn(fmt.Sprintf("Token:    %t", flags.HasToken()))
	printlnFn(fmt.Sprintf("Verified: %t", flags.Verified))
	return nil
}
