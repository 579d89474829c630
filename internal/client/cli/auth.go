package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophchat/internal/client/otp"
	"github.com/dmitrijs2005/gophchat/internal/client/services"
	"github.com/dmitrijs2005/gophchat/internal/client/session"
	"github.com/dmitrijs2005/gophchat/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for name, e-mail and password and creates the account.
// The backend mails a verification code; the next step is 'verify'.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter your name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Register(ctx, name, email, string(password)); err != nil {
		if errors.Is(err, services.ErrEmptyField) {
			printlnFn(err.Error())
		}
		return err
	}

	printlnFn("Check your inbox and run 'verify' to enter the code.")
	return nil
}

// Login prompts for credentials and logs in. An unverified account is
// sent to 'verify' instead.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	err = a.store.Login(ctx, email, string(password))
	switch {
	case errors.Is(err, session.ErrVerificationRequired):
		printlnFn("Run 'verify' to enter the code sent to", email)
		return err
	case err != nil:
		return err
	}

	if u := a.store.Snapshot().User; u != nil && u.Name != "" {
		printlnFn(fmt.Sprintf("Hello, %s!", u.Name))
	}
	return nil
}

// Logout ends the server session. On failure the local session is kept.
func (a *App) Logout(ctx context.Context) error {
	return a.store.Logout(ctx)
}

// Verify reads the 6-digit code and submits it. Any non-digit characters
// in the input are ignored, so a code pasted from an e-mail works as is.
func (a *App) Verify(ctx context.Context) error {
	if email, err := a.verifier.Email(ctx); err == nil {
		printlnFn("Verifying", common.MaskEmail(email))
	}

	code, err := getSimpleText(a.reader, "Enter the 6-digit code", a.out)
	if err != nil {
		return err
	}

	var field otp.Field
	field.Paste(code)

	if err := a.verifier.Submit(ctx, &field); err != nil {
		switch {
		case errors.Is(err, otp.ErrInvalidLength), errors.Is(err, otp.ErrNotDigit):
			printlnFn("Please enter a valid 6-digit OTP")
		case errors.Is(err, otp.ErrEmailUnknown):
			printlnFn("Run 'register' or 'login' first.")
		}
		return err
	}

	if !a.isLoggedIn() {
		printlnFn("Email verified. Run 'login' to continue.")
	}
	return nil
}

// ResendOTP mails a fresh verification code to the logged-in user.
func (a *App) ResendOTP(ctx context.Context) error {
	if err := a.verifier.Resend(ctx); err != nil {
		return err
	}
	printlnFn("Run 'verify' to enter the new code.")
	return nil
}

// Reset drives the password reset wizard from its current step. A failed
// step can be retried by running 'reset' again.
func (a *App) Reset(ctx context.Context) error {
	if a.reset.Step() == services.StepDone {
		a.reset.Restart()
	}

	if a.reset.Step() == services.StepEmail {
		email, err := getSimpleText(a.reader, "Enter your registered email", a.out)
		if err != nil {
			return err
		}
		if err := a.reset.SendOTP(ctx, email); err != nil {
			return err
		}
	}

	printlnFn("Resetting password for", a.reset.Email())
	code, err := getSimpleText(a.reader, "Enter OTP", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter new password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.reset.Reset(ctx, code, string(password)); err != nil {
		return err
	}

	a.reset.Restart()
	printlnFn("Run 'login' with your new password.")
	return nil
}
