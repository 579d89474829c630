package otp

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophchat/internal/client/api"
	"github.com/dmitrijs2005/gophchat/internal/client/notify"
	"github.com/dmitrijs2005/gophchat/internal/client/session"
	"github.com/dmitrijs2005/gophchat/internal/common"
	"github.com/dmitrijs2005/gophchat/internal/logging"
)

const (
	MsgVerified      = "Email verified successfully"
	MsgInvalidOTP    = "Invalid OTP. Try again."
	MsgVerifyError   = "Server error occurred"
	MsgEmailNotFound = "Email not found. Please register again."
	MsgOTPSent       = "Verification OTP sent"
	MsgOTPSendFailed = "OTP send failed"
	MsgLoginToResend = "Please login to request a new OTP"
)

var (
	// ErrEmailUnknown means no address is known to verify: nobody is
	// logged in and no registration or login left one behind.
	ErrEmailUnknown = errors.New("email to verify is unknown")
	ErrNotLoggedIn  = errors.New("not logged in")
)

type VerifyAPI interface {
	VerifyAccount(ctx context.Context, email, otp string) (string, error)
	SendVerifyOTP(ctx context.Context, userID string) (string, error)
}

// SessionView is the read side of the session store used to find the
// logged-in user.
type SessionView interface {
	Snapshot() session.State
	RefreshUserData(ctx context.Context) error
}

type PendingFlags interface {
	PendingEmail(ctx context.Context) (string, error)
	MarkVerified(ctx context.Context) error
}

type Verifier struct {
	api      VerifyAPI
	session  SessionView
	flags    PendingFlags
	notifier notify.Notifier
	log      logging.Logger
}

func NewVerifier(a VerifyAPI, s SessionView, flags PendingFlags, n notify.Notifier, log logging.Logger) *Verifier {
	return &Verifier{
		api:      a,
		session:  s,
		flags:    flags,
		notifier: n,
		log:      log.With("component", "otp"),
	}
}

// Email returns the address a code would be submitted for: the logged-in
// user's, else the pending one from storage.
func (v *Verifier) Email(ctx context.Context) (string, error) {
	if u := v.session.Snapshot().User; u != nil && u.Email != "" {
		return u.Email, nil
	}
	email, err := v.flags.PendingEmail(ctx)
	if err != nil {
		return "", err
	}
	if email == "" {
		return "", ErrEmailUnknown
	}
	return email, nil
}

// Submit sends the code in f for verification. A code that is not six
// digits is rejected before any request is made. On success the pending
// addresses are forgotten, the account is marked verified and the caller
// should continue with login.
func (v *Verifier) Submit(ctx context.Context, f *Field) error {
	code := f.Value()
	if err := Validate(code); err != nil {
		return err
	}

	email, err := v.Email(ctx)
	if err != nil {
		if errors.Is(err, ErrEmailUnknown) {
			v.notifier.Error(MsgEmailNotFound)
		}
		return err
	}
	log := v.log.With("email", common.MaskEmail(email))

	msg, err := v.api.VerifyAccount(ctx, email, code)
	if err != nil {
		log.Info(ctx, "verification failed", "error", err)
		if errors.Is(err, api.ErrRejected) {
			v.notifier.Error(api.Message(err, MsgInvalidOTP))
		} else {
			v.notifier.Error(MsgVerifyError)
		}
		return err
	}

	if err := v.flags.MarkVerified(ctx); err != nil {
		log.Warn(ctx, "persist verification", "error", err)
	}
	if v.session.Snapshot().IsLoggedIn {
		_ = v.session.RefreshUserData(ctx)
	}

	if msg == "" {
		msg = MsgVerified
	}
	log.Info(ctx, "email verified")
	v.notifier.Success(msg)
	f.Reset()
	return nil
}

// Resend asks the backend to mail a new code to the logged-in user.
func (v *Verifier) Resend(ctx context.Context) error {
	u := v.session.Snapshot().User
	if u == nil || u.ID == "" {
		v.notifier.Warn(MsgLoginToResend)
		return ErrNotLoggedIn
	}

	msg, err := v.api.SendVerifyOTP(ctx, u.ID)
	if err != nil {
		v.log.Info(ctx, "send verify otp failed", "error", err)
		v.notifier.Error(api.Message(err, MsgOTPSendFailed))
		return err
	}
	if msg == "" {
		msg = MsgOTPSent
	}
	v.notifier.Success(msg)
	return nil
}
