package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/dmitrijs2005/gophchat/internal/client/api"
	"github.com/dmitrijs2005/gophchat/internal/client/notify"
	"github.com/dmitrijs2005/gophchat/internal/common"
	"github.com/dmitrijs2005/gophchat/internal/logging"
)

const (
	MsgResetOTPSent     = "OTP sent to your email!"
	MsgResetOTPFailed   = "Failed to send OTP"
	MsgPasswordReset    = "Password reset successfully!"
	MsgPasswordNotReset = "Failed to reset password"
)

// ErrWrongStep is returned when an action does not belong to the current
// wizard step.
var ErrWrongStep = errors.New("action not available at this step")

type ResetStep int

const (
	StepEmail ResetStep = iota + 1
	StepCode
	StepDone
)

func (s ResetStep) String() string {
	switch s {
	case StepEmail:
		return "email"
	case StepCode:
		return "code"
	case StepDone:
		return "done"
	default:
		return "unknown"
	}
}

type ResetAPI interface {
	SendResetOTP(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, email, otp, newPassword string) (string, error)
}

// ResetWizard walks through the two-step password reset: request a code
// for an address, then submit the code with the new password. A failed
// step stays where it is and can be retried by hand.
type ResetWizard struct {
	api      ResetAPI
	notifier notify.Notifier
	log      logging.Logger

	mu    sync.Mutex
	step  ResetStep
	email string
}

func NewResetWizard(a ResetAPI, n notify.Notifier, log logging.Logger) *ResetWizard {
	return &ResetWizard{
		api:      a,
		notifier: n,
		log:      log.With("component", "reset"),
		step:     StepEmail,
	}
}

func (w *ResetWizard) Step() ResetStep {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Email is the address the code was requested for.
func (w *ResetWizard) Email() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.email
}

// SendOTP requests a reset code for email and moves to StepCode.
func (w *ResetWizard) SendOTP(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmptyField
	}
	if w.Step() != StepEmail {
		return ErrWrongStep
	}
	log := w.log.With("email", common.MaskEmail(email))

	if _, err := w.api.SendResetOTP(ctx, email); err != nil {
		log.Info(ctx, "send reset otp failed", "error", err)
		w.notifier.Error(api.Message(err, MsgResetOTPFailed))
		return err
	}

	w.mu.Lock()
	w.step, w.email = StepCode, email
	w.mu.Unlock()

	w.notifier.Success(MsgResetOTPSent)
	return nil
}

// Reset submits the code and new password and moves to StepDone. The
// caller continues with login.
func (w *ResetWizard) Reset(ctx context.Context, otp, newPassword string) error {
	otp = strings.TrimSpace(otp)
	if otp == "" || newPassword == "" {
		return ErrEmptyField
	}
	if w.Step() != StepCode {
		return ErrWrongStep
	}
	email := w.Email()
	log := w.log.With("email", common.MaskEmail(email))

	if _, err := w.api.ResetPassword(ctx, email, otp, newPassword); err != nil {
		log.Info(ctx, "reset password failed", "error", err)
		w.notifier.Error(api.Message(err, MsgPasswordNotReset))
		return err
	}

	w.mu.Lock()
	w.step = StepDone
	w.mu.Unlock()

	log.Info(ctx, "password reset")
	w.notifier.Success(MsgPasswordReset)
	return nil
}

// Restart returns the wizard to StepEmail.
func (w *ResetWizard) Restart() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.step, w.email = StepEmail, ""
}
