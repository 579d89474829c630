// Package services contains application services for the gophchat client.
// This file defines account registration.
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/gophchat/internal/client/api"
	"github.com/dmitrijs2005/gophchat/internal/client/notify"
	"github.com/dmitrijs2005/gophchat/internal/common"
	"github.com/dmitrijs2005/gophchat/internal/logging"
)

const (
	MsgRegistered     = "Registered successfully! Please verify your email."
	MsgRegisterFailed = "Something went wrong"
)

// ErrEmptyField is returned before any request when a required form value
// is blank.
var ErrEmptyField = errors.New("all fields are required")

type RegisterAPI interface {
	Register(ctx context.Context, name, email, password string) (string, error)
}

type PendingEmailStore interface {
	SetPendingEmail(ctx context.Context, email string) error
}

// AuthService defines account operations that do not touch the session.
//
// Contract:
//   - Register: create the account on the backend and remember the address
//     so that the verification step knows which e-mail to confirm.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) error
}

type authService struct {
	api      RegisterAPI
	flags    PendingEmailStore
	notifier notify.Notifier
	log      logging.Logger
}

func NewAuthService(a RegisterAPI, flags PendingEmailStore, n notify.Notifier, log logging.Logger) AuthService {
	return &authService{api: a, flags: flags, notifier: n, log: log.With("component", "auth")}
}

// Register posts the new account. On success the address is stored as the
// pending verification e-mail; the server message is shown either way.
func (a *authService) Register(ctx context.Context, name, email, password string) error {
	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return ErrEmptyField
	}
	log := a.log.With("email", common.MaskEmail(email))

	if _, err := a.api.Register(ctx, name, email, password); err != nil {
		log.Info(ctx, "register failed", "error", err)
		a.notifier.Error(api.Message(err, MsgRegisterFailed))
		return err
	}

	if err := a.flags.SetPendingEmail(ctx, email); err != nil {
		log.Warn(ctx, "store pending email", "error", err)
	}
	log.Info(ctx, "registered")
	a.notifier.Success(MsgRegistered)
	return nil
}
