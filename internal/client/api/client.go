package api

import (
	"context"

	"github.com/dmitrijs2005/gophchat/internal/client/models"
)

const (
	pathRegister      = "/api/auth/register"
	pathLogin         = "/api/auth/login"
	pathLogout        = "/api/auth/logout"
	pathIsAuth        = "/api/auth/is-auth"
	pathUserData      = "/api/user/data"
	pathSendVerifyOTP = "/api/auth/send-verify-otp"
	pathVerifyAccount = "/api/auth/verify-account"
	pathSendResetOTP  = "/api/auth/send-reset-otp"
	pathResetPassword = "/api/auth/reset-password"
)

// LoginResult is what a successful login returns.
type LoginResult struct {
	Message string
	Token   string
}

// Client is the full backend surface used by the terminal client.
// Methods that return a string return the server's confirmation message.
type Client interface {
	Register(ctx context.Context, name, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (LoginResult, error)
	Logout(ctx context.Context) error
	IsAuth(ctx context.Context) error
	UserData(ctx context.Context) (*models.UserProfile, error)

	SendVerifyOTP(ctx context.Context, userID string) (string, error)
	VerifyAccount(ctx context.Context, email, otp string) (string, error)
	SendResetOTP(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, email, otp, newPassword string) (string, error)

	Chat(ctx context.Context, message string) (string, error)

	SessionToken() string
	SetSessionToken(token string)
}

var _ Client = (*HTTPClient)(nil)
