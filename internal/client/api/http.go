package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"

	"github.com/dmitrijs2005/gophchat/internal/client/models"
	"github.com/dmitrijs2005/gophchat/internal/common"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 1 << 20

// HTTPClient talks JSON over HTTP(S) to the configured backend origin.
type HTTPClient struct {
	base    *url.URL
	chat    *url.URL
	http    *http.Client
	jar     http.CookieJar
	timeout time.Duration
}

// envelope is the common response shape of the auth endpoints.
type envelope struct {
	Success  bool                `json:"success"`
	Message  string              `json:"message"`
	Token    string              `json:"token"`
	User     *models.UserProfile `json:"user"`
	UserData *models.UserProfile `json:"userData"`
}

type chatResponse struct {
	Reply string `json:"reply"`
	Error string `json:"error"`
}

// NewHTTPClient builds a client for the backend at baseURL. chatURL is the
// absolute chat endpoint. A zero timeout disables the per-request deadline.
func NewHTTPClient(baseURL, chatURL string, timeout time.Duration) (*HTTPClient, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("backend url %q must be absolute", baseURL)
	}
	chat, err := base.Parse(chatURL)
	if err != nil {
		return nil, fmt.Errorf("parse chat url: %w", err)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}

	return &HTTPClient{
		base:    base,
		chat:    chat,
		http:    &http.Client{Jar: jar},
		jar:     jar,
		timeout: timeout,
	}, nil
}

func (c *HTTPClient) endpoint(path string) string {
	return c.base.ResolveReference(&url.URL{Path: path}).String()
}

// do sends one JSON request and decodes the response body into out.
// Non-2xx answers become *ServerError carrying the body's message (or
// error) field when present.
func (c *HTTPClient) do(ctx context.Context, method, target string, in, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w: %w", method, target, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("%s %s: %w: %w", method, target, ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return serverError(resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", target, err)
	}
	return nil
}

func serverError(status int, data []byte) error {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	_ = json.Unmarshal(data, &body)

	msg := body.Message
	if msg == "" {
		msg = body.Error
	}
	return &ServerError{Status: status, Message: msg}
}

// auth performs a request against one of the {success,message} endpoints.
func (c *HTTPClient) auth(ctx context.Context, method, path string, in any) (*envelope, error) {
	var env envelope
	if err := c.do(ctx, method, c.endpoint(path), in, &env); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, &ServerError{Status: http.StatusOK, Message: env.Message}
	}
	return &env, nil
}

func (c *HTTPClient) Register(ctx context.Context, name, email, password string) (string, error) {
	env, err := c.auth(ctx, http.MethodPost, pathRegister, map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// Login posts the credentials. The session token comes from the response
// body when present, otherwise from the cookie the backend set.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (LoginResult, error) {
	env, err := c.auth(ctx, http.MethodPost, pathLogin, map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return LoginResult{}, err
	}

	token := env.Token
	if token == "" {
		token = c.SessionToken()
	} else {
		c.SetSessionToken(token)
	}
	return LoginResult{Message: env.Message, Token: token}, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	if _, err := c.auth(ctx, http.MethodPost, pathLogout, struct{}{}); err != nil {
		return err
	}
	c.SetSessionToken("")
	return nil
}

func (c *HTTPClient) IsAuth(ctx context.Context) error {
	_, err := c.auth(ctx, http.MethodGet, pathIsAuth, nil)
	return err
}

func (c *HTTPClient) UserData(ctx context.Context) (*models.UserProfile, error) {
	env, err := c.auth(ctx, http.MethodGet, pathUserData, nil)
	if err != nil {
		return nil, err
	}
	user := env.UserData
	if user == nil {
		user = env.User
	}
	if user == nil {
		return nil, &ServerError{Status: http.StatusOK, Message: "Failed to load user data"}
	}
	return user, nil
}

func (c *HTTPClient) SendVerifyOTP(ctx context.Context, userID string) (string, error) {
	env, err := c.auth(ctx, http.MethodPost, pathSendVerifyOTP, map[string]string{"userId": userID})
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

func (c *HTTPClient) VerifyAccount(ctx context.Context, email, otp string) (string, error) {
	env, err := c.auth(ctx, http.MethodPost, pathVerifyAccount, map[string]string{
		"email": email,
		"otp":   otp,
	})
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

func (c *HTTPClient) SendResetOTP(ctx context.Context, email string) (string, error) {
	env, err := c.auth(ctx, http.MethodPost, pathSendResetOTP, map[string]string{"email": email})
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

func (c *HTTPClient) ResetPassword(ctx context.Context, email, otp, newPassword string) (string, error) {
	env, err := c.auth(ctx, http.MethodPost, pathResetPassword, map[string]string{
		"email":       email,
		"otp":         otp,
		"newPassword": newPassword,
	})
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// Chat sends a single prompt and returns the model reply. An error
// answer carries the backend's "error" field as its message.
func (c *HTTPClient) Chat(ctx context.Context, message string) (string, error) {
	var resp chatResponse
	err := c.do(ctx, http.MethodPost, c.chat.String(), map[string]string{"message": message}, &resp)
	if err != nil {
		var se *ServerError
		if errors.As(err, &se) && se.Message == "" {
			se.Message = "Server error"
		}
		return "", err
	}
	return resp.Reply, nil
}

// SessionToken returns the session cookie currently held for the backend
// origin, or "".
func (c *HTTPClient) SessionToken() string {
	for _, ck := range c.jar.Cookies(c.base) {
		if ck.Name == common.SessionCookieName {
			return ck.Value
		}
	}
	return ""
}

// SetSessionToken stores token as the backend session cookie. An empty
// token removes the cookie.
func (c *HTTPClient) SetSessionToken(token string) {
	ck := &http.Cookie{
		Name:  common.SessionCookieName,
		Value: token,
		Path:  "/",
	}
	if strings.TrimSpace(token) == "" {
		ck.Value = ""
		ck.MaxAge = -1
	}
	c.jar.SetCookies(c.base, []*http.Cookie{ck})
}
