package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.Handler) (*HTTPClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewHTTPClient(srv.URL, "/api/chat", 2*time.Second)
	require.NoError(t, err)
	return c, srv
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNewHTTPClient_RequiresAbsoluteURL(t *testing.T) {
	_, err := NewHTTPClient("/relative", "/api/chat", 0)
	require.Error(t, err)
}

func TestLogin_Success_TakesTokenFromCookie(t *testing.T) {
	var got map[string]string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, pathLogin, r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_, err := uuid.Parse(r.Header.Get("X-Request-ID"))
		assert.NoError(t, err, "request id must be a uuid")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		http.SetCookie(w, &http.Cookie{Name: "token", Value: "cookie-tok", Path: "/"})
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Login successful"})
	}))

	res, err := c.Login(context.Background(), "ann@x.io", "pw")
	require.NoError(t, err)
	assert.Equal(t, "cookie-tok", res.Token)
	assert.Equal(t, "Login successful", res.Message)
	assert.Equal(t, map[string]string{"email": "ann@x.io", "password": "pw"}, got)
	assert.Equal(t, "cookie-tok", c.SessionToken())
}

func TestLogin_BodyTokenWinsAndIsStored(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "token": "body-tok"})
	}))

	res, err := c.Login(context.Background(), "a@x.io", "pw")
	require.NoError(t, err)
	assert.Equal(t, "body-tok", res.Token)
	assert.Equal(t, "body-tok", c.SessionToken())
}

func TestLogin_Rejected(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": false, "message": "Invalid password"})
	}))

	_, err := c.Login(context.Background(), "a@x.io", "bad")
	require.ErrorIs(t, err, ErrRejected)
	assert.Equal(t, "Invalid password", Message(err, "fallback"))
}

func TestNon2xx_CarriesServerMessage(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "Please verify your email before login"})
	}))

	_, err := c.Login(context.Background(), "a@x.io", "pw")
	var se *ServerError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadRequest, se.Status)
	assert.Equal(t, "Please verify your email before login", se.Message)
}

func TestTransportFailure_IsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	c, err := NewHTTPClient(srv.URL, "/api/chat", time.Second)
	require.NoError(t, err)
	srv.Close()

	err = c.IsAuth(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
	assert.NotErrorIs(t, err, ErrRejected)
	assert.Equal(t, "fallback", Message(err, "fallback"))
}

func TestUserData_AcceptsBothFieldNames(t *testing.T) {
	for _, field := range []string{"user", "userData"} {
		t.Run(field, func(t *testing.T) {
			c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, pathUserData, r.URL.Path)
				assert.Equal(t, http.MethodGet, r.Method)
				writeJSON(w, http.StatusOK, map[string]any{
					"success": true,
					field:     map[string]any{"_id": "u1", "name": "Ann", "email": "ann@x.io", "isAccountVerified": true},
				})
			}))

			u, err := c.UserData(context.Background())
			require.NoError(t, err)
			assert.Equal(t, "u1", u.ID)
			assert.Equal(t, "Ann", u.Name)
			assert.True(t, u.IsEmailVerified)
		})
	}
}

func TestUserData_MissingProfileIsRejected(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	}))

	_, err := c.UserData(context.Background())
	require.ErrorIs(t, err, ErrRejected)
}

func TestSetSessionToken_IsSentAsCookie(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ck, err := r.Cookie("token")
		if err != nil || ck.Value != "persisted" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "Not Authorized"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	}))

	require.ErrorIs(t, c.IsAuth(context.Background()), ErrRejected)

	c.SetSessionToken("persisted")
	require.NoError(t, c.IsAuth(context.Background()))
}

func TestLogout_ClearsSessionCookie(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Logged Out"})
	}))
	c.SetSessionToken("tok")

	require.NoError(t, c.Logout(context.Background()))
	assert.Empty(t, c.SessionToken())
}

func TestOTPEndpoints_SendExpectedBodies(t *testing.T) {
	bodies := map[string]map[string]string{}
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var b map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&b))
		bodies[r.URL.Path] = b
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "ok " + r.URL.Path})
	}))
	ctx := context.Background()

	msg, err := c.SendVerifyOTP(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "ok "+pathSendVerifyOTP, msg)
	_, err = c.VerifyAccount(ctx, "a@x.io", "123456")
	require.NoError(t, err)
	_, err = c.SendResetOTP(ctx, "a@x.io")
	require.NoError(t, err)
	_, err = c.ResetPassword(ctx, "a@x.io", "654321", "new-pw")
	require.NoError(t, err)
	_, err = c.Register(ctx, "Ann", "a@x.io", "pw")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"userId": "u1"}, bodies[pathSendVerifyOTP])
	assert.Equal(t, map[string]string{"email": "a@x.io", "otp": "123456"}, bodies[pathVerifyAccount])
	assert.Equal(t, map[string]string{"email": "a@x.io"}, bodies[pathSendResetOTP])
	assert.Equal(t, map[string]string{"email": "a@x.io", "otp": "654321", "newPassword": "new-pw"}, bodies[pathResetPassword])
	assert.Equal(t, map[string]string{"name": "Ann", "email": "a@x.io", "password": "pw"}, bodies[pathRegister])
}

func TestChat(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		var b map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&b))
		switch b["message"] {
		case "Hello":
			writeJSON(w, http.StatusOK, map[string]string{"reply": "Hi"})
		case "quota":
			writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "Quota exceeded"})
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	})
	c, _ := newTestClient(t, mux)
	ctx := context.Background()

	reply, err := c.Chat(ctx, "Hello")
	require.NoError(t, err)
	assert.Equal(t, "Hi", reply)

	_, err = c.Chat(ctx, "quota")
	require.ErrorIs(t, err, ErrRejected)
	assert.Equal(t, "Quota exceeded", Message(err, ""))

	_, err = c.Chat(ctx, "boom")
	require.ErrorIs(t, err, ErrRejected)
	assert.Equal(t, "Server error", Message(err, ""))
}

func TestChat_AbsoluteEndpointOverridesOrigin(t *testing.T) {
	chatSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chatbot", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]string{"reply": "from chatbot"})
	}))
	t.Cleanup(chatSrv.Close)

	c, err := NewHTTPClient("http://127.0.0.1:1", chatSrv.URL+"/api/chatbot", time.Second)
	require.NoError(t, err)

	reply, err := c.Chat(context.Background(), "hey")
	require.NoError(t, err)
	assert.Equal(t, "from chatbot", reply)
}
