// Package common contains constants and helpers shared by the client
// packages.
package common

const (
	// SessionCookieName is the cookie the auth backend issues on login and
	// expects on every authenticated request.
	SessionCookieName = "token"

	// RequestIDHeaderName carries a per-request correlation id.
	RequestIDHeaderName = "X-Request-ID"
)
