// Package api is the HTTP wrapper around the authentication and chat
// backends.
//
// Every request carries the backend's cookies (a cookie jar backed by the
// public suffix list), a JSON content type and a fresh X-Request-ID. The
// session cookie can be seeded from durable storage with SetSessionToken,
// which is how a restarted client resumes a server session.
//
// # Errors
//
// Failures are reported in two shapes that callers tell apart with
// errors.Is:
//
//   - ErrUnavailable: no response was received (connection refused,
//     timeout, DNS). The underlying error is wrapped as well.
//   - ErrRejected: the backend answered with success:false or a non-2xx
//     status. errors.As with *ServerError yields the server's message.
package api
