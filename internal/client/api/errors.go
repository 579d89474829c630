package api

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable = errors.New("backend unavailable")
	ErrRejected    = errors.New("request rejected")
)

// ServerError is a failure reported by the backend itself.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s (status %d)", ErrRejected, e.Status)
	}
	return e.Message
}

func (e *ServerError) Is(target error) bool {
	return target == ErrRejected
}

// Message returns the text a user should see for err: the server message
// for rejections, fallback for everything else.
func Message(err error, fallback string) string {
	var se *ServerError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return fallback
}
