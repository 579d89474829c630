// Package chat keeps the conversation with the AI backend: an append-only
// transcript and a session that sends one prompt at a time.
package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/gophchat/internal/client/api"
	"github.com/dmitrijs2005/gophchat/internal/logging"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Replies synthesized when the backend gives no usable answer.
const (
	ReplyEmpty       = "No response"
	ReplyServerError = "Server error"
	ReplyUnreachable = "Unable to reach backend"
)

var (
	ErrBusy        = errors.New("a prompt is already being answered")
	ErrEmptyPrompt = errors.New("prompt is empty")
)

// SamplePrompts are offered to a user facing an empty transcript.
var SamplePrompts = []string{
	"Suggest beautiful places to see on an upcoming road trip",
	"Briefly summarize this concept: urban planning",
	"Brainstorm team bonding activities for our work retreat",
	"Improve the readability of the following code",
}

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Transcript is an ordered, append-only list of messages.
type Transcript struct {
	mu   sync.RWMutex
	msgs []Message
}

func (t *Transcript) Append(m Message) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.msgs = append(t.msgs, m)
}

// Messages returns a copy of the transcript.
func (t *Transcript) Messages() []Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]Message(nil), t.msgs...)
}

func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.msgs)
}

type ChatAPI interface {
	Chat(ctx context.Context, message string) (string, error)
}

// Session sends prompts and records both sides of the exchange. Only one
// prompt may be in flight at a time.
type Session struct {
	api        ChatAPI
	log        logging.Logger
	transcript Transcript
	busy       atomic.Bool
}

func NewSession(a ChatAPI, log logging.Logger) *Session {
	return &Session{api: a, log: log.With("component", "chat")}
}

func (s *Session) Busy() bool {
	return s.busy.Load()
}

func (s *Session) Transcript() []Message {
	return s.transcript.Messages()
}

// Send appends prompt as a user message, waits for exactly one backend
// answer and appends it as a model message, which is also returned.
// Backend failures are recorded as model messages, not returned as errors.
func (s *Session) Send(ctx context.Context, prompt string) (Message, error) {
	if strings.TrimSpace(prompt) == "" {
		return Message{}, ErrEmptyPrompt
	}
	if !s.busy.CompareAndSwap(false, true) {
		return Message{}, ErrBusy
	}
	defer s.busy.Store(false)

	s.transcript.Append(Message{Role: RoleUser, Content: prompt})

	reply := Message{Role: RoleModel, Content: s.ask(ctx, prompt)}
	s.transcript.Append(reply)
	return reply, nil
}

func (s *Session) ask(ctx context.Context, prompt string) string {
	reply, err := s.api.Chat(ctx, prompt)
	switch {
	case err == nil && reply == "":
		return ReplyEmpty
	case err == nil:
		return reply
	case errors.Is(err, api.ErrRejected):
		s.log.Warn(ctx, "chat rejected", "error", err)
		return api.Message(err, ReplyServerError)
	default:
		s.log.Error(ctx, "chat backend unreachable", "error", err)
		return ReplyUnreachable
	}
}
