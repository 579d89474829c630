package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophchat/internal/client/api"
	"github.com/dmitrijs2005/gophchat/internal/client/models"
	"github.com/dmitrijs2005/gophchat/internal/client/notify"
	"github.com/dmitrijs2005/gophchat/internal/client/storage"
	"github.com/dmitrijs2005/gophchat/internal/common"
	"github.com/dmitrijs2005/gophchat/internal/logging"
)

// User-facing notification texts.
const (
	MsgLoginSuccess      = "Login successful"
	MsgLoginFailed       = "Login failed"
	MsgLoginError        = "Login error"
	MsgLoggedOut         = "Logged out"
	MsgLogoutFailed      = "Logout failed"
	MsgUserDataFailed    = "Failed to load user data"
	MsgVerifyBeforeLogin = "Please verify your email before login"
)

var (
	// ErrVerificationRequired is returned by Login when the backend refuses
	// an account whose e-mail is not verified yet. The address has been
	// stored as the pending verification e-mail.
	ErrVerificationRequired = errors.New("email verification required")

	// ErrSuperseded means a newer operation of the same kind started while
	// this one was in flight; its result was discarded.
	ErrSuperseded = errors.New("superseded by a newer request")
)

// AuthAPI is the part of the backend the store talks to.
type AuthAPI interface {
	IsAuth(ctx context.Context) error
	UserData(ctx context.Context) (*models.UserProfile, error)
	Login(ctx context.Context, email, password string) (api.LoginResult, error)
	Logout(ctx context.Context) error
	SetSessionToken(token string)
}

// FlagStore is the durable storage the store keeps in step with the
// session.
type FlagStore interface {
	Snapshot(ctx context.Context) (storage.Snapshot, error)
	SaveLogin(ctx context.Context, token string) error
	ClearLogin(ctx context.Context) error
	SetPendingEmail(ctx context.Context, email string) error
}

type opKind int

const (
	opAuthState opKind = iota
	opUserData
	opCredentials // login and logout
	opKinds
)

// Store owns the session State. It is safe for concurrent use.
type Store struct {
	api      AuthAPI
	flags    FlagStore
	notifier notify.Notifier
	log      logging.Logger
	now      func() time.Time

	mu    sync.Mutex
	state State
	gens  [opKinds]uint64
	subs  map[int]chan State
	subID int

	startOnce   sync.Once
	initialOnce sync.Once
	initialDone chan struct{}
}

// NewStore creates a store in the Initial state without contacting the
// backend. Most callers want New.
func NewStore(a AuthAPI, flags FlagStore, n notify.Notifier, log logging.Logger) *Store {
	return &Store{
		api:         a,
		flags:       flags,
		notifier:    n,
		log:         log.With("component", "session"),
		now:         time.Now,
		state:       Initial(),
		subs:        make(map[int]chan State),
		initialDone: make(chan struct{}),
	}
}

// New creates a store and immediately starts the initial auth check.
func New(ctx context.Context, a AuthAPI, flags FlagStore, n notify.Notifier, log logging.Logger) *Store {
	s := NewStore(a, flags, n, log)
	s.Start(ctx)
	return s
}

// Start restores the persisted session token into the transport and runs
// RefreshAuthState in the background. Only the first call has any effect.
func (s *Store) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		s.restoreToken(ctx)
		go func() {
			_ = s.RefreshAuthState(ctx)
		}()
	})
}

// restoreToken seeds the transport with the stored token. An expired JWT
// is dropped from storage instead.
func (s *Store) restoreToken(ctx context.Context) {
	snap, err := s.flags.Snapshot(ctx)
	if err != nil {
		s.log.Warn(ctx, "read durable flags", "error", err)
		return
	}
	if !snap.HasToken() {
		return
	}
	if api.TokenExpired(snap.Token, s.now()) {
		s.log.Info(ctx, "stored session token expired")
		if err := s.flags.ClearLogin(ctx); err != nil {
			s.log.Warn(ctx, "clear expired token", "error", err)
		}
		return
	}
	s.api.SetSessionToken(snap.Token)
}

// WaitInitialAuth blocks until the first RefreshAuthState has finished or
// ctx is done.
func (s *Store) WaitInitialAuth(ctx context.Context) error {
	select {
	case <-s.initialDone:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Flags returns the durable flags as currently stored.
func (s *Store) Flags(ctx context.Context) (storage.Snapshot, error) {
	return s.flags.Snapshot(ctx)
}

// Subscribe delivers the current state and then every change until ctx is
// done, when the channel is closed. A slow reader only misses intermediate
// states; the latest one is always kept.
func (s *Store) Subscribe(ctx context.Context) <-chan State {
	ch := make(chan State, 1)

	s.mu.Lock()
	id := s.subID
	s.subID++
	s.subs[id] = ch
	ch <- s.state.clone()
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, id)
		close(ch)
		s.mu.Unlock()
	}()
	return ch
}

// begin registers a new operation of kind k and returns its generation.
// Operations of the kinds in overrides that are still in flight are
// invalidated, so their results are discarded when they land.
func (s *Store) begin(k opKind, overrides ...opKind) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range overrides {
		s.gens[o]++
	}
	s.gens[k]++
	return s.gens[k]
}

func (s *Store) current(k opKind, gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gens[k] == gen
}

// apply runs fn on the state if gen is still the latest generation of k,
// then publishes the result. It reports whether fn ran.
func (s *Store) apply(k opKind, gen uint64, fn func(st *State)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gens[k] != gen {
		return false
	}
	fn(&s.state)
	s.publishLocked()
	return true
}

func (s *Store) publishLocked() {
	snap := s.state
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- snap.clone()
	}
}

// finishInitialAuth flips IsLoadingInitialAuth to false the first time it
// is called.
func (s *Store) finishInitialAuth() {
	s.initialOnce.Do(func() {
		s.mu.Lock()
		s.state.IsLoadingInitialAuth = false
		s.publishLocked()
		s.mu.Unlock()
		close(s.initialDone)
	})
}

// RefreshAuthState asks the backend whether the current credentials are
// valid. On success the profile is refreshed and the user is logged in;
// on any failure the session is cleared. IsLoadingInitialAuth becomes
// false when the call returns, whatever the outcome.
func (s *Store) RefreshAuthState(ctx context.Context) error {
	defer s.finishInitialAuth()

	gen := s.begin(opAuthState)

	if err := s.api.IsAuth(ctx); err != nil {
		s.log.Debug(ctx, "not authenticated", "error", err)
		if !s.apply(opAuthState, gen, func(st *State) {
			st.IsLoggedIn = false
			st.User = nil
		}) {
			return ErrSuperseded
		}
		return err
	}

	_ = s.RefreshUserData(ctx)

	if !s.apply(opAuthState, gen, func(st *State) { st.IsLoggedIn = true }) {
		return ErrSuperseded
	}
	return nil
}

// RefreshUserData replaces the profile snapshot. On failure the previous
// profile is kept and a notification is shown.
func (s *Store) RefreshUserData(ctx context.Context) error {
	gen := s.begin(opUserData)

	user, err := s.api.UserData(ctx)
	if err != nil {
		s.log.Warn(ctx, "load user data", "error", err)
		if s.current(opUserData, gen) {
			s.notifier.Error(api.Message(err, MsgUserDataFailed))
		}
		return err
	}

	if !s.apply(opUserData, gen, func(st *State) { st.User = user.Clone() }) {
		return ErrSuperseded
	}
	return nil
}

// Login authenticates with the backend. On success the profile is
// loaded, the session is marked logged in and the token is persisted.
// A rejection shows the server message and leaves the state as it was.
// An auth check still in flight is discarded.
func (s *Store) Login(ctx context.Context, email, password string) error {
	gen := s.begin(opCredentials, opAuthState)
	log := s.log.With("email", common.MaskEmail(email))

	res, err := s.api.Login(ctx, email, password)
	if err != nil {
		log.Info(ctx, "login failed", "error", err)
		if !s.current(opCredentials, gen) {
			return ErrSuperseded
		}
		return s.loginFailed(ctx, email, err)
	}
	if !s.current(opCredentials, gen) {
		return ErrSuperseded
	}

	_ = s.RefreshUserData(ctx)

	if !s.apply(opCredentials, gen, func(st *State) { st.IsLoggedIn = true }) {
		return ErrSuperseded
	}
	if err := s.flags.SaveLogin(ctx, res.Token); err != nil {
		log.Warn(ctx, "persist session token", "error", err)
	}

	log.Info(ctx, "logged in")
	s.notifier.Success(MsgLoginSuccess)
	return nil
}

func (s *Store) loginFailed(ctx context.Context, email string, err error) error {
	if !errors.Is(err, api.ErrRejected) {
		s.notifier.Error(api.Message(err, MsgLoginError))
		return err
	}

	msg := api.Message(err, MsgLoginFailed)
	if msg == MsgVerifyBeforeLogin {
		s.notifier.Warn(msg)
		if err := s.flags.SetPendingEmail(ctx, email); err != nil {
			s.log.Warn(ctx, "store pending email", "error", err)
		}
		return ErrVerificationRequired
	}
	s.notifier.Error(msg)
	return err
}

// Logout ends the server session. Only a confirmed logout clears the
// local state and the durable flags; a failed one leaves both untouched.
// Auth checks and profile loads still in flight are discarded.
func (s *Store) Logout(ctx context.Context) error {
	gen := s.begin(opCredentials, opAuthState, opUserData)

	if err := s.api.Logout(ctx); err != nil {
		s.log.Warn(ctx, "logout failed", "error", err)
		if s.current(opCredentials, gen) {
			s.notifier.Error(api.Message(err, MsgLogoutFailed))
		}
		return err
	}

	if !s.apply(opCredentials, gen, func(st *State) {
		st.IsLoggedIn = false
		st.User = nil
	}) {
		return ErrSuperseded
	}
	if err := s.flags.ClearLogin(ctx); err != nil {
		s.log.Warn(ctx, "clear durable flags", "error", err)
	}

	s.log.Info(ctx, "logged out")
	s.notifier.Success(MsgLoggedOut)
	return nil
}
