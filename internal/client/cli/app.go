package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/gophchat/internal/client/api"
	"github.com/dmitrijs2005/gophchat/internal/client/chat"
	"github.com/dmitrijs2005/gophchat/internal/client/config"
	"github.com/dmitrijs2005/gophchat/internal/client/guard"
	"github.com/dmitrijs2005/gophchat/internal/client/notify"
	"github.com/dmitrijs2005/gophchat/internal/client/otp"
	"github.com/dmitrijs2005/gophchat/internal/client/services"
	"github.com/dmitrijs2005/gophchat/internal/client/session"
	"github.com/dmitrijs2005/gophchat/internal/client/storage"
	"github.com/dmitrijs2005/gophchat/internal/filex"
	"github.com/dmitrijs2005/gophchat/internal/logging"
)

type Mode string

const (
	ModeChecking Mode = "checking"
	ModeOffline  Mode = "offline"
	ModeOnline   Mode = "online"
)

// sessionStore is the part of session.Store the commands use.
type sessionStore interface {
	guard.Source
	Subscribe(ctx context.Context) <-chan session.State
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	RefreshUserData(ctx context.Context) error
}

type App struct {
	config      *config.Config
	db          *sql.DB
	log         logging.Logger
	store       sessionStore
	guard       *guard.Guard
	verifier    *otp.Verifier
	authService services.AuthService
	reset       *services.ResetWizard
	chat        *chat.Session
	reader      *bufio.Reader
	out         io.Writer

	mu   sync.Mutex
	Mode Mode
}

// NewApp opens the state file and builds every component for c. The
// session store starts its auth check right away, bound to ctx. Output
// goes to stdout, logs to stderr.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.New(c.LogLevel, os.Stderr)
	return newApp(ctx, c, log, notify.NewTerminal(os.Stdout), os.Stdin, os.Stdout)
}

func newApp(ctx context.Context, c *config.Config, log logging.Logger, n notify.Notifier, in io.Reader, out io.Writer) (*App, error) {
	dsn := c.StateFile
	if dsn != ":memory:" {
		path, err := filex.EnsureParentDir(dsn)
		if err != nil {
			return nil, err
		}
		dsn = path
	}
	db, err := storage.Open(ctx, dsn)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	chatURL, err := c.ChatEndpoint()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	apiClient, err := api.NewHTTPClient(c.BackendURL, chatURL, c.RequestTimeout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	flags := storage.NewFlags(db)
	store := session.New(ctx, apiClient, flags, n, log)

	return &App{
		config:      c,
		db:          db,
		log:         log,
		store:       store,
		guard:       guard.New(store, log),
		verifier:    otp.NewVerifier(apiClient, store, flags, n, log),
		authService: services.NewAuthService(apiClient, flags, n, log),
		reset:       services.NewResetWizard(apiClient, n, log),
		chat:        chat.NewSession(apiClient, log),
		reader:      bufio.NewReader(in),
		out:         out,
		Mode:        ModeChecking,
	}, nil
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Mode != mode {
		a.Mode = mode
		a.log.Info(context.Background(), "session mode changed", "mode", string(mode))
	}
}

func (a *App) mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Mode
}

// Run blocks in the REPL until the user exits or ctx is done. The session
// check started by NewApp keeps running in the background meanwhile.
func (a *App) Run(ctx context.Context) {
	defer a.db.Close()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.watchSession(ctx)
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.store.Snapshot().IsLoggedIn
}

// watchSession keeps Mode in step with the session store.
func (a *App) watchSession(ctx context.Context) {
	for st := range a.store.Subscribe(ctx) {
		a.setMode(modeOf(st))
	}
}

func modeOf(st session.State) Mode {
	switch {
	case st.IsLoggedIn:
		return ModeOnline
	case st.IsLoadingInitialAuth:
		return ModeChecking
	default:
		return ModeOffline
	}
}
