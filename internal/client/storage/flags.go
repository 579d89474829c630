package storage

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophchat/internal/dbx"
)

// Keys of the durable flags.
const (
	KeyToken         = "token"
	KeyVerified      = "isVerified"
	KeyVerifyEmail   = "verifyEmail"
	KeyRegisterEmail = "registerEmail"
)

const verifiedValue = "true"

// Snapshot is the part of the durable flags the route guard looks at.
type Snapshot struct {
	Token    string
	Verified bool
}

// HasToken reports whether a session token is stored.
func (s Snapshot) HasToken() bool {
	return s.Token != ""
}

// Flags is the typed view over the metadata table. Writes touching more
// than one key are transactional.
type Flags struct {
	db *sql.DB
}

func NewFlags(db *sql.DB) *Flags {
	return &Flags{db: db}
}

func (f *Flags) repo() Repository {
	return NewSQLiteRepository(f.db)
}

func (f *Flags) tx(ctx context.Context, fn func(ctx context.Context, r Repository) error) error {
	return dbx.WithTx(ctx, f.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, NewSQLiteRepository(tx))
	})
}

func (f *Flags) getString(ctx context.Context, key string) (string, error) {
	v, err := f.repo().Get(ctx, key)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (f *Flags) Snapshot(ctx context.Context) (Snapshot, error) {
	all, err := f.repo().List(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		Token:    string(all[KeyToken]),
		Verified: string(all[KeyVerified]) == verifiedValue,
	}, nil
}

func (f *Flags) Token(ctx context.Context) (string, error) {
	return f.getString(ctx, KeyToken)
}

// SaveLogin stores the session token and marks the account verified; the
// backend only lets verified accounts log in. An empty token only sets the
// marker.
func (f *Flags) SaveLogin(ctx context.Context, token string) error {
	return f.tx(ctx, func(ctx context.Context, r Repository) error {
		if token != "" {
			if err := r.Set(ctx, KeyToken, []byte(token)); err != nil {
				return err
			}
		}
		return r.Set(ctx, KeyVerified, []byte(verifiedValue))
	})
}

// ClearLogin removes the session token and the verification marker.
func (f *Flags) ClearLogin(ctx context.Context) error {
	return f.tx(ctx, func(ctx context.Context, r Repository) error {
		return r.Delete(ctx, KeyToken, KeyVerified)
	})
}

// MarkVerified records a successful e-mail verification and forgets the
// address that was waiting for it.
func (f *Flags) MarkVerified(ctx context.Context) error {
	return f.tx(ctx, func(ctx context.Context, r Repository) error {
		if err := r.Delete(ctx, KeyVerifyEmail, KeyRegisterEmail); err != nil {
			return err
		}
		return r.Set(ctx, KeyVerified, []byte(verifiedValue))
	})
}

// SetPendingEmail remembers the address that still needs verification.
func (f *Flags) SetPendingEmail(ctx context.Context, email string) error {
	return f.repo().Set(ctx, KeyVerifyEmail, []byte(email))
}

// PendingEmail returns the address awaiting verification, preferring the
// one stored by the last login/registration attempt.
func (f *Flags) PendingEmail(ctx context.Context) (string, error) {
	for _, key := range []string{KeyVerifyEmail, KeyRegisterEmail} {
		v, err := f.getString(ctx, key)
		if err != nil {
			return "", err
		}
		if v != "" {
			return v, nil
		}
	}
	return "", nil
}

func (f *Flags) ClearPendingEmail(ctx context.Context) error {
	return f.tx(ctx, func(ctx context.Context, r Repository) error {
		return r.Delete(ctx, KeyVerifyEmail, KeyRegisterEmail)
	})
}
