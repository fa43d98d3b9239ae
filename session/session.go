package session

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"forum/config"
	"forum/models"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/jmoiron/sqlx"
)

// Keys stored in the per-client session bag
const (
	usernameKey = "username"
	userIDKey   = "user_id"
)

const sqliteSessionSchema = `
CREATE TABLE IF NOT EXISTS sessions (
    token TEXT PRIMARY KEY,
    data BLOB NOT NULL,
    expiry REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);
`

// Manager owns the session cookie and the identity entries kept in it
type Manager struct {
	sessions *scs.SessionManager
}

// NewManager builds the session manager. db is only used by the sqlite store.
func NewManager(cfg config.SessionConfig, db *sqlx.DB) (*Manager, error) {
	sm := scs.New()
	sm.Lifetime = cfg.Lifetime
	sm.Cookie.Name = cfg.CookieName
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.Secure
	sm.Cookie.SameSite = http.SameSiteLaxMode
	// only "remember me" logins get a persistent cookie
	sm.Cookie.Persist = false

	switch cfg.Store {
	case "", "memory":
	case "sqlite":
		if db == nil {
			return nil, fmt.Errorf("sqlite session store needs a database handle")
		}
		if _, err := db.Exec(sqliteSessionSchema); err != nil {
			return nil, fmt.Errorf("failed to create sessions table: %w", err)
		}
		sm.Store = sqlite3store.NewWithCleanupInterval(db.DB, 30*time.Minute)
	default:
		return nil, fmt.Errorf("unsupported session store %q", cfg.Store)
	}

	return &Manager{sessions: sm}, nil
}

// LoadAndSave loads the client's session for every request and writes it back
func (m *Manager) LoadAndSave(next http.Handler) http.Handler {
	return m.sessions.LoadAndSave(next)
}

// Login moves the session to the authenticated state for user.
// The token is renewed to avoid session fixation.
func (m *Manager) Login(ctx context.Context, user *models.User, remember bool) error {
	if err := m.sessions.RenewToken(ctx); err != nil {
		return fmt.Errorf("failed to renew session token: %w", err)
	}
	m.sessions.Put(ctx, usernameKey, user.Username)
	m.sessions.Put(ctx, userIDKey, user.ID)
	m.sessions.RememberMe(ctx, remember)
	return nil
}

// Logout drops the identity entries; missing entries are fine
func (m *Manager) Logout(ctx context.Context) error {
	m.sessions.Remove(ctx, usernameKey)
	m.sessions.Remove(ctx, userIDKey)
	if err := m.sessions.RenewToken(ctx); err != nil {
		return fmt.Errorf("failed to renew session token: %w", err)
	}
	return nil
}

// Identity reads the authenticated user from the session.
// Both the username and the user id must be present.
func (m *Manager) Identity(ctx context.Context) (Identity, bool) {
	if !m.sessions.Exists(ctx, usernameKey) || !m.sessions.Exists(ctx, userIDKey) {
		return Identity{}, false
	}
	id, ok := m.sessions.Get(ctx, userIDKey).(int64)
	if !ok {
		return Identity{}, false
	}
	return Identity{
		UserID:   id,
		Username: m.sessions.GetString(ctx, usernameKey),
	}, true
}
