// Package sessions wraps scs with the catalog's flash-message helpers.
//
// Sessions back exactly one feature: the one-shot confirmation message
// shown after a create, update or delete ("Author created", ...).
package sessions

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// flashKey is the session slot holding the pending flash message.
const flashKey = "flash"

// Manager wraps scs.SessionManager with application-specific methods.
type Manager struct {
	*scs.SessionManager
}

// NewManager creates a configured session manager backed by the catalog's
// own sqlite database. The sqlDB parameter should be the underlying
// *sql.DB from GORM.
func NewManager(sqlDB *sql.DB, lifetime time.Duration, secureCookies bool) (*Manager, error) {
	// Create sessions table if it doesn't exist
	_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
	if err != nil {
		return nil, err
	}

	sm := scs.New()
	sm.Store = sqlite3store.New(sqlDB)
	sm.Lifetime = lifetime
	sm.IdleTimeout = lifetime / 2

	sm.Cookie.Name = "session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = secureCookies
	sm.Cookie.SameSite = http.SameSiteStrictMode
	sm.Cookie.Path = "/"

	return &Manager{SessionManager: sm}, nil
}

// Flash stores a one-shot message shown on the next rendered page.
func (m *Manager) Flash(r *http.Request, message string) {
	m.Put(r.Context(), flashKey, message)
}

// PopFlash returns the pending flash message and clears it.
func (m *Manager) PopFlash(r *http.Request) string {
	return m.PopString(r.Context(), flashKey)
}

// GenerateSecret returns a random hex-encoded 32-byte secret, used for
// CSRF signing when none is configured.
func GenerateSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
