package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	apperrors "github.com/medrec/medrec/internal/shared/errors"
)

// State is the session lifecycle state.
type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateAuthenticating  State = "authenticating"
	StateAuthenticated   State = "authenticated"
)

// Store owns the single active session of this client and persists it so
// a restart resumes an authenticated state. At most one session is active
// at a time.
type Store struct {
	path string
	log  zerolog.Logger

	mu    sync.RWMutex
	cur   *Session
	state State
}

// NewStore creates a store persisting to the given file path.
func NewStore(path string, log zerolog.Logger) *Store {
	return &Store{
		path:  path,
		log:   log.With().Str("component", "session").Logger(),
		state: StateUnauthenticated,
	}
}

// Restore loads the persisted session record, if any. A missing,
// malformed, incomplete, or expired record is discarded and the store
// stays unauthenticated; Restore never fails.
func (st *Store) Restore() *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	data, err := os.ReadFile(st.path)
	if err != nil {
		return nil
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		st.log.Warn().Err(err).Msg("discarding malformed persisted session")
		st.discardLocked()
		return nil
	}
	if !s.IsAuthenticated() {
		st.log.Warn().Msg("discarding incomplete persisted session")
		st.discardLocked()
		return nil
	}
	if tokenExpired(s.Token) {
		st.log.Info().Str("username", s.Username).Msg("discarding expired persisted session")
		st.discardLocked()
		return nil
	}

	st.cur = &s
	st.state = StateAuthenticated
	return st.cur
}

// BeginAuthentication marks a credential exchange in progress.
func (st *Store) BeginAuthentication() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.state = StateAuthenticating
}

// Establish installs a new session and persists it, replacing any
// previous one.
func (st *Store) Establish(s *Session) error {
	if !s.IsAuthenticated() {
		st.mu.Lock()
		st.state = StateUnauthenticated
		st.mu.Unlock()
		return apperrors.Unauthorized("session has no token or roles")
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(st.path), 0o700); err != nil {
		return apperrors.Wrap(err, "create session directory")
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return apperrors.Wrap(err, "encode session")
	}
	if err := os.WriteFile(st.path, data, 0o600); err != nil {
		return apperrors.Wrap(err, "persist session")
	}

	st.cur = s
	st.state = StateAuthenticated
	return nil
}

// Fail records a failed credential exchange; the store stays
// unauthenticated.
func (st *Store) Fail() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.cur = nil
	st.state = StateUnauthenticated
}

// Clear logs out: the session and its persisted record are removed.
func (st *Store) Clear() error {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.discardLocked()
	return nil
}

// Current returns the active session, or nil.
func (st *Store) Current() *Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.cur
}

// State returns the lifecycle state.
func (st *Store) State() State {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.state
}

// Token returns the bearer token of the active session, or "".
func (st *Store) Token() string {
	st.mu.RLock()
	defer st.mu.RUnlock()
	if st.cur == nil {
		return ""
	}
	return st.cur.Token
}

func (st *Store) discardLocked() {
	st.cur = nil
	st.state = StateUnauthenticated
	if err := os.Remove(st.path); err != nil && !os.IsNotExist(err) {
		st.log.Warn().Err(err).Msg("could not remove persisted session")
	}
}

// tokenExpired extracts the exp claim without verifying the signature;
// verification is the backend's job, the client only prunes sessions it
// knows are dead. A token that cannot be parsed at all counts as expired.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
