package service

import (
	"sync"
	"time"

	"github.com/akinsira/guestbookapi/internal/models"
	"github.com/akinsira/guestbookapi/internal/token"
	"github.com/akinsira/guestbookapi/pkg/utils/zaplogger"
)

// sessionTTL bounds the lifetime of an admin session.
const sessionTTL = 24 * time.Hour

// AuthService owns the admin credential check and the in-memory session
// table. The mutex covers every table operation, including the periodic
// sweep, so inserts, lookups and eviction never interleave.
type AuthService struct {
	creds AdminCredentials

	mu       sync.Mutex
	sessions map[string]models.Session

	now func() time.Time
}

// NewAuthService creates a new service for the auth API
func NewAuthService(creds AdminCredentials) *AuthService {
	return &AuthService{
		creds:    creds,
		sessions: make(map[string]models.Session),
		now:      time.Now,
	}
}

// Login verifies the credentials and mints a new session token. Returns
// ErrInvalidCredentials when the username or password is wrong.
func (s *AuthService) Login(username, password string) (string, error) {
	if !s.creds.Verify(username, password) {
		return "", ErrInvalidCredentials
	}

	tok, err := token.New()
	if err != nil {
		return "", err
	}

	now := s.now()
	s.mu.Lock()
	s.sessions[tok] = models.Session{
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(sessionTTL),
	}
	s.mu.Unlock()

	zaplogger.Info("admin session created", zaplogger.Fields{"username": username})
	return tok, nil
}

// Validate reports whether the token belongs to a live session. An expired
// entry found here is evicted on the spot; the hourly sweep covers entries
// that are never looked up again.
func (s *AuthService) Validate(tok string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[tok]
	if !ok {
		return false
	}
	if s.now().After(session.ExpiresAt) {
		delete(s.sessions, tok)
		return false
	}
	return true
}

// Logout removes the session if present. Idempotent, never errors.
func (s *AuthService) Logout(tok string) {
	s.mu.Lock()
	delete(s.sessions, tok)
	s.mu.Unlock()
}

// Sweep evicts every expired session and returns the number removed.
func (s *AuthService) Sweep() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for tok, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, tok)
			removed++
		}
	}
	return removed
}
