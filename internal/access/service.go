package access

import (
	"context"
	"crypto/subtle"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SagarNRao/agile-lab2-startup-market/internal/startup"
)

// ErrInvalidCredentials is returned for any failed verification: wrong
// owner, wrong password, or an unknown posting. The caller is never told
// which, so probing the unlock endpoint reveals nothing.
var ErrInvalidCredentials = errors.New("invalid owner name or password")

// StartupGetter looks up a posting by id
type StartupGetter interface {
	GetByID(ctx context.Context, id int64) (*startup.Startup, error)
}

// Service handles owner verification and unlock sessions. Sessions live in
// memory only and never expire; a session ends when its token is reset or
// the process restarts.
type Service struct {
	startups StartupGetter

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewService creates a new access service
func NewService(startups StartupGetter) *Service {
	return &Service{
		startups: startups,
		sessions: make(map[string]*Session),
	}
}

// Authenticate verifies the supplied owner name and password against the
// posting's stored pair and, on success, mints a session token scoped to
// that one posting. Both fields must match exactly, case-sensitively.
// Retries are unlimited; there is no lockout or backoff.
func (s *Service) Authenticate(ctx context.Context, startupID int64, owner, password string) (*Session, error) {
	target, err := s.startups.GetByID(ctx, startupID)
	if err != nil {
		if errors.Is(err, startup.ErrStartupNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ownerMatch := subtle.ConstantTimeCompare([]byte(owner), []byte(target.Owner))
	passwordMatch := subtle.ConstantTimeCompare([]byte(password), []byte(target.Password))
	if ownerMatch&passwordMatch != 1 {
		return nil, ErrInvalidCredentials
	}

	session := &Session{
		Token:     uuid.NewString(),
		StartupID: startupID,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.sessions[session.Token] = session
	s.mu.Unlock()

	return session, nil
}

// Unlocked resolves a token to the startup id it unlocks
func (s *Service) Unlocked(token string) (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[token]
	if !ok {
		return 0, false
	}
	return session.StartupID, true
}

// Reset discards a session, locking its posting again. Resetting an unknown
// token is a no-op.
func (s *Service) Reset(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
}
