// internal/auth/implementation.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/BananaBox69/kpopgallery/pkg/docstore"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// service implements the Service interface.
type service struct {
	store       docstore.Store
	rateLimiter *rate.Limiter

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewService creates an auth service over the credential store.
func NewService(store docstore.Store) Service {
	return &service{
		store:       store,
		rateLimiter: rate.NewLimiter(rate.Every(1*time.Minute), 5), // 5 attempts per minute
		sessions:    map[string]*Session{},
	}
}

// Login verifies the email/password pair and mints a session. All failure
// modes collapse into ErrInvalidCredentials so callers surface one generic
// notification.
func (s *service) Login(ctx context.Context, email, password string) (*Session, error) {
	if !s.rateLimiter.Allow() {
		return nil, fmt.Errorf("rate limit exceeded")
	}

	docs, err := s.store.List(ctx, Collection)
	if err != nil {
		return nil, fmt.Errorf("load credentials: %w", err)
	}

	for _, doc := range docs {
		if doc.String("email", "") != email {
			continue
		}
		ok, err := verifyPassword(password, doc.String("salt", ""), doc.String("passwordHash", ""))
		if err != nil || !ok {
			return nil, ErrInvalidCredentials
		}

		session := &Session{
			Token:     uuid.NewString(),
			Email:     email,
			CreatedAt: time.Now().UTC(),
		}
		s.mu.Lock()
		s.sessions[session.Token] = session
		s.mu.Unlock()
		return session, nil
	}

	return nil, ErrInvalidCredentials
}

// Logout clears the session. Unknown tokens are ignored.
func (s *service) Logout(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// Verify returns the live session for a token.
func (s *service) Verify(token string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[token]
	return session, ok
}
