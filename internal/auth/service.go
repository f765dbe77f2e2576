// internal/auth/service.go
package auth

import (
	"context"
	"time"
)

// Collection is the admin credentials collection in the document store.
const Collection = "admins"

// Session is an authenticated admin session. Tokens are opaque; session
// presence gates access to admin operations only and has no bearing on the
// catalog engine's behavior.
type Session struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Service authenticates administrators against the credential store and
// tracks live sessions in memory.
type Service interface {
	Login(ctx context.Context, email, password string) (*Session, error)
	Logout(token string)
	// Verify returns the session for a token, or false for unknown or
	// logged-out tokens.
	Verify(token string) (*Session, bool)
}
