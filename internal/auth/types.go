package auth

import (
	"context"
	"time"
)

// Principal identifies an authenticated user. It never carries the credential.
type Principal struct {
	ID       uint64
	Username string
}

// Session binds a request to a Principal through an opaque token.
type Session struct {
	Token     string
	Principal Principal
	CreatedAt time.Time
}

// CredentialStore persists principals and verifies their passwords.
// Hashing and comparison happen inside the store.
type CredentialStore interface {
	// Create stores a new principal. Returns ErrDuplicateUsername if the username is taken.
	Create(ctx context.Context, username, password string) (*Principal, error)
	// Verify returns the principal for matching credentials, ErrInvalidCredentials otherwise.
	Verify(ctx context.Context, username, password string) (*Principal, error)
	// Exists reports whether the principal with id is still stored.
	Exists(ctx context.Context, id uint64) (bool, error)
	// Delete removes the principal with id. Unknown ids are not an error.
	Delete(ctx context.Context, id uint64) error
}

// SessionManager issues and validates session tokens.
type SessionManager interface {
	// Establish creates a new session for p in a single storage call.
	Establish(ctx context.Context, p Principal) (*Session, error)
	// Resolve returns the session for token, or nil and no error if there is none.
	Resolve(ctx context.Context, token string) (*Session, error)
	// Invalidate removes the session. Unknown tokens are not an error.
	Invalidate(ctx context.Context, token string) error
}
