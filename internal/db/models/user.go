// Package models contains database model definitions.
package models

import (
	"time"

	"github.com/alexedwards/argon2id"
)

// User represents a registered account.
type User struct {
	// ID is the unique identifier for the user.
	ID uint64 `gorm:"primaryKey"`
	// Username is the unique username for login.
	Username string `gorm:"uniqueIndex;size:100;not null"`
	// Password is the Argon2id hash in PHC string format, never the plaintext.
	Password string `gorm:"size:255;not null" json:"-"`
	// CreatedAt is the timestamp when the user registered (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp of the last change (managed by GORM).
	UpdatedAt time.Time
}

// HashPassword hashes a plaintext password using Argon2id.
// A nil params uses argon2id.DefaultParams.
func HashPassword(password string, params *argon2id.Params) (string, error) {
	if params == nil {
		params = argon2id.DefaultParams
	}

	return argon2id.CreateHash(password, params) //nolint:wrapcheck
}

// VerifyPassword compares a plaintext password against the stored hash in constant time.
// An error means the stored hash is malformed.
func (u *User) VerifyPassword(password string) (bool, error) {
	return argon2id.ComparePasswordAndHash(password, u.Password) //nolint:wrapcheck
}
