// Package session implements the auth.SessionManager on a fiber storage backend.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/rs/zerolog/log"

	"github.com/go-authdemo/authdemo/internal/auth"
)

// idBytes is the entropy of a session id, 32 bytes = 256 bits.
const idBytes = 32

var errNoUser = errors.New("session record without user")

// Data is what the storage keeps per session.
type Data struct {
	UserID    uint64    `json:"user_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// Serialize encodes the session record of p.
func Serialize(p auth.Principal, createdAt time.Time) ([]byte, error) {
	return json.Marshal(Data{ //nolint:wrapcheck
		UserID:    p.ID,
		Username:  p.Username,
		CreatedAt: createdAt,
	})
}

// Deserialize decodes a stored record into the session for token.
func Deserialize(token string, raw []byte) (*auth.Session, error) {
	var d Data
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, err //nolint:wrapcheck
	}

	if d.UserID == 0 {
		return nil, errNoUser
	}

	return &auth.Session{
		Token:     token,
		Principal: auth.Principal{ID: d.UserID, Username: d.Username},
		CreatedAt: d.CreatedAt,
	}, nil
}

// Manager stores sessions in a fiber.Storage keyed by session id.
type Manager struct {
	storage fiber.Storage
	expiry  time.Duration
	now     func() time.Time
}

// NewManager creates a Manager. A nil storage uses fiber's in-memory storage.
func NewManager(storage fiber.Storage, expiry time.Duration) *Manager {
	if storage == nil {
		storage = MemoryStorage()
	}

	return &Manager{
		storage: storage,
		expiry:  expiry,
		now:     time.Now,
	}
}

// MemoryStorage returns a new instance of fiber's in-memory storage.
// Only the storage of the session middleware is used, its cookie handling is not.
func MemoryStorage() fiber.Storage {
	return session.New().Storage
}

// Storage returns the backend the manager writes to.
func (m *Manager) Storage() fiber.Storage {
	return m.storage
}

// Expiry returns the session lifetime.
func (m *Manager) Expiry() time.Duration {
	return m.expiry
}

// Establish stores a new session for p under a fresh random id.
func (m *Manager) Establish(_ context.Context, p auth.Principal) (*auth.Session, error) {
	token, err := GenerateSessionID()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to generate session id: %w", auth.ErrSessionUnavailable, err)
	}

	createdAt := m.now().UTC()

	raw, err := Serialize(p, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session: %w", err)
	}

	if err = m.storage.Set(token, raw, m.expiry); err != nil {
		return nil, fmt.Errorf("%w: failed to write session: %w", auth.ErrSessionUnavailable, err)
	}

	return &auth.Session{Token: token, Principal: p, CreatedAt: createdAt}, nil
}

// Resolve reads the session for token. Malformed, unknown, expired and
// unreadable records resolve to no session.
func (m *Manager) Resolve(_ context.Context, token string) (*auth.Session, error) {
	if !ValidSessionID(token) {
		return nil, nil //nolint:nilnil
	}

	raw, err := m.storage.Get(token)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read session: %w", auth.ErrSessionUnavailable, err)
	}

	if len(raw) == 0 {
		return nil, nil //nolint:nilnil
	}

	sess, err := Deserialize(token, raw)
	if err != nil {
		log.Warn().Err(err).Msg("dropping unreadable session record")

		return nil, nil //nolint:nilnil
	}

	// not every storage enforces the ttl on read
	if m.expiry > 0 && m.now().After(sess.CreatedAt.Add(m.expiry)) {
		return nil, nil //nolint:nilnil
	}

	return sess, nil
}

// Invalidate deletes the session for token. Unknown tokens are not an error.
func (m *Manager) Invalidate(_ context.Context, token string) error {
	if !ValidSessionID(token) {
		return nil
	}

	if err := m.storage.Delete(token); err != nil {
		return fmt.Errorf("%w: failed to delete session: %w", auth.ErrSessionUnavailable, err)
	}

	return nil
}

// GenerateSessionID generates a new secure random session ID.
func GenerateSessionID() (string, error) {
	b := make([]byte, idBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err //nolint:wrapcheck
	}

	return hex.EncodeToString(b), nil
}

// ValidSessionID reports whether id has the shape GenerateSessionID produces.
func ValidSessionID(id string) bool {
	if len(id) != hex.EncodedLen(idBytes) {
		return false
	}

	_, err := hex.DecodeString(id)

	return err == nil
}
