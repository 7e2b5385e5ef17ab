package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/go-authdemo/authdemo/internal/auth"
	"github.com/go-authdemo/authdemo/internal/db/models"
	"github.com/go-authdemo/authdemo/internal/web/session"
)

// testParams keeps Argon2id cheap in tests.
var testParams = &argon2id.Params{
	Memory:      1024,
	Iterations:  1,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

var errDown = errors.New("connection refused")

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Discard,
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite in-memory db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}

	// every new connection would be a fresh in-memory database
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("failed to migrate user model: %v", err)
	}

	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

func newTestFlow(t *testing.T) (*auth.Flow, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	store := auth.NewLocalProvider(db, testParams)

	return auth.NewFlow(store, session.NewManager(nil, time.Hour)), db
}

// downStore is a credential store whose backend is unreachable.
type downStore struct{}

func (downStore) Create(context.Context, string, string) (*auth.Principal, error) {
	return nil, errors.Join(auth.ErrStoreUnavailable, errDown)
}

func (downStore) Verify(context.Context, string, string) (*auth.Principal, error) {
	return nil, errors.Join(auth.ErrStoreUnavailable, errDown)
}

func (downStore) Exists(context.Context, uint64) (bool, error) {
	return false, errors.Join(auth.ErrStoreUnavailable, errDown)
}

func (downStore) Delete(context.Context, uint64) error {
	return errors.Join(auth.ErrStoreUnavailable, errDown)
}

// downSessions is a session manager whose storage is unreachable.
type downSessions struct{}

func (downSessions) Establish(context.Context, auth.Principal) (*auth.Session, error) {
	return nil, errors.Join(auth.ErrSessionUnavailable, errDown)
}

func (downSessions) Resolve(context.Context, string) (*auth.Session, error) {
	return nil, errors.Join(auth.ErrSessionUnavailable, errDown)
}

func (downSessions) Invalidate(context.Context, string) error {
	return errors.Join(auth.ErrSessionUnavailable, errDown)
}
