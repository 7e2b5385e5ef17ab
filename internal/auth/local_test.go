package auth_test

import (
	"context"
	"testing"

	"github.com/alexedwards/argon2id"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-authdemo/authdemo/internal/auth"
	"github.com/go-authdemo/authdemo/internal/config"
	"github.com/go-authdemo/authdemo/internal/db/models"
)

func TestLocalProviderCreateAndVerify(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	store := auth.NewLocalProvider(db, testParams)

	p, err := store.Create(ctx, "alice", "pw1")
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
	assert.Equal(t, "alice", p.Username)

	var stored models.User
	require.NoError(t, db.First(&stored, p.ID).Error)
	assert.NotEqual(t, "pw1", stored.Password)
	assert.Contains(t, stored.Password, "$argon2id$")

	got, err := store.Verify(ctx, "alice", "pw1")
	require.NoError(t, err)
	assert.Equal(t, *p, *got)

	_, err = store.Verify(ctx, "alice", "pw2")
	require.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = store.Verify(ctx, "nobody", "pw1")
	require.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = store.Create(ctx, "alice", "pw3")
	require.ErrorIs(t, err, auth.ErrDuplicateUsername)
}

func TestLocalProviderExists(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	store := auth.NewLocalProvider(db, testParams)

	p, err := store.Create(ctx, "alice", "pw1")
	require.NoError(t, err)

	ok, err := store.Exists(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Exists(ctx, p.ID+100)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLocalProviderDelete(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	store := auth.NewLocalProvider(db, testParams)

	p, err := store.Create(ctx, "alice", "pw1")
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, p.ID))

	ok, err := store.Exists(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	// unknown ids are fine
	require.NoError(t, store.Delete(ctx, p.ID))

	_, err = store.Create(ctx, "alice", "pw2")
	require.NoError(t, err)
}

func TestLocalProviderUnreadableHash(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	store := auth.NewLocalProvider(db, testParams)

	require.NoError(t, db.Create(&models.User{Username: "legacy", Password: "not-a-hash"}).Error)

	_, err := store.Verify(ctx, "legacy", "not-a-hash")
	require.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLocalProviderClosedDB(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	store := auth.NewLocalProvider(db, testParams)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = store.Create(ctx, "alice", "pw1")
	require.ErrorIs(t, err, auth.ErrStoreUnavailable)

	_, err = store.Verify(ctx, "alice", "pw1")
	require.ErrorIs(t, err, auth.ErrStoreUnavailable)

	_, err = store.Exists(ctx, 1)
	require.ErrorIs(t, err, auth.ErrStoreUnavailable)
}

func TestPasswordParams(t *testing.T) {
	defaults := auth.PasswordParams(config.Password{})
	assert.Equal(t, *argon2id.DefaultParams, *defaults)

	custom := auth.PasswordParams(config.Password{Memory: 1024, Iterations: 2, Parallelism: 1})
	assert.Equal(t, uint32(1024), custom.Memory)
	assert.Equal(t, uint32(2), custom.Iterations)
	assert.Equal(t, uint8(1), custom.Parallelism)
	assert.Equal(t, argon2id.DefaultParams.SaltLength, custom.SaltLength)
	assert.Equal(t, argon2id.DefaultParams.KeyLength, custom.KeyLength)

	// the package default is never modified
	assert.NotEqual(t, uint32(1024), argon2id.DefaultParams.Memory)
}
