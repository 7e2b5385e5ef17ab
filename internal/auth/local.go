package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/go-authdemo/authdemo/internal/db/models"
)

const whereUsername = "username = ?"

// dummyPassword is hashed once and compared against when a username is unknown,
// so a miss costs the same Argon2id work as a wrong password.
const dummyPassword = "authdemo-dummy-password"

// LocalProvider is the gorm backed CredentialStore.
type LocalProvider struct {
	db     *gorm.DB
	params *argon2id.Params

	dummyOnce sync.Once
	dummyHash string
}

// NewLocalProvider creates a new local credential store hashing with params.
func NewLocalProvider(db *gorm.DB, params *argon2id.Params) *LocalProvider {
	if params == nil {
		params = argon2id.DefaultParams
	}

	return &LocalProvider{
		db:     db,
		params: params,
	}
}

// Create stores a new user with an Argon2id hash of password.
func (p *LocalProvider) Create(ctx context.Context, username, password string) (*Principal, error) {
	db := p.db.WithContext(ctx)

	// check first to skip the hashing work for taken names
	taken, err := p.usernameTaken(ctx, username)
	if err != nil {
		return nil, err
	}

	if taken {
		return nil, ErrDuplicateUsername
	}

	hashedPassword, err := models.HashPassword(password, p.params)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Username: username,
		Password: hashedPassword,
	}

	if err = db.Create(&user).Error; err != nil {
		// a concurrent registration won the unique index
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateUsername
		}

		if taken, checkErr := p.usernameTaken(ctx, username); checkErr == nil && taken {
			return nil, ErrDuplicateUsername
		}

		return nil, fmt.Errorf("%w: failed to create user: %w", ErrStoreUnavailable, err)
	}

	return &Principal{ID: user.ID, Username: user.Username}, nil
}

// Verify looks up username and compares password with the stored hash.
// Unknown users and wrong passwords both return ErrInvalidCredentials.
func (p *LocalProvider) Verify(ctx context.Context, username, password string) (*Principal, error) {
	var user models.User

	err := p.db.WithContext(ctx).Where(whereUsername, username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		p.compareDummy(password)

		return nil, ErrInvalidCredentials
	}

	if err != nil {
		return nil, fmt.Errorf("%w: failed to query user: %w", ErrStoreUnavailable, err)
	}

	match, err := user.VerifyPassword(password)
	if err != nil {
		log.Error().Err(err).Uint64("user_id", user.ID).Msg("stored password hash is unreadable")

		return nil, ErrInvalidCredentials
	}

	if !match {
		return nil, ErrInvalidCredentials
	}

	return &Principal{ID: user.ID, Username: user.Username}, nil
}

// Exists reports whether the user with id is still stored.
func (p *LocalProvider) Exists(ctx context.Context, id uint64) (bool, error) {
	var count int64

	if err := p.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("%w: failed to check user: %w", ErrStoreUnavailable, err)
	}

	return count > 0, nil
}

// Delete removes the user with id.
func (p *LocalProvider) Delete(ctx context.Context, id uint64) error {
	if err := p.db.WithContext(ctx).Delete(&models.User{}, id).Error; err != nil {
		return fmt.Errorf("%w: failed to delete user: %w", ErrStoreUnavailable, err)
	}

	return nil
}

func (p *LocalProvider) usernameTaken(ctx context.Context, username string) (bool, error) {
	var count int64

	err := p.db.WithContext(ctx).Model(&models.User{}).Where(whereUsername, username).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("%w: failed to check existing user: %w", ErrStoreUnavailable, err)
	}

	return count > 0, nil
}

func (p *LocalProvider) compareDummy(password string) {
	p.dummyOnce.Do(func() {
		hash, err := models.HashPassword(dummyPassword, p.params)
		if err != nil {
			log.Error().Err(err).Msg("failed to hash dummy password")
			return
		}

		p.dummyHash = hash
	})

	if p.dummyHash == "" {
		return
	}

	dummy := models.User{Password: p.dummyHash}
	_, _ = dummy.VerifyPassword(password)
}
