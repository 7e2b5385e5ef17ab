package auth

import (
	"github.com/alexedwards/argon2id"

	"github.com/go-authdemo/authdemo/internal/config"
)

// PasswordParams builds Argon2id parameters from cfg.
// Unset fields keep the value of argon2id.DefaultParams.
func PasswordParams(cfg config.Password) *argon2id.Params {
	params := *argon2id.DefaultParams

	if cfg.Memory > 0 {
		params.Memory = cfg.Memory
	}

	if cfg.Iterations > 0 {
		params.Iterations = cfg.Iterations
	}

	if cfg.Parallelism > 0 {
		params.Parallelism = cfg.Parallelism
	}

	if cfg.SaltLength > 0 {
		params.SaltLength = cfg.SaltLength
	}

	if cfg.KeyLength > 0 {
		params.KeyLength = cfg.KeyLength
	}

	return &params
}
