package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrUnknownDBEngine error if config db.engine is not supported.
	ErrUnknownDBEngine = errors.New("toml config db.engine must be sqlite, mysql or postgres")

	// ErrUnknownSessionStorage error if config webserver.session.storage is not supported.
	ErrUnknownSessionStorage = errors.New(
		"toml config webserver.session.storage must be memory, mysql, postgres or redis",
	)

	// ErrEmptyRedisAddr error if redis session storage is selected without an address.
	ErrEmptyRedisAddr = errors.New("toml config redis.addr can not be empty with redis session storage")
)
