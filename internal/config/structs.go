package config

import (
	"time"

	"github.com/go-authdemo/authdemo/internal/logger"
)

// Session storage engines.
const (
	SessionStorageMemory   = "memory"
	SessionStorageMySQL    = "mysql"
	SessionStoragePostgres = "postgres"
	SessionStorageRedis    = "redis"
)

// Session settings.
type Session struct {
	CookieName string        // name of the session cookie
	ExpiryTime time.Duration // lifetime of a login session
	Storage    string        // memory, mysql, postgres or redis
	Table      string        // table name for sql based session storage
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Password  Password
	Redis     Redis
	Title     string
	Webserver Webserver
}

// Webserver implement webserver settings.
type Webserver struct {
	DisableRecover bool    // disable recover middleware
	Metrics        bool    // expose prometheus metrics on /metrics
	Port           int     // listening port for the webserver
	ShutDownTime   int     // wait time for shutdown
	URL            string  // base url for the webserver
	Session        Session // session settings
}

// Redis holds the connection settings for the redis session storage.
type Redis struct {
	Addr     string
	Password string
	DB       int
}

// Password holds the argon2id parameters used to hash new passwords.
// Zero values fall back to argon2id.DefaultParams.
type Password struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}
