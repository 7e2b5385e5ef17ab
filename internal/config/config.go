// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

const (
	// EnvConfigJSON overrides any value of the toml file with a JSON document.
	EnvConfigJSON = "AUTHDEMO_CONFIG_JSON"

	// DefaultPath is used when no config directory is given.
	DefaultPath = "./etc/"

	defaultShutDownTime = 5 // seconds
	defaultCookieName   = "session"
	defaultSessionTable = "sessions"
	defaultSessionTTL   = 24 * time.Hour
	defaultSQLitePath   = "authdemo.db"
)

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var (
		c             Config
		JSONConfigEnv string
		err           error
	)

	// Read main configuration
	if path == "" {
		path = DefaultPath
	}

	if _, err = toml.DecodeFile(path+"main.toml", &c); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	// override it from env
	JSONConfigEnv = os.Getenv(EnvConfigJSON)

	if JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	return c, validate(&c)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to decode "+EnvConfigJSON)
	}

	return c, nil
}

// DumpConfig config as TOML String.
func DumpConfig(c *Config) (string, error) {
	var buffer bytes.Buffer
	t := toml.NewEncoder(&buffer)

	if err := t.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate checks the settings the daemon can not start without
// and fills in defaults for the optional ones.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	// validate webserver listening port
	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = defaultShutDownTime
	}

	switch c.DB.Engine {
	case "":
		c.DB.Engine = DBEngineSQLite
	case DBEngineSQLite, DBEngineMySQL, DBEnginePostgres:
	default:
		return errors.Wrap(ErrUnknownDBEngine, invalidErrMessage)
	}

	if c.DB.Engine == DBEngineSQLite && c.DB.Path == "" {
		c.DB.Path = defaultSQLitePath
	}

	sess := &c.Webserver.Session

	if sess.CookieName == "" {
		sess.CookieName = defaultCookieName
	}

	if sess.ExpiryTime <= 0 {
		sess.ExpiryTime = defaultSessionTTL
	}

	if sess.Table == "" {
		sess.Table = defaultSessionTable
	}

	switch sess.Storage {
	case "":
		sess.Storage = SessionStorageMemory
	case SessionStorageMemory, SessionStorageMySQL, SessionStoragePostgres:
	case SessionStorageRedis:
		if c.Redis.Addr == "" {
			return errors.Wrap(ErrEmptyRedisAddr, invalidErrMessage)
		}
	default:
		return errors.Wrap(ErrUnknownSessionStorage, invalidErrMessage)
	}

	return nil
}
