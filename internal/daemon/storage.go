package daemon

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionpostgres "github.com/gofiber/storage/postgres/v3"
	sessionredis "github.com/gofiber/storage/redis/v3"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/go-authdemo/authdemo/internal/config"
	"github.com/go-authdemo/authdemo/internal/db/dsn"
)

const redisPingTimeout = 3 * time.Second

// newSessionStorage creates the configured session backend.
// Memory storage returns nil, the session manager then uses fiber's in-memory storage.
func newSessionStorage(cfg *config.Config) (fiber.Storage, error) {
	sess := cfg.Webserver.Session

	switch sess.Storage {
	case config.SessionStorageMemory:
		return nil, nil //nolint:nilnil
	case config.SessionStorageMySQL:
		return sessionmysql.New(sessionmysql.Config{
			ConnectionURI: dsn.MySQL(cfg),
			Table:         sess.Table,
		}), nil
	case config.SessionStoragePostgres:
		return sessionpostgres.New(sessionpostgres.Config{
			ConnectionURI: dsn.Postgres(cfg),
			Table:         sess.Table,
		}), nil
	case config.SessionStorageRedis:
		return newRedisStorage(cfg.Redis)
	default:
		return nil, config.ErrUnknownSessionStorage
	}
}

// newRedisStorage connects to redis and checks the connection before
// handing the client to the gofiber redis storage, whose constructor panics
// on an unreachable server.
func newRedisStorage(cfg config.Redis) (*sessionredis.Storage, error) {
	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:    []string{cfg.Addr},
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()

		return nil, errors.Wrap(err, "failed to connect redis")
	}

	return sessionredis.NewFromConnection(client), nil
}
