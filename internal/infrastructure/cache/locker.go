package cache

import (
	"context"
	"sync"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"aramesh-server/services/therapy-api/internal/config"
	"aramesh-server/services/therapy-api/internal/domain/conversation"
	"aramesh-server/services/therapy-api/internal/utils/platformerrors"
)

// NewUserLocker returns a Redis-backed distributed locker when REDIS_URL is
// configured, otherwise a process-local mutex locker. Single-instance
// deployments do not need Redis; multi-instance ones do.
func NewUserLocker(cfg *config.Config, logger zerolog.Logger) (conversation.UserLocker, error) {
	if cfg.RedisURL == "" {
		logger.Info().Msg("REDIS_URL not set; using process-local locking")
		return NewLocalLocker(), nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, platformerrors.NewError(context.Background(), platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeInternal, "invalid REDIS_URL", err, "")
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal, "redis ping failed", err, "")
	}

	logger.Info().Msg("using redis-backed distributed locking")
	return &RedisLocker{rs: redsync.New(goredis.NewPool(client))}, nil
}

// RedisLocker serializes critical sections across instances via redsync.
type RedisLocker struct {
	rs *redsync.Redsync
}

func (l *RedisLocker) WithLock(ctx context.Context, key string, ttl time.Duration, fn func() error) error {
	mutex := l.rs.NewMutex(key, redsync.WithExpiry(ttl), redsync.WithTries(8))
	if err := mutex.LockContext(ctx); err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeConflict, "failed to acquire lock", err, "6f8a0b2c-4d5e-4f6a-b8c0-d2e4f6a8b0c2")
	}
	defer func() {
		_, _ = mutex.UnlockContext(ctx)
	}()

	return fn()
}

// LocalLocker serializes critical sections within one process. Keys map to
// reference-counted mutexes so unrelated users never contend.
type LocalLocker struct {
	mu    sync.Mutex
	locks map[string]*localEntry
}

type localEntry struct {
	mu   sync.Mutex
	refs int
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{locks: make(map[string]*localEntry)}
}

func (l *LocalLocker) WithLock(ctx context.Context, key string, ttl time.Duration, fn func() error) error {
	l.mu.Lock()
	entry, ok := l.locks[key]
	if !ok {
		entry = &localEntry{}
		l.locks[key] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}()

	return fn()
}
