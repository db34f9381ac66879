// lock реализует распределённую блокировку прогонов конвейера на Redis.
//
// Блокировка - ключ с TTL, значение - случайный токен владельца.
// Снятие выполняется Lua-скриптом и удаляет ключ только при совпадении
// токена: истёкшая и перехваченная другим экземпляром блокировка не снимается.
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNotHeld - блокировка к моменту снятия уже не принадлежит владельцу.
var ErrNotHeld = errors.New("lock not held")

const defaultKey = "tenders:ingest:lock"

// releaseScript удаляет ключ, только если он содержит токен владельца.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisLocker - run-lock поверх одного ключа Redis.
type RedisLocker struct {
	rdb *redis.Client
	key string
	ttl time.Duration
}

// New создаёт клиент Redis из URL (например, redis://:pass@host:6379/0)
// и проверяет доступность сервера. Пустой key -> "tenders:ingest:lock".
func New(redisURL, key string, ttl time.Duration) (*RedisLocker, error) {
	const op = "lock.New"

	if key == "" {
		key = defaultKey
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("%s: ttl must be > 0", op)
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &RedisLocker{rdb: rdb, key: key, ttl: ttl}, nil
}

// TryLock пытается захватить блокировку без ожидания.
// acquired == false без ошибки означает, что блокировку держит другой владелец.
func (l *RedisLocker) TryLock(ctx context.Context) (func(context.Context) error, bool, error) {
	const op = "lock.TryLock"

	token := uuid.NewString()

	ok, err := l.rdb.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return nil, false, nil
	}

	unlock := func(ctx context.Context) error {
		const op = "lock.Unlock"

		n, err := releaseScript.Run(ctx, l.rdb, []string{l.key}, token).Int64()
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if n == 0 {
			return fmt.Errorf("%s: %w", op, ErrNotHeld)
		}

		return nil
	}

	return unlock, true, nil
}

// Close закрывает клиент Redis.
func (l *RedisLocker) Close() error { return l.rdb.Close() }
