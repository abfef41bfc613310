// redis — реестр refresh-токенов поверх Redis. Общий для всех инстансов
// сервиса и переживает их перезапуск. Ключ: prefix + хэш токена,
// значение: id пользователя, TTL до истечения токена (если задан).
package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/pribylovaa/go-resource-market/internal/storage"
)

// DefaultPrefix — префикс ключей по умолчанию.
const DefaultPrefix = "market:rt:"

// Registry реализует storage.RefreshRegistry.
type Registry struct {
	rdb    goredis.UniversalClient
	prefix string
	now    func() time.Time
}

// New создаёт клиент Redis из URL (например, redis://:pass@host:6379/0)
// и проверяет соединение. Пустой prefix заменяется на DefaultPrefix.
func New(ctx context.Context, redisURL, prefix string) (*Registry, error) {
	const op = "storage.redis.New"

	opt, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rdb := goredis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return NewWithClient(rdb, prefix), nil
}

// NewWithClient оборачивает готовый клиент.
func NewWithClient(rdb goredis.UniversalClient, prefix string) *Registry {
	if prefix == "" {
		prefix = DefaultPrefix
	}

	return &Registry{rdb: rdb, prefix: prefix, now: time.Now}
}

func (r *Registry) key(token string) string { return r.prefix + storage.TokenKey(token) }

// Register выполняет SET NX: повторная регистрация не меняет запись и её TTL.
func (r *Registry) Register(ctx context.Context, token string, userID int64, expiresAt time.Time) error {
	const op = "storage.redis.Register"

	var ttl time.Duration
	if !expiresAt.IsZero() {
		ttl = expiresAt.Sub(r.now())
		if ttl <= 0 {
			return nil
		}
	}

	if err := r.rdb.SetNX(ctx, r.key(token), strconv.FormatInt(userID, 10), ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *Registry) IsValid(ctx context.Context, token string) (bool, error) {
	const op = "storage.redis.IsValid"

	n, err := r.rdb.Exists(ctx, r.key(token)).Result()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return n == 1, nil
}

// Revoke удаляет ключ; DEL отсутствующего ключа не ошибка.
func (r *Registry) Revoke(ctx context.Context, token string) error {
	const op = "storage.redis.Revoke"

	if err := r.rdb.Del(ctx, r.key(token)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Close закрывает клиент Redis.
func (r *Registry) Close() error { return r.rdb.Close() }

// Ping проверяет соединение с Redis.
func (r *Registry) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

var _ storage.RefreshRegistry = (*Registry)(nil)
