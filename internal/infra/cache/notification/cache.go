package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// dedup:{service}:{reference:status}
	keyDedup     = "dedup:%s:%s"
	dedupService = "notification"

	// DefaultTTL сколько помним обработанное уведомление
	DefaultTTL = 48 * time.Hour
)

var (
	// ErrCache возвращается при ошибках Redis
	ErrCache = errors.New("notification.cache: redis error")
)

// Cache помнит уже применённые уведомления (reference, статус провайдера)
// Используется только чтобы не ходить в БД повторно; корректность обеспечивает CAS в хранилище
type Cache struct {
	rdb redis.UniversalClient
	ttl time.Duration
}

// NewCache создает кеш дедупликации поверх Redis
func NewCache(rdb redis.UniversalClient, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{rdb: rdb, ttl: ttl}
}

// NewClient создает клиента Redis
func NewClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
}

// Seen возвращает true, если уведомление с такой парой уже было применено
func (c *Cache) Seen(ctx context.Context, reference, providerStatus string) (bool, error) {
	n, err := c.rdb.Exists(ctx, Key(reference, providerStatus)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: Seen: %v", ErrCache, err)
	}
	return n > 0, nil
}

// Mark запоминает применённое уведомление на ttl
func (c *Cache) Mark(ctx context.Context, reference, providerStatus string) error {
	if err := c.rdb.Set(ctx, Key(reference, providerStatus), time.Now().UTC().Format(time.RFC3339), c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Mark: %v", ErrCache, err)
	}
	return nil
}

// Key формирует ключ дедупликации
func Key(reference, providerStatus string) string {
	id := reference + ":" + strings.ToLower(strings.TrimSpace(providerStatus))
	return fmt.Sprintf(keyDedup, dedupService, id)
}

// Nop кеш-заглушка для режима без Redis
type Nop struct{}

// Seen всегда false
func (Nop) Seen(context.Context, string, string) (bool, error) { return false, nil }

// Mark ничего не делает
func (Nop) Mark(context.Context, string, string) error { return nil }
