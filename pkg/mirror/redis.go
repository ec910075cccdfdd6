package mirror

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/Firecargit/BizHub-saas/pkg/errors"
)

// RedisMirror stores mirrored pages in Redis, for deployments where more
// than one instance serves the same users. Entries have no expiry: the
// mirror is the reload source of truth between saves.
type RedisMirror struct {
	client *redis.Client

	mu     sync.Mutex
	closed bool
}

// RedisConfig holds connection settings for the Redis backend.
type RedisConfig struct {
	Addr     string // host:port
	Password string // optional
	DB       int
}

// NewRedisMirror connects to Redis and verifies the connection.
func NewRedisMirror(ctx context.Context, cfg RedisConfig) (*RedisMirror, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to redis at %s", cfg.Addr)
	}
	return &RedisMirror{client: client}, nil
}

func (m *RedisMirror) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Get retrieves the mirrored page for a user.
func (m *RedisMirror) Get(ctx context.Context, userID string) ([]byte, bool, error) {
	if m.isClosed() {
		return nil, false, ErrClosed
	}
	data, err := m.client.Get(ctx, Key(userID)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return data, true, nil
}

// Set stores the mirrored page for a user.
func (m *RedisMirror) Set(ctx context.Context, userID string, data []byte) error {
	if m.isClosed() {
		return ErrClosed
	}
	if err := m.client.Set(ctx, Key(userID), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete removes the mirrored page for a user.
func (m *RedisMirror) Delete(ctx context.Context, userID string) error {
	if m.isClosed() {
		return ErrClosed
	}
	if err := m.client.Del(ctx, Key(userID)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Close closes the underlying Redis client. Further operations return
// [ErrClosed]; Close itself is idempotent.
func (m *RedisMirror) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.mu.Unlock()
	return m.client.Close()
}

var _ Mirror = (*RedisMirror)(nil)
