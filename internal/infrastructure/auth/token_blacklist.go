package auth

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/ims/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

// TokenBlacklist revokes JWTs before their natural expiry. Logout blacklists
// a single token by its jti claim; forced logout stamps an invalidation time
// per user so every token issued before it is rejected.
type TokenBlacklist interface {
	// AddToBlacklist revokes one token by jti. The ttl should match the
	// token's remaining lifetime so entries expire on their own.
	AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error

	// IsBlacklisted reports whether a jti has been revoked.
	IsBlacklisted(ctx context.Context, jti string) (bool, error)

	// AddUserTokensToBlacklist records an invalidation timestamp for a user,
	// revoking every token issued up to now across all their sessions.
	AddUserTokensToBlacklist(ctx context.Context, userID string, ttl time.Duration) error

	// IsUserTokenInvalidated reports whether a token issued at the given
	// time predates the user's invalidation stamp.
	IsUserTokenInvalidated(ctx context.Context, userID string, tokenIssuedAt time.Time) (bool, error)
}

// RedisTokenBlacklist backs the blacklist with Redis so revocations are
// shared across instances and expire with the tokens they cover.
type RedisTokenBlacklist struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisTokenBlacklist dials Redis with its own client and verifies the
// connection before returning.
func NewRedisTokenBlacklist(cfg config.RedisConfig) (*RedisTokenBlacklist, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 3,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis for token blacklist: %w", err)
	}

	return NewRedisTokenBlacklistWithClient(client), nil
}

// NewRedisTokenBlacklistWithClient wraps an already-connected client.
func NewRedisTokenBlacklistWithClient(client *redis.Client) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{
		client:    client,
		keyPrefix: "token:blacklist:",
	}
}

func (b *RedisTokenBlacklist) jtiKey(jti string) string {
	return b.keyPrefix + "jti:" + jti
}

func (b *RedisTokenBlacklist) userKey(userID string) string {
	return b.keyPrefix + "user:" + userID
}

func (b *RedisTokenBlacklist) AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error {
	if err := b.client.Set(ctx, b.jtiKey(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("blacklisting token: %w", err)
	}
	return nil
}

func (b *RedisTokenBlacklist) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	exists, err := b.client.Exists(ctx, b.jtiKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("checking token blacklist: %w", err)
	}
	return exists > 0, nil
}

func (b *RedisTokenBlacklist) AddUserTokensToBlacklist(ctx context.Context, userID string, ttl time.Duration) error {
	stamp := time.Now().Unix()
	if err := b.client.Set(ctx, b.userKey(userID), stamp, ttl).Err(); err != nil {
		return fmt.Errorf("invalidating user tokens: %w", err)
	}
	return nil
}

func (b *RedisTokenBlacklist) IsUserTokenInvalidated(ctx context.Context, userID string, tokenIssuedAt time.Time) (bool, error) {
	raw, err := b.client.Get(ctx, b.userKey(userID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking user token invalidation: %w", err)
	}
	stamp, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return false, fmt.Errorf("parsing invalidation timestamp: %w", err)
	}
	return tokenIssuedAt.Unix() <= stamp, nil
}

// Ping reports whether the Redis connection is alive, for health checks.
func (b *RedisTokenBlacklist) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}

func (b *RedisTokenBlacklist) Close() error {
	return b.client.Close()
}

var _ TokenBlacklist = (*RedisTokenBlacklist)(nil)

// InMemoryTokenBlacklist holds revocations in process memory. Used in tests
// and single-instance development setups; revocations do not survive a
// restart and are not shared between instances.
type InMemoryTokenBlacklist struct {
	mu          sync.RWMutex
	revokedJTIs map[string]time.Time // jti -> entry expiry
	userStamps  map[string]time.Time // userID -> invalidation time
}

func NewInMemoryTokenBlacklist() *InMemoryTokenBlacklist {
	return &InMemoryTokenBlacklist{
		revokedJTIs: make(map[string]time.Time),
		userStamps:  make(map[string]time.Time),
	}
}

func (b *InMemoryTokenBlacklist) AddToBlacklist(_ context.Context, jti string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.revokedJTIs[jti] = time.Now().Add(ttl)
	return nil
}

func (b *InMemoryTokenBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	expiry, ok := b.revokedJTIs[jti]
	if !ok {
		return false, nil
	}
	// Expired entries cover tokens that are themselves expired, drop them
	if time.Now().After(expiry) {
		delete(b.revokedJTIs, jti)
		return false, nil
	}
	return true, nil
}

func (b *InMemoryTokenBlacklist) AddUserTokensToBlacklist(_ context.Context, userID string, _ time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.userStamps[userID] = time.Now()
	return nil
}

func (b *InMemoryTokenBlacklist) IsUserTokenInvalidated(_ context.Context, userID string, tokenIssuedAt time.Time) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	stamp, ok := b.userStamps[userID]
	if !ok {
		return false, nil
	}
	// UnixNano keeps sub-second precision for tests
	return tokenIssuedAt.UnixNano() <= stamp.UnixNano(), nil
}

var _ TokenBlacklist = (*InMemoryTokenBlacklist)(nil)
