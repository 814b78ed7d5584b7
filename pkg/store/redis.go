package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/goliatone/go-formpdf/pkg/contact"
)

// RedisOptions configures the Redis backend.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Close() error
}

// Redis stores records as JSON strings under "<app>_record:<session>" with
// the store TTL as key expiry.
type Redis struct {
	client redisClient
	prefix string
	ttl    time.Duration
}

var _ Store = (*Redis)(nil)

// NewRedis connects to the configured server.
func NewRedis(opts RedisOptions, app string, ttl time.Duration) (*Redis, error) {
	if opts.Addr == "" {
		return nil, errors.New("store: redis address is required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	return newRedisWithClient(client, app, ttl), nil
}

func newRedisWithClient(client redisClient, app string, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Redis{client: client, prefix: app + "_record:", ttl: ttl}
}

// Key returns the Redis key for a session.
func (s *Redis) Key(sessionID string) string {
	return s.prefix + sessionID
}

func (s *Redis) Save(ctx context.Context, sessionID string, rec contact.Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("store: encode record: %w", err)
	}
	if err := s.client.Set(ctx, s.Key(sessionID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("store: redis set: %w", err)
	}
	return nil
}

func (s *Redis) Load(ctx context.Context, sessionID string) (contact.Record, bool, error) {
	val, err := s.client.Get(ctx, s.Key(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return contact.Record{}, false, nil
	}
	if err != nil {
		return contact.Record{}, false, fmt.Errorf("store: redis get: %w", err)
	}
	var rec contact.Record
	if err := json.Unmarshal([]byte(val), &rec); err != nil {
		return contact.Record{}, false, fmt.Errorf("store: decode record: %w", err)
	}
	return rec, true, nil
}

func (s *Redis) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.Key(sessionID)).Err(); err != nil {
		return fmt.Errorf("store: redis del: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *Redis) Close() error {
	return s.client.Close()
}
