package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds connection settings for the Redis backend.
type RedisConfig struct {
	Addr     string // host:port, defaults to localhost:6379
	Password string
	DB       int
}

// Redis is the canonical Store backend. Counters and history lists map
// directly onto Redis primitives (INCR, RPUSH, LRANGE), which supply the
// single-operation atomicity the contract requires.
type Redis struct {
	client *redis.Client
}

// OpenRedis connects to Redis and verifies the connection with a ping.
func OpenRedis(ctx context.Context, cfg RedisConfig) (*Redis, error) {
	addr := cfg.Addr
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	return &Redis{client: client}, nil
}

// Get returns the value stored under key, or ErrNotFound.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return v, nil
}

// Set stores value under key.
func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

// Incr atomically increments the counter at key and returns the new value.
func (r *Redis) Incr(ctx context.Context, key string) (int64, error) {
	n, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("incr %q: %w", key, err)
	}
	return n, nil
}

// RPush appends value to the list at key.
func (r *Redis) RPush(ctx context.Context, key string, value []byte) error {
	if err := r.client.RPush(ctx, key, value).Err(); err != nil {
		return fmt.Errorf("rpush %q: %w", key, err)
	}
	return nil
}

// LRange returns list entries from start through stop inclusive.
func (r *Redis) LRange(ctx context.Context, key string, start, stop int64) ([][]byte, error) {
	entries, err := r.client.LRange(ctx, key, start, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("lrange %q: %w", key, err)
	}

	out := make([][]byte, len(entries))
	for i, e := range entries {
		out[i] = []byte(e)
	}
	return out, nil
}

// FlushAll erases every key in the connected database.
func (r *Redis) FlushAll(ctx context.Context) error {
	if err := r.client.FlushAll(ctx).Err(); err != nil {
		return fmt.Errorf("flushall: %w", err)
	}
	return nil
}

// Close closes the client connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}
