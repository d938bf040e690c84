package state

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisHash is the hash that holds every flag.
const DefaultRedisHash = "debugpanels:state"

// Redis is a Store backed by a single Redis hash, so several overlay
// processes can share collapsed/hidden flags.
type Redis struct {
	client  redis.UniversalClient
	hash    string
	timeout time.Duration
}

// Ensure Redis implements Store.
var _ Store = (*Redis)(nil)

// NewRedis wraps client. An empty hash uses DefaultRedisHash.
func NewRedis(client redis.UniversalClient, hash string) *Redis {
	if hash == "" {
		hash = DefaultRedisHash
	}
	return &Redis{client: client, hash: hash, timeout: 500 * time.Millisecond}
}

// DialRedis connects to addr and verifies the connection with PING.
func DialRedis(ctx context.Context, addr, hash string) (*Redis, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return NewRedis(client, hash), nil
}

// Bool implements Store. Lookup errors read as absent.
func (r *Redis) Bool(key string) (bool, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	s, err := r.client.HGet(ctx, r.hash, key).Result()
	if err != nil {
		return false, false
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, false
	}
	return v, true
}

// SetBool implements Store.
func (r *Redis) SetBool(key string, value bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	if err := r.client.HSet(ctx, r.hash, key, strconv.FormatBool(value)).Err(); err != nil {
		return fmt.Errorf("redis hset %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying client.
func (r *Redis) Close() error {
	if err := r.client.Close(); err != nil && !errors.Is(err, redis.ErrClosed) {
		return err
	}
	return nil
}
