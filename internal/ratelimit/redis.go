package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// allowScript applies the fixed-window rule atomically. The key outlives the
// window by one millisecond so a request landing exactly on the deadline
// still counts against it, as in MemoryStore. Rejections leave the key
// untouched.
var allowScript = redis.NewScript(`
local current = redis.call('GET', KEYS[1])
if not current then
	redis.call('SET', KEYS[1], '1', 'PX', ARGV[2])
	return 1
end
if tonumber(current) >= tonumber(ARGV[1]) then
	return 0
end
redis.call('INCR', KEYS[1])
return 1
`)

// RedisStore shares window state between API instances.
type RedisStore struct {
	client redis.Scripter
	policy Policy
	prefix string
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithKeyPrefix namespaces the counter keys.
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStore) { s.prefix = prefix }
}

// NewRedisStore constructs a Redis-backed fixed-window limiter.
func NewRedisStore(client redis.Scripter, policy Policy, opts ...RedisOption) *RedisStore {
	s := &RedisStore{
		client: client,
		policy: policy.normalize(),
		prefix: "ratelimit:contact",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Allow implements Limiter.
func (s *RedisStore) Allow(ctx context.Context, key string) (bool, error) {
	allowed, err := allowScript.Run(ctx, s.client,
		[]string{s.key(key)},
		s.policy.Limit,
		s.ttl().Milliseconds(),
	).Int()
	if err != nil {
		return false, fmt.Errorf("rate limit script: %w", err)
	}
	return allowed == 1, nil
}

// ttl keeps the key alive through the instant now == resetAt.
func (s *RedisStore) ttl() time.Duration {
	return s.policy.Window + time.Millisecond
}

func (s *RedisStore) key(k string) string {
	return s.prefix + ":" + k
}

// DialRedis parses url, connects and pings.
func DialRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 2 * time.Second
	opts.WriteTimeout = 2 * time.Second

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}
