package middleware

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mathieu-neron/tubegate/pkg/hash"
)

// entry tracks request count and window end for a single key.
type entry struct {
	count     int
	windowEnd time.Time
}

// MemoryStore keeps counters in process memory. Counts are lost on restart
// and are not shared between instances.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

// NewMemoryStore creates a store and starts its background sweeper.
// A nil clock means time.Now.
func NewMemoryStore(clock func() time.Time) *MemoryStore {
	if clock == nil {
		clock = time.Now
	}
	s := &MemoryStore{
		entries: make(map[string]*entry),
		now:     clock,
		stop:    make(chan struct{}),
	}
	go s.cleanup(5 * time.Minute)
	return s
}

func (s *MemoryStore) Hit(_ context.Context, key string, window time.Duration) (int, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e, exists := s.entries[key]
	if !exists || !now.Before(e.windowEnd) {
		e = &entry{windowEnd: now.Add(window)}
		s.entries[key] = e
	}
	e.count++
	return e.count, e.windowEnd, nil
}

// Close stops the sweeper.
func (s *MemoryStore) Close() error {
	s.once.Do(func() { close(s.stop) })
	return nil
}

func (s *MemoryStore) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *MemoryStore) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for key, e := range s.entries {
		if !now.Before(e.windowEnd) {
			delete(s.entries, key)
		}
	}
}

func (s *MemoryStore) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// RedisStore shares fixed windows between instances through Redis.
// Keys carry a hash of the client key, never the raw address.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: "tubegate:ratelimit:"}
}

// hitScript counts a hit and starts the window on the first one. A key left
// without a TTL gets one too, so a counter can never outlive its window.
// EVAL is used instead of EXPIRE NX, which needs Redis 7.
var hitScript = redis.NewScript(`
local count = redis.call('INCR', KEYS[1])
local ttl = redis.call('PTTL', KEYS[1])
if ttl < 0 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
	ttl = tonumber(ARGV[1])
end
return {count, ttl}
`)

func (s *RedisStore) Hit(ctx context.Context, key string, window time.Duration) (int, time.Time, error) {
	k := s.prefix + hash.Prefix(key, 32)

	res, err := hitScript.Run(ctx, s.rdb, []string{k}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return 0, time.Time{}, err
	}
	if len(res) != 2 {
		return 0, time.Time{}, fmt.Errorf("redis: unexpected rate limit reply %v", res)
	}

	remaining := time.Duration(res[1]) * time.Millisecond
	if remaining <= 0 {
		remaining = window
	}
	return int(res[0]), time.Now().Add(remaining), nil
}

// Client returns the underlying Redis client (for health checks).
func (s *RedisStore) Client() *redis.Client {
	return s.rdb
}

// NewRateLimitStore returns a RedisStore when redisURL is set and reachable,
// and a MemoryStore otherwise.
func NewRateLimitStore(ctx context.Context, redisURL string) RateLimitStore {
	if redisURL == "" {
		return NewMemoryStore(nil)
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		Logger.Warn().Err(err).Msg("redis: invalid rate limit URL, using in-memory counters")
		return NewMemoryStore(nil)
	}

	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		Logger.Warn().Err(err).Msg("redis: connection failed, using in-memory counters")
		_ = rdb.Close()
		return NewMemoryStore(nil)
	}

	Logger.Info().Msg("redis: connected, rate limit shared across instances")
	return NewRedisStore(rdb)
}
