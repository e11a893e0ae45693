package middleware

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mathieu-neron/tubegate/pkg/hash"
)

// Runs against a real Redis when TUBEGATE_TEST_REDIS_URL is set.
func TestRedisStore_Integration(t *testing.T) {
	url := os.Getenv("TUBEGATE_TEST_REDIS_URL")
	if url == "" {
		t.Skip("TUBEGATE_TEST_REDIS_URL not set")
	}

	store, ok := NewRateLimitStore(context.Background(), url).(*RedisStore)
	if !ok {
		t.Fatal("expected a RedisStore for a reachable Redis")
	}
	defer store.Client().Close()

	key := "test:" + uuid.NewString()
	ctx := context.Background()
	for want := 1; want <= 3; want++ {
		count, resetAt, err := store.Hit(ctx, key, time.Minute)
		if err != nil {
			t.Fatalf("Hit: %v", err)
		}
		if count != want {
			t.Fatalf("count = %d, want %d", count, want)
		}
		if until := time.Until(resetAt); until <= 0 || until > time.Minute+time.Second {
			t.Fatalf("resetAt %s is outside the window", until)
		}
	}
}

// A counter written without a TTL must still expire once it is hit.
func TestRedisStore_Integration_KeyWithoutTTL(t *testing.T) {
	url := os.Getenv("TUBEGATE_TEST_REDIS_URL")
	if url == "" {
		t.Skip("TUBEGATE_TEST_REDIS_URL not set")
	}

	store, ok := NewRateLimitStore(context.Background(), url).(*RedisStore)
	if !ok {
		t.Fatal("expected a RedisStore for a reachable Redis")
	}
	defer store.Client().Close()

	ctx := context.Background()
	key := "test:" + uuid.NewString()
	redisKey := store.prefix + hash.Prefix(key, 32)
	if err := store.Client().Set(ctx, redisKey, 4, 0).Err(); err != nil {
		t.Fatalf("seed: %v", err)
	}
	defer store.Client().Del(ctx, redisKey)

	count, _, err := store.Hit(ctx, key, 30*time.Second)
	if err != nil {
		t.Fatalf("Hit: %v", err)
	}
	if count != 5 {
		t.Errorf("count = %d, want 5", count)
	}
	ttl, err := store.Client().PTTL(ctx, redisKey).Result()
	if err != nil {
		t.Fatalf("PTTL: %v", err)
	}
	if ttl <= 0 || ttl > 30*time.Second {
		t.Errorf("ttl = %s, want within the window", ttl)
	}
}

func TestNewRateLimitStore_FallsBackToMemory(t *testing.T) {
	for _, url := range []string{"", "not a url", "redis://127.0.0.1:1/0"} {
		store := NewRateLimitStore(context.Background(), url)
		mem, ok := store.(*MemoryStore)
		if !ok {
			t.Fatalf("url %q: got %T, want *MemoryStore", url, store)
		}
		_ = mem.Close()
	}
}
