package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testRedisCache connects to DB 15 and skips when no server is reachable.
func testRedisCache(t *testing.T) *RedisCache {
	t.Helper()

	c, err := NewRedisCache(context.Background(), RedisOptions{
		Addr:     envOr("CERTRENDER_REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("CERTRENDER_REDIS_PASSWORD"),
		DB:       15,
	})
	if err != nil {
		t.Skipf("skipping integration test: redis not reachable: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestRedisCacheRoundTrip(t *testing.T) {
	c := testRedisCache(t)
	ctx := context.Background()
	key := "certrender:test:" + t.Name()
	t.Cleanup(func() { _ = c.Delete(ctx, key) })

	if _, hit, err := c.Get(ctx, key); err != nil || hit {
		t.Fatalf("Get before Set: hit=%v err=%v", hit, err)
	}

	if err := c.Set(ctx, key, []byte("<svg/>"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit {
		t.Fatalf("Get: hit=%v err=%v", hit, err)
	}
	if string(data) != "<svg/>" {
		t.Errorf("Get = %q", data)
	}

	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("expected miss after Delete")
	}
}

func TestNewRedisCacheUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if _, err := NewRedisCache(ctx, RedisOptions{Addr: "127.0.0.1:1"}); err == nil {
		t.Error("expected error for unreachable server")
	}
}
