package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*RedisReportCache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisReportCache(client), mr
}

func TestReportCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	if _, ok, err := c.Get(ctx, "rollup:2026-03"); err != nil || ok {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	payload := []byte(`{"workers":[]}`)
	if err := c.Set(ctx, "rollup:2026-03", payload, time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok, err := c.Get(ctx, "rollup:2026-03")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if string(got) != string(payload) {
		t.Fatalf("payload = %q, want %q", got, payload)
	}
}

func TestReportCacheExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "trends", []byte("x"), time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mr.FastForward(2 * time.Second)

	if _, ok, err := c.Get(ctx, "trends"); err != nil || ok {
		t.Fatalf("expected expired miss, got ok=%v err=%v", ok, err)
	}
}

func TestReportCacheInvalidateDropsOnlyReportKeys(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "pivot:2026", []byte("x"), time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mr.Set("session:abc", "keep")

	if err := c.Invalidate(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok, _ := c.Get(ctx, "pivot:2026"); ok {
		t.Fatal("report key survived invalidation")
	}
	if !mr.Exists("session:abc") {
		t.Fatal("non-report key was deleted")
	}
}
