package redis_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/merchantlab/consult-go/domain/cache"
	"github.com/merchantlab/consult-go/infrastructure/storage/redis"
)

func newTestCache(t *testing.T) (*redis.Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	c := redis.NewCacheFromClient(client, "consult:")
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestCacheRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, _ := newTestCache(t)

	if err := c.Set(ctx, "search:trend:hits", []byte(`["doc1"]`), time.Minute); err != nil {
		t.Fatalf("Set() unexpected error: %v", err)
	}

	got, err := c.Get(ctx, "search:trend:hits")
	if err != nil {
		t.Fatalf("Get() unexpected error: %v", err)
	}
	if string(got) != `["doc1"]` {
		t.Errorf("Get() = %q", got)
	}
}

func TestCacheMiss(t *testing.T) {
	t.Parallel()

	c, _ := newTestCache(t)

	if _, err := c.Get(context.Background(), "absent"); !errors.Is(err, cache.ErrMiss) {
		t.Errorf("Get(absent) error = %v, want ErrMiss", err)
	}
}

func TestCacheTTLExpires(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, mr := newTestCache(t)

	if err := c.Set(ctx, "k", []byte("v"), time.Second); err != nil {
		t.Fatalf("Set() unexpected error: %v", err)
	}

	mr.FastForward(2 * time.Second)

	if _, err := c.Get(ctx, "k"); !errors.Is(err, cache.ErrMiss) {
		t.Errorf("expired Get() error = %v, want ErrMiss", err)
	}
}

func TestCacheDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, _ := newTestCache(t)

	_ = c.Set(ctx, "k", []byte("v"), 0)
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() unexpected error: %v", err)
	}
	if _, err := c.Get(ctx, "k"); !errors.Is(err, cache.ErrMiss) {
		t.Errorf("deleted Get() error = %v, want ErrMiss", err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete(absent) error = %v, want nil", err)
	}
}
