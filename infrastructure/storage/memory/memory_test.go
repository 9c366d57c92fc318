package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/merchantlab/consult-go/domain/cache"
	"github.com/merchantlab/consult-go/domain/capability"
	"github.com/merchantlab/consult-go/domain/profile"
	"github.com/merchantlab/consult-go/infrastructure/storage/memory"
)

func newTestCapability(t *testing.T, name string) capability.Capability {
	t.Helper()
	return capability.New(name).
		WithDescription("test capability").
		WithHandler(func(_ context.Context, input capability.Input) (capability.Output, error) {
			return capability.NewOutput(input.Query), nil
		}).
		MustBuild()
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	registry := memory.NewRegistry()

	if err := registry.Register(ctx, newTestCapability(t, "rag_searcher")); err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}
	if err := registry.Register(ctx, newTestCapability(t, "get_profile")); err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	if err := registry.Register(ctx, newTestCapability(t, "rag_searcher")); !errors.Is(err, capability.ErrAlreadyRegistered) {
		t.Errorf("duplicate Register() error = %v, want ErrAlreadyRegistered", err)
	}

	c, err := registry.Get(ctx, "rag_searcher")
	if err != nil || c.Name() != "rag_searcher" {
		t.Errorf("Get() = %v, %v", c, err)
	}

	if _, err := registry.Get(ctx, "nonexistent"); !errors.Is(err, capability.ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}

	names, err := registry.Names(ctx)
	if err != nil {
		t.Fatalf("Names() unexpected error: %v", err)
	}
	if len(names) != 2 || names[0] != "get_profile" || names[1] != "rag_searcher" {
		t.Errorf("Names() = %v, want sorted pair", names)
	}
}

func TestCacheTTL(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := memory.NewCache()

	if err := c.Set(ctx, "k", []byte("v"), 20*time.Millisecond); err != nil {
		t.Fatalf("Set() unexpected error: %v", err)
	}

	got, err := c.Get(ctx, "k")
	if err != nil || string(got) != "v" {
		t.Fatalf("Get() = %q, %v", got, err)
	}

	time.Sleep(40 * time.Millisecond)
	if _, err := c.Get(ctx, "k"); !errors.Is(err, cache.ErrMiss) {
		t.Errorf("expired Get() error = %v, want ErrMiss", err)
	}
}

func TestCacheEvictsOldest(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := memory.NewCache(memory.WithMaxSize(2))

	_ = c.Set(ctx, "a", []byte("1"), 0)
	time.Sleep(time.Millisecond)
	_ = c.Set(ctx, "b", []byte("2"), 0)
	time.Sleep(time.Millisecond)
	if _, err := c.Get(ctx, "a"); err != nil {
		t.Fatalf("touch a: %v", err)
	}
	time.Sleep(time.Millisecond)
	_ = c.Set(ctx, "c", []byte("3"), 0)

	if _, err := c.Get(ctx, "b"); !errors.Is(err, cache.ErrMiss) {
		t.Errorf("least recently used key survived eviction")
	}
	if _, err := c.Get(ctx, "a"); err != nil {
		t.Errorf("recently used key evicted: %v", err)
	}
}

func TestProfileStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.NewProfileStore()

	seed := &profile.Profile{
		ID: "store-001",
		Core: profile.Core{
			BasicInfo:   profile.BasicInfo{StoreName: "고향만두", District: "성동구"},
			Performance: profile.Performance{MonthlySales: "12,000,000 KRW"},
		},
	}
	if err := store.Seed(seed); err != nil {
		t.Fatalf("Seed() unexpected error: %v", err)
	}

	got, err := store.Get(ctx, "store-001")
	if err != nil {
		t.Fatalf("Get() unexpected error: %v", err)
	}
	if got.StoreName() != "고향만두" {
		t.Errorf("StoreName() = %q", got.StoreName())
	}

	updated, err := store.Update(ctx, "store-001", profile.SectionPerformance, "monthly_sales", "13,000,000 KRW")
	if err != nil {
		t.Fatalf("Update() unexpected error: %v", err)
	}
	if updated.Core.Performance.MonthlySales != "13,000,000 KRW" {
		t.Errorf("MonthlySales = %q after update", updated.Core.Performance.MonthlySales)
	}
	if updated.Core.BasicInfo.District != "성동구" {
		t.Error("update clobbered unrelated section")
	}

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, profile.ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}

	ids, err := store.List(ctx)
	if err != nil || len(ids) != 1 || ids[0] != "store-001" {
		t.Errorf("List() = %v, %v", ids, err)
	}
}
