package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/merchantlab/consult-go/domain/profile"
	"github.com/merchantlab/consult-go/infrastructure/storage/sqlite"
)

func newTestStore(t *testing.T) *sqlite.ProfileStore {
	t.Helper()

	cfg := sqlite.DefaultConfig()
	cfg.DSN = "file:" + filepath.Join(t.TempDir(), "profiles.db")
	cfg.JournalMode = ""

	store, err := sqlite.NewProfileStore(cfg)
	if err != nil {
		t.Fatalf("NewProfileStore() unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestProfileStoreRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)

	seed := &profile.Profile{
		ID: "store-001",
		Core: profile.Core{
			BasicInfo:   profile.BasicInfo{StoreName: "고향만두", District: "성동구"},
			Performance: profile.Performance{MonthlySales: "12,000,000 KRW"},
		},
	}
	if err := store.Seed(ctx, seed); err != nil {
		t.Fatalf("Seed() unexpected error: %v", err)
	}

	got, err := store.Get(ctx, "store-001")
	if err != nil {
		t.Fatalf("Get() unexpected error: %v", err)
	}
	if got.StoreName() != "고향만두" {
		t.Errorf("StoreName() = %q", got.StoreName())
	}

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, profile.ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}
}

func TestProfileStoreUpdate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)

	seed := &profile.Profile{
		ID: "store-001",
		Core: profile.Core{
			BasicInfo:   profile.BasicInfo{StoreName: "고향만두", District: "성동구"},
			Performance: profile.Performance{MonthlySales: "12,000,000 KRW"},
		},
	}
	if err := store.Seed(ctx, seed); err != nil {
		t.Fatalf("Seed() unexpected error: %v", err)
	}

	updated, err := store.Update(ctx, "store-001", profile.SectionPerformance, "monthly_sales", "14,000,000 KRW")
	if err != nil {
		t.Fatalf("Update() unexpected error: %v", err)
	}
	if updated.Core.Performance.MonthlySales != "14,000,000 KRW" {
		t.Errorf("MonthlySales = %q after update", updated.Core.Performance.MonthlySales)
	}
	if updated.Core.BasicInfo.District != "성동구" {
		t.Error("update clobbered unrelated section")
	}

	// Update must persist, not just return the merged document.
	reloaded, err := store.Get(ctx, "store-001")
	if err != nil {
		t.Fatalf("Get() after update: %v", err)
	}
	if reloaded.Core.Performance.MonthlySales != "14,000,000 KRW" {
		t.Error("update not persisted")
	}

	if _, err := store.Update(ctx, "store-001", "finances", "cash", "low"); !errors.Is(err, profile.ErrUnknownSection) {
		t.Errorf("Update() error = %v, want ErrUnknownSection", err)
	}
	if _, err := store.Update(ctx, "missing", profile.SectionBasicInfo, "district", "마포구"); !errors.Is(err, profile.ErrNotFound) {
		t.Errorf("Update(missing) error = %v, want ErrNotFound", err)
	}
}

func TestProfileStoreList(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)

	for _, id := range []string{"store-002", "store-001"} {
		p := &profile.Profile{ID: id, Core: profile.Core{BasicInfo: profile.BasicInfo{StoreName: id}}}
		if err := store.Seed(ctx, p); err != nil {
			t.Fatalf("Seed(%s): %v", id, err)
		}
	}

	ids, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if len(ids) != 2 || ids[0] != "store-001" || ids[1] != "store-002" {
		t.Errorf("List() = %v, want sorted ids", ids)
	}
}
