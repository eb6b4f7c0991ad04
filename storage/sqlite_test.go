package storage

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *OperationalStore {
	t.Helper()
	store, err := NewOperationalStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestExcludedHotels(t *testing.T) {
	store := newTestStore(t)

	ids, err := store.ExcludedHotels()
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected empty set, got %v", ids)
	}

	if err := store.SetExcluded("van_lux", true); err != nil {
		t.Fatalf("exclude failed: %v", err)
	}
	if err := store.SetExcluded("van_mid", true); err != nil {
		t.Fatalf("exclude failed: %v", err)
	}
	// repeated exclusion is a no-op, not an error
	if err := store.SetExcluded("van_lux", true); err != nil {
		t.Fatalf("repeat exclude failed: %v", err)
	}

	ids, err = store.ExcludedHotels()
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != "van_lux" || ids[1] != "van_mid" {
		t.Fatalf("unexpected set: %v", ids)
	}

	if err := store.SetExcluded("van_lux", false); err != nil {
		t.Fatalf("re-include failed: %v", err)
	}
	ids, _ = store.ExcludedHotels()
	if len(ids) != 1 || ids[0] != "van_mid" {
		t.Fatalf("unexpected set after removal: %v", ids)
	}
}

func TestLoadLog(t *testing.T) {
	store := newTestStore(t)

	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	if err := store.LogLoad("file", "v1", 2, 40, base); err != nil {
		t.Fatalf("log failed: %v", err)
	}
	if err := store.LogLoad("file", "v2", 3, 60, base.Add(time.Hour)); err != nil {
		t.Fatalf("log failed: %v", err)
	}

	records, err := store.RecentLoads(10)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	// newest first
	if records[0].Version != "v2" || records[1].Version != "v1" {
		t.Fatalf("unexpected order: %s, %s", records[0].Version, records[1].Version)
	}
	if records[0].Batches != 3 || records[0].Observations != 60 {
		t.Fatalf("unexpected record: %+v", records[0])
	}
	if records[0].ID == "" {
		t.Fatal("expected generated id")
	}

	records, err = store.RecentLoads(1)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(records) != 1 || records[0].Version != "v2" {
		t.Fatalf("limit not applied: %v", records)
	}
}
