package dataset

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubSource struct {
	aggregated []byte
	aggErr     error
	latest     []byte
	latestErr  error
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) FetchAggregated(ctx context.Context) ([]byte, error) {
	return s.aggregated, s.aggErr
}

func (s *stubSource) FetchLatest(ctx context.Context) ([]byte, error) {
	return s.latest, s.latestErr
}

func TestLoad_PrefersAggregated(t *testing.T) {
	src := &stubSource{
		aggregated: loadFixture(t, "aggregated.json"),
		latest:     loadFixture(t, "latest.json"),
	}

	store := Load(context.Background(), src, time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC))
	if store.Batches != 2 {
		t.Fatalf("expected aggregated document's 2 batches, got %d", store.Batches)
	}
	if len(store.Observations) != 4 {
		t.Fatalf("expected 4 observations, got %d", len(store.Observations))
	}
	if store.Version == "" || store.Version == "empty" {
		t.Fatalf("expected a content fingerprint, got %q", store.Version)
	}
}

func TestLoad_FallsBackToLatest(t *testing.T) {
	src := &stubSource{
		aggErr: errors.New("not found"),
		latest: loadFixture(t, "latest.json"),
	}

	store := Load(context.Background(), src, time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC))
	if store.Batches != 1 {
		t.Fatalf("expected one synthetic batch, got %d", store.Batches)
	}
	if len(store.Observations) != 2 {
		t.Fatalf("expected 2 observations, got %d", len(store.Observations))
	}
	if store.Observations[0].ScrapeDate != "2026-03-05" {
		t.Fatalf("synthetic batch should be dated today, got %s", store.Observations[0].ScrapeDate)
	}
}

func TestLoad_EmptyOnTotalFailure(t *testing.T) {
	src := &stubSource{
		aggErr:    errors.New("not found"),
		latestErr: errors.New("not found"),
	}

	store := Load(context.Background(), src, time.Now())
	if len(store.Observations) != 0 {
		t.Fatalf("expected empty store, got %d observations", len(store.Observations))
	}
	if store.Version != "empty" {
		t.Fatalf("unexpected version %s", store.Version)
	}
}

func TestLoad_BadAggregatedFallsBack(t *testing.T) {
	src := &stubSource{
		aggregated: []byte("{broken"),
		latest:     loadFixture(t, "latest.json"),
	}

	store := Load(context.Background(), src, time.Now())
	if store.Batches != 1 {
		t.Fatalf("expected latest fallback, got %d batches", store.Batches)
	}
}

func TestLoad_SameBytesSameVersion(t *testing.T) {
	src := &stubSource{aggregated: loadFixture(t, "aggregated.json")}

	a := Load(context.Background(), src, time.Now())
	b := Load(context.Background(), src, time.Now())
	if a.Version != b.Version {
		t.Fatalf("identical documents must fingerprint identically: %s vs %s", a.Version, b.Version)
	}
}
