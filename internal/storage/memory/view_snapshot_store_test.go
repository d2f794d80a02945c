package memory

import (
	"context"
	"testing"

	"retail-metrics-lab/internal/domain"
)

func snapshot(view, groupKey, metric string, value float64, computedAt int64) *domain.ViewSnapshot {
	return &domain.ViewSnapshot{
		ViewName:    view,
		GroupKey:    groupKey,
		MetricName:  metric,
		MetricValue: value,
		ComputedAt:  computedAt,
	}
}

func TestViewSnapshotStore_InsertAndGetByView(t *testing.T) {
	store := NewViewSnapshotStore()
	ctx := context.Background()

	snapshots := []*domain.ViewSnapshot{
		snapshot("profit_by_category", "Toys", "profit_margin", 90, 1000),
		snapshot("profit_by_category", "Groceries", "profit_margin", 85, 1000),
		snapshot("turnover_by_category", "Toys", "turnover_ratio", 0.6, 1000),
	}
	if err := store.InsertBulk(ctx, snapshots); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	got, err := store.GetByView(ctx, "profit_by_category")
	if err != nil {
		t.Fatalf("GetByView failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("GetByView returned %d snapshots, want 2", len(got))
	}
	// Ordered by group key within one run.
	if got[0].GroupKey != "Groceries" || got[1].GroupKey != "Toys" {
		t.Errorf("order = %s, %s; want Groceries, Toys", got[0].GroupKey, got[1].GroupKey)
	}
}

func TestViewSnapshotStore_GetLatestRun(t *testing.T) {
	store := NewViewSnapshotStore()
	ctx := context.Background()

	older := []*domain.ViewSnapshot{
		snapshot("profit_by_category", "Toys", "profit_margin", 80, 1000),
	}
	newer := []*domain.ViewSnapshot{
		snapshot("profit_by_category", "Toys", "profit_margin", 90, 2000),
		snapshot("executive_summary", "total", "total_net_revenue", 1234, 2000),
	}
	if err := store.InsertBulk(ctx, older); err != nil {
		t.Fatalf("InsertBulk older failed: %v", err)
	}
	if err := store.InsertBulk(ctx, newer); err != nil {
		t.Fatalf("InsertBulk newer failed: %v", err)
	}

	latest, err := store.GetLatestRun(ctx)
	if err != nil {
		t.Fatalf("GetLatestRun failed: %v", err)
	}
	if len(latest) != 2 {
		t.Fatalf("GetLatestRun returned %d snapshots, want 2", len(latest))
	}
	for _, s := range latest {
		if s.ComputedAt != 2000 {
			t.Errorf("ComputedAt = %d, want 2000", s.ComputedAt)
		}
	}
}

func TestViewSnapshotStore_EmptyStore(t *testing.T) {
	store := NewViewSnapshotStore()
	ctx := context.Background()

	byView, err := store.GetByView(ctx, "profit_by_category")
	if err != nil {
		t.Fatalf("GetByView failed: %v", err)
	}
	if len(byView) != 0 {
		t.Errorf("GetByView returned %d snapshots, want 0", len(byView))
	}

	latest, err := store.GetLatestRun(ctx)
	if err != nil {
		t.Fatalf("GetLatestRun failed: %v", err)
	}
	if len(latest) != 0 {
		t.Errorf("GetLatestRun returned %d snapshots, want 0", len(latest))
	}
}
