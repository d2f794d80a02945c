package metrics

import (
	"testing"

	"retail-metrics-lab/internal/domain"
)

func TestComputeTurnoverByCategory(t *testing.T) {
	// Two rows: 30 units over avg inventory (40+60)/2 = 50, ratio 0.6.
	records := []*domain.TransactionRecord{
		tr("Toys", "North", "S001", "P0001", 10, 40, 20.0, 0),
		tr("Toys", "North", "S001", "P0002", 20, 60, 10.0, 10),
	}

	rows := computeTurnoverByCategory(records)
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}

	r := rows[0]
	assertFloat(t, "AvgInventoryLevel", r.AvgInventoryLevel, 50)
	assertFloat(t, "TurnoverRatio", r.TurnoverRatio, 0.6)
	assertFloat(t, "AvgOverstock", r.AvgOverstock, 35) // (30 + 40) / 2
	if r.AvgProfitMargin == nil {
		t.Fatal("AvgProfitMargin = nil for revenue-carrying group")
	}
	// gross 400, net 200 + 180 = 380.
	assertFloat(t, "AvgProfitMargin", *r.AvgProfitMargin, 95)
}

func TestComputeTurnoverExcludesZeroInventoryGroups(t *testing.T) {
	records := []*domain.TransactionRecord{
		tr("Digital", "North", "S001", "P0001", 10, 0, 5.0, 0),
	}
	if rows := computeTurnoverByCategory(records); len(rows) != 0 {
		t.Errorf("rows = %d, want zero-inventory group excluded", len(rows))
	}
	if rows := computeTurnoverByStore(records); len(rows) != 0 {
		t.Errorf("store rows = %d, want zero-inventory group excluded", len(rows))
	}
}

func TestComputeTurnoverNilMarginForZeroGross(t *testing.T) {
	// Inventory with no sales: turnover row exists, margin does not.
	records := []*domain.TransactionRecord{
		tr("Furniture", "West", "S004", "P0301", 0, 200, 450.0, 0),
	}

	rows := computeTurnoverByCategory(records)
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0].AvgProfitMargin != nil {
		t.Errorf("AvgProfitMargin = %v, want nil for zero-gross group", *rows[0].AvgProfitMargin)
	}
	assertFloat(t, "TurnoverRatio", rows[0].TurnoverRatio, 0)
}

func TestComputeTurnoverByCategoryOrdering(t *testing.T) {
	records := []*domain.TransactionRecord{
		tr("Slow", "North", "S001", "P0001", 10, 100, 5.0, 0),
		tr("Fast", "North", "S001", "P0002", 80, 100, 5.0, 0),
	}

	rows := computeTurnoverByCategory(records)
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].Category != "Fast" || rows[1].Category != "Slow" {
		t.Errorf("order = %s, %s; want turnover DESC", rows[0].Category, rows[1].Category)
	}
}

func TestComputeTurnoverByStore(t *testing.T) {
	records := []*domain.TransactionRecord{
		tr("Toys", "North", "S001", "P0001", 10, 50, 20.0, 0),
		tr("Toys", "South", "S002", "P0001", 40, 50, 20.0, 0),
		tr("Groceries", "North", "S001", "P0002", 20, 100, 4.0, 0),
	}

	rows := computeTurnoverByStore(records)
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}

	// S002/Toys leads at 0.8. The S001 groups tie at 0.2 and fall back
	// to category order, Groceries before Toys.
	if rows[0].StoreID != "S002" {
		t.Errorf("rows[0].StoreID = %s, want S002", rows[0].StoreID)
	}
	if rows[1].Category != "Groceries" || rows[2].Category != "Toys" {
		t.Errorf("tie order = %s, %s; want Groceries, Toys", rows[1].Category, rows[2].Category)
	}
}
