package metrics

import (
	"fmt"
	"testing"

	"retail-metrics-lab/internal/domain"
)

func TestComputeSlowMoversDualThreshold(t *testing.T) {
	tests := []struct {
		name      string
		inventory int
		units     int
		flagged   bool
	}{
		// avgInv 200, avgUnits 5: inventory 40x sales, sell-through 2.5%.
		{"clear offender", 200, 5, true},
		// Inventory exactly 2x sales fails the strict > check.
		{"inventory at factor boundary", 40, 20, false},
		// Sell-through exactly 30% fails the strict < check (inv 3.33x sales).
		{"sell-through at threshold", 100, 30, false},
		// High inventory ratio but healthy sell-through.
		{"healthy sell-through", 50, 20, false},
		// Slightly past both thresholds.
		{"just past both", 100, 29, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := []*domain.TransactionRecord{
				tr("Toys", "North", "S001", "P0001", tt.units, tt.inventory, 10.0, 0),
			}
			rows := computeSlowMovers(records)
			if got := len(rows) == 1; got != tt.flagged {
				t.Errorf("flagged = %t, want %t (inv=%d units=%d)",
					got, tt.flagged, tt.inventory, tt.units)
			}
		})
	}
}

func TestComputeSlowMoversLimitAndOrder(t *testing.T) {
	var records []*domain.TransactionRecord
	for i := 0; i < 25; i++ {
		// Each product overstocked by a different amount.
		records = append(records, tr("Furniture", "West", "S004",
			fmt.Sprintf("P%04d", i), 1, 100+i*10, 50.0, 0))
	}

	rows := computeSlowMovers(records)
	if len(rows) != slowMoverLimit {
		t.Fatalf("rows = %d, want capped at %d", len(rows), slowMoverLimit)
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].AvgOverstock > rows[i-1].AvgOverstock {
			t.Fatalf("rows not ordered by overstock DESC at %d", i)
		}
	}
	// The least overstocked products fall off the end.
	if rows[0].ProductID != "P0024" {
		t.Errorf("rows[0].ProductID = %s, want the worst offender P0024", rows[0].ProductID)
	}
}

func TestComputeSlowMoversMetrics(t *testing.T) {
	records := []*domain.TransactionRecord{
		tr("Furniture", "West", "S004", "P0301", 5, 200, 450.0, 0),
		tr("Furniture", "West", "S004", "P0301", 8, 210, 450.0, 0),
	}

	rows := computeSlowMovers(records)
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	r := rows[0]
	assertFloat(t, "AvgInventoryLevel", r.AvgInventoryLevel, 205)
	assertFloat(t, "AvgUnitsSold", r.AvgUnitsSold, 6.5)
	assertFloat(t, "AvgOverstock", r.AvgOverstock, 198.5)
	assertFloat(t, "SellThroughRate", r.SellThroughRate, 3.17) // 6.5/205, rounded
}

func TestComputeCapitalTieUp(t *testing.T) {
	records := []*domain.TransactionRecord{
		// 195 excess units at 450 and 10 excess at 450 in one group.
		tr("Furniture", "West", "S004", "P0301", 5, 200, 450.0, 0),
		tr("Furniture", "West", "S004", "P0302", 10, 20, 450.0, 0),
		// Sold out: no capital tied up, group must not appear.
		tr("Groceries", "North", "S001", "P0001", 50, 50, 5.0, 0),
		// Oversold: also excluded.
		tr("Toys", "South", "S002", "P0101", 60, 40, 20.0, 0),
	}

	rows := computeCapitalTieUp(records)
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want only the Furniture/West group", len(rows))
	}

	r := rows[0]
	if r.Category != "Furniture" || r.Region != "West" {
		t.Errorf("group = %s/%s, want Furniture/West", r.Category, r.Region)
	}
	if r.OverstockRows != 2 || r.OverstockUnits != 205 {
		t.Errorf("rows/units = %d/%d, want 2/205", r.OverstockRows, r.OverstockUnits)
	}
	assertFloat(t, "TiedUpCapital", r.TiedUpCapital, 205*450.0)
}

func TestComputeCapitalTieUpOrdering(t *testing.T) {
	records := []*domain.TransactionRecord{
		tr("Cheap", "North", "S001", "P0001", 0, 10, 1.0, 0),
		tr("Pricey", "North", "S001", "P0002", 0, 10, 100.0, 0),
	}

	rows := computeCapitalTieUp(records)
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].Category != "Pricey" {
		t.Errorf("rows[0].Category = %s, want Pricey (capital DESC)", rows[0].Category)
	}
}
