package metrics

import (
	"math"
	"testing"

	"retail-metrics-lab/internal/domain"
)

// tr builds a minimal transaction record for compute tests. Fields not
// covered by the parameters can be set on the returned value.
func tr(category, region, store, product string, units, inventory int, price, discount float64) *domain.TransactionRecord {
	return &domain.TransactionRecord{
		StoreID:        store,
		ProductID:      product,
		Category:       category,
		Region:         region,
		InventoryLevel: inventory,
		UnitsSold:      units,
		DemandForecast: float64(units),
		Price:          price,
		Discount:       discount,
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func assertFloat(t *testing.T, name string, got, want float64) {
	t.Helper()
	if !almostEqual(got, want) {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}
