package metrics

import (
	"sort"

	"retail-metrics-lab/internal/domain"
)

// performerLimit caps the top/bottom performer views.
const performerLimit = 10

// ProductPerformance is one row of the top/bottom performer views, keyed
// by product×category×store×region.
type ProductPerformance struct {
	ProductID string
	Category  string
	StoreID   string
	Region    string

	Transactions   int
	TotalUnitsSold int
	GrossRevenue   float64
	NetRevenue     float64
	ProfitMargin   *float64 // nil for zero-revenue groups (possible in the bottom view)
}

type performerAccumulator struct {
	transactions int
	units        int
	gross        float64
	net          float64
}

type performerKey struct{ product, category, store, region string }

func accumulatePerformers(records []*domain.TransactionRecord, includeZeroSales bool) map[performerKey]*performerAccumulator {
	acc := make(map[performerKey]*performerAccumulator)
	for _, t := range records {
		if !includeZeroSales && t.UnitsSold == 0 {
			continue
		}
		k := performerKey{t.ProductID, t.Category, t.StoreID, t.Region}
		a, ok := acc[k]
		if !ok {
			a = &performerAccumulator{}
			acc[k] = a
		}
		a.transactions++
		a.units += t.UnitsSold
		a.gross += t.GrossRevenue()
		a.net += t.NetRevenue()
	}
	return acc
}

func performerRows(acc map[performerKey]*performerAccumulator) []ProductPerformance {
	rows := make([]ProductPerformance, 0, len(acc))
	for k, a := range acc {
		margin := ratio(a.net, a.gross)
		if margin != nil {
			v := *margin * 100
			margin = &v
		}
		rows = append(rows, ProductPerformance{
			ProductID:      k.product,
			Category:       k.category,
			StoreID:        k.store,
			Region:         k.region,
			Transactions:   a.transactions,
			TotalUnitsSold: a.units,
			GrossRevenue:   a.gross,
			NetRevenue:     a.net,
			ProfitMargin:   margin,
		})
	}
	return rows
}

func performerTiebreak(a, b *ProductPerformance) bool {
	if a.ProductID != b.ProductID {
		return a.ProductID < b.ProductID
	}
	if a.StoreID != b.StoreID {
		return a.StoreID < b.StoreID
	}
	return a.Region < b.Region
}

func finalizePerformers(rows []ProductPerformance) []ProductPerformance {
	if len(rows) > performerLimit {
		rows = rows[:performerLimit]
	}
	for i := range rows {
		rows[i].GrossRevenue = round2(rows[i].GrossRevenue)
		rows[i].NetRevenue = round2(rows[i].NetRevenue)
		rows[i].ProfitMargin = round2Ptr(rows[i].ProfitMargin)
	}
	return rows
}

// computeTopPerformers returns the top 10 product/store groups by net
// revenue DESC over rows with actual sales (units_sold > 0).
func computeTopPerformers(records []*domain.TransactionRecord) []ProductPerformance {
	rows := performerRows(accumulatePerformers(records, false))

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].NetRevenue != rows[j].NetRevenue {
			return rows[i].NetRevenue > rows[j].NetRevenue
		}
		return performerTiebreak(&rows[i], &rows[j])
	})

	return finalizePerformers(rows)
}

// computeBottomPerformers returns the bottom 10 by net revenue ASC.
// Unlike the top view it admits zero-sale groups: a product that never
// sold is exactly what this view exists to surface.
func computeBottomPerformers(records []*domain.TransactionRecord) []ProductPerformance {
	rows := performerRows(accumulatePerformers(records, true))

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].NetRevenue != rows[j].NetRevenue {
			return rows[i].NetRevenue < rows[j].NetRevenue
		}
		return performerTiebreak(&rows[i], &rows[j])
	})

	return finalizePerformers(rows)
}
