package metrics

import (
	"sort"

	"retail-metrics-lab/internal/domain"
)

// CategoryTurnover is one row of the inventory-turnover-by-category view.
type CategoryTurnover struct {
	Category string

	Transactions      int
	TotalUnitsSold    int
	AvgInventoryLevel float64
	TurnoverRatio     float64  // total units sold / avg inventory level
	AvgOverstock      float64  // per-row overstock floored at zero, averaged
	AvgProfitMargin   *float64 // nil when the group carries no gross revenue
}

// StoreTurnover is the store+category variant.
type StoreTurnover struct {
	StoreID  string
	Category string

	Transactions      int
	TotalUnitsSold    int
	AvgInventoryLevel float64
	TurnoverRatio     float64
	AvgOverstock      float64
	AvgProfitMargin   *float64
}

type turnoverAccumulator struct {
	transactions int
	units        int
	sumInventory int
	sumOverstock int
	gross        float64
	net          float64
}

func (a *turnoverAccumulator) add(t *domain.TransactionRecord) {
	a.transactions++
	a.units += t.UnitsSold
	a.sumInventory += t.InventoryLevel
	a.sumOverstock += t.Overstock()
	a.gross += t.GrossRevenue()
	a.net += t.NetRevenue()
}

// avgInventory is the turnover denominator. Groups where it is zero are
// never emitted (division guard, same effect as HAVING avg_inventory_level > 0).
func (a *turnoverAccumulator) avgInventory() float64 {
	return float64(a.sumInventory) / float64(a.transactions)
}

func (a *turnoverAccumulator) margin() *float64 {
	m := ratio(a.net, a.gross)
	if m == nil {
		return nil
	}
	v := *m * 100
	return &v
}

// computeTurnoverByCategory groups the whole table by category.
// Ordered by turnover ratio DESC, category ASC.
func computeTurnoverByCategory(records []*domain.TransactionRecord) []CategoryTurnover {
	acc := make(map[string]*turnoverAccumulator)
	for _, t := range records {
		a, ok := acc[t.Category]
		if !ok {
			a = &turnoverAccumulator{}
			acc[t.Category] = a
		}
		a.add(t)
	}

	rows := make([]CategoryTurnover, 0, len(acc))
	for category, a := range acc {
		avgInv := a.avgInventory()
		if avgInv <= 0 {
			continue
		}
		rows = append(rows, CategoryTurnover{
			Category:          category,
			Transactions:      a.transactions,
			TotalUnitsSold:    a.units,
			AvgInventoryLevel: avgInv,
			TurnoverRatio:     float64(a.units) / avgInv,
			AvgOverstock:      float64(a.sumOverstock) / float64(a.transactions),
			AvgProfitMargin:   a.margin(),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TurnoverRatio != rows[j].TurnoverRatio {
			return rows[i].TurnoverRatio > rows[j].TurnoverRatio
		}
		return rows[i].Category < rows[j].Category
	})

	for i := range rows {
		rows[i].AvgInventoryLevel = round2(rows[i].AvgInventoryLevel)
		rows[i].TurnoverRatio = round2(rows[i].TurnoverRatio)
		rows[i].AvgOverstock = round2(rows[i].AvgOverstock)
		rows[i].AvgProfitMargin = round2Ptr(rows[i].AvgProfitMargin)
	}
	return rows
}

// computeTurnoverByStore groups by store+category and applies the
// avg_inventory_level > 0 guard. Ordered by turnover ratio DESC,
// store ASC, category ASC.
func computeTurnoverByStore(records []*domain.TransactionRecord) []StoreTurnover {
	type key struct{ store, category string }

	acc := make(map[key]*turnoverAccumulator)
	for _, t := range records {
		k := key{t.StoreID, t.Category}
		a, ok := acc[k]
		if !ok {
			a = &turnoverAccumulator{}
			acc[k] = a
		}
		a.add(t)
	}

	rows := make([]StoreTurnover, 0, len(acc))
	for k, a := range acc {
		avgInv := a.avgInventory()
		if avgInv <= 0 {
			continue
		}
		rows = append(rows, StoreTurnover{
			StoreID:           k.store,
			Category:          k.category,
			Transactions:      a.transactions,
			TotalUnitsSold:    a.units,
			AvgInventoryLevel: avgInv,
			TurnoverRatio:     float64(a.units) / avgInv,
			AvgOverstock:      float64(a.sumOverstock) / float64(a.transactions),
			AvgProfitMargin:   a.margin(),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TurnoverRatio != rows[j].TurnoverRatio {
			return rows[i].TurnoverRatio > rows[j].TurnoverRatio
		}
		if rows[i].StoreID != rows[j].StoreID {
			return rows[i].StoreID < rows[j].StoreID
		}
		return rows[i].Category < rows[j].Category
	})

	for i := range rows {
		rows[i].AvgInventoryLevel = round2(rows[i].AvgInventoryLevel)
		rows[i].TurnoverRatio = round2(rows[i].TurnoverRatio)
		rows[i].AvgOverstock = round2(rows[i].AvgOverstock)
		rows[i].AvgProfitMargin = round2Ptr(rows[i].AvgProfitMargin)
	}
	return rows
}
