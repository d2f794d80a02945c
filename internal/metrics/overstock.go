package metrics

import (
	"sort"

	"retail-metrics-lab/internal/domain"
)

const (
	// slowMoverLimit caps the slow-mover view at the worst offenders.
	slowMoverLimit = 20

	// overstockFactor: average inventory must exceed twice average sales.
	overstockFactor = 2.0

	// sellThroughThreshold: sell-through below 30% of inventory.
	sellThroughThreshold = 0.3
)

// SlowMover is one row of the slow-moving/overstock detection view.
// A group appears only when it fails BOTH health conditions: inventory more
// than 2x average sales AND sell-through under 30%.
type SlowMover struct {
	ProductID string
	Category  string
	StoreID   string
	Region    string

	Transactions      int
	AvgInventoryLevel float64
	AvgUnitsSold      float64
	SellThroughRate   float64 // percent
	AvgOverstock      float64
}

// CapitalTieUp is one row of the tied-up-capital view: the monetary value
// of excess inventory per category×region.
type CapitalTieUp struct {
	Category string
	Region   string

	OverstockRows  int // rows where inventory exceeded units sold
	OverstockUnits int
	TiedUpCapital  float64 // Σ (inventory - units_sold) * price over those rows
}

// computeSlowMovers groups by product×category×store×region over the whole
// table, flags dual-threshold offenders and returns the top N by average
// overstock DESC (ties broken by product, store ASC).
func computeSlowMovers(records []*domain.TransactionRecord) []SlowMover {
	type key struct{ product, category, store, region string }
	type slowAcc struct {
		transactions int
		sumInventory int
		sumUnits     int
		sumOverstock int
	}

	acc := make(map[key]*slowAcc)
	for _, t := range records {
		k := key{t.ProductID, t.Category, t.StoreID, t.Region}
		a, ok := acc[k]
		if !ok {
			a = &slowAcc{}
			acc[k] = a
		}
		a.transactions++
		a.sumInventory += t.InventoryLevel
		a.sumUnits += t.UnitsSold
		a.sumOverstock += t.Overstock()
	}

	var rows []SlowMover
	for k, a := range acc {
		n := float64(a.transactions)
		avgInv := float64(a.sumInventory) / n
		avgUnits := float64(a.sumUnits) / n

		// Both conditions required; a group failing either is healthy.
		if avgInv <= avgUnits*overstockFactor {
			continue
		}
		if avgInv == 0 || avgUnits/avgInv >= sellThroughThreshold {
			continue
		}

		rows = append(rows, SlowMover{
			ProductID:         k.product,
			Category:          k.category,
			StoreID:           k.store,
			Region:            k.region,
			Transactions:      a.transactions,
			AvgInventoryLevel: avgInv,
			AvgUnitsSold:      avgUnits,
			SellThroughRate:   avgUnits / avgInv * 100,
			AvgOverstock:      float64(a.sumOverstock) / n,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].AvgOverstock != rows[j].AvgOverstock {
			return rows[i].AvgOverstock > rows[j].AvgOverstock
		}
		if rows[i].ProductID != rows[j].ProductID {
			return rows[i].ProductID < rows[j].ProductID
		}
		return rows[i].StoreID < rows[j].StoreID
	})

	if len(rows) > slowMoverLimit {
		rows = rows[:slowMoverLimit]
	}

	for i := range rows {
		rows[i].AvgInventoryLevel = round2(rows[i].AvgInventoryLevel)
		rows[i].AvgUnitsSold = round2(rows[i].AvgUnitsSold)
		rows[i].SellThroughRate = round2(rows[i].SellThroughRate)
		rows[i].AvgOverstock = round2(rows[i].AvgOverstock)
	}
	return rows
}

// computeCapitalTieUp groups by category×region and sums overstock value
// over rows where inventory exceeded units sold. Groups with no such rows
// have no capital tied up and are not reported.
// Ordered by tied-up capital DESC, category ASC, region ASC.
func computeCapitalTieUp(records []*domain.TransactionRecord) []CapitalTieUp {
	type key struct{ category, region string }
	type capAcc struct {
		rows    int
		units   int
		capital float64
	}

	acc := make(map[key]*capAcc)
	for _, t := range records {
		if t.InventoryLevel <= t.UnitsSold {
			continue
		}
		k := key{t.Category, t.Region}
		a, ok := acc[k]
		if !ok {
			a = &capAcc{}
			acc[k] = a
		}
		excess := t.InventoryLevel - t.UnitsSold
		a.rows++
		a.units += excess
		a.capital += float64(excess) * t.Price
	}

	rows := make([]CapitalTieUp, 0, len(acc))
	for k, a := range acc {
		rows = append(rows, CapitalTieUp{
			Category:       k.category,
			Region:         k.region,
			OverstockRows:  a.rows,
			OverstockUnits: a.units,
			TiedUpCapital:  a.capital,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TiedUpCapital != rows[j].TiedUpCapital {
			return rows[i].TiedUpCapital > rows[j].TiedUpCapital
		}
		if rows[i].Category != rows[j].Category {
			return rows[i].Category < rows[j].Category
		}
		return rows[i].Region < rows[j].Region
	})

	for i := range rows {
		rows[i].TiedUpCapital = round2(rows[i].TiedUpCapital)
	}
	return rows
}
