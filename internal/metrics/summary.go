package metrics

import "retail-metrics-lab/internal/domain"

// Summary metric names, in report order.
const (
	MetricTotalGrossRevenue = "total_gross_revenue"
	MetricTotalNetRevenue   = "total_net_revenue"
	MetricTotalUnitsSold    = "total_units_sold"
	MetricAvgProfitMargin   = "avg_profit_margin"
	MetricAvgTurnoverRatio  = "avg_turnover_ratio"
	MetricOverstockCapital  = "overstock_capital"
)

// SummaryMetric is one scalar of the executive summary.
type SummaryMetric struct {
	Name  string
	Value float64
	Unit  string // "currency", "units", "percent", "ratio"
}

// computeSummary produces the executive summary scalar list. Each scalar
// applies its own zero guard independently: the margin average counts only
// rows with gross revenue, the turnover average only rows with inventory.
// Averages whose guard leaves no qualifying rows are omitted, not
// zero-filled. Empty input yields an empty list.
func computeSummary(records []*domain.TransactionRecord) []SummaryMetric {
	if len(records) == 0 {
		return nil
	}

	var (
		gross, net       float64
		units            int
		sumMargin        float64
		marginRows       int
		sumTurnover      float64
		turnoverRows     int
		overstockCapital float64
	)

	for _, t := range records {
		units += t.UnitsSold

		if t.UnitsSold > 0 {
			gross += t.GrossRevenue()
			net += t.NetRevenue()
		}

		if rowGross := t.GrossRevenue(); rowGross > 0 {
			sumMargin += t.NetRevenue() / rowGross * 100
			marginRows++
		}

		if t.InventoryLevel > 0 {
			sumTurnover += float64(t.UnitsSold) / float64(t.InventoryLevel)
			turnoverRows++
		}

		if t.InventoryLevel > t.UnitsSold {
			overstockCapital += float64(t.InventoryLevel-t.UnitsSold) * t.Price
		}
	}

	metrics := []SummaryMetric{
		{Name: MetricTotalGrossRevenue, Value: round2(gross), Unit: "currency"},
		{Name: MetricTotalNetRevenue, Value: round2(net), Unit: "currency"},
		{Name: MetricTotalUnitsSold, Value: float64(units), Unit: "units"},
	}

	if marginRows > 0 {
		metrics = append(metrics, SummaryMetric{
			Name:  MetricAvgProfitMargin,
			Value: round2(sumMargin / float64(marginRows)),
			Unit:  "percent",
		})
	}
	if turnoverRows > 0 {
		metrics = append(metrics, SummaryMetric{
			Name:  MetricAvgTurnoverRatio,
			Value: round2(sumTurnover / float64(turnoverRows)),
			Unit:  "ratio",
		})
	}

	metrics = append(metrics, SummaryMetric{
		Name:  MetricOverstockCapital,
		Value: round2(overstockCapital),
		Unit:  "currency",
	})

	return metrics
}
