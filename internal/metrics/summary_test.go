package metrics

import (
	"testing"

	"retail-metrics-lab/internal/domain"
)

func summaryByName(rows []SummaryMetric) map[string]SummaryMetric {
	m := make(map[string]SummaryMetric, len(rows))
	for _, r := range rows {
		m[r.Name] = r
	}
	return m
}

func TestComputeSummary(t *testing.T) {
	records := []*domain.TransactionRecord{
		tr("Toys", "North", "S001", "P0001", 10, 50, 20.0, 10), // gross 200, net 180
		tr("Toys", "North", "S001", "P0002", 5, 20, 10.0, 0),   // gross 50, net 50
	}

	rows := computeSummary(records)
	byName := summaryByName(rows)

	assertFloat(t, "total_gross_revenue", byName[MetricTotalGrossRevenue].Value, 250)
	assertFloat(t, "total_net_revenue", byName[MetricTotalNetRevenue].Value, 230)
	assertFloat(t, "total_units_sold", byName[MetricTotalUnitsSold].Value, 15)
	// Per-row margins 90 and 100 average to 95.
	assertFloat(t, "avg_profit_margin", byName[MetricAvgProfitMargin].Value, 95)
	// Per-row turnover 10/50 and 5/20 average to 0.23 after rounding.
	assertFloat(t, "avg_turnover_ratio", byName[MetricAvgTurnoverRatio].Value, 0.23)
	// Excess 40 units at 20.00 plus 15 units at 10.00.
	assertFloat(t, "overstock_capital", byName[MetricOverstockCapital].Value, 950)

	if byName[MetricTotalGrossRevenue].Unit != "currency" {
		t.Errorf("gross unit = %s, want currency", byName[MetricTotalGrossRevenue].Unit)
	}
	if byName[MetricAvgProfitMargin].Unit != "percent" {
		t.Errorf("margin unit = %s, want percent", byName[MetricAvgProfitMargin].Unit)
	}
}

func TestComputeSummaryIndependentGuards(t *testing.T) {
	// Zero-sale rows with inventory: no margin average, but the turnover
	// average and overstock capital still apply.
	records := []*domain.TransactionRecord{
		tr("Toys", "North", "S001", "P0001", 0, 50, 20.0, 0),
	}

	rows := computeSummary(records)
	byName := summaryByName(rows)

	if _, ok := byName[MetricAvgProfitMargin]; ok {
		t.Error("avg_profit_margin reported with no revenue-carrying rows")
	}
	if _, ok := byName[MetricAvgTurnoverRatio]; !ok {
		t.Error("avg_turnover_ratio missing despite inventory-carrying rows")
	}
	assertFloat(t, "overstock_capital", byName[MetricOverstockCapital].Value, 1000)
	assertFloat(t, "total_gross_revenue", byName[MetricTotalGrossRevenue].Value, 0)
}

func TestComputeSummaryEmptyInput(t *testing.T) {
	if rows := computeSummary(nil); len(rows) != 0 {
		t.Errorf("rows = %d, want none for empty input", len(rows))
	}
}
