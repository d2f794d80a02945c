package reporting

import (
	"fmt"
	"strings"

	"retail-metrics-lab/internal/domain"
	"retail-metrics-lab/internal/metrics"
)

// Snapshots flattens every view into analytical store rows. Each view row
// becomes one snapshot per metric, sharing the report timestamp so one
// report run can be reconstructed from the store.
func Snapshots(r *Report) []*domain.ViewSnapshot {
	computedAt := r.GeneratedAt.UnixMilli()
	var out []*domain.ViewSnapshot

	add := func(view, groupKey, metric string, value float64) {
		out = append(out, &domain.ViewSnapshot{
			ViewName:    view,
			GroupKey:    groupKey,
			MetricName:  metric,
			MetricValue: value,
			ComputedAt:  computedAt,
		})
	}
	addOptional := func(view, groupKey, metric string, value *float64) {
		if value != nil {
			add(view, groupKey, metric, *value)
		}
	}

	for _, p := range r.Views.ProfitByCategory {
		k := groupKey(p.Category)
		add(metrics.ViewProfitByCategory, k, "transactions", float64(p.Transactions))
		add(metrics.ViewProfitByCategory, k, "total_units_sold", float64(p.TotalUnitsSold))
		add(metrics.ViewProfitByCategory, k, "gross_revenue", p.GrossRevenue)
		add(metrics.ViewProfitByCategory, k, "net_revenue", p.NetRevenue)
		add(metrics.ViewProfitByCategory, k, "profit_margin", p.ProfitMargin)
	}

	for _, p := range r.Views.ProfitByCategoryRegion {
		k := groupKey(p.Category, p.Region)
		add(metrics.ViewProfitByCategoryRegion, k, "gross_revenue", p.GrossRevenue)
		add(metrics.ViewProfitByCategoryRegion, k, "net_revenue", p.NetRevenue)
		add(metrics.ViewProfitByCategoryRegion, k, "profit_margin", p.ProfitMargin)
	}

	for _, t := range r.Views.TurnoverByCategory {
		k := groupKey(t.Category)
		add(metrics.ViewTurnoverByCategory, k, "turnover_ratio", t.TurnoverRatio)
		add(metrics.ViewTurnoverByCategory, k, "avg_inventory_level", t.AvgInventoryLevel)
		add(metrics.ViewTurnoverByCategory, k, "avg_overstock", t.AvgOverstock)
		addOptional(metrics.ViewTurnoverByCategory, k, "avg_profit_margin", t.AvgProfitMargin)
	}

	for _, t := range r.Views.TurnoverByStore {
		k := groupKey(t.StoreID, t.Category)
		add(metrics.ViewTurnoverByStore, k, "turnover_ratio", t.TurnoverRatio)
		add(metrics.ViewTurnoverByStore, k, "avg_inventory_level", t.AvgInventoryLevel)
		addOptional(metrics.ViewTurnoverByStore, k, "avg_profit_margin", t.AvgProfitMargin)
	}

	for _, s := range r.Views.SeasonalPerformance {
		k := groupKey(s.Seasonality, s.Category)
		add(metrics.ViewSeasonalPerformance, k, "net_revenue", s.NetRevenue)
		add(metrics.ViewSeasonalPerformance, k, "total_units_sold", float64(s.TotalUnitsSold))
		add(metrics.ViewSeasonalPerformance, k, "demand_fulfillment", s.DemandFulfillment)
	}

	for _, w := range r.Views.WeatherPerformance {
		k := groupKey(w.Seasonality, w.WeatherCondition)
		add(metrics.ViewWeatherPerformance, k, "avg_units_sold", w.AvgUnitsSold)
		add(metrics.ViewWeatherPerformance, k, "demand_fulfillment", w.DemandFulfillment)
	}

	for _, m := range r.Views.SlowMovers {
		k := groupKey(m.ProductID, m.Category, m.StoreID, m.Region)
		add(metrics.ViewSlowMovers, k, "avg_inventory_level", m.AvgInventoryLevel)
		add(metrics.ViewSlowMovers, k, "sell_through_rate", m.SellThroughRate)
		add(metrics.ViewSlowMovers, k, "avg_overstock", m.AvgOverstock)
	}

	for _, c := range r.Views.CapitalTieUp {
		k := groupKey(c.Category, c.Region)
		add(metrics.ViewCapitalTieUp, k, "overstock_units", float64(c.OverstockUnits))
		add(metrics.ViewCapitalTieUp, k, "tied_up_capital", c.TiedUpCapital)
	}

	for _, f := range r.Views.ForecastAccuracy {
		k := groupKey(f.Category, f.Region)
		add(metrics.ViewForecastAccuracy, k, "mean_error", f.MeanError)
		add(metrics.ViewForecastAccuracy, k, "mean_absolute_error", f.MeanAbsoluteError)
		add(metrics.ViewForecastAccuracy, k, "mean_absolute_pct_error", f.MeanAbsolutePctError)
		add(metrics.ViewForecastAccuracy, k, "underforecast_rate", f.UnderforecastRate)
	}

	for _, p := range r.Views.PromotionSplit {
		k := groupKey(p.Category, fmt.Sprintf("%t", p.HolidayPromotion))
		add(metrics.ViewPromotionSplit, k, "avg_units_sold", p.AvgUnitsSold)
		add(metrics.ViewPromotionSplit, k, "net_revenue", p.NetRevenue)
	}

	for _, d := range r.Views.DiscountTiers {
		k := groupKey(d.Category, string(d.Tier))
		add(metrics.ViewDiscountTiers, k, "avg_units_sold", d.AvgUnitsSold)
		add(metrics.ViewDiscountTiers, k, "net_revenue", d.NetRevenue)
		add(metrics.ViewDiscountTiers, k, "profit_margin", d.ProfitMargin)
	}

	for _, p := range r.Views.PricePosition {
		k := groupKey(p.Category, p.Region)
		add(metrics.ViewPricePosition, k, "avg_price_delta", p.AvgPriceDelta)
		add(metrics.ViewPricePosition, k, "avg_premium_pct", p.AvgPremiumPct)
	}

	for _, p := range r.Views.TopPerformers {
		k := groupKey(p.ProductID, p.Category, p.StoreID, p.Region)
		add(metrics.ViewTopPerformers, k, "net_revenue", p.NetRevenue)
		addOptional(metrics.ViewTopPerformers, k, "profit_margin", p.ProfitMargin)
	}

	for _, p := range r.Views.BottomPerformers {
		k := groupKey(p.ProductID, p.Category, p.StoreID, p.Region)
		add(metrics.ViewBottomPerformers, k, "net_revenue", p.NetRevenue)
		addOptional(metrics.ViewBottomPerformers, k, "profit_margin", p.ProfitMargin)
	}

	for _, m := range r.Views.Summary {
		add(metrics.ViewSummary, groupKey("total"), m.Name, m.Value)
	}

	return out
}

// groupKey joins group dimensions with a pipe, matching the record id
// convention used elsewhere.
func groupKey(parts ...string) string {
	return strings.Join(parts, "|")
}
