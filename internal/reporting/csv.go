package reporting

import (
	"fmt"
	"strings"

	"retail-metrics-lab/internal/metrics"
)

// CSVFiles renders every view as its own CSV document, keyed by a file
// name suitable for writing to the report output directory.
func CSVFiles(r *Report) map[string]string {
	return map[string]string{
		"profit_by_category.csv":        renderProfitByCategoryCSV(r.Views.ProfitByCategory),
		"profit_by_category_region.csv": renderProfitByRegionCSV(r.Views.ProfitByCategoryRegion),
		"turnover_by_category.csv":      renderCategoryTurnoverCSV(r.Views.TurnoverByCategory),
		"turnover_by_store.csv":         renderStoreTurnoverCSV(r.Views.TurnoverByStore),
		"seasonal_performance.csv":      renderSeasonalCSV(r.Views.SeasonalPerformance),
		"weather_performance.csv":       renderWeatherCSV(r.Views.WeatherPerformance),
		"slow_movers.csv":               renderSlowMoversCSV(r.Views.SlowMovers),
		"capital_tie_up.csv":            renderCapitalCSV(r.Views.CapitalTieUp),
		"forecast_accuracy.csv":         renderForecastCSV(r.Views.ForecastAccuracy),
		"promotion_split.csv":           renderPromotionCSV(r.Views.PromotionSplit),
		"discount_tiers.csv":            renderTiersCSV(r.Views.DiscountTiers),
		"price_position.csv":            renderPricingCSV(r.Views.PricePosition),
		"top_performers.csv":            renderPerformersCSV(r.Views.TopPerformers),
		"bottom_performers.csv":         renderPerformersCSV(r.Views.BottomPerformers),
		"executive_summary.csv":         renderSummaryCSV(r.Views.Summary),
	}
}

func renderProfitByCategoryCSV(rows []metrics.CategoryProfit) string {
	var sb strings.Builder
	sb.WriteString("category,transactions,total_units_sold,gross_revenue,discount_amount,net_revenue,avg_price,avg_discount,profit_margin\n")
	for _, p := range rows {
		sb.WriteString(fmt.Sprintf("%s,%d,%d,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f\n",
			p.Category, p.Transactions, p.TotalUnitsSold, p.GrossRevenue,
			p.DiscountAmount, p.NetRevenue, p.AvgPrice, p.AvgDiscount, p.ProfitMargin))
	}
	return sb.String()
}

func renderProfitByRegionCSV(rows []metrics.RegionProfit) string {
	var sb strings.Builder
	sb.WriteString("category,region,transactions,total_units_sold,gross_revenue,discount_amount,net_revenue,avg_price,avg_discount,profit_margin\n")
	for _, p := range rows {
		sb.WriteString(fmt.Sprintf("%s,%s,%d,%d,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f\n",
			p.Category, p.Region, p.Transactions, p.TotalUnitsSold, p.GrossRevenue,
			p.DiscountAmount, p.NetRevenue, p.AvgPrice, p.AvgDiscount, p.ProfitMargin))
	}
	return sb.String()
}

func renderCategoryTurnoverCSV(rows []metrics.CategoryTurnover) string {
	var sb strings.Builder
	sb.WriteString("category,transactions,total_units_sold,avg_inventory_level,turnover_ratio,avg_overstock,avg_profit_margin\n")
	for _, t := range rows {
		sb.WriteString(fmt.Sprintf("%s,%d,%d,%.2f,%.2f,%.2f,%s\n",
			t.Category, t.Transactions, t.TotalUnitsSold, t.AvgInventoryLevel,
			t.TurnoverRatio, t.AvgOverstock, csvOptional(t.AvgProfitMargin)))
	}
	return sb.String()
}

func renderStoreTurnoverCSV(rows []metrics.StoreTurnover) string {
	var sb strings.Builder
	sb.WriteString("store_id,category,transactions,total_units_sold,avg_inventory_level,turnover_ratio,avg_overstock,avg_profit_margin\n")
	for _, t := range rows {
		sb.WriteString(fmt.Sprintf("%s,%s,%d,%d,%.2f,%.2f,%.2f,%s\n",
			t.StoreID, t.Category, t.Transactions, t.TotalUnitsSold, t.AvgInventoryLevel,
			t.TurnoverRatio, t.AvgOverstock, csvOptional(t.AvgProfitMargin)))
	}
	return sb.String()
}

func renderSeasonalCSV(rows []metrics.SeasonCategoryPerformance) string {
	var sb strings.Builder
	sb.WriteString("seasonality,category,transactions,total_units_sold,net_revenue,avg_price,avg_demand_forecast,demand_fulfillment\n")
	for _, s := range rows {
		sb.WriteString(fmt.Sprintf("%s,%s,%d,%d,%.2f,%.2f,%.2f,%.2f\n",
			s.Seasonality, s.Category, s.Transactions, s.TotalUnitsSold,
			s.NetRevenue, s.AvgPrice, s.AvgDemandForecast, s.DemandFulfillment))
	}
	return sb.String()
}

func renderWeatherCSV(rows []metrics.SeasonWeatherPerformance) string {
	var sb strings.Builder
	sb.WriteString("seasonality,weather_condition,transactions,total_units_sold,avg_units_sold,demand_fulfillment\n")
	for _, w := range rows {
		sb.WriteString(fmt.Sprintf("%s,%s,%d,%d,%.2f,%.2f\n",
			w.Seasonality, w.WeatherCondition, w.Transactions, w.TotalUnitsSold,
			w.AvgUnitsSold, w.DemandFulfillment))
	}
	return sb.String()
}

func renderSlowMoversCSV(rows []metrics.SlowMover) string {
	var sb strings.Builder
	sb.WriteString("product_id,category,store_id,region,transactions,avg_inventory_level,avg_units_sold,sell_through_rate,avg_overstock\n")
	for _, m := range rows {
		sb.WriteString(fmt.Sprintf("%s,%s,%s,%s,%d,%.2f,%.2f,%.2f,%.2f\n",
			m.ProductID, m.Category, m.StoreID, m.Region, m.Transactions,
			m.AvgInventoryLevel, m.AvgUnitsSold, m.SellThroughRate, m.AvgOverstock))
	}
	return sb.String()
}

func renderCapitalCSV(rows []metrics.CapitalTieUp) string {
	var sb strings.Builder
	sb.WriteString("category,region,overstock_rows,overstock_units,tied_up_capital\n")
	for _, c := range rows {
		sb.WriteString(fmt.Sprintf("%s,%s,%d,%d,%.2f\n",
			c.Category, c.Region, c.OverstockRows, c.OverstockUnits, c.TiedUpCapital))
	}
	return sb.String()
}

func renderForecastCSV(rows []metrics.ForecastAccuracy) string {
	var sb strings.Builder
	sb.WriteString("category,region,transactions,mean_error,mean_absolute_error,mean_absolute_pct_error,underforecast_rate\n")
	for _, f := range rows {
		sb.WriteString(fmt.Sprintf("%s,%s,%d,%.2f,%.2f,%.2f,%.2f\n",
			f.Category, f.Region, f.Transactions, f.MeanError,
			f.MeanAbsoluteError, f.MeanAbsolutePctError, f.UnderforecastRate))
	}
	return sb.String()
}

func renderPromotionCSV(rows []metrics.PromotionSplit) string {
	var sb strings.Builder
	sb.WriteString("category,holiday_promotion,transactions,avg_units_sold,avg_price,avg_discount,net_revenue\n")
	for _, p := range rows {
		sb.WriteString(fmt.Sprintf("%s,%t,%d,%.2f,%.2f,%.2f,%.2f\n",
			p.Category, p.HolidayPromotion, p.Transactions, p.AvgUnitsSold,
			p.AvgPrice, p.AvgDiscount, p.NetRevenue))
	}
	return sb.String()
}

func renderTiersCSV(rows []metrics.DiscountTierStats) string {
	var sb strings.Builder
	sb.WriteString("category,discount_tier,transactions,avg_units_sold,total_units_sold,gross_revenue,net_revenue,profit_margin\n")
	for _, d := range rows {
		sb.WriteString(fmt.Sprintf("%s,%s,%d,%.2f,%d,%.2f,%.2f,%.2f\n",
			d.Category, d.Tier, d.Transactions, d.AvgUnitsSold,
			d.TotalUnitsSold, d.GrossRevenue, d.NetRevenue, d.ProfitMargin))
	}
	return sb.String()
}

func renderPricingCSV(rows []metrics.PricePosition) string {
	var sb strings.Builder
	sb.WriteString("category,region,transactions,avg_price,avg_competitor_price,avg_price_delta,avg_premium_pct\n")
	for _, p := range rows {
		sb.WriteString(fmt.Sprintf("%s,%s,%d,%.2f,%.2f,%.2f,%.2f\n",
			p.Category, p.Region, p.Transactions, p.AvgPrice,
			p.AvgCompetitorPrice, p.AvgPriceDelta, p.AvgPremiumPct))
	}
	return sb.String()
}

func renderPerformersCSV(rows []metrics.ProductPerformance) string {
	var sb strings.Builder
	sb.WriteString("product_id,category,store_id,region,transactions,total_units_sold,gross_revenue,net_revenue,profit_margin\n")
	for _, p := range rows {
		sb.WriteString(fmt.Sprintf("%s,%s,%s,%s,%d,%d,%.2f,%.2f,%s\n",
			p.ProductID, p.Category, p.StoreID, p.Region, p.Transactions,
			p.TotalUnitsSold, p.GrossRevenue, p.NetRevenue, csvOptional(p.ProfitMargin)))
	}
	return sb.String()
}

func renderSummaryCSV(rows []metrics.SummaryMetric) string {
	var sb strings.Builder
	sb.WriteString("metric,value,unit\n")
	for _, m := range rows {
		sb.WriteString(fmt.Sprintf("%s,%.2f,%s\n", m.Name, m.Value, m.Unit))
	}
	return sb.String()
}

// csvOptional renders a nullable metric, empty when absent.
func csvOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *v)
}
