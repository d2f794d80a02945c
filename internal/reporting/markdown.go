package reporting

import (
	"fmt"
	"strings"
	"time"

	"retail-metrics-lab/internal/metrics"
)

// RenderMarkdown renders the report as a Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Retail Performance Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))

	// Data Summary
	sb.WriteString("## Data Summary\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Total Records | %d |\n", r.DataSummary.TotalRecords))
	sb.WriteString(fmt.Sprintf("| Unique Stores | %d |\n", r.DataSummary.UniqueStores))
	sb.WriteString(fmt.Sprintf("| Unique Products | %d |\n", r.DataSummary.UniqueProducts))
	sb.WriteString(fmt.Sprintf("| Unique Categories | %d |\n", r.DataSummary.UniqueCategories))
	sb.WriteString(fmt.Sprintf("| Unique Regions | %d |\n", r.DataSummary.UniqueRegions))
	if !r.DataSummary.DateRangeStart.IsZero() {
		sb.WriteString(fmt.Sprintf("| Date Range | %s to %s |\n",
			r.DataSummary.DateRangeStart.Format("2006-01-02"),
			r.DataSummary.DateRangeEnd.Format("2006-01-02")))
	}
	sb.WriteString("\n")

	// Executive Summary
	sb.WriteString("## Executive Summary\n\n")
	if len(r.Views.Summary) > 0 {
		sb.WriteString("| Metric | Value | Unit |\n")
		sb.WriteString("|--------|-------|------|\n")
		for _, m := range r.Views.Summary {
			sb.WriteString(fmt.Sprintf("| %s | %.2f | %s |\n", m.Name, m.Value, m.Unit))
		}
	} else {
		sb.WriteString("No data available.\n")
	}
	sb.WriteString("\n")

	// Profit Margins
	sb.WriteString("## Profit Margin by Category\n\n")
	if len(r.Views.ProfitByCategory) > 0 {
		sb.WriteString("| Category | Transactions | Units | Gross | Net | Discount | AvgPrice | AvgDisc% | Margin% |\n")
		sb.WriteString("|----------|--------------|-------|-------|-----|----------|----------|----------|--------|\n")
		for _, p := range r.Views.ProfitByCategory {
			sb.WriteString(fmt.Sprintf("| %s | %d | %d | %.2f | %.2f | %.2f | %.2f | %.2f | %.2f |\n",
				p.Category, p.Transactions, p.TotalUnitsSold, p.GrossRevenue, p.NetRevenue,
				p.DiscountAmount, p.AvgPrice, p.AvgDiscount, p.ProfitMargin))
		}
	} else {
		sb.WriteString("No revenue-carrying transactions.\n")
	}
	sb.WriteString("\n")

	sb.WriteString("## Profit Margin by Category and Region\n\n")
	if len(r.Views.ProfitByCategoryRegion) > 0 {
		sb.WriteString("| Category | Region | Transactions | Units | Gross | Net | Margin% |\n")
		sb.WriteString("|----------|--------|--------------|-------|-------|-----|--------|\n")
		for _, p := range r.Views.ProfitByCategoryRegion {
			sb.WriteString(fmt.Sprintf("| %s | %s | %d | %d | %.2f | %.2f | %.2f |\n",
				p.Category, p.Region, p.Transactions, p.TotalUnitsSold,
				p.GrossRevenue, p.NetRevenue, p.ProfitMargin))
		}
	} else {
		sb.WriteString("No revenue-carrying transactions.\n")
	}
	sb.WriteString("\n")

	// Inventory Turnover
	sb.WriteString("## Inventory Turnover by Category\n\n")
	if len(r.Views.TurnoverByCategory) > 0 {
		sb.WriteString("| Category | Transactions | Units | AvgInventory | Turnover | AvgOverstock | Margin% |\n")
		sb.WriteString("|----------|--------------|-------|--------------|----------|--------------|--------|\n")
		for _, t := range r.Views.TurnoverByCategory {
			sb.WriteString(fmt.Sprintf("| %s | %d | %d | %.2f | %.2f | %.2f | %s |\n",
				t.Category, t.Transactions, t.TotalUnitsSold, t.AvgInventoryLevel,
				t.TurnoverRatio, t.AvgOverstock, fmtOptional(t.AvgProfitMargin)))
		}
	} else {
		sb.WriteString("No inventory-carrying groups.\n")
	}
	sb.WriteString("\n")

	sb.WriteString("## Inventory Turnover by Store\n\n")
	if len(r.Views.TurnoverByStore) > 0 {
		sb.WriteString("| Store | Category | Transactions | Units | AvgInventory | Turnover | Margin% |\n")
		sb.WriteString("|-------|----------|--------------|-------|--------------|----------|--------|\n")
		for _, t := range r.Views.TurnoverByStore {
			sb.WriteString(fmt.Sprintf("| %s | %s | %d | %d | %.2f | %.2f | %s |\n",
				t.StoreID, t.Category, t.Transactions, t.TotalUnitsSold,
				t.AvgInventoryLevel, t.TurnoverRatio, fmtOptional(t.AvgProfitMargin)))
		}
	} else {
		sb.WriteString("No inventory-carrying groups.\n")
	}
	sb.WriteString("\n")

	// Seasonal and Weather
	sb.WriteString("## Seasonal Performance\n\n")
	if len(r.Views.SeasonalPerformance) > 0 {
		sb.WriteString("| Season | Category | Transactions | Units | Net | AvgPrice | AvgForecast | Fulfillment% |\n")
		sb.WriteString("|--------|----------|--------------|-------|-----|----------|-------------|-------------|\n")
		for _, s := range r.Views.SeasonalPerformance {
			sb.WriteString(fmt.Sprintf("| %s | %s | %d | %d | %.2f | %.2f | %.2f | %.2f |\n",
				s.Seasonality, s.Category, s.Transactions, s.TotalUnitsSold,
				s.NetRevenue, s.AvgPrice, s.AvgDemandForecast, s.DemandFulfillment))
		}
	} else {
		sb.WriteString("No forecast-carrying transactions.\n")
	}
	sb.WriteString("\n")

	sb.WriteString("## Weather Performance\n\n")
	if len(r.Views.WeatherPerformance) > 0 {
		sb.WriteString("| Season | Weather | Transactions | Units | AvgUnits | Fulfillment% |\n")
		sb.WriteString("|--------|---------|--------------|-------|----------|-------------|\n")
		for _, w := range r.Views.WeatherPerformance {
			sb.WriteString(fmt.Sprintf("| %s | %s | %d | %d | %.2f | %.2f |\n",
				w.Seasonality, w.WeatherCondition, w.Transactions, w.TotalUnitsSold,
				w.AvgUnitsSold, w.DemandFulfillment))
		}
	} else {
		sb.WriteString("No forecast-carrying transactions.\n")
	}
	sb.WriteString("\n")

	// Overstock
	sb.WriteString("## Slow Movers\n\n")
	if len(r.Views.SlowMovers) > 0 {
		sb.WriteString("| Product | Category | Store | Region | Transactions | AvgInventory | AvgUnits | SellThrough% | AvgOverstock |\n")
		sb.WriteString("|---------|----------|-------|--------|--------------|--------------|----------|--------------|-------------|\n")
		for _, m := range r.Views.SlowMovers {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %d | %.2f | %.2f | %.2f | %.2f |\n",
				m.ProductID, m.Category, m.StoreID, m.Region, m.Transactions,
				m.AvgInventoryLevel, m.AvgUnitsSold, m.SellThroughRate, m.AvgOverstock))
		}
	} else {
		sb.WriteString("No slow-moving inventory detected.\n")
	}
	sb.WriteString("\n")

	sb.WriteString("## Tied-Up Capital\n\n")
	if len(r.Views.CapitalTieUp) > 0 {
		sb.WriteString("| Category | Region | Overstock Rows | Overstock Units | Capital |\n")
		sb.WriteString("|----------|--------|----------------|-----------------|--------|\n")
		for _, c := range r.Views.CapitalTieUp {
			sb.WriteString(fmt.Sprintf("| %s | %s | %d | %d | %.2f |\n",
				c.Category, c.Region, c.OverstockRows, c.OverstockUnits, c.TiedUpCapital))
		}
	} else {
		sb.WriteString("No excess inventory detected.\n")
	}
	sb.WriteString("\n")

	// Forecast Accuracy
	sb.WriteString("## Forecast Accuracy\n\n")
	if len(r.Views.ForecastAccuracy) > 0 {
		sb.WriteString("| Category | Region | Transactions | MeanErr | MAE | MAPE% | Underforecast% |\n")
		sb.WriteString("|----------|--------|--------------|---------|-----|-------|---------------|\n")
		for _, f := range r.Views.ForecastAccuracy {
			sb.WriteString(fmt.Sprintf("| %s | %s | %d | %.2f | %.2f | %.2f | %.2f |\n",
				f.Category, f.Region, f.Transactions, f.MeanError,
				f.MeanAbsoluteError, f.MeanAbsolutePctError, f.UnderforecastRate))
		}
	} else {
		sb.WriteString("No forecast-carrying transactions.\n")
	}
	sb.WriteString("\n")

	// Promotions and Discounts
	sb.WriteString("## Promotion Effectiveness\n\n")
	if len(r.Views.PromotionSplit) > 0 {
		sb.WriteString("| Category | Promoted | Transactions | AvgUnits | AvgPrice | AvgDisc% | Net |\n")
		sb.WriteString("|----------|----------|--------------|----------|----------|----------|-----|\n")
		for _, p := range r.Views.PromotionSplit {
			sb.WriteString(fmt.Sprintf("| %s | %t | %d | %.2f | %.2f | %.2f | %.2f |\n",
				p.Category, p.HolidayPromotion, p.Transactions, p.AvgUnitsSold,
				p.AvgPrice, p.AvgDiscount, p.NetRevenue))
		}
	} else {
		sb.WriteString("No transactions available.\n")
	}
	sb.WriteString("\n")

	sb.WriteString("## Discount Tiers\n\n")
	if len(r.Views.DiscountTiers) > 0 {
		sb.WriteString("| Category | Tier | Transactions | AvgUnits | Units | Gross | Net | Margin% |\n")
		sb.WriteString("|----------|------|--------------|----------|-------|-------|-----|--------|\n")
		for _, d := range r.Views.DiscountTiers {
			sb.WriteString(fmt.Sprintf("| %s | %s | %d | %.2f | %d | %.2f | %.2f | %.2f |\n",
				d.Category, d.Tier, d.Transactions, d.AvgUnitsSold,
				d.TotalUnitsSold, d.GrossRevenue, d.NetRevenue, d.ProfitMargin))
		}
	} else {
		sb.WriteString("No revenue-carrying transactions.\n")
	}
	sb.WriteString("\n")

	// Competitive Pricing
	sb.WriteString("## Price Position vs Competitors\n\n")
	if len(r.Views.PricePosition) > 0 {
		sb.WriteString("| Category | Region | Transactions | AvgPrice | AvgCompetitor | Delta | Premium% |\n")
		sb.WriteString("|----------|--------|--------------|----------|---------------|-------|---------|\n")
		for _, p := range r.Views.PricePosition {
			sb.WriteString(fmt.Sprintf("| %s | %s | %d | %.2f | %.2f | %.2f | %.2f |\n",
				p.Category, p.Region, p.Transactions, p.AvgPrice,
				p.AvgCompetitorPrice, p.AvgPriceDelta, p.AvgPremiumPct))
		}
	} else {
		sb.WriteString("No competitor pricing data available.\n")
	}
	sb.WriteString("\n")

	// Performers
	sb.WriteString("## Top Performers\n\n")
	writePerformerTable(&sb, r.Views.TopPerformers)

	sb.WriteString("## Bottom Performers\n\n")
	writePerformerTable(&sb, r.Views.BottomPerformers)

	return sb.String()
}

func writePerformerTable(sb *strings.Builder, rows []metrics.ProductPerformance) {
	if len(rows) == 0 {
		sb.WriteString("No transactions available.\n\n")
		return
	}
	sb.WriteString("| Product | Category | Store | Region | Transactions | Units | Gross | Net | Margin% |\n")
	sb.WriteString("|---------|----------|-------|--------|--------------|-------|-------|-----|--------|\n")
	for _, p := range rows {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %d | %d | %.2f | %.2f | %s |\n",
			p.ProductID, p.Category, p.StoreID, p.Region, p.Transactions,
			p.TotalUnitsSold, p.GrossRevenue, p.NetRevenue, fmtOptional(p.ProfitMargin)))
	}
	sb.WriteString("\n")
}

func fmtOptional(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *v)
}
