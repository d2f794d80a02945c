package metrics

import (
	"sort"

	"retail-metrics-lab/internal/domain"
)

// SeasonCategoryPerformance is one row of the season×category view.
type SeasonCategoryPerformance struct {
	Seasonality string
	Category    string

	Transactions      int
	TotalUnitsSold    int
	NetRevenue        float64
	AvgPrice          float64
	AvgDemandForecast float64
	DemandFulfillment float64 // percent, avg of per-row units/forecast ratios
}

// SeasonWeatherPerformance is one row of the season×weather view.
type SeasonWeatherPerformance struct {
	Seasonality      string
	WeatherCondition string

	Transactions      int
	TotalUnitsSold    int
	AvgUnitsSold      float64
	DemandFulfillment float64
}

type seasonalAccumulator struct {
	transactions    int
	units           int
	net             float64
	sumPrice        float64
	sumForecast     float64
	sumFulfillRatio float64 // per-row units/forecast, forecast>0 guaranteed by filter
}

func (a *seasonalAccumulator) add(t *domain.TransactionRecord) {
	a.transactions++
	a.units += t.UnitsSold
	a.net += t.NetRevenue()
	a.sumPrice += t.Price
	a.sumForecast += t.DemandForecast
	a.sumFulfillRatio += float64(t.UnitsSold) / t.DemandForecast
}

// Fulfillment is an average of per-row ratios, not a ratio of sums.
// The two differ whenever forecasts vary within a group; reported numbers
// follow the per-row form.
func (a *seasonalAccumulator) fulfillment() float64 {
	return a.sumFulfillRatio / float64(a.transactions) * 100
}

// computeSeasonalPerformance groups by seasonality×category over rows with
// units_sold > 0 and demand_forecast > 0 (zero forecasts cannot form a
// fulfillment ratio). Ordered by seasonality ASC, net revenue DESC,
// category ASC.
func computeSeasonalPerformance(records []*domain.TransactionRecord) []SeasonCategoryPerformance {
	type key struct{ season, category string }

	acc := make(map[key]*seasonalAccumulator)
	for _, t := range records {
		if t.UnitsSold == 0 || t.DemandForecast <= 0 {
			continue
		}
		k := key{t.Seasonality, t.Category}
		a, ok := acc[k]
		if !ok {
			a = &seasonalAccumulator{}
			acc[k] = a
		}
		a.add(t)
	}

	rows := make([]SeasonCategoryPerformance, 0, len(acc))
	for k, a := range acc {
		rows = append(rows, SeasonCategoryPerformance{
			Seasonality:       k.season,
			Category:          k.category,
			Transactions:      a.transactions,
			TotalUnitsSold:    a.units,
			NetRevenue:        a.net,
			AvgPrice:          a.sumPrice / float64(a.transactions),
			AvgDemandForecast: a.sumForecast / float64(a.transactions),
			DemandFulfillment: a.fulfillment(),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Seasonality != rows[j].Seasonality {
			return rows[i].Seasonality < rows[j].Seasonality
		}
		if rows[i].NetRevenue != rows[j].NetRevenue {
			return rows[i].NetRevenue > rows[j].NetRevenue
		}
		return rows[i].Category < rows[j].Category
	})

	for i := range rows {
		rows[i].NetRevenue = round2(rows[i].NetRevenue)
		rows[i].AvgPrice = round2(rows[i].AvgPrice)
		rows[i].AvgDemandForecast = round2(rows[i].AvgDemandForecast)
		rows[i].DemandFulfillment = round2(rows[i].DemandFulfillment)
	}
	return rows
}

// computeWeatherPerformance groups by seasonality×weather with the same
// row filter. Ordered by seasonality ASC, fulfillment DESC, weather ASC.
func computeWeatherPerformance(records []*domain.TransactionRecord) []SeasonWeatherPerformance {
	type key struct{ season, weather string }

	acc := make(map[key]*seasonalAccumulator)
	for _, t := range records {
		if t.UnitsSold == 0 || t.DemandForecast <= 0 {
			continue
		}
		k := key{t.Seasonality, t.WeatherCondition}
		a, ok := acc[k]
		if !ok {
			a = &seasonalAccumulator{}
			acc[k] = a
		}
		a.add(t)
	}

	rows := make([]SeasonWeatherPerformance, 0, len(acc))
	for k, a := range acc {
		rows = append(rows, SeasonWeatherPerformance{
			Seasonality:       k.season,
			WeatherCondition:  k.weather,
			Transactions:      a.transactions,
			TotalUnitsSold:    a.units,
			AvgUnitsSold:      float64(a.units) / float64(a.transactions),
			DemandFulfillment: a.fulfillment(),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Seasonality != rows[j].Seasonality {
			return rows[i].Seasonality < rows[j].Seasonality
		}
		if rows[i].DemandFulfillment != rows[j].DemandFulfillment {
			return rows[i].DemandFulfillment > rows[j].DemandFulfillment
		}
		return rows[i].WeatherCondition < rows[j].WeatherCondition
	})

	for i := range rows {
		rows[i].AvgUnitsSold = round2(rows[i].AvgUnitsSold)
		rows[i].DemandFulfillment = round2(rows[i].DemandFulfillment)
	}
	return rows
}
