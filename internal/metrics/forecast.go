package metrics

import (
	"math"
	"sort"

	"retail-metrics-lab/internal/domain"
)

// ForecastAccuracy is one row of the forecast-accuracy view.
type ForecastAccuracy struct {
	Category string
	Region   string

	Transactions         int
	MeanError            float64 // avg(units_sold - demand_forecast)
	MeanAbsoluteError    float64
	MeanAbsolutePctError float64 // avg(|error| / forecast * 100)
	UnderforecastRate    float64 // percent of rows where actual exceeded forecast
}

// computeForecastAccuracy groups by category×region, restricted to rows with
// demand_forecast > 0. Ordered by MAPE ASC (best forecasts first),
// category ASC, region ASC.
func computeForecastAccuracy(records []*domain.TransactionRecord) []ForecastAccuracy {
	type key struct{ category, region string }
	type fcAcc struct {
		transactions  int
		sumError      float64
		sumAbsError   float64
		sumPctError   float64
		underforecast int
	}

	acc := make(map[key]*fcAcc)
	for _, t := range records {
		if t.DemandForecast <= 0 {
			continue
		}
		k := key{t.Category, t.Region}
		a, ok := acc[k]
		if !ok {
			a = &fcAcc{}
			acc[k] = a
		}

		errVal := float64(t.UnitsSold) - t.DemandForecast
		a.transactions++
		a.sumError += errVal
		a.sumAbsError += math.Abs(errVal)
		a.sumPctError += math.Abs(errVal) / t.DemandForecast * 100
		if errVal > 0 {
			a.underforecast++
		}
	}

	rows := make([]ForecastAccuracy, 0, len(acc))
	for k, a := range acc {
		n := float64(a.transactions)
		rows = append(rows, ForecastAccuracy{
			Category:             k.category,
			Region:               k.region,
			Transactions:         a.transactions,
			MeanError:            a.sumError / n,
			MeanAbsoluteError:    a.sumAbsError / n,
			MeanAbsolutePctError: a.sumPctError / n,
			UnderforecastRate:    float64(a.underforecast) / n * 100,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].MeanAbsolutePctError != rows[j].MeanAbsolutePctError {
			return rows[i].MeanAbsolutePctError < rows[j].MeanAbsolutePctError
		}
		if rows[i].Category != rows[j].Category {
			return rows[i].Category < rows[j].Category
		}
		return rows[i].Region < rows[j].Region
	})

	for i := range rows {
		rows[i].MeanError = round2(rows[i].MeanError)
		rows[i].MeanAbsoluteError = round2(rows[i].MeanAbsoluteError)
		rows[i].MeanAbsolutePctError = round2(rows[i].MeanAbsolutePctError)
		rows[i].UnderforecastRate = round2(rows[i].UnderforecastRate)
	}
	return rows
}
