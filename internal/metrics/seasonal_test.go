package metrics

import (
	"testing"

	"retail-metrics-lab/internal/domain"
)

func seasonalRecord(season, category, weather string, units int, forecast, price float64) *domain.TransactionRecord {
	r := tr(category, "North", "S001", "P0001", units, 100, price, 0)
	r.Seasonality = season
	r.WeatherCondition = weather
	r.DemandForecast = forecast
	return r
}

func TestComputeSeasonalPerformanceFulfillmentIsPerRowAverage(t *testing.T) {
	// Row ratios 50/100 = 0.5 and 10/10 = 1.0 average to 75%. A ratio of
	// sums would give 60/110 = 54.5%, which must not be reported.
	records := []*domain.TransactionRecord{
		seasonalRecord("Winter", "Toys", "Snowy", 50, 100, 10.0),
		seasonalRecord("Winter", "Toys", "Snowy", 10, 10, 10.0),
	}

	rows := computeSeasonalPerformance(records)
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	assertFloat(t, "DemandFulfillment", rows[0].DemandFulfillment, 75)
	assertFloat(t, "AvgDemandForecast", rows[0].AvgDemandForecast, 55)
	if rows[0].TotalUnitsSold != 60 {
		t.Errorf("TotalUnitsSold = %d, want 60", rows[0].TotalUnitsSold)
	}
}

func TestComputeSeasonalPerformanceFilters(t *testing.T) {
	records := []*domain.TransactionRecord{
		seasonalRecord("Winter", "Toys", "Snowy", 0, 100, 10.0), // zero sales
		seasonalRecord("Winter", "Toys", "Snowy", 10, 0, 10.0),  // zero forecast
		seasonalRecord("Summer", "Toys", "Sunny", 10, 20, 10.0),
	}

	rows := computeSeasonalPerformance(records)
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want only the Summer group", len(rows))
	}
	if rows[0].Seasonality != "Summer" {
		t.Errorf("Seasonality = %s, want Summer", rows[0].Seasonality)
	}
}

func TestComputeSeasonalPerformanceOrdering(t *testing.T) {
	records := []*domain.TransactionRecord{
		seasonalRecord("Winter", "Cheap", "Snowy", 10, 10, 1.0),
		seasonalRecord("Winter", "Expensive", "Snowy", 10, 10, 100.0),
		seasonalRecord("Autumn", "Cheap", "Rainy", 10, 10, 1.0),
	}

	rows := computeSeasonalPerformance(records)
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if rows[0].Seasonality != "Autumn" {
		t.Errorf("rows[0].Seasonality = %s, want Autumn (season ASC)", rows[0].Seasonality)
	}
	if rows[1].Category != "Expensive" {
		t.Errorf("rows[1].Category = %s, want Expensive (net revenue DESC within season)", rows[1].Category)
	}
}

func TestComputeWeatherPerformance(t *testing.T) {
	records := []*domain.TransactionRecord{
		seasonalRecord("Winter", "Toys", "Snowy", 20, 40, 10.0),
		seasonalRecord("Winter", "Toys", "Sunny", 30, 30, 10.0),
	}

	rows := computeWeatherPerformance(records)
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}

	// Sunny fulfills 100%, Snowy 50%; fulfillment DESC within season.
	if rows[0].WeatherCondition != "Sunny" {
		t.Errorf("rows[0].WeatherCondition = %s, want Sunny", rows[0].WeatherCondition)
	}
	assertFloat(t, "Sunny fulfillment", rows[0].DemandFulfillment, 100)
	assertFloat(t, "Snowy fulfillment", rows[1].DemandFulfillment, 50)
	assertFloat(t, "Sunny avg units", rows[0].AvgUnitsSold, 30)
}
