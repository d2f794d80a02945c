package pipeline

import (
	"context"
	"time"

	"retail-metrics-lab/internal/domain"
	"retail-metrics-lab/internal/idhash"
	"retail-metrics-lab/internal/storage"
)

// LoadFixtures populates a transaction store with demo data covering every
// view: all discount tiers, promoted and unpromoted rows, a slow-moving
// overstocked product and a zero-sale row.
func LoadFixtures(ctx context.Context, store storage.TransactionStore) error {
	return store.InsertBulk(ctx, FixtureRecords())
}

// FixtureRecords returns the demo fact table.
func FixtureRecords() []*domain.TransactionRecord {
	fixtures := []struct {
		day       int
		storeID   string
		productID string
		category  string
		region    string
		inventory int
		units     int
		ordered   int
		forecast  float64
		price     float64
		discount  float64
		weather   string
		promo     bool
		compPrice float64
		season    string
	}{
		// Groceries, North: steady sellers across discount tiers
		{1, "S001", "P0001", "Groceries", "North", 120, 60, 50, 55, 8.50, 0, "Sunny", false, 8.20, "Winter"},
		{2, "S001", "P0001", "Groceries", "North", 110, 45, 40, 50, 8.50, 5, "Cloudy", false, 8.20, "Winter"},
		{3, "S001", "P0002", "Groceries", "North", 90, 70, 60, 65, 4.25, 15, "Snowy", true, 4.50, "Winter"},
		{4, "S002", "P0002", "Groceries", "South", 100, 55, 45, 60, 4.25, 25, "Rainy", true, 4.10, "Spring"},

		// Toys: promoted vs unpromoted comparison, includes a zero-sale row
		{5, "S001", "P0101", "Toys", "North", 80, 30, 25, 28, 24.99, 10, "Sunny", true, 26.50, "Spring"},
		{6, "S001", "P0101", "Toys", "North", 75, 20, 20, 26, 24.99, 0, "Cloudy", false, 26.50, "Spring"},
		{7, "S002", "P0102", "Toys", "South", 60, 0, 10, 12, 34.99, 30, "Rainy", true, 32.00, "Summer"},
		{8, "S002", "P0102", "Toys", "South", 65, 15, 15, 18, 34.99, 20, "Sunny", false, 32.00, "Summer"},

		// Electronics, East: high price, premium over competitors
		{9, "S003", "P0201", "Electronics", "East", 40, 12, 10, 14, 299.99, 0, "Sunny", false, 279.99, "Summer"},
		{10, "S003", "P0201", "Electronics", "East", 38, 18, 15, 16, 299.99, 10, "Cloudy", true, 279.99, "Summer"},
		{11, "S003", "P0202", "Electronics", "East", 55, 25, 20, 30, 149.99, 15, "Rainy", false, 155.00, "Autumn"},

		// Furniture, West: the slow mover. Inventory far above sales,
		// sell-through under 30%.
		{12, "S004", "P0301", "Furniture", "West", 200, 5, 10, 20, 450.00, 5, "Sunny", false, 430.00, "Autumn"},
		{13, "S004", "P0301", "Furniture", "West", 210, 8, 10, 22, 450.00, 10, "Cloudy", false, 430.00, "Autumn"},
		{14, "S004", "P0302", "Furniture", "West", 150, 12, 15, 18, 320.00, 25, "Snowy", true, 310.00, "Winter"},

		// Clothing: spread across stores and regions
		{15, "S002", "P0401", "Clothing", "South", 95, 40, 35, 42, 39.99, 20, "Sunny", false, 38.50, "Summer"},
		{16, "S004", "P0401", "Clothing", "West", 85, 35, 30, 38, 39.99, 0, "Rainy", true, 38.50, "Spring"},
		{17, "S003", "P0402", "Clothing", "East", 70, 50, 45, 48, 19.99, 10, "Cloudy", false, 21.00, "Autumn"},
		{18, "S001", "P0402", "Clothing", "North", 75, 28, 25, 32, 19.99, 15, "Snowy", true, 21.00, "Winter"},
	}

	records := make([]*domain.TransactionRecord, len(fixtures))
	for i, f := range fixtures {
		date := time.Date(2022, 1, f.day, 0, 0, 0, 0, time.UTC)
		records[i] = &domain.TransactionRecord{
			RecordID:          idhash.ComputeRecordID(f.storeID, f.productID, date),
			Date:              date,
			StoreID:           f.storeID,
			ProductID:         f.productID,
			Category:          f.category,
			Region:            f.region,
			InventoryLevel:    f.inventory,
			UnitsSold:         f.units,
			UnitsOrdered:      f.ordered,
			DemandForecast:    f.forecast,
			Price:             f.price,
			Discount:          f.discount,
			CompetitorPricing: f.compPrice,
			Seasonality:       f.season,
			WeatherCondition:  f.weather,
			HolidayPromotion:  f.promo,
		}
	}
	return records
}
