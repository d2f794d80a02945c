package domain

import "time"

// TransactionRecord is one row of the retail fact table: a single
// product/store/date observation. The record is immutable once ingested;
// the metrics layer never mutates it.
type TransactionRecord struct {
	RecordID string // deterministic hash, see internal/idhash

	Date      time.Time
	StoreID   string
	ProductID string
	Category  string
	Region    string

	InventoryLevel    int
	UnitsSold         int
	UnitsOrdered      int
	DemandForecast    float64
	Price             float64
	Discount          float64 // percent, 0-100
	CompetitorPricing float64 // 0 means unknown

	Seasonality      string
	WeatherCondition string
	HolidayPromotion bool
}

// GrossRevenue returns units_sold * price.
func (t *TransactionRecord) GrossRevenue() float64 {
	return float64(t.UnitsSold) * t.Price
}

// NetRevenue returns gross revenue after the row discount.
func (t *TransactionRecord) NetRevenue() float64 {
	return t.GrossRevenue() * (1 - t.Discount/100)
}

// DiscountAmount returns the revenue given up to the row discount.
func (t *TransactionRecord) DiscountAmount() float64 {
	return t.GrossRevenue() * t.Discount / 100
}

// Overstock returns inventory in excess of units sold, floored at zero.
func (t *TransactionRecord) Overstock() int {
	if t.InventoryLevel > t.UnitsSold {
		return t.InventoryLevel - t.UnitsSold
	}
	return 0
}
