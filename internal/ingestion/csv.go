package ingestion

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"retail-metrics-lab/internal/domain"
	"retail-metrics-lab/internal/idhash"
)

// SchemaError reports a missing or malformed column. A schema error fails
// the whole parse; there are no partial results.
type SchemaError struct {
	Column string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error in column %q: %s", e.Column, e.Reason)
}

// Normalized column names, matching the upstream dataset headers after
// lowercasing and replacing spaces and slashes with underscores.
const (
	colDate              = "date"
	colStoreID           = "store_id"
	colProductID         = "product_id"
	colCategory          = "category"
	colRegion            = "region"
	colInventoryLevel    = "inventory_level"
	colUnitsSold         = "units_sold"
	colUnitsOrdered      = "units_ordered"
	colDemandForecast    = "demand_forecast"
	colPrice             = "price"
	colDiscount          = "discount"
	colWeatherCondition  = "weather_condition"
	colHolidayPromotion  = "holiday_promotion"
	colCompetitorPricing = "competitor_pricing"
	colSeasonality       = "seasonality"
)

var requiredColumns = []string{
	colDate, colStoreID, colProductID, colCategory, colRegion,
	colInventoryLevel, colUnitsSold, colUnitsOrdered, colDemandForecast,
	colPrice, colDiscount, colWeatherCondition, colHolidayPromotion,
	colCompetitorPricing, colSeasonality,
}

// dateLayouts accepted for the date column, tried in order.
var dateLayouts = []string{"2006-01-02", "01/02/2006", "2006/01/02"}

// ParseCSV reads the retail fact table from CSV. The header is validated
// against the required schema before any row is read; every row must
// satisfy the table invariants (non-negative units/inventory/price,
// discount within [0,100]). Record IDs are derived deterministically from
// store, product and date.
func ParseCSV(r io.Reader) ([]*domain.TransactionRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	index, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var records []*domain.TransactionRecord
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", line+1, err)
		}
		line++

		record, err := parseRow(row, index, line)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

// columnIndex maps normalized header names to positions and verifies that
// every required column is present.
func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[normalizeColumn(name)] = i
	}

	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, &SchemaError{Column: col, Reason: "column is missing"}
		}
	}
	return index, nil
}

func normalizeColumn(name string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "/", "_")
	return name
}

func parseRow(row []string, index map[string]int, line int) (*domain.TransactionRecord, error) {
	field := func(col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	date, err := parseDate(field(colDate))
	if err != nil {
		return nil, rowError(colDate, line, err)
	}

	inventory, err := parseNonNegativeInt(field(colInventoryLevel))
	if err != nil {
		return nil, rowError(colInventoryLevel, line, err)
	}
	unitsSold, err := parseNonNegativeInt(field(colUnitsSold))
	if err != nil {
		return nil, rowError(colUnitsSold, line, err)
	}
	unitsOrdered, err := parseNonNegativeInt(field(colUnitsOrdered))
	if err != nil {
		return nil, rowError(colUnitsOrdered, line, err)
	}

	forecast, err := strconv.ParseFloat(field(colDemandForecast), 64)
	if err != nil {
		return nil, rowError(colDemandForecast, line, fmt.Errorf("not a number: %q", field(colDemandForecast)))
	}

	price, err := strconv.ParseFloat(field(colPrice), 64)
	if err != nil {
		return nil, rowError(colPrice, line, fmt.Errorf("not a number: %q", field(colPrice)))
	}
	if price < 0 {
		return nil, rowError(colPrice, line, fmt.Errorf("negative value %v", price))
	}

	discount, err := strconv.ParseFloat(field(colDiscount), 64)
	if err != nil {
		return nil, rowError(colDiscount, line, fmt.Errorf("not a number: %q", field(colDiscount)))
	}
	if discount < 0 || discount > 100 {
		return nil, rowError(colDiscount, line, fmt.Errorf("discount %v outside [0,100]", discount))
	}

	competitor, err := strconv.ParseFloat(field(colCompetitorPricing), 64)
	if err != nil {
		return nil, rowError(colCompetitorPricing, line, fmt.Errorf("not a number: %q", field(colCompetitorPricing)))
	}

	promotion, err := parseBoolFlag(field(colHolidayPromotion))
	if err != nil {
		return nil, rowError(colHolidayPromotion, line, err)
	}

	storeID := field(colStoreID)
	productID := field(colProductID)
	if storeID == "" {
		return nil, rowError(colStoreID, line, fmt.Errorf("empty value"))
	}
	if productID == "" {
		return nil, rowError(colProductID, line, fmt.Errorf("empty value"))
	}

	return &domain.TransactionRecord{
		RecordID:          idhash.ComputeRecordID(storeID, productID, date),
		Date:              date,
		StoreID:           storeID,
		ProductID:         productID,
		Category:          field(colCategory),
		Region:            field(colRegion),
		InventoryLevel:    inventory,
		UnitsSold:         unitsSold,
		UnitsOrdered:      unitsOrdered,
		DemandForecast:    forecast,
		Price:             price,
		Discount:          discount,
		CompetitorPricing: competitor,
		Seasonality:       field(colSeasonality),
		WeatherCondition:  field(colWeatherCondition),
		HolidayPromotion:  promotion,
	}, nil
}

func rowError(column string, line int, err error) error {
	return &SchemaError{
		Column: column,
		Reason: fmt.Sprintf("row %d: %v", line, err),
	}
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

func parseNonNegativeInt(value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", value)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative value %d", n)
	}
	return n, nil
}

// parseBoolFlag accepts the dataset's 0/1 flag plus common boolean spellings.
func parseBoolFlag(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "0", "false", "no":
		return false, nil
	case "1", "true", "yes":
		return true, nil
	default:
		return false, fmt.Errorf("not a boolean flag: %q", value)
	}
}
