package ingestion

import (
	"context"
	"errors"
	"strings"
	"testing"

	"retail-metrics-lab/internal/storage/memory"
)

const validHeader = "Date,Store ID,Product ID,Category,Region,Inventory Level,Units Sold,Units Ordered,Demand Forecast,Price,Discount,Weather Condition,Holiday/Promotion,Competitor Pricing,Seasonality"

func TestParseCSVValidInput(t *testing.T) {
	input := validHeader + "\n" +
		"2022-01-01,S001,P0001,Groceries,North,231,127,55,135.47,33.5,20,Rainy,0,29.69,Autumn\n" +
		"01/02/2022,S002,P0002,Toys,South,204,150,66,144.04,63.01,0,Sunny,1,66.16,Winter\n"

	records, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseCSV() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("ParseCSV() returned %d records, want 2", len(records))
	}

	first := records[0]
	if first.StoreID != "S001" || first.ProductID != "P0001" {
		t.Errorf("unexpected identifiers: %s/%s", first.StoreID, first.ProductID)
	}
	if first.Date.Format("2006-01-02") != "2022-01-01" {
		t.Errorf("date = %v, want 2022-01-01", first.Date)
	}
	if first.UnitsSold != 127 || first.InventoryLevel != 231 {
		t.Errorf("units/inventory = %d/%d", first.UnitsSold, first.InventoryLevel)
	}
	if first.Discount != 20 {
		t.Errorf("discount = %v, want 20", first.Discount)
	}
	if first.HolidayPromotion {
		t.Error("first record should not be promoted")
	}
	if len(first.RecordID) != 64 {
		t.Errorf("record id length = %d, want 64", len(first.RecordID))
	}

	second := records[1]
	if second.Date.Format("2006-01-02") != "2022-01-02" {
		t.Errorf("slash date parsed as %v", second.Date)
	}
	if !second.HolidayPromotion {
		t.Error("second record should be promoted")
	}
}

func TestParseCSVMissingColumn(t *testing.T) {
	input := "Date,Store ID,Product ID,Category,Region\n2022-01-01,S001,P0001,Groceries,North\n"

	_, err := ParseCSV(strings.NewReader(input))
	if err == nil {
		t.Fatal("ParseCSV() succeeded with incomplete header")
	}

	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("error type = %T, want *SchemaError", err)
	}
	if schemaErr.Column == "" {
		t.Error("schema error should name the missing column")
	}
}

func TestParseCSVInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		row    string
		column string
	}{
		{"bad date", "not-a-date,S001,P0001,Groceries,North,10,5,3,5.0,10.0,0,Sunny,0,9.0,Winter", colDate},
		{"negative units", "2022-01-01,S001,P0001,Groceries,North,10,-5,3,5.0,10.0,0,Sunny,0,9.0,Winter", colUnitsSold},
		{"discount over 100", "2022-01-01,S001,P0001,Groceries,North,10,5,3,5.0,10.0,120,Sunny,0,9.0,Winter", colDiscount},
		{"negative price", "2022-01-01,S001,P0001,Groceries,North,10,5,3,5.0,-1.0,0,Sunny,0,9.0,Winter", colPrice},
		{"bad promo flag", "2022-01-01,S001,P0001,Groceries,North,10,5,3,5.0,10.0,0,Sunny,maybe,9.0,Winter", colHolidayPromotion},
		{"empty store id", "2022-01-01,,P0001,Groceries,North,10,5,3,5.0,10.0,0,Sunny,0,9.0,Winter", colStoreID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validHeader + "\n" + tt.row + "\n"
			_, err := ParseCSV(strings.NewReader(input))
			if err == nil {
				t.Fatal("ParseCSV() succeeded with invalid row")
			}
			var schemaErr *SchemaError
			if !errors.As(err, &schemaErr) {
				t.Fatalf("error type = %T, want *SchemaError", err)
			}
			if schemaErr.Column != tt.column {
				t.Errorf("error column = %q, want %q", schemaErr.Column, tt.column)
			}
		})
	}
}

func TestParseCSVEmptyBody(t *testing.T) {
	records, err := ParseCSV(strings.NewReader(validHeader + "\n"))
	if err != nil {
		t.Fatalf("ParseCSV() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("ParseCSV() returned %d records, want 0", len(records))
	}
}

func TestLoaderLoad(t *testing.T) {
	input := validHeader + "\n" +
		"2022-01-01,S001,P0001,Groceries,North,231,127,55,135.47,33.5,20,Rainy,0,29.69,Autumn\n"

	store := memory.NewTransactionStore()
	loader := NewLoader(store, nil)

	n, err := loader.Load(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if n != 1 {
		t.Errorf("Load() = %d, want 1", n)
	}

	count, err := store.Count(context.Background())
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 1 {
		t.Errorf("store count = %d, want 1", count)
	}
}

func TestLoaderLoadDuplicateFails(t *testing.T) {
	input := validHeader + "\n" +
		"2022-01-01,S001,P0001,Groceries,North,231,127,55,135.47,33.5,20,Rainy,0,29.69,Autumn\n"

	store := memory.NewTransactionStore()
	loader := NewLoader(store, nil)

	if _, err := loader.Load(context.Background(), strings.NewReader(input)); err != nil {
		t.Fatalf("first Load() error = %v", err)
	}
	if _, err := loader.Load(context.Background(), strings.NewReader(input)); err == nil {
		t.Fatal("second Load() succeeded, want duplicate error")
	}
}
