package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"retail-metrics-lab/internal/domain"
	"retail-metrics-lab/internal/storage"
)

func sampleRecord(id string, day int, category string) *domain.TransactionRecord {
	return &domain.TransactionRecord{
		RecordID:       id,
		Date:           time.Date(2022, 1, day, 0, 0, 0, 0, time.UTC),
		StoreID:        "S001",
		ProductID:      "P0001",
		Category:       category,
		Region:         "North",
		InventoryLevel: 100,
		UnitsSold:      10,
		Price:          9.99,
	}
}

func TestTransactionStore_InsertAndGet(t *testing.T) {
	store := NewTransactionStore()
	ctx := context.Background()

	if err := store.Insert(ctx, sampleRecord("r1", 1, "Toys")); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := store.GetByID(ctx, "r1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Category != "Toys" || got.UnitsSold != 10 {
		t.Errorf("record mismatch: %+v", got)
	}
}

func TestTransactionStore_DuplicateKey(t *testing.T) {
	store := NewTransactionStore()
	ctx := context.Background()

	if err := store.Insert(ctx, sampleRecord("r1", 1, "Toys")); err != nil {
		t.Fatalf("First insert failed: %v", err)
	}

	err := store.Insert(ctx, sampleRecord("r1", 2, "Toys"))
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("Expected ErrDuplicateKey, got %v", err)
	}
}

func TestTransactionStore_InvalidInput(t *testing.T) {
	store := NewTransactionStore()
	ctx := context.Background()

	if err := store.Insert(ctx, nil); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("nil record: expected ErrInvalidInput, got %v", err)
	}
	if err := store.Insert(ctx, sampleRecord("", 1, "Toys")); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("empty id: expected ErrInvalidInput, got %v", err)
	}
}

func TestTransactionStore_NotFound(t *testing.T) {
	store := NewTransactionStore()

	_, err := store.GetByID(context.Background(), "nonexistent")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestTransactionStore_InsertBulkAtomicity(t *testing.T) {
	store := NewTransactionStore()
	ctx := context.Background()

	// Intra-batch duplicate fails the whole batch, leaving the store empty.
	records := []*domain.TransactionRecord{
		sampleRecord("r1", 1, "Toys"),
		sampleRecord("r2", 2, "Toys"),
		sampleRecord("r1", 3, "Toys"),
	}
	if err := store.InsertBulk(ctx, records); !errors.Is(err, storage.ErrDuplicateKey) {
		t.Fatalf("Expected ErrDuplicateKey, got %v", err)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Count = %d, want 0 after failed batch", count)
	}
}

func TestTransactionStore_GetAllOrdering(t *testing.T) {
	store := NewTransactionStore()
	ctx := context.Background()

	// Inserted out of order; same date for r3/r2 falls back to record id.
	records := []*domain.TransactionRecord{
		sampleRecord("r3", 2, "Toys"),
		sampleRecord("r1", 1, "Toys"),
		sampleRecord("r2", 2, "Toys"),
	}
	if err := store.InsertBulk(ctx, records); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	all, err := store.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	want := []string{"r1", "r2", "r3"}
	if len(all) != len(want) {
		t.Fatalf("GetAll returned %d records, want %d", len(all), len(want))
	}
	for i, id := range want {
		if all[i].RecordID != id {
			t.Errorf("all[%d].RecordID = %s, want %s", i, all[i].RecordID, id)
		}
	}
}

func TestTransactionStore_GetByCategory(t *testing.T) {
	store := NewTransactionStore()
	ctx := context.Background()

	records := []*domain.TransactionRecord{
		sampleRecord("r1", 1, "Toys"),
		sampleRecord("r2", 2, "Groceries"),
		sampleRecord("r3", 3, "Toys"),
	}
	if err := store.InsertBulk(ctx, records); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	toys, err := store.GetByCategory(ctx, "Toys")
	if err != nil {
		t.Fatalf("GetByCategory failed: %v", err)
	}
	if len(toys) != 2 {
		t.Fatalf("GetByCategory returned %d records, want 2", len(toys))
	}
	for _, r := range toys {
		if r.Category != "Toys" {
			t.Errorf("unexpected category %s", r.Category)
		}
	}
}

func TestTransactionStore_CopySemantics(t *testing.T) {
	store := NewTransactionStore()
	ctx := context.Background()

	original := sampleRecord("r1", 1, "Toys")
	if err := store.Insert(ctx, original); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	// Mutating the inserted value must not affect the stored copy.
	original.UnitsSold = 999

	got, err := store.GetByID(ctx, "r1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.UnitsSold != 10 {
		t.Errorf("UnitsSold = %d, store leaked caller's mutation", got.UnitsSold)
	}

	// Mutating a returned value must not affect later reads.
	got.Category = "Mutated"
	again, _ := store.GetByID(ctx, "r1")
	if again.Category != "Toys" {
		t.Errorf("Category = %s, store leaked reader's mutation", again.Category)
	}
}
