package storage

import (
	"context"

	"retail-metrics-lab/internal/domain"
)

// TransactionStore provides access to the retail_transactions fact table.
// The table is append-only: the metrics layer reads it, the ingestion
// loader writes it, nothing updates or deletes.
type TransactionStore interface {
	// Insert adds a new record. Returns ErrDuplicateKey if record_id exists.
	Insert(ctx context.Context, t *domain.TransactionRecord) error

	// InsertBulk adds multiple records atomically. Fails entire batch on any duplicate.
	InsertBulk(ctx context.Context, records []*domain.TransactionRecord) error

	// GetByID retrieves a record by its ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, recordID string) (*domain.TransactionRecord, error)

	// GetAll retrieves the full fact table, ordered by date ASC, record_id ASC.
	GetAll(ctx context.Context) ([]*domain.TransactionRecord, error)

	// GetByCategory retrieves all records for one category,
	// ordered by date ASC, record_id ASC.
	GetByCategory(ctx context.Context, category string) ([]*domain.TransactionRecord, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)
}

// ViewSnapshotStore persists finalized report view rows in flattened
// (view, group, metric, value) form for later analytical queries.
type ViewSnapshotStore interface {
	// InsertBulk adds a batch of snapshots from one report run.
	InsertBulk(ctx context.Context, snapshots []*domain.ViewSnapshot) error

	// GetByView retrieves all snapshots for one view,
	// ordered by computed_at ASC, group_key ASC, metric_name ASC.
	GetByView(ctx context.Context, viewName string) ([]*domain.ViewSnapshot, error)

	// GetLatestRun retrieves all snapshots sharing the most recent
	// computed_at timestamp.
	GetLatestRun(ctx context.Context) ([]*domain.ViewSnapshot, error)
}
