package ingestion

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"retail-metrics-lab/internal/domain"
	"retail-metrics-lab/internal/observability"
	"retail-metrics-lab/internal/storage"
)

// Loader parses retail CSV data and writes it to a transaction store.
type Loader struct {
	store  storage.TransactionStore
	logger *zap.Logger
	obs    *observability.Metrics
}

func NewLoader(store storage.TransactionStore, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{store: store, logger: logger}
}

// WithObservability attaches Prometheus metrics to the loader.
func (l *Loader) WithObservability(obs *observability.Metrics) *Loader {
	l.obs = obs
	return l
}

// Load parses the CSV stream and inserts all records in one bulk write.
// Duplicate record IDs already present in the store fail the load.
func (l *Loader) Load(ctx context.Context, r io.Reader) (int, error) {
	records, err := ParseCSV(r)
	if err != nil {
		l.countError(err)
		return 0, fmt.Errorf("parse csv: %w", err)
	}
	if l.obs != nil {
		l.obs.RecordsParsed.Add(float64(len(records)))
	}
	l.logger.Info("parsed csv input", zap.Int("records", len(records)))

	if len(records) == 0 {
		return 0, nil
	}

	if err := l.store.InsertBulk(ctx, records); err != nil {
		l.countError(err)
		return 0, fmt.Errorf("insert records: %w", err)
	}
	if l.obs != nil {
		l.obs.RecordsIngested.Add(float64(len(records)))
	}
	l.logger.Info("ingested records", zap.Int("records", len(records)))

	return len(records), nil
}

// LoadRecords inserts pre-built records, useful for fixture-driven runs.
func (l *Loader) LoadRecords(ctx context.Context, records []*domain.TransactionRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	if err := l.store.InsertBulk(ctx, records); err != nil {
		l.countError(err)
		return 0, fmt.Errorf("insert records: %w", err)
	}
	if l.obs != nil {
		l.obs.RecordsIngested.Add(float64(len(records)))
	}
	return len(records), nil
}

func (l *Loader) countError(err error) {
	if l.obs == nil {
		return
	}
	l.obs.IngestErrors.WithLabelValues(errorReason(err)).Inc()
}

func errorReason(err error) string {
	var schemaErr *SchemaError
	switch {
	case errors.As(err, &schemaErr):
		return "schema"
	case errors.Is(err, storage.ErrDuplicateKey):
		return "duplicate"
	case errors.Is(err, storage.ErrInvalidInput):
		return "invalid_input"
	default:
		return "storage"
	}
}
