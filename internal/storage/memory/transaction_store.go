package memory

import (
	"context"
	"sort"
	"sync"

	"retail-metrics-lab/internal/domain"
	"retail-metrics-lab/internal/storage"
)

// TransactionStore is an in-memory implementation of storage.TransactionStore.
type TransactionStore struct {
	mu   sync.RWMutex
	data map[string]*domain.TransactionRecord // keyed by record_id
}

// NewTransactionStore creates a new in-memory transaction store.
func NewTransactionStore() *TransactionStore {
	return &TransactionStore{
		data: make(map[string]*domain.TransactionRecord),
	}
}

var _ storage.TransactionStore = (*TransactionStore)(nil)

// Insert adds a new record. Returns ErrDuplicateKey if record_id exists.
func (s *TransactionStore) Insert(_ context.Context, t *domain.TransactionRecord) error {
	if t == nil || t.RecordID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[t.RecordID]; exists {
		return storage.ErrDuplicateKey
	}

	copy := *t
	s.data[t.RecordID] = &copy
	return nil
}

// InsertBulk adds multiple records atomically. Fails entire batch on any duplicate.
func (s *TransactionStore) InsertBulk(_ context.Context, records []*domain.TransactionRecord) error {
	if len(records) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Track keys in this batch to detect intra-batch duplicates
	batchKeys := make(map[string]struct{}, len(records))

	// First pass: check for duplicates (existing + intra-batch)
	for _, t := range records {
		if t == nil || t.RecordID == "" {
			return storage.ErrInvalidInput
		}
		if _, exists := s.data[t.RecordID]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[t.RecordID]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[t.RecordID] = struct{}{}
	}

	// Second pass: insert all
	for _, t := range records {
		copy := *t
		s.data[t.RecordID] = &copy
	}

	return nil
}

// GetByID retrieves a record by its ID. Returns ErrNotFound if not exists.
func (s *TransactionStore) GetByID(_ context.Context, recordID string) (*domain.TransactionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, exists := s.data[recordID]
	if !exists {
		return nil, storage.ErrNotFound
	}

	copy := *t
	return &copy, nil
}

// GetAll retrieves the full fact table, ordered by date ASC, record_id ASC.
func (s *TransactionStore) GetAll(_ context.Context) ([]*domain.TransactionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.TransactionRecord, 0, len(s.data))
	for _, t := range s.data {
		copy := *t
		result = append(result, &copy)
	}

	sortRecords(result)
	return result, nil
}

// GetByCategory retrieves all records for one category, ordered by date ASC, record_id ASC.
func (s *TransactionStore) GetByCategory(_ context.Context, category string) ([]*domain.TransactionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.TransactionRecord
	for _, t := range s.data {
		if t.Category == category {
			copy := *t
			result = append(result, &copy)
		}
	}

	sortRecords(result)
	return result, nil
}

// Count returns the number of stored records.
func (s *TransactionStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.data), nil
}

func sortRecords(records []*domain.TransactionRecord) {
	sort.Slice(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date) {
			return records[i].Date.Before(records[j].Date)
		}
		return records[i].RecordID < records[j].RecordID
	})
}
