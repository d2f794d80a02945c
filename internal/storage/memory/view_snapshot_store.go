package memory

import (
	"context"
	"sort"
	"sync"

	"retail-metrics-lab/internal/domain"
	"retail-metrics-lab/internal/storage"
)

// ViewSnapshotStore is an in-memory implementation of storage.ViewSnapshotStore.
type ViewSnapshotStore struct {
	mu   sync.RWMutex
	data []*domain.ViewSnapshot
}

// NewViewSnapshotStore creates a new in-memory view snapshot store.
func NewViewSnapshotStore() *ViewSnapshotStore {
	return &ViewSnapshotStore{}
}

var _ storage.ViewSnapshotStore = (*ViewSnapshotStore)(nil)

// InsertBulk adds a batch of snapshots from one report run.
func (s *ViewSnapshotStore) InsertBulk(_ context.Context, snapshots []*domain.ViewSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	for _, snap := range snapshots {
		if snap == nil || snap.ViewName == "" || snap.MetricName == "" {
			return storage.ErrInvalidInput
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, snap := range snapshots {
		copy := *snap
		s.data = append(s.data, &copy)
	}
	return nil
}

// GetByView retrieves all snapshots for one view,
// ordered by computed_at ASC, group_key ASC, metric_name ASC.
func (s *ViewSnapshotStore) GetByView(_ context.Context, viewName string) ([]*domain.ViewSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.ViewSnapshot
	for _, snap := range s.data {
		if snap.ViewName == viewName {
			copy := *snap
			result = append(result, &copy)
		}
	}

	sortSnapshots(result)
	return result, nil
}

// GetLatestRun retrieves all snapshots sharing the most recent computed_at timestamp.
func (s *ViewSnapshotStore) GetLatestRun(_ context.Context) ([]*domain.ViewSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest int64
	for _, snap := range s.data {
		if snap.ComputedAt > latest {
			latest = snap.ComputedAt
		}
	}

	var result []*domain.ViewSnapshot
	for _, snap := range s.data {
		if snap.ComputedAt == latest {
			copy := *snap
			result = append(result, &copy)
		}
	}

	sortSnapshots(result)
	return result, nil
}

func sortSnapshots(snapshots []*domain.ViewSnapshot) {
	sort.Slice(snapshots, func(i, j int) bool {
		if snapshots[i].ComputedAt != snapshots[j].ComputedAt {
			return snapshots[i].ComputedAt < snapshots[j].ComputedAt
		}
		if snapshots[i].GroupKey != snapshots[j].GroupKey {
			return snapshots[i].GroupKey < snapshots[j].GroupKey
		}
		return snapshots[i].MetricName < snapshots[j].MetricName
	})
}
