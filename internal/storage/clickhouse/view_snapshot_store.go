package clickhouse

import (
	"context"
	"fmt"

	"retail-metrics-lab/internal/domain"
	"retail-metrics-lab/internal/storage"
)

// ViewSnapshotStore implements storage.ViewSnapshotStore using ClickHouse.
// Snapshots are append-only analytical rows; MergeTree keeps them ordered
// by (view_name, computed_at, group_key).
type ViewSnapshotStore struct {
	conn *Conn
}

// NewViewSnapshotStore creates a new ViewSnapshotStore.
func NewViewSnapshotStore(conn *Conn) *ViewSnapshotStore {
	return &ViewSnapshotStore{conn: conn}
}

// Compile-time interface check.
var _ storage.ViewSnapshotStore = (*ViewSnapshotStore)(nil)

// InsertBulk adds a batch of snapshots from one report run.
func (s *ViewSnapshotStore) InsertBulk(ctx context.Context, snapshots []*domain.ViewSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	for _, snap := range snapshots {
		if snap == nil || snap.ViewName == "" || snap.MetricName == "" {
			return storage.ErrInvalidInput
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO view_snapshots (
			view_name, group_key, metric_name, metric_value, computed_at
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare snapshot batch: %w", err)
	}

	for _, snap := range snapshots {
		if err := batch.Append(
			snap.ViewName, snap.GroupKey, snap.MetricName, snap.MetricValue, snap.ComputedAt,
		); err != nil {
			return fmt.Errorf("append snapshot to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send snapshot batch: %w", err)
	}
	return nil
}

// GetByView retrieves all snapshots for one view,
// ordered by computed_at ASC, group_key ASC, metric_name ASC.
func (s *ViewSnapshotStore) GetByView(ctx context.Context, viewName string) ([]*domain.ViewSnapshot, error) {
	query := `
		SELECT view_name, group_key, metric_name, metric_value, computed_at
		FROM view_snapshots
		WHERE view_name = ?
		ORDER BY computed_at ASC, group_key ASC, metric_name ASC
	`

	rows, err := s.conn.Query(ctx, query, viewName)
	if err != nil {
		return nil, fmt.Errorf("query snapshots by view: %w", err)
	}
	defer rows.Close()

	return scanSnapshots(rows)
}

// GetLatestRun retrieves all snapshots sharing the most recent computed_at timestamp.
func (s *ViewSnapshotStore) GetLatestRun(ctx context.Context) ([]*domain.ViewSnapshot, error) {
	query := `
		SELECT view_name, group_key, metric_name, metric_value, computed_at
		FROM view_snapshots
		WHERE computed_at = (SELECT max(computed_at) FROM view_snapshots)
		ORDER BY computed_at ASC, group_key ASC, metric_name ASC
	`

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query latest snapshot run: %w", err)
	}
	defer rows.Close()

	return scanSnapshots(rows)
}

type snapshotRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanSnapshots(rows snapshotRows) ([]*domain.ViewSnapshot, error) {
	var result []*domain.ViewSnapshot
	for rows.Next() {
		var snap domain.ViewSnapshot
		if err := rows.Scan(
			&snap.ViewName, &snap.GroupKey, &snap.MetricName, &snap.MetricValue, &snap.ComputedAt,
		); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		result = append(result, &snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}
	return result, nil
}
