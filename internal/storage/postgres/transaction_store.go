package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"retail-metrics-lab/internal/domain"
	"retail-metrics-lab/internal/storage"
)

// TransactionStore implements storage.TransactionStore using PostgreSQL.
type TransactionStore struct {
	pool *Pool
}

// NewTransactionStore creates a new TransactionStore.
func NewTransactionStore(pool *Pool) *TransactionStore {
	return &TransactionStore{pool: pool}
}

// Compile-time interface check.
var _ storage.TransactionStore = (*TransactionStore)(nil)

const insertTransactionQuery = `
	INSERT INTO retail_transactions (
		record_id, date, store_id, product_id, category, region,
		inventory_level, units_sold, units_ordered, demand_forecast,
		price, discount, competitor_pricing,
		seasonality, weather_condition, holiday_promotion
	) VALUES (
		$1, $2, $3, $4, $5, $6,
		$7, $8, $9, $10,
		$11, $12, $13,
		$14, $15, $16
	)
`

const selectTransactionColumns = `
	record_id, date, store_id, product_id, category, region,
	inventory_level, units_sold, units_ordered, demand_forecast,
	price, discount, competitor_pricing,
	seasonality, weather_condition, holiday_promotion
`

// Insert adds a new record. Returns ErrDuplicateKey if record_id exists.
func (s *TransactionStore) Insert(ctx context.Context, t *domain.TransactionRecord) error {
	_, err := s.pool.Exec(ctx, insertTransactionQuery,
		t.RecordID, t.Date, t.StoreID, t.ProductID, t.Category, t.Region,
		t.InventoryLevel, t.UnitsSold, t.UnitsOrdered, t.DemandForecast,
		t.Price, t.Discount, t.CompetitorPricing,
		t.Seasonality, t.WeatherCondition, t.HolidayPromotion,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert transaction record: %w", err)
	}
	return nil
}

// InsertBulk adds multiple records atomically. Fails entire batch on any duplicate.
func (s *TransactionStore) InsertBulk(ctx context.Context, records []*domain.TransactionRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, t := range records {
		_, err := tx.Exec(ctx, insertTransactionQuery,
			t.RecordID, t.Date, t.StoreID, t.ProductID, t.Category, t.Region,
			t.InventoryLevel, t.UnitsSold, t.UnitsOrdered, t.DemandForecast,
			t.Price, t.Discount, t.CompetitorPricing,
			t.Seasonality, t.WeatherCondition, t.HolidayPromotion,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert transaction record in bulk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// GetByID retrieves a record by its ID. Returns ErrNotFound if not exists.
func (s *TransactionStore) GetByID(ctx context.Context, recordID string) (*domain.TransactionRecord, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM retail_transactions
		WHERE record_id = $1
	`

	row := s.pool.QueryRow(ctx, query, recordID)
	t, err := scanTransaction(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get transaction record by id: %w", err)
	}
	return t, nil
}

// GetAll retrieves the full fact table, ordered by date ASC, record_id ASC.
func (s *TransactionStore) GetAll(ctx context.Context) ([]*domain.TransactionRecord, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM retail_transactions
		ORDER BY date ASC, record_id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query transaction records: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// GetByCategory retrieves all records for one category, ordered by date ASC, record_id ASC.
func (s *TransactionStore) GetByCategory(ctx context.Context, category string) ([]*domain.TransactionRecord, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM retail_transactions
		WHERE category = $1
		ORDER BY date ASC, record_id ASC
	`

	rows, err := s.pool.Query(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("query transaction records by category: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// Count returns the number of stored records.
func (s *TransactionStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM retail_transactions`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count transaction records: %w", err)
	}
	return count, nil
}

func scanTransaction(row pgx.Row) (*domain.TransactionRecord, error) {
	var t domain.TransactionRecord
	err := row.Scan(
		&t.RecordID, &t.Date, &t.StoreID, &t.ProductID, &t.Category, &t.Region,
		&t.InventoryLevel, &t.UnitsSold, &t.UnitsOrdered, &t.DemandForecast,
		&t.Price, &t.Discount, &t.CompetitorPricing,
		&t.Seasonality, &t.WeatherCondition, &t.HolidayPromotion,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func scanTransactions(rows pgx.Rows) ([]*domain.TransactionRecord, error) {
	var result []*domain.TransactionRecord
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction record: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction records: %w", err)
	}
	return result, nil
}
