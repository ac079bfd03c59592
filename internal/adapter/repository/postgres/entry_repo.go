package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/budget/internal/domain"
	"github.com/iho/budget/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

const createEntrySQL = `
INSERT INTO entries (id, account_id, amount, entry_date, category, category_type, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

// Create inserts a new entry inside the given transaction.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, createEntrySQL,
		entry.ID,
		entry.AccountID,
		decimalToNumeric(entry.Amount),
		timeToPgTimestamptz(entry.Date),
		entry.Category,
		string(entry.CategoryType),
		timeToPgTimestamptz(entry.CreatedAt),
	)

	return err
}

const getEntriesByAccountSQL = `
SELECT id, account_id, amount, entry_date, category, category_type, created_at
FROM entries
WHERE account_id = $1
ORDER BY entry_date, created_at, id
LIMIT $2 OFFSET $3`

// GetByAccount retrieves entries for an account, date ascending.
func (r *EntryRepository) GetByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Entry, error) {
	rows, err := r.pool.Query(ctx, getEntriesByAccountSQL, accountID, limit, offset)
	if err != nil {
		return nil, err
	}

	return scanEntries(rows)
}

func scanEntries(rows pgx.Rows) ([]*domain.Entry, error) {
	defer rows.Close()

	var entries []*domain.Entry
	for rows.Next() {
		var (
			entry        domain.Entry
			amount       pgtype.Numeric
			entryDate    pgtype.Timestamptz
			categoryType string
			createdAt    pgtype.Timestamptz
		)

		err := rows.Scan(&entry.ID, &entry.AccountID, &amount, &entryDate, &entry.Category, &categoryType, &createdAt)
		if err != nil {
			return nil, err
		}

		entry.Amount = numericToDecimal(amount)
		entry.Date = entryDate.Time
		entry.CategoryType = domain.CategoryType(categoryType)
		entry.CreatedAt = createdAt.Time

		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}
