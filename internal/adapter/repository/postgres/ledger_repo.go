package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

const countNegativeBalancesSQL = `
SELECT COUNT(*)
FROM accounts a
WHERE a.starting_balance + COALESCE(
	(SELECT SUM(e.amount) FROM entries e WHERE e.account_id = a.id), 0
) < 0`

// CountNegativeBalances counts accounts whose derived balance is
// negative. The write paths keep this at zero; a non-zero count means
// rows were written around the domain layer.
func (r *LedgerRepository) CountNegativeBalances(ctx context.Context) (int64, error) {
	var count int64

	err := r.pool.QueryRow(ctx, countNegativeBalancesSQL).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}
