package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/budget/internal/domain"
	"github.com/iho/budget/internal/usecase"
)

const pgErrUniqueViolation = "23505"

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

const createAccountSQL = `
INSERT INTO accounts (id, name, currency, starting_balance, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)`

// CreateTx inserts a new account inside the given transaction. A
// unique-index violation on the name column maps to
// ErrDuplicateAccountName so a lost check-then-insert race still
// surfaces as the domain error.
func (r *AccountRepository) CreateTx(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, createAccountSQL,
		account.ID,
		account.Name,
		account.Currency,
		decimalToNumeric(account.StartingBalance),
		timeToPgTimestamptz(account.CreatedAt),
		timeToPgTimestamptz(account.UpdatedAt),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
			return fmt.Errorf("%w: %q", domain.ErrDuplicateAccountName, account.Name)
		}

		return err
	}

	return nil
}

const getAccountSQL = `
SELECT id, name, currency, starting_balance, created_at, updated_at
FROM accounts
WHERE id = $1`

// GetByID retrieves an account with its entries.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return r.getAccount(ctx, r.pool, getAccountSQL, id)
}

const getAccountForUpdateSQL = getAccountSQL + `
FOR UPDATE`

// GetByIDForUpdate retrieves an account with a FOR UPDATE lock on its
// row, serializing concurrent balance checks against the account.
func (r *AccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	return r.getAccount(ctx, tx.(*Tx).PgxTx(), getAccountForUpdateSQL, id)
}

const getAccountsForUpdateSQL = `
SELECT id, name, currency, starting_balance, created_at, updated_at
FROM accounts
WHERE id = ANY($1)
ORDER BY id
FOR UPDATE`

// GetByIDsForUpdate locks and retrieves multiple accounts. Rows are
// locked in ascending ID order; callers pass sorted IDs so concurrent
// multi-account operations acquire locks in the same order.
func (r *AccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	pgxTx := tx.(*Tx).PgxTx()

	rows, err := pgxTx.Query(ctx, getAccountsForUpdateSQL, ids)
	if err != nil {
		return nil, err
	}

	accounts, err := scanAccounts(rows)
	if err != nil {
		return nil, err
	}

	for _, account := range accounts {
		if err := r.loadEntries(ctx, pgxTx, account); err != nil {
			return nil, err
		}
	}

	return accounts, nil
}

const getAccountByNameSQL = `
SELECT id, name, currency, starting_balance, created_at, updated_at
FROM accounts
WHERE name = $1`

// GetByName retrieves an account by its display name. Returns
// (nil, nil) when no account has the name.
func (r *AccountRepository) GetByName(ctx context.Context, name string) (*domain.Account, error) {
	account, err := r.getAccount(ctx, r.pool, getAccountByNameSQL, name)
	if errors.Is(err, domain.ErrAccountNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return account, nil
}

const listAccountsSQL = `
SELECT id, name, currency, starting_balance, created_at, updated_at
FROM accounts
ORDER BY created_at, id
LIMIT $1 OFFSET $2`

// List lists accounts with pagination, entries included.
func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	rows, err := r.pool.Query(ctx, listAccountsSQL, limit, offset)
	if err != nil {
		return nil, err
	}

	accounts, err := scanAccounts(rows)
	if err != nil {
		return nil, err
	}

	for _, account := range accounts {
		if err := r.loadEntries(ctx, r.pool, account); err != nil {
			return nil, err
		}
	}

	return accounts, nil
}

func (r *AccountRepository) getAccount(ctx context.Context, db dbtx, sql string, arg any) (*domain.Account, error) {
	account, err := scanAccount(db.QueryRow(ctx, sql, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	if err := r.loadEntries(ctx, db, account); err != nil {
		return nil, err
	}

	return account, nil
}

const getEntriesForAccountSQL = `
SELECT id, account_id, amount, entry_date, category, category_type, created_at
FROM entries
WHERE account_id = $1
ORDER BY entry_date, created_at, id`

// loadEntries rehydrates the aggregate's entry collection, so the
// derived balance reflects every persisted movement.
func (r *AccountRepository) loadEntries(ctx context.Context, db dbtx, account *domain.Account) error {
	rows, err := db.Query(ctx, getEntriesForAccountSQL, account.ID)
	if err != nil {
		return err
	}

	entries, err := scanEntries(rows)
	if err != nil {
		return err
	}

	account.RestoreEntries(entries)

	return nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		account            domain.Account
		balance            pgtype.Numeric
		createdAt, updated pgtype.Timestamptz
	)

	err := row.Scan(&account.ID, &account.Name, &account.Currency, &balance, &createdAt, &updated)
	if err != nil {
		return nil, err
	}

	account.StartingBalance = numericToDecimal(balance)
	account.CreatedAt = createdAt.Time
	account.UpdatedAt = updated.Time

	return &account, nil
}

func scanAccounts(rows pgx.Rows) ([]*domain.Account, error) {
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}

		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

// Type conversion helpers. Decimal values cross the pgtype boundary as
// strings, never as floats, so "999.99999" round-trips exactly.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
