package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/damon-houk/fxrate-store/internal/domain/entity"
	"github.com/damon-houk/fxrate-store/internal/domain/repository"
)

// SQLiteExchangeRateRepository implements the exchange rate repository on SQLite
type SQLiteExchangeRateRepository struct {
	db *sql.DB
}

var _ repository.ExchangeRateRepository = (*SQLiteExchangeRateRepository)(nil)

// NewSQLiteExchangeRateRepository creates a repository over a database opened with OpenSQLite
func NewSQLiteExchangeRateRepository(db *sql.DB) *SQLiteExchangeRateRepository {
	return &SQLiteExchangeRateRepository{db: db}
}

// Save inserts the rate, replacing the existing row for the pair
func (r *SQLiteExchangeRateRepository) Save(ctx context.Context, rate entity.ExchangeRate) error {
	const query = `INSERT OR REPLACE INTO exchange_rates (base_currency, currency, rate) VALUES (?, ?, ?)`

	if _, err := r.db.ExecContext(ctx, query, rate.BaseCurrency, rate.Currency, rate.Rate); err != nil {
		return storageError(ctx, "save", err)
	}
	return nil
}

// FindByPair retrieves the row for the exact pair
func (r *SQLiteExchangeRateRepository) FindByPair(ctx context.Context, baseCurrency, currency string) (entity.ExchangeRate, bool, error) {
	const query = `SELECT base_currency, currency, rate
		FROM exchange_rates
		WHERE base_currency = ? AND currency = ?`

	var rate entity.ExchangeRate
	err := r.db.QueryRowContext(ctx, query, baseCurrency, currency).
		Scan(&rate.BaseCurrency, &rate.Currency, &rate.Rate)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.ExchangeRate{}, false, nil
	}
	if err != nil {
		return entity.ExchangeRate{}, false, storageError(ctx, "find", err)
	}
	return rate, true, nil
}

// DeleteAll removes every row
func (r *SQLiteExchangeRateRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM exchange_rates`); err != nil {
		return storageError(ctx, "delete all", err)
	}
	return nil
}

// storageError leaves caller cancellation unwrapped so it is not reported as an engine fault
func storageError(ctx context.Context, op string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		return err
	}
	return repository.NewStorageError(op, err)
}
