// Package db contains the storage engine adapters for exchange rates
package db

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/damon-houk/fxrate-store/internal/domain/entity"
	"github.com/damon-houk/fxrate-store/internal/domain/repository"
	"github.com/dgraph-io/badger/v3"
)

var ratePrefix = []byte("rate:")

// BadgerExchangeRateRepository implements the exchange rate repository using BadgerDB
type BadgerExchangeRateRepository struct {
	db *badger.DB
}

var _ repository.ExchangeRateRepository = (*BadgerExchangeRateRepository)(nil)

// NewBadgerExchangeRateRepository creates a new BadgerDB exchange rate repository
func NewBadgerExchangeRateRepository(db *badger.DB) *BadgerExchangeRateRepository {
	return &BadgerExchangeRateRepository{db: db}
}

// rateKey encodes the pair as prefix | uvarint(len(base)) | base | quote.
// The length prefix keeps ("AB","C") and ("A","BC") apart.
func rateKey(pair entity.Pair) []byte {
	key := make([]byte, 0, len(ratePrefix)+binary.MaxVarintLen64+len(pair.Base)+len(pair.Quote))
	key = append(key, ratePrefix...)
	key = binary.AppendUvarint(key, uint64(len(pair.Base)))
	key = append(key, pair.Base...)
	key = append(key, pair.Quote...)
	return key
}

// encodeRate stores only the rate; the codes already live verbatim in the key.
// Negative zero is written as zero, as SQLite REAL does.
func encodeRate(rate float64) []byte {
	if rate == 0 {
		rate = 0
	}
	return binary.BigEndian.AppendUint64(nil, math.Float64bits(rate))
}

func decodeRate(val []byte) (float64, error) {
	if len(val) != 8 {
		return 0, fmt.Errorf("corrupt rate value: %d bytes", len(val))
	}
	return math.Float64frombits(binary.BigEndian.Uint64(val)), nil
}

// Save stores the rate, replacing any previous value for the pair
func (r *BadgerExchangeRateRepository) Save(ctx context.Context, rate entity.ExchangeRate) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(rateKey(rate.Pair()), encodeRate(rate.Rate))
	})
	if err != nil {
		return repository.NewStorageError("save", err)
	}
	return nil
}

// FindByPair retrieves the rate stored for the exact pair
func (r *BadgerExchangeRateRepository) FindByPair(ctx context.Context, baseCurrency, currency string) (entity.ExchangeRate, bool, error) {
	if err := ctx.Err(); err != nil {
		return entity.ExchangeRate{}, false, err
	}

	rate := entity.ExchangeRate{BaseCurrency: baseCurrency, Currency: currency}
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(rateKey(entity.Pair{Base: baseCurrency, Quote: currency}))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			rate.Rate, err = decodeRate(val)
			return err
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return entity.ExchangeRate{}, false, nil
	}
	if err != nil {
		return entity.ExchangeRate{}, false, repository.NewStorageError("find", err)
	}
	return rate, true, nil
}

// DeleteAll deletes every key under the rate prefix.
// Keys written concurrently with the scan may survive.
func (r *BadgerExchangeRateRepository) DeleteAll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	wb := r.db.NewWriteBatch()
	defer wb.Cancel()

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = ratePrefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := wb.Delete(it.Item().KeyCopy(nil)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return repository.NewStorageError("delete all", err)
	}

	if err := wb.Flush(); err != nil {
		return repository.NewStorageError("delete all", err)
	}
	return nil
}
