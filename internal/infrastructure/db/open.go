package db

import (
	"fmt"
	"io"

	"github.com/damon-houk/fxrate-store/internal/domain/repository"
)

// Engine names a supported storage engine
type Engine string

const (
	EngineBadger Engine = "badger"
	EngineSQLite Engine = "sqlite"
)

// Options selects and configures the storage engine
type Options struct {
	Engine    Engine
	Badger    BadgerOptions
	SQLiteDSN string
}

// OpenExchangeRateRepository opens the configured engine and returns a repository over it.
// The closer releases the engine handle.
func OpenExchangeRateRepository(opts Options) (repository.ExchangeRateRepository, io.Closer, error) {
	switch opts.Engine {
	case EngineBadger, "":
		badgerDB, err := OpenBadger(opts.Badger)
		if err != nil {
			return nil, nil, err
		}
		return NewBadgerExchangeRateRepository(badgerDB), badgerDB, nil
	case EngineSQLite:
		sqlDB, err := OpenSQLite(opts.SQLiteDSN)
		if err != nil {
			return nil, nil, err
		}
		return NewSQLiteExchangeRateRepository(sqlDB), sqlDB, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage engine %q", opts.Engine)
	}
}
