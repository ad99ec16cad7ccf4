package db

import (
	"fmt"
	"os"

	"github.com/damon-houk/fxrate-store/internal/infrastructure/logger"
	"github.com/dgraph-io/badger/v3"
)

// BadgerOptions configures OpenBadger
type BadgerOptions struct {
	// Path is the data directory. Empty opens an in-memory database.
	Path       string
	SyncWrites bool
	Logger     logger.Logger
}

// OpenBadger opens (creating if needed) a BadgerDB instance
func OpenBadger(opts BadgerOptions) (*badger.DB, error) {
	var badgerOpts badger.Options
	if opts.Path == "" {
		badgerOpts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(opts.Path, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		badgerOpts = badger.DefaultOptions(opts.Path)
	}

	badgerOpts = badgerOpts.WithSyncWrites(opts.SyncWrites)
	if opts.Logger != nil {
		badgerOpts = badgerOpts.WithLogger(logger.NewBadgerAdapter(opts.Logger))
	} else {
		badgerOpts = badgerOpts.WithLogger(nil)
	}

	badgerDB, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database: %w", err)
	}
	return badgerDB, nil
}
