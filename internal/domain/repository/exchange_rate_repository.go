// Package repository defines the storage ports of the domain
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/damon-houk/fxrate-store/internal/domain/entity"
)

// ExchangeRateRepository is a durable store holding one rate per currency pair
type ExchangeRateRepository interface {
	// Save inserts the rate, fully replacing any existing record for the same pair
	Save(ctx context.Context, rate entity.ExchangeRate) error

	// FindByPair looks up the exact (baseCurrency, currency) pair.
	// The boolean is false when no record exists; that is not an error.
	FindByPair(ctx context.Context, baseCurrency, currency string) (entity.ExchangeRate, bool, error)

	// DeleteAll removes every record
	DeleteAll(ctx context.Context) error
}

// StorageError reports that the underlying engine could not complete an operation
type StorageError struct {
	Op  string
	Err error
}

// NewStorageError wraps an engine error for the given operation
func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsStorageError reports whether err, or anything it wraps, is a StorageError
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
