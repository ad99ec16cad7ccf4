// Package mocks provides testify mocks of the domain ports
package mocks

import (
	"context"

	"github.com/damon-houk/fxrate-store/internal/domain/entity"
	"github.com/stretchr/testify/mock"
)

// MockExchangeRateRepository mocks the ExchangeRateRepository interface
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) Save(ctx context.Context, rate entity.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) FindByPair(ctx context.Context, baseCurrency, currency string) (entity.ExchangeRate, bool, error) {
	args := m.Called(ctx, baseCurrency, currency)
	return args.Get(0).(entity.ExchangeRate), args.Bool(1), args.Error(2)
}

func (m *MockExchangeRateRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
