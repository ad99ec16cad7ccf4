// Package service holds the application services built on the domain ports
package service

import (
	"context"

	"github.com/damon-houk/fxrate-store/internal/domain/entity"
	"github.com/damon-houk/fxrate-store/internal/domain/repository"
	"github.com/damon-houk/fxrate-store/internal/infrastructure/logger"
	"github.com/damon-houk/fxrate-store/internal/infrastructure/middleware"
)

// ExchangeRateService is the store as seen by rate fetchers and converters.
// It performs no retries; repository errors are returned as-is.
type ExchangeRateService struct {
	repo   repository.ExchangeRateRepository
	logger logger.Logger
}

// NewExchangeRateService creates a new exchange rate service
func NewExchangeRateService(repo repository.ExchangeRateRepository, log logger.Logger) *ExchangeRateService {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &ExchangeRateService{
		repo:   repo,
		logger: log,
	}
}

// SaveRate upserts the latest rate for its pair
func (s *ExchangeRateService) SaveRate(ctx context.Context, rate entity.ExchangeRate) error {
	requestID := middleware.GetRequestID(ctx)

	if err := rate.Validate(); err != nil {
		s.logger.Warn("Rejected exchange rate", map[string]interface{}{
			"request_id":    requestID,
			"base_currency": rate.BaseCurrency,
			"currency":      rate.Currency,
			"error":         err.Error(),
		})
		return err
	}

	if err := s.repo.Save(ctx, rate); err != nil {
		s.logger.Error("Failed to store exchange rate", map[string]interface{}{
			"request_id":    requestID,
			"base_currency": rate.BaseCurrency,
			"currency":      rate.Currency,
			"error":         err.Error(),
		})
		return err
	}

	s.logger.Info("Stored exchange rate", map[string]interface{}{
		"request_id":    requestID,
		"base_currency": rate.BaseCurrency,
		"currency":      rate.Currency,
		"rate":          rate.Rate,
	})
	return nil
}

// FindRate returns the stored rate for the pair. found is false when none exists;
// callers are expected to fall back, for example by fetching a fresh rate.
func (s *ExchangeRateService) FindRate(ctx context.Context, baseCurrency, currency string) (rate entity.ExchangeRate, found bool, err error) {
	requestID := middleware.GetRequestID(ctx)

	rate, found, err = s.repo.FindByPair(ctx, baseCurrency, currency)
	if err != nil {
		s.logger.Error("Failed to find exchange rate", map[string]interface{}{
			"request_id":    requestID,
			"base_currency": baseCurrency,
			"currency":      currency,
			"error":         err.Error(),
		})
		return entity.ExchangeRate{}, false, err
	}

	s.logger.Debug("Exchange rate lookup", map[string]interface{}{
		"request_id":    requestID,
		"base_currency": baseCurrency,
		"currency":      currency,
		"found":         found,
	})
	return rate, found, nil
}

// ClearRates removes every stored rate
func (s *ExchangeRateService) ClearRates(ctx context.Context) error {
	requestID := middleware.GetRequestID(ctx)

	if err := s.repo.DeleteAll(ctx); err != nil {
		s.logger.Error("Failed to clear exchange rates", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		return err
	}

	s.logger.Info("Cleared exchange rates", map[string]interface{}{
		"request_id": requestID,
	})
	return nil
}
