package metrics

import (
	"context"
	"time"

	"github.com/damon-houk/fxrate-store/internal/domain/entity"
	"github.com/damon-houk/fxrate-store/internal/domain/repository"
)

// InstrumentedRepository records counts and latencies for every call to the wrapped repository.
// Results and errors pass through untouched.
type InstrumentedRepository struct {
	next    repository.ExchangeRateRepository
	metrics *Metrics
}

var _ repository.ExchangeRateRepository = (*InstrumentedRepository)(nil)

// NewInstrumentedRepository wraps next
func NewInstrumentedRepository(next repository.ExchangeRateRepository, m *Metrics) *InstrumentedRepository {
	return &InstrumentedRepository{next: next, metrics: m}
}

// Save records the outcome of the wrapped Save
func (r *InstrumentedRepository) Save(ctx context.Context, rate entity.ExchangeRate) error {
	start := time.Now()
	err := r.next.Save(ctx, rate)
	r.observe("save", start, resultOf(err))
	return err
}

// FindByPair records a lookup as ok, absent or error
func (r *InstrumentedRepository) FindByPair(ctx context.Context, baseCurrency, currency string) (entity.ExchangeRate, bool, error) {
	start := time.Now()
	rate, found, err := r.next.FindByPair(ctx, baseCurrency, currency)

	result := resultOf(err)
	if err == nil && !found {
		result = ResultAbsent
	}
	r.observe("find", start, result)
	return rate, found, err
}

// DeleteAll records the outcome of the wrapped DeleteAll
func (r *InstrumentedRepository) DeleteAll(ctx context.Context) error {
	start := time.Now()
	err := r.next.DeleteAll(ctx)
	r.observe("delete_all", start, resultOf(err))
	return err
}

func (r *InstrumentedRepository) observe(op string, start time.Time, result string) {
	r.metrics.StoreOperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	r.metrics.StoreOperationsTotal.WithLabelValues(op, result).Inc()
}

func resultOf(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}
