package entity

import (
	"errors"
	"math"
)

// ErrInvalidRate is returned when a rate cannot be stored as a finite number
var ErrInvalidRate = errors.New("rate must be a finite number")

// ExchangeRate is the latest known rate for a currency pair.
// Rate is the amount of Currency equal to one unit of BaseCurrency.
// Codes are kept byte-for-byte; a Rate of -0 is stored as 0.
type ExchangeRate struct {
	BaseCurrency string  `json:"base_currency"`
	Currency     string  `json:"currency"`
	Rate         float64 `json:"rate"`
}

// Pair identifies a record. Codes are compared byte-for-byte.
type Pair struct {
	Base  string
	Quote string
}

// Pair returns the composite key of the rate
func (r ExchangeRate) Pair() Pair {
	return Pair{Base: r.BaseCurrency, Quote: r.Currency}
}

// Validate ensures the rate can be persisted
func (r ExchangeRate) Validate() error {
	if math.IsNaN(r.Rate) || math.IsInf(r.Rate, 0) {
		return ErrInvalidRate
	}
	return nil
}
