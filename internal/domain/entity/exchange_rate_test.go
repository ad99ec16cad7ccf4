package entity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExchangeRateValidate(t *testing.T) {
	tests := []struct {
		name    string
		rate    float64
		wantErr bool
	}{
		{"positive", 0.9, false},
		{"zero", 0, false},
		{"negative", -1.5, false},
		{"nan", math.NaN(), true},
		{"positive infinity", math.Inf(1), true},
		{"negative infinity", math.Inf(-1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ExchangeRate{BaseCurrency: "USD", Currency: "EUR", Rate: tt.rate}.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRate)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExchangeRatePair(t *testing.T) {
	rate := ExchangeRate{BaseCurrency: "USD", Currency: "JPY", Rate: 110}
	assert.Equal(t, Pair{Base: "USD", Quote: "JPY"}, rate.Pair())
}
