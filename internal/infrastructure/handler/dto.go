package handler

// SaveRateRequest is the body of PUT /rates/{base}/{currency}.
// Rate is a pointer so a missing field can be told apart from zero.
type SaveRateRequest struct {
	Rate *float64 `json:"rate"`
}

// ExchangeRateResponse represents a stored rate
type ExchangeRateResponse struct {
	BaseCurrency string  `json:"base_currency"`
	Currency     string  `json:"currency"`
	Rate         float64 `json:"rate"`
}

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error       string `json:"error"`
	Status      int    `json:"status"`
	Description string `json:"description,omitempty"`
	RequestID   string `json:"request_id,omitempty"`
}
