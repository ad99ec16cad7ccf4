// Package handler exposes the exchange rate store over HTTP
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/damon-houk/fxrate-store/internal/application/service"
	"github.com/damon-houk/fxrate-store/internal/domain/entity"
	"github.com/damon-houk/fxrate-store/internal/infrastructure/logger"
	"github.com/damon-houk/fxrate-store/internal/infrastructure/middleware"
	"github.com/gorilla/mux"
)

// ExchangeRateHandler handles HTTP requests for stored exchange rates
type ExchangeRateHandler struct {
	service *service.ExchangeRateService
	logger  logger.Logger
}

// NewExchangeRateHandler creates a new exchange rate handler
func NewExchangeRateHandler(service *service.ExchangeRateService, log logger.Logger) *ExchangeRateHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &ExchangeRateHandler{
		service: service,
		logger:  log,
	}
}

// SaveRate handles PUT /rates/{base}/{currency}
func (h *ExchangeRateHandler) SaveRate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	vars := mux.Vars(r)

	var req SaveRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Invalid request body",
			"The request body could not be parsed as valid JSON", http.StatusBadRequest, requestID)
		return
	}

	if req.Rate == nil {
		sendErrorResponse(w, h.logger, "Missing rate",
			"The 'rate' field is required", http.StatusBadRequest, requestID)
		return
	}

	rate := entity.ExchangeRate{
		BaseCurrency: vars["base"],
		Currency:     vars["currency"],
		Rate:         *req.Rate,
	}

	if err := h.service.SaveRate(r.Context(), rate); err != nil {
		if errors.Is(err, entity.ErrInvalidRate) {
			sendErrorResponse(w, h.logger, "Invalid rate", err.Error(), http.StatusBadRequest, requestID)
			return
		}
		sendErrorResponse(w, h.logger, "Storage unavailable",
			"The exchange rate could not be stored. Please try again later.",
			http.StatusInternalServerError, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetRate handles GET /rates/{base}/{currency}
func (h *ExchangeRateHandler) GetRate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	vars := mux.Vars(r)
	base, currency := vars["base"], vars["currency"]

	rate, found, err := h.service.FindRate(r.Context(), base, currency)
	if err != nil {
		sendErrorResponse(w, h.logger, "Storage unavailable",
			"The exchange rate could not be read. Please try again later.",
			http.StatusInternalServerError, requestID)
		return
	}

	if !found {
		sendErrorResponse(w, h.logger, "Exchange rate not found",
			"No exchange rate is stored for "+base+"/"+currency, http.StatusNotFound, requestID)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(ExchangeRateResponse(rate)); err != nil {
		h.logger.Error("Failed to encode response", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
	}
}

// ClearRates handles DELETE /rates
func (h *ExchangeRateHandler) ClearRates(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	if err := h.service.ClearRates(r.Context()); err != nil {
		sendErrorResponse(w, h.logger, "Storage unavailable",
			"The exchange rates could not be cleared. Please try again later.",
			http.StatusInternalServerError, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RegisterRoutes registers the exchange rate routes
func (h *ExchangeRateHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/rates/{base}/{currency}", h.SaveRate).Methods(http.MethodPut)
	router.HandleFunc("/rates/{base}/{currency}", h.GetRate).Methods(http.MethodGet)
	router.HandleFunc("/rates", h.ClearRates).Methods(http.MethodDelete)

	h.logger.Info("Exchange rate routes registered", map[string]interface{}{
		"routes": []string{
			"PUT /rates/{base}/{currency}",
			"GET /rates/{base}/{currency}",
			"DELETE /rates",
		},
	})
}

// HealthCheck reports that the process is serving requests
func HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func sendErrorResponse(w http.ResponseWriter, log logger.Logger, message, description string, statusCode int, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	log.Debug("Sending error response", map[string]interface{}{
		"request_id":  requestID,
		"status_code": statusCode,
		"error":       message,
	})

	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error:       message,
		Status:      statusCode,
		Description: description,
		RequestID:   requestID,
	})
}
