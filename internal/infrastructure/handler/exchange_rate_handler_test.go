package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/damon-houk/fxrate-store/internal/application/service"
	"github.com/damon-houk/fxrate-store/internal/domain/entity"
	"github.com/damon-houk/fxrate-store/internal/domain/repository"
	"github.com/damon-houk/fxrate-store/internal/infrastructure/db"
	"github.com/damon-houk/fxrate-store/internal/infrastructure/handler"
	"github.com/damon-houk/fxrate-store/internal/infrastructure/logger"
	"github.com/damon-houk/fxrate-store/internal/infrastructure/middleware"
	"github.com/damon-houk/fxrate-store/internal/mocks"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRouter(repo repository.ExchangeRateRepository) *mux.Router {
	log := logger.NewJSONLogger(&bytes.Buffer{}, logger.InfoLevel)
	h := handler.NewExchangeRateHandler(service.NewExchangeRateService(repo, log), log)

	router := mux.NewRouter()
	router.Use(middleware.RequestIDMiddleware)
	h.RegisterRoutes(router)
	return router
}

// setupTestServer serves the handler over an in-memory badger store
func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	badgerDB, err := db.OpenBadger(db.BadgerOptions{})
	require.NoError(t, err)

	server := httptest.NewServer(newRouter(db.NewBadgerExchangeRateRepository(badgerDB)))
	t.Cleanup(func() {
		server.Close()
		_ = badgerDB.Close()
	})
	return server
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, bytes.NewBufferString(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestExchangeRateLifecycle(t *testing.T) {
	server := setupTestServer(t)

	// Absent pair
	resp := do(t, http.MethodGet, server.URL+"/rates/GBP/JPY", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))

	var errResp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
	assert.Equal(t, "Exchange rate not found", errResp.Error)
	assert.Equal(t, http.StatusNotFound, errResp.Status)

	// Insert then replace
	resp = do(t, http.MethodPut, server.URL+"/rates/USD/EUR", `{"rate": 0.9}`)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = do(t, http.MethodPut, server.URL+"/rates/USD/EUR", `{"rate": 0.95}`)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, http.MethodGet, server.URL+"/rates/USD/EUR", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var rate handler.ExchangeRateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rate))
	assert.Equal(t, handler.ExchangeRateResponse{BaseCurrency: "USD", Currency: "EUR", Rate: 0.95}, rate)

	// No inversion
	resp = do(t, http.MethodGet, server.URL+"/rates/EUR/USD", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Clear, twice
	resp = do(t, http.MethodDelete, server.URL+"/rates", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = do(t, http.MethodDelete, server.URL+"/rates", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, http.MethodGet, server.URL+"/rates/USD/EUR", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSaveRateValidation(t *testing.T) {
	router := newRouter(new(mocks.MockExchangeRateRepository))

	tests := []struct {
		name  string
		body  string
		error string
	}{
		{"malformed json", `{"rate":`, "Invalid request body"},
		{"missing rate", `{}`, "Missing rate"},
		{"rate not a number", `{"rate": "0.9"}`, "Invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/rates/USD/EUR", bytes.NewBufferString(tt.body)))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var errResp handler.ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&errResp))
			assert.Equal(t, tt.error, errResp.Error)
			assert.NotEmpty(t, errResp.RequestID)
		})
	}
}

func TestSaveRateZeroIsStored(t *testing.T) {
	repo := new(mocks.MockExchangeRateRepository)
	router := newRouter(repo)

	want := entity.ExchangeRate{BaseCurrency: "XAU", Currency: "XAG", Rate: 0}
	repo.On("Save", mock.Anything, want).Return(nil).Once()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/rates/XAU/XAG", bytes.NewBufferString(`{"rate": 0}`)))

	assert.Equal(t, http.StatusNoContent, w.Code)
	repo.AssertExpectations(t)
}

func TestStorageErrors(t *testing.T) {
	repo := new(mocks.MockExchangeRateRepository)
	router := newRouter(repo)
	storageErr := func(op string) error {
		return repository.NewStorageError(op, errors.New("input/output error"))
	}

	repo.On("Save", mock.Anything, mock.Anything).Return(storageErr("save")).Once()
	repo.On("FindByPair", mock.Anything, "USD", "EUR").Return(entity.ExchangeRate{}, false, storageErr("find")).Once()
	repo.On("DeleteAll", mock.Anything).Return(storageErr("delete all")).Once()

	requests := []*http.Request{
		httptest.NewRequest(http.MethodPut, "/rates/USD/EUR", bytes.NewBufferString(`{"rate": 0.9}`)),
		httptest.NewRequest(http.MethodGet, "/rates/USD/EUR", nil),
		httptest.NewRequest(http.MethodDelete, "/rates", nil),
	}
	for _, req := range requests {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusInternalServerError, w.Code, "%s %s", req.Method, req.URL.Path)
	}

	repo.AssertExpectations(t)
}

func TestRequestIDReachesService(t *testing.T) {
	repo := new(mocks.MockExchangeRateRepository)
	router := newRouter(repo)

	repo.On("FindByPair", mock.MatchedBy(func(ctx context.Context) bool {
		return middleware.GetRequestID(ctx) == "req-42"
	}), "USD", "EUR").Return(entity.ExchangeRate{BaseCurrency: "USD", Currency: "EUR", Rate: 0.9}, true, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/rates/USD/EUR", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-42")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "req-42", w.Header().Get(middleware.RequestIDHeader))
	repo.AssertExpectations(t)
}

func TestHealthCheck(t *testing.T) {
	w := httptest.NewRecorder()
	handler.HealthCheck(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
