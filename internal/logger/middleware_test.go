package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddleware_GeneratesIDWhenHeaderAbsent(t *testing.T) {
	logger, _ := observedLogger()
	var seen string
	handler := RequestIDMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ExtractRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.NotEmpty(t, seen)
}

func TestRequestIDMiddleware_ReusesIncomingHeader(t *testing.T) {
	logger, _ := observedLogger()
	var seen string
	handler := RequestIDMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ExtractRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "fixed-id", seen)
}

func TestCorrelationIDMiddleware_ReusesIncomingHeader(t *testing.T) {
	logger, _ := observedLogger()
	var seen string
	handler := CorrelationIDMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ExtractCorrelationID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Correlation-ID", "fixed-corr")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "fixed-corr", seen)
}

func TestLoggingMiddleware_LogsInfoOnSuccess(t *testing.T) {
	logger, logs := observedLogger()
	handler := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/schedules", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "info", entry.Level.String())
	assert.EqualValues(t, http.StatusOK, entry.ContextMap()["status"])
}

func TestLoggingMiddleware_LogsErrorOnFailureStatus(t *testing.T) {
	logger, logs := observedLogger()
	handler := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/schedules", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "error", logs.All()[0].Level.String())
}

func TestResponseWriter_WriteWithoutExplicitHeaderDefaultsToOK(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &ResponseWriter{ResponseWriter: rec, statusCode: http.StatusOK}

	_, err := rw.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rw.statusCode)
}

func TestResponseWriter_WriteHeaderIsCapturedOnce(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &ResponseWriter{ResponseWriter: rec}

	rw.WriteHeader(http.StatusCreated)
	rw.WriteHeader(http.StatusInternalServerError) // second call must be ignored

	assert.Equal(t, http.StatusCreated, rw.statusCode)
}
