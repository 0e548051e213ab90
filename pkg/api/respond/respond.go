// Package respond holds the JSON response helpers and middleware shared by
// the HTTP handlers.
package respond

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bizplan_forecast/pkg/metrics"
)

// Error codes
const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeUnknownFormat    = "UNKNOWN_FORMAT"
	CodeProviderNotFound = "PROVIDER_NOT_FOUND"
	CodeProviderNotReady = "PROVIDER_NOT_READY"
	CodeUnknownSection   = "UNKNOWN_SECTION"
	CodeGenerationFailed = "GENERATION_FAILED"
	CodeExportFailed     = "EXPORT_FAILED"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
)

// RequestIDHeader carries the request id on requests and responses.
const RequestIDHeader = "X-Request-ID"

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Error writes a JSON error envelope.
func Error(w http.ResponseWriter, status int, code, message string) {
	JSON(w, status, ErrorResponse{Error: ErrorBody{Code: code, Message: message}})
}

// CORS sets permissive CORS headers. It returns true for a preflight
// request, which is fully answered.
func CORS(w http.ResponseWriter, r *http.Request, methods string) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", methods+", OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+RequestIDHeader)
	w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, "+RequestIDHeader)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return true
	}
	return false
}

// Allow answers preflights and rejects any method other than method.
// It returns false when the request was already answered.
func Allow(w http.ResponseWriter, r *http.Request, method string) bool {
	if CORS(w, r, method) {
		return false
	}
	if r.Method != method {
		Error(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "method "+r.Method+" not allowed")
		return false
	}
	return true
}

type ctxKey struct{}

// RequestID returns the id assigned by WithRequestID.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// WithRequestID keeps an incoming X-Request-ID or assigns a new one.
func WithRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Instrument counts requests per route and status and logs each one.
func Instrument(route string, m *metrics.Metrics, log *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		if m != nil {
			m.HTTPRequests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		}
		if log != nil {
			log.Debug("request served",
				zap.String("route", route),
				zap.String("method", r.Method),
				zap.Int("status", rec.status),
				zap.String("request_id", RequestID(r.Context())),
			)
		}
	})
}
