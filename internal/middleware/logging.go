package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// RequestIDHeader carries the request id on outgoing requests.
const RequestIDHeader = "X-Request-ID"

// WithRequestID stores id in ctx so the transport reuses it.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID extracts request ID from context.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// RoundTripperFunc adapts a function to http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// Logging tags outgoing requests with a request ID and logs their duration.
// Query strings are not logged.
func Logging(logger *slog.Logger) func(http.RoundTripper) http.RoundTripper {
	return func(next http.RoundTripper) http.RoundTripper {
		if next == nil {
			next = http.DefaultTransport
		}
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()

			requestID := RequestID(r.Context())
			if requestID == "" {
				requestID = uuid.New().String()
			}

			r = r.Clone(WithRequestID(r.Context(), requestID))
			r.Header.Set(RequestIDHeader, requestID)

			logger.Debug("request started",
				"request_id", requestID,
				"method", r.Method,
				"host", r.URL.Host,
				"path", r.URL.Path,
			)

			resp, err := next.RoundTrip(r)
			duration := time.Since(start)
			if err != nil {
				logger.Warn("request failed",
					"request_id", requestID,
					"method", r.Method,
					"host", r.URL.Host,
					"error", err,
					"duration_ms", duration.Milliseconds(),
				)
				return nil, err
			}

			logger.Debug("request completed",
				"request_id", requestID,
				"method", r.Method,
				"host", r.URL.Host,
				"status", resp.StatusCode,
				"duration_ms", duration.Milliseconds(),
			)
			return resp, nil
		})
	}
}
