package middleware

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/aydmirov/call-logging/internal/interceptor"
)

// CallLogger applies the method call interceptor at the HTTP boundary:
// each request becomes one intercepted invocation named after the wrapped
// handler, with the method and path as arguments and the status code as
// the result.
type CallLogger struct {
	logger *slog.Logger
	calls  *interceptor.Interceptor
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func New(logger *slog.Logger, calls *interceptor.Interceptor) *CallLogger {
	return &CallLogger{
		logger: logger,
		calls:  calls,
	}
}

// Wrap decorates next so its requests run through the interceptor under
// the given handler name.
func (cl *CallLogger) Wrap(name string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientIP := extractClientIP(r)
		start := time.Now()

		cl.logger.Info("Received request",
			slog.String("from", clientIP),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path))

		wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		inv := interceptor.Invocation{
			Type:   name,
			Method: r.Method,
			Args:   []any{r.URL.Path},
		}

		_, _ = cl.calls.Around(r.Context(), inv, func() (any, error) {
			next.ServeHTTP(wrapped, r)
			if wrapped.statusCode >= http.StatusInternalServerError {
				return nil, fmt.Errorf("handler returned status %d", wrapped.statusCode)
			}
			return wrapped.statusCode, nil
		})

		cl.logger.Info("Completed request",
			slog.String("from", clientIP),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", wrapped.statusCode),
			slog.Duration("duration", time.Since(start)))
	})
}

func (r *statusRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

func extractClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}

	host, _, _ := net.SplitHostPort(r.RemoteAddr)
	return host
}
