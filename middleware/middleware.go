package middleware

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

// RequestIDHeader carries the request id in both directions
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestID tags every request with an id, reusing the caller's header when present
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDFrom returns the id set by RequestID, or "" outside of it
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// AccessLog writes one line per request once the response is done
func AccessLog(next http.Handler) http.Handler {
	return handlers.CustomLoggingHandler(io.Discard, next, logAccess)
}

// logAccess sends the access line to the process logger instead of out
func logAccess(_ io.Writer, p handlers.LogFormatterParams) {
	logger.Info("Request completed",
		zap.String("request_id", RequestIDFrom(p.Request.Context())),
		zap.String("method", p.Request.Method),
		zap.String("path", p.URL.Path),
		zap.Int("status", p.StatusCode),
		zap.Int("size", p.Size),
		zap.Duration("duration", time.Since(p.TimeStamp)),
	)
}

type recoveryLogger struct{}

func (recoveryLogger) Println(v ...interface{}) {
	logger.Error("Handler panicked", zap.String("panic", fmt.Sprint(v...)))
}

// Recover turns a panicking handler into a 500 instead of a dropped connection
func Recover(next http.Handler) http.Handler {
	return handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{}),
		handlers.PrintRecoveryStack(true),
	)(next)
}
