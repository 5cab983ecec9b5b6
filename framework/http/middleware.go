package http

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/km-arc/go-container/framework/container"
)

// RequestIDHeader carries the container's request ID on every response.
const RequestIDHeader = "X-Request-ID"

// RequestScope runs each HTTP request in its own container request
// generation. Requests sharing a container are served one at a time.
func RequestScope(app *container.Container, logger *zap.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = app.RunRequest(func(requestID string) error {
				w.Header().Set(RequestIDHeader, requestID)

				ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
				next.ServeHTTP(ww, r)

				logger.Info("request",
					zap.String("request_id", requestID),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
				)
				return nil
			})
		})
	}
}
