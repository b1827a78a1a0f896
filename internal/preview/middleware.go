package preview

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/user/pagesmith/internal/logging"
)

// requestLogger writes one structured log entry per request
func requestLogger(logger *logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				logger.Info("Request",
					logging.String("method", r.Method),
					logging.String("path", r.URL.Path),
					logging.Int("status", ww.Status()),
					logging.Int("bytes", ww.BytesWritten()),
					logging.Duration("duration", time.Since(start)),
					logging.String("request_id", middleware.GetReqID(r.Context())),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
