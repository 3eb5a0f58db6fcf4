package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/scrawl/internal/handler"
	"github.com/dmitrymomot/scrawl/internal/logger"
)

// statusRecorder captures the status code written by the response.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusRecorder) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

// Logging logs each request with method, path, status, and duration using
// the given structured logger.
func Logging[C handler.Context](log *slog.Logger) handler.Middleware[C] {
	if log == nil {
		log = slog.Default()
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			start := time.Now()

			response := next(ctx)
			if response == nil {
				return nil
			}

			return func(w http.ResponseWriter, r *http.Request) error {
				rec := &statusRecorder{ResponseWriter: w}
				err := response(rec, r)

				requestID, _ := GetRequestID(ctx)
				log.InfoContext(ctx, "request",
					logger.Method(r.Method),
					logger.Path(r.URL.Path),
					logger.Status(rec.status),
					logger.Duration(time.Since(start)),
					logger.RequestID(requestID),
					logger.Error(err),
				)

				return err
			}
		}
	}
}
