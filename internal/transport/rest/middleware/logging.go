package middleware

import (
	"net/http"
	"time"

	"brandaudit/internal/logger"
)

// statusRecorder captures the status code written by the wrapped handler
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	n, err := s.ResponseWriter.Write(b)
	s.bytes += n
	return n, err
}

func record(w http.ResponseWriter) *statusRecorder {
	if rec, ok := w.(*statusRecorder); ok {
		return rec
	}
	return &statusRecorder{ResponseWriter: w}
}

func (s *statusRecorder) code() int {
	if s.status == 0 {
		return http.StatusOK
	}
	return s.status
}

// AccessLog writes one line per request
func AccessLog(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := record(w)
			next.ServeHTTP(rec, r)

			fields := map[string]interface{}{
				"requestId":  GetRequestID(r.Context()),
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     rec.code(),
				"bytes":      rec.bytes,
				"durationMs": time.Since(start).Milliseconds(),
			}
			if rec.code() >= 500 {
				log.Warn("request failed", fields)
				return
			}
			log.Info("request", fields)
		})
	}
}
