package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type RequestLoggerMiddleware struct {
	log *logrus.Logger
}

func NewRequestLoggerMiddleware(log *logrus.Logger) *RequestLoggerMiddleware {
	return &RequestLoggerMiddleware{log: log}
}

// statusRecorder captures the status code written by the handler chain.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Handle emits one structured log line per request, tagged with a request id.
func (m *RequestLoggerMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()

		reqID := req.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", reqID)

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, req)

		m.log.WithFields(logrus.Fields{
			"request_id":  reqID,
			"method":      req.Method,
			"path":        req.URL.Path,
			"status":      recorder.status,
			"duration_ms": time.Since(start).Milliseconds(),
			"remote_ip":   req.RemoteAddr,
		}).Info("request completed")
	})
}
