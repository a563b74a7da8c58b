package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"sitevault/internal/metrics"
)

// RequestLogger логирует каждый запрос и обновляет HTTP-метрики
func RequestLogger(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			duration := time.Since(start)
			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", duration).
				Int("bytes", ww.BytesWritten()).
				Msg("Incoming request")

			if m != nil {
				m.HTTPRequestsTotal.
					WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(ww.Status())).
					Inc()
				m.HTTPRequestDuration.
					WithLabelValues(r.Method, r.URL.Path).
					Observe(duration.Seconds())
			}
		})
	}
}
