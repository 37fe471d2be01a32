// Package middleware provides HTTP middleware for the seqmatch API.
package middleware

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// Logger logs one line per request with its method, path, status, size,
// duration and request id.
func Logger(logger logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}
				entry := logger.WithFields(logrus.Fields{
					"method":   r.Method,
					"path":     r.URL.Path,
					"status":   status,
					"bytes":    ww.BytesWritten(),
					"duration": time.Since(start).String(),
					"remote":   r.RemoteAddr,
				})
				if id := chimiddleware.GetReqID(r.Context()); id != "" {
					entry = entry.WithField("request_id", id)
				}
				switch {
				case status >= http.StatusInternalServerError:
					entry.Error("request failed")
				case status >= http.StatusBadRequest:
					entry.Warn("request rejected")
				default:
					entry.Info("request")
				}
			}()

			next.ServeHTTP(ww, r)
		}
		return http.HandlerFunc(fn)
	}
}
