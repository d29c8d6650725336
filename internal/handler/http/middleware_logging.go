// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-stack-keeper/internal/logger"
)

// withLogging writes one access-log line per request: method, URI, status,
// response size and handling duration.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &responseWriter{ResponseWriter: w}
		start := time.Now()

		next.ServeHTTP(recorder, r)

		logger.FromRequest(r).Info().
			Str("method", r.Method).
			Str("uri", r.RequestURI).
			Int("status", recorder.status).
			Int("size", recorder.size).
			Dur("duration", time.Since(start)).
			Send()
	})
}
