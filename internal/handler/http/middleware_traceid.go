// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const headerTraceID = "X-Trace-ID"

// withTraceID tags every request with a trace id, reusing the one sent by
// the caller when present. The id is attached to the request-scoped logger
// and echoed back in the response headers.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(headerTraceID)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		log := h.logger.GetChildLogger()
		log.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("trace_id", traceID)
		})

		w.Header().Set(headerTraceID, traceID)
		next.ServeHTTP(w, r.WithContext(log.WithContext(r.Context())))
	})
}
