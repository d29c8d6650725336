// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "net/http"

// responseWriter decorates an [http.ResponseWriter] to record the status
// code and the number of body bytes written, so the logging middleware can
// report them after the handler returns. A second WriteHeader call is
// dropped, matching the stdlib contract.
type responseWriter struct {
	http.ResponseWriter

	status      int
	size        int
	wroteHeader bool
}

func (w *responseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}

	w.status = statusCode
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}

	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}
