// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strings"
)

// withCORS builds an HTTP middleware that applies cross-origin headers
// from the given whitespace-configured origin allow-list. An entry of "*"
// allows every origin.
//
// Requests without an "Origin" header pass through untouched. Allowed
// preflight (OPTIONS) requests are answered directly with the permitted
// methods and headers; disallowed origins simply receive no CORS headers,
// leaving enforcement to the browser.
//
// The middleware also advertises the configured connect-src sources via
// the Content-Security-Policy header on every response.
func withCORS(allowedOrigins, connectSrc []string) func(next http.Handler) http.Handler {
	csp := contentSecurityPolicy(connectSrc)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if csp != "" {
				w.Header().Set("Content-Security-Policy", csp)
			}

			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !originAllowed(origin, allowedOrigins) {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(origin string, allowedOrigins []string) bool {
	for _, allowed := range allowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

func contentSecurityPolicy(connectSrc []string) string {
	if len(connectSrc) == 0 {
		return ""
	}
	return "connect-src " + strings.Join(connectSrc, " ")
}
