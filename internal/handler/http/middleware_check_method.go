// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod replaces chi's MethodNotAllowed handler. A request that
// matches a route but uses an unsupported method gets 404 instead of the
// default 405, so unsupported methods do not reveal that the route exists.
//
//	router.MethodNotAllowed(CheckHTTPMethod(router))
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var matched chi.Route
		for _, route := range router.Routes() {
			if route.Pattern == r.URL.Path {
				matched = route
				break
			}
		}

		if _, ok := matched.Handlers[r.Method]; !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		router.ServeHTTP(w, r)
	}
}
