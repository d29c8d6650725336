// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	// read-only routes without authorization
	router.Group(func(r chi.Router) {
		r.Use(withCORS(h.cors.OriginsRO, h.cors.ConnectSrc))
		r.Get("/api/stacks/", h.listStacks)
		r.Get("/api/stacks/{name}", h.getStack)
	})

	// account routes without authorization
	router.Group(func(r chi.Router) {
		r.Use(withCORS(h.cors.OriginsRW, h.cors.ConnectSrc))
		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)
		r.Post("/api/user/logout", h.logout)
	})

	// mutating routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(withCORS(h.cors.OriginsRW, h.cors.ConnectSrc))
		r.Use(h.auth)
		r.Post("/api/stacks/", h.saveStack)
		r.Delete("/api/stacks/{name}", h.deleteStack)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
