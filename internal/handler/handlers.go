// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import (
	"github.com/MKhiriev/go-stack-keeper/internal/config"
	"github.com/MKhiriev/go-stack-keeper/internal/handler/http"
	"github.com/MKhiriev/go-stack-keeper/internal/logger"
	"github.com/MKhiriev/go-stack-keeper/internal/service"
	"github.com/MKhiriev/go-stack-keeper/internal/session"
)

type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers wires the HTTP transport handler. sessions may be nil when
// sessions are disabled in the configuration.
func NewHandlers(services *service.Services, sessions *session.Store, cors config.CORS, logger *logger.Logger) *Handlers {
	logger.Info().Msg("creating new handlers...")

	return &Handlers{
		HTTP: http.NewHandler(services, sessions, cors, logger),
	}
}
