// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/MKhiriev/go-stack-keeper/internal/config"
	"github.com/MKhiriev/go-stack-keeper/internal/logger"
	"github.com/MKhiriev/go-stack-keeper/internal/service"
	"github.com/MKhiriev/go-stack-keeper/internal/session"
)

type Handler struct {
	services *service.Services

	// sessions is nil when sessions are disabled; the auth middleware then
	// accepts bearer tickets only.
	sessions *session.Store

	cors config.CORS

	logger *logger.Logger
}

func NewHandler(services *service.Services, sessions *session.Store, cors config.CORS, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		sessions: sessions,
		cors:     cors,
		logger:   logger,
	}
}
