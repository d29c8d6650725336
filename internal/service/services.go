// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-stack-keeper/internal/cache"
	"github.com/MKhiriev/go-stack-keeper/internal/config"
	"github.com/MKhiriev/go-stack-keeper/internal/logger"
	"github.com/MKhiriev/go-stack-keeper/internal/notify"
	"github.com/MKhiriev/go-stack-keeper/internal/store"
)

type Services struct {
	AuthService  AuthService
	StackService StackService
}

// NewServices wires the service layer to its repositories and supporting
// infrastructure. regions may be nil when caching is disabled.
func NewServices(storages *store.Storages, cfg *config.StructuredConfig, regions *cache.Regions, publisher notify.Publisher, logger *logger.Logger) *Services {
	return &Services{
		AuthService:  NewAuthService(storages.UserRepository, cfg.AuthTkt, logger),
		StackService: NewStackService(storages.StackRepository, storages.UserRepository, regions, publisher, logger),
	}
}
