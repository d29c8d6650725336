// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "github.com/MKhiriev/go-stack-keeper/internal/logger"

// Storages bundles all repository implementations behind their interfaces
// for injection into the service layer.
type Storages struct {
	UserRepository  UserRepository
	StackRepository StackRepository
}

// NewStorages wires all repositories to the given database connection.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:  NewUserRepository(db, log),
		StackRepository: NewStackRepository(db, log),
	}
}
