// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-stack-keeper/models"
)

// UserRepository persists and looks up user accounts.
type UserRepository interface {
	// CreateUser inserts a new account and returns it with the
	// server-assigned UserID and CreatedAt populated.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByLogin retrieves the account matching user.Login, with
	// the Groups slice populated from the group membership tables.
	FindUserByLogin(ctx context.Context, user models.User) (models.User, error)

	// FindUserByID retrieves the account with the given identifier, with
	// the Groups slice populated from the group membership tables.
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
}

// StackRepository persists stacks together with their package, user and
// group associations.
type StackRepository interface {
	// GetStack retrieves a single stack by name with all associations
	// loaded. Returns [ErrStackNotFound] when no stack matches.
	GetStack(ctx context.Context, name string) (models.Stack, error)

	// QueryStacks returns one page of stacks matching the query plus the
	// total match count across all pages. Results are ordered by name
	// descending.
	QueryStacks(ctx context.Context, query models.StackQuery) ([]models.Stack, int, error)

	// SaveStack creates or updates the stack identified by stack.Name and
	// replaces its package, user and group associations with the ones
	// provided. Returns the persisted stack with all associations loaded.
	SaveStack(ctx context.Context, stack models.Stack) (models.Stack, error)

	// DeleteStack removes the named stack and its associations. Returns
	// [ErrStackNotFound] when no stack matches.
	DeleteStack(ctx context.Context, name string) error
}

// ErrorClassificator maps driver-level errors to dialect-independent
// outcomes so repositories stay free of driver specifics.
type ErrorClassificator interface {
	// Classify reports whether a failed operation is worth retrying.
	Classify(err error) ErrorClassification

	// IsUniqueViolation reports whether err was caused by a unique
	// constraint conflict.
	IsUniqueViolation(err error) bool
}
