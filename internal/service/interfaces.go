// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-stack-keeper/models"
)

type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	CreateTicket(ctx context.Context, user models.User) (models.Token, error)
	ParseTicket(ctx context.Context, ticketString string) (models.Token, error)
}

type StackService interface {
	// GetStack returns a single stack by name.
	GetStack(ctx context.Context, name string) (models.StackResponse, error)

	// QueryStacks returns one page of the stack listing for the given
	// criteria, together with pagination metadata.
	QueryStacks(ctx context.Context, query models.StackQuery) (models.StackListResponse, error)

	// SaveStack creates or updates a stack on behalf of the user
	// identified by userID, enforcing the stack's ownership rules.
	SaveStack(ctx context.Context, userID int64, request models.SaveStackRequest) (models.StackResponse, error)

	// DeleteStack removes a stack on behalf of the user identified by
	// userID, enforcing the stack's ownership rules.
	DeleteStack(ctx context.Context, userID int64, name string) (models.StatusResponse, error)
}
